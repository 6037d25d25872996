package commands

import (
	"fmt"
	"os"
	"strings"
)

// Completion provides shell completion scripts for bash and zsh.
// Usage:
//
//	antler completion           # prints completions for all supported shells
//	antler completion bash      # prints bash completion
//	antler completion zsh       # prints zsh completion
func Completion(args []string) error {
	shell := ""
	if len(args) > 0 {
		shell = strings.ToLower(args[0])
	}

	switch shell {
	case "bash":
		printBashCompletion()
		return nil
	case "zsh":
		printZshCompletion()
		return nil
	case "", "all":
		// Print both so Homebrew's generator can detect them
		printBashCompletion()
		fmt.Println()
		printZshCompletion()
		return nil
	default:
		fmt.Fprintf(os.Stderr, "unknown shell: %s (supported: bash, zsh)\n", shell)
		return fmt.Errorf("unsupported shell: %s", shell)
	}
}

func printBashCompletion() {
	// Simple bash completion that suggests top-level commands and flags
	fmt.Println(`# bash completion for antler
_antler_completions()
{
    local cur prev words cword
    _init_completion || return

    local -a commands
    commands=(
        math register warp threshold propagate fill pipeline digest toolkit doctor setup completion help version
    )

    case ${COMP_CWORD} in
        1)
            COMPREPLY=( $(compgen -W "${commands[*]}" -- "$cur") )
            return ;;
        *)
            case ${COMP_WORDS[1]} in
                pipeline)
                    COMPREPLY=( $(compgen -W "run watch show --resume" -- "$cur") ) ;;
                digest)
                    COMPREPLY=( $(compgen -W "--verbose --files --algorithm --ignore-file --stats --clean --reset" -- "$cur") ) ;;
                warp)
                    COMPREPLY=( $(compgen -W "--stem --affine --nonlinear --interp --out --inverse --affine-only" -- "$cur") ) ;;
                completion)
                    COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") ) ;;
                *)
                    COMPREPLY=( $(compgen -W "--verbose --debug" -- "$cur") ) ;;
            esac
            return ;;
    esac
}
complete -F _antler_completions antler`)
}

func printZshCompletion() {
	fmt.Println(`#compdef antler
_antler() {
  local -a commands
  commands=(
    'math:Voxelwise operation on two volumes'
    'register:SyN registration of a source to a target'
    'warp:Resample a volume through registration transforms'
    'threshold:Map a value range to inside/outside values'
    'propagate:Fill a mask with seed labels'
    'fill:Fill a mask with labels from surface meshes'
    'pipeline:Run ordered operations from a YAML file'
    'digest:Hash subject directories and manage provenance'
    'toolkit:Show discovered ANTs installations'
    'doctor:System health check'
    'setup:Choose the preferred ANTs installation'
    'completion:Generate shell completion scripts'
    'version:Show version'
    'help:Show help'
  )

  _arguments \
    '1: :->cmds' \
    '*:: :->args'

  case $state in
    cmds)
      _describe 'command' commands
      ;;
    args)
      case $words[1] in
        completion)
          _values 'shell' bash zsh
          ;;
        pipeline)
          _values 'options' run watch show --resume
          ;;
        *)
          _message 'arguments'
          ;;
      esac
      ;;
  esac
}
_antler "$@"`)
}
