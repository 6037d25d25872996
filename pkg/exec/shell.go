package exec

import (
	"fmt"
	"runtime"
	"strings"
)

// Quote quotes a string for shell display
func Quote(s string) string {
	if runtime.GOOS == "windows" {
		return fmt.Sprintf("%q", strings.ReplaceAll(s, `"`, `""`))
	}
	if s == "" || strings.ContainsAny(s, " \t'\"$&|;()<>[]") {
		return fmt.Sprintf("'%s'", strings.ReplaceAll(s, "'", "'\\''"))
	}
	return s
}

// JoinArgs joins arguments into a copy-pasteable command line for logging
func JoinArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = Quote(arg)
	}
	return strings.Join(quoted, " ")
}
