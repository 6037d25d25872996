package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"antler/internal/config"
	"antler/internal/toolkit"
)

// Setup runs an interactive wizard that lets the user choose a preferred
// ANTs installation. The chosen bin directory and the recommended thread
// count are saved to the config file. If no installation is detected, an
// error message is printed and no configuration is saved.
func Setup(args []string) error {
	m := toolkit.NewManager()
	installs := m.Installs()
	if len(installs) == 0 {
		fmt.Println("No ANTs installation detected. Install ANTs or set ANTSPATH and re-run antler setup.")
		return fmt.Errorf("no ANTs installation found")
	}

	recommended := m.SelectOptimal()
	fmt.Println("=== Antler Setup Wizard ===")
	fmt.Println("Detected ANTs installations:")
	for i := range installs {
		in := &installs[i]
		rec := ""
		if recommended != nil && in.Dir == recommended.Dir {
			rec = " (recommended)"
		}
		fmt.Printf("  %d) %s%s\n", i+1, toolkit.FormatInstall(in), rec)
	}
	fmt.Println("\nSelect the number of the installation you want antler to use.")
	fmt.Println("Press Enter to accept the recommended option.")
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Choice: ")
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	idx := 0
	if input != "" {
		if v, err := strconv.Atoi(input); err == nil {
			idx = v
		}
		if idx < 1 || idx > len(installs) {
			fmt.Println("Invalid choice; using recommended.")
			idx = 0
		}
	}
	var selected *toolkit.Install
	if idx > 0 {
		selected = &installs[idx-1]
	} else {
		selected = recommended
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{}
	}
	cfg.ANTsBin = selected.Dir
	if cfg.Threads == 0 {
		cfg.Threads = m.Hardware().RecommendedThreads()
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("Configured %s as the default ANTs installation. Configuration saved to %s\n",
		selected.Dir, config.Path())
	return nil
}
