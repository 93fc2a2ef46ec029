package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/autosave/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: autosave-tui <request-file> [assumptions-file]")
		os.Exit(1)
	}
	requestPath := os.Args[1]
	assumptionsPath := ""
	if len(os.Args) > 2 {
		assumptionsPath = os.Args[2]
	}

	for _, path := range []string{requestPath, assumptionsPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Printf("Error: File not found: %s\n", path)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(
		tui.NewModel(requestPath, assumptionsPath),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
