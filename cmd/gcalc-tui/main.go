package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/gcalc/internal/calculation"
	"github.com/rgehrsitz/gcalc/internal/compare"
	"github.com/rgehrsitz/gcalc/internal/config"
	"github.com/rgehrsitz/gcalc/internal/domain"
	"github.com/rgehrsitz/gcalc/internal/logging"
	"github.com/rgehrsitz/gcalc/internal/tui"
)

func main() {
	// Optional parameter file; the reference project otherwise
	cfg := &domain.Configuration{Parameters: domain.DefaultInputParameters()}
	if len(os.Args) > 1 {
		parser := &config.InputParser{Clamp: true}
		loaded, err := parser.LoadFromFile(os.Args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	engine := calculation.NewCalculationEngine()

	// The alt screen owns the terminal, so engine logs are kept only when
	// GCALC_LOGGING_OUTPUT_FILE names a file.
	settings, err := config.LoadSettings("")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if settings.Logging.OutputFile != "" {
		logger, err := logging.New(settings.Logging, "")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync() //nolint:errcheck
		engine.SetLogger(logger.Sugar())
		engine.Debug = settings.Logging.Level == "debug"
	}

	model := tui.NewModel(cfg, compare.NewCompareEngine(engine))

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
