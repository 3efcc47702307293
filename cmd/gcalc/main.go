package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/gcalc/internal/calculation"
	"github.com/rgehrsitz/gcalc/internal/compare"
	"github.com/rgehrsitz/gcalc/internal/config"
	"github.com/rgehrsitz/gcalc/internal/domain"
	"github.com/rgehrsitz/gcalc/internal/logging"
	"github.com/rgehrsitz/gcalc/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gcalc",
		Short: "Guarantee cost calculator",
		Long: "Compares the bank cost of advance payment and performance guarantees for a contract\n" +
			"run as one project against the same contract split into sequential phases.",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("settings", "", "Application settings file (logging, cache, server)")
	root.PersistentFlags().String("log-level", "", "Override the log level (debug, info, warn, error)")

	root.AddCommand(calculateCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(exampleCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	return root
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Compare guarantee costs for the original and phased structures",
		Long: "Reads parameters from a YAML file (or the reference defaults when no file is given),\n" +
			"applies flag overrides and prints the comparison.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			formatter := output.GetFormatterByName(formatName)
			if formatter == nil {
				return fmt.Errorf("unsupported format %q (available: %v)", formatName, output.AvailableFormatterNames())
			}

			comp, err := runComparison(cmd, args)
			if err != nil {
				return err
			}

			outFile, _ := cmd.Flags().GetString("output")
			if outFile != "" {
				written, err := output.WriteFormatted(formatter, comp, outFile)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", written)
				return nil
			}

			data, err := formatter.Format(comp)
			if err != nil {
				return fmt.Errorf("failed to format %s report: %w", formatter.Name(), err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "table", "Output format (table, console, csv, json, html)")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().Bool("debug", false, "Log every intermediate figure")
	addParameterFlags(cmd)
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [input-file]",
		Short: "Write the summary table as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := runComparison(cmd, args)
			if err != nil {
				return err
			}
			outFile, _ := cmd.Flags().GetString("output")
			written, err := output.WriteFormatted(output.CSVFormatter{}, comp, outFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Results exported to %s\n", written)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", domain.DefaultResultsFileName, "CSV file to write")
	cmd.Flags().Bool("debug", false, "Log every intermediate figure")
	addParameterFlags(cmd)
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Check a parameter file without calculating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			if _, err := parser.LoadFromFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration %s is valid\n", args[0])
			return nil
		},
	}
}

func exampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [output-file]",
		Short: "Write an example parameter file holding the reference project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "gcalc.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			if fileExists(filename) {
				return fmt.Errorf("%s already exists", filename)
			}
			example := config.NewInputParser().CreateExampleConfiguration()
			if err := config.SaveConfiguration(example, filename); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", filename)
			return nil
		},
	}
}

// runComparison loads parameters from the optional file, applies flag overrides, clamps
// them into range and computes the comparison.
func runComparison(cmd *cobra.Command, args []string) (*compare.Comparison, error) {
	cfg := &domain.Configuration{Parameters: domain.DefaultInputParameters()}
	if len(args) == 1 {
		loaded, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := applyParameterFlags(cmd, &cfg.Parameters); err != nil {
		return nil, err
	}
	cfg.Parameters = config.ClampParameters(cfg.Parameters)

	logger, err := commandLogger(cmd)
	if err != nil {
		return nil, err
	}
	defer logger.Sync() //nolint:errcheck

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logger.Sugar())
	engine.Debug, _ = cmd.Flags().GetBool("debug")

	return compare.NewCompareEngine(engine).Compare(cfg)
}

// commandLogger builds the zap logger from the settings file and --log-level. Logs go to
// stderr so reports on stdout stay clean.
func commandLogger(cmd *cobra.Command) (*zap.Logger, error) {
	settingsFile, _ := cmd.Flags().GetString("settings")
	settings, err := config.LoadSettings(settingsFile)
	if err != nil {
		return nil, err
	}

	level, _ := cmd.Flags().GetString("log-level")
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = "debug"
	}
	return logging.New(settings.Logging, level)
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

func run(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
