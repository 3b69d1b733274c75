package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alexiusacademia/beamreport/internal/config"
	"github.com/alexiusacademia/beamreport/internal/logging"
	"github.com/alexiusacademia/beamreport/internal/pipeline"
	"github.com/alexiusacademia/beamreport/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Global options
	configPath string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "beamreport",
	Short: "Beam Analysis Report Generator",
	Long: `beamreport - Beam Analysis Report Generator

A CLI tool that turns a table of shear force and bending moment values
along a beam into a formatted analysis report.

The generated report contains:
  - Title page and table of contents
  - Beam configuration with the beam diagram and length
  - The full force and moment data table
  - Shear force and bending moment diagrams
  - A summary of critical values and design notes

The report is written as LaTeX and compiled to PDF with pdflatex,
or drawn directly to PDF with the native engine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   beamreport v%-44s║\n", version.Version)
		fmt.Println("  ║   Beam Analysis Report Generator                          ║")
		fmt.Printf("  ║   %-57s║\n", version.Copyright())
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Turns shear force and bending moment tables into")
		fmt.Println("  structural analysis reports.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Excel (.xlsx) and CSV force tables")
		fmt.Println("    • Critical value summary with zero shear detection")
		fmt.Println("    • Shear force and bending moment diagrams")
		fmt.Println("    • PDF output through pdflatex or the native engine")
		fmt.Println()
		fmt.Println("  Use 'beamreport --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  %s. All rights reserved.\n", version.Copyright())
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// The process exits with the code matching the failure class.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(pipeline.ExitCode(err))
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.ConfigFileName, "Config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text, json")
}

// loadConfig reads the config file and environment, then applies the
// global logging flags
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	return cfg, logging.New(cfg.Logging, os.Stderr), nil
}
