package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alexiusacademia/beamreport/internal/config"
	"github.com/alexiusacademia/beamreport/internal/pipeline"
	"github.com/alexiusacademia/beamreport/internal/report"
	"github.com/spf13/cobra"
)

var (
	// Inputs
	genTable string
	genImage string

	// Report options
	genOutputName string
	genTitle      string

	// Render options
	genEngine  string
	genTimeout time.Duration
	genSort    bool
	genKeepAux bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a beam analysis report",
	Long: `Generate a beam analysis report from a force table and a beam diagram.

The table (.xlsx or .csv) must have a header row with the columns
"x", "Shear force" and "Bending Moment" (configurable). Positions must
be in ascending order unless --sort is given.

The LaTeX source and the PDF are written next to the table as
{output-name}.tex and {output-name}.pdf. Intermediate files
(.aux .log .out .toc) are removed afterwards unless --keep-aux is set.

Engines:
  latex   Compile with pdflatex (two passes for the table of contents)
  native  Draw the PDF directly, no LaTeX installation needed
  none    Only write the LaTeX source

Examples:
  # Generate the standard report
  beamreport generate --table forces.xlsx --image simply_supported_beam.png

  # Without a LaTeX installation
  beamreport generate -t forces.csv -i beam.png --engine native

  # Custom title and output name
  beamreport generate -t forces.xlsx -i beam.png --title "Girder G1" --output-name Girder_G1`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Input flags
	generateCmd.Flags().StringVarP(&genTable, "table", "t", "", "Force table (.xlsx, .csv) [required]")
	generateCmd.Flags().StringVarP(&genImage, "image", "i", "", "Beam diagram image [required]")

	// Report flags
	generateCmd.Flags().StringVarP(&genOutputName, "output-name", "o", "", "Base name of the .tex and .pdf files")
	generateCmd.Flags().StringVar(&genTitle, "title", "", "Report title")

	// Render flags
	generateCmd.Flags().StringVarP(&genEngine, "engine", "e", "", "Render engine: latex, native, none")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 0, "Timeout per renderer pass (e.g. 90s)")
	generateCmd.Flags().BoolVar(&genSort, "sort", false, "Sort rows by position instead of rejecting unsorted tables")
	generateCmd.Flags().BoolVar(&genKeepAux, "keep-aux", false, "Keep intermediate render files")

	// Mark required flags
	generateCmd.MarkFlagRequired("table")
	generateCmd.MarkFlagRequired("image")
}

// applyGenerateFlags overrides config values with the flags that were set
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("engine") {
		cfg.Render.Engine = genEngine
	}
	if flags.Changed("timeout") {
		cfg.Render.Timeout = genTimeout
	}
	if flags.Changed("sort") {
		cfg.Input.SortRows = genSort
	}
	if flags.Changed("keep-aux") {
		cfg.Render.KeepAux = genKeepAux
	}
	if flags.Changed("output-name") {
		cfg.Report.OutputName = genOutputName
	}
	return config.Validate(cfg)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyGenerateFlags(cmd, cfg); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     BEAM ANALYSIS REPORT GENERATOR")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	p := pipeline.New(cfg, logger)
	res, err := p.Run(cmd.Context(), pipeline.Options{
		TablePath: genTable,
		ImagePath: genImage,
		Title:     genTitle,
	})
	if res != nil {
		printRunSummary(res, cfg)
	}
	if err != nil {
		return err
	}

	fmt.Println("═══════════════════════════════════════════════════════════════")
	if res.OutputPath != "" {
		fmt.Println("  ✓ REPORT GENERATED SUCCESSFULLY")
	} else {
		fmt.Println("  ✓ LATEX SOURCE GENERATED")
	}
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	return nil
}

func printRunSummary(res *pipeline.Result, cfg *config.Config) {
	m := res.Metrics

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Table:\t%s\n", genTable)
	fmt.Fprintf(w, "  Data points:\t%d\n", m.Rows)
	fmt.Fprintf(w, "  Beam length:\t%s m\n", report.FormatPosition(m.BeamLength))
	w.Flush()
	fmt.Println()

	fmt.Println("OUTPUT FILES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  LaTeX source:\t%s\n", res.MarkupPath)
	if res.OutputPath != "" {
		fmt.Fprintf(w, "  PDF report:\t%s\n", res.OutputPath)
	}
	fmt.Fprintf(w, "  Engine:\t%s\n", cfg.Render.Engine)
	fmt.Fprintf(w, "  Run ID:\t%s\n", res.RunID)
	w.Flush()
	fmt.Println()

	if len(res.Warnings) > 0 {
		fmt.Println("WARNINGS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		for _, warn := range res.Warnings {
			fmt.Printf("  ⚠ %v\n", warn)
		}
		fmt.Println()
	}
}
