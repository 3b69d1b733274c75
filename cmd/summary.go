package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/alexiusacademia/beamreport/internal/beam"
	"github.com/alexiusacademia/beamreport/internal/diagram"
	"github.com/alexiusacademia/beamreport/internal/report"
	"github.com/alexiusacademia/beamreport/internal/summary"
	"github.com/spf13/cobra"
)

var (
	summaryTable       string
	summarySort        bool
	summaryShowDiagram bool
	summaryExportDir   string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the critical values of a force table",
	Long: `Read a force table and print its critical values without generating
a report: maximum positive and negative shear, maximum bending moment,
the zero shear location and the beam length.

Examples:
  # Print the critical values
  beamreport summary --table forces.xlsx

  # With ASCII shear and moment diagrams
  beamreport summary -t forces.csv --diagram

  # Export the diagrams as PNG images
  beamreport summary -t forces.csv --export charts/`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringVarP(&summaryTable, "table", "t", "", "Force table (.xlsx, .csv) [required]")
	summaryCmd.Flags().BoolVar(&summarySort, "sort", false, "Sort rows by position instead of rejecting unsorted tables")

	// Diagram options
	summaryCmd.Flags().BoolVar(&summaryShowDiagram, "diagram", false, "Show ASCII shear and moment diagrams")
	summaryCmd.Flags().StringVarP(&summaryExportDir, "export", "x", "", "Export diagrams to this directory (png)")

	summaryCmd.MarkFlagRequired("table")
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	opts := cfg.LoadOptions()
	if cmd.Flags().Changed("sort") {
		opts.SortRows = summarySort
	}

	ds, err := beam.Load(summaryTable, opts)
	if err != nil {
		return err
	}
	logger.Debug("loaded data", "path", summaryTable, "rows", ds.Len())

	m := summary.Summarize(ds)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     BEAM FORCE SUMMARY")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Table:\t%s\n", summaryTable)
	fmt.Fprintf(w, "  Data points:\t%d\n", m.Rows)
	fmt.Fprintf(w, "  Beam length:\t%s m\n", report.FormatPosition(m.BeamLength))
	w.Flush()
	fmt.Println()

	fmt.Println("CRITICAL VALUES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Maximum positive shear:\t%s kN\tat x = %s m\n",
		report.FormatForce(m.MaxShear.Value), report.FormatPosition(m.MaxShear.Position))
	fmt.Fprintf(w, "  Maximum negative shear:\t%s kN\tat x = %s m\n",
		report.FormatForce(m.MinShear.Value), report.FormatPosition(m.MinShear.Position))
	fmt.Fprintf(w, "  Maximum bending moment:\t%s kN·m\tat x = %s m\n",
		report.FormatForce(m.MaxMoment.Value), report.FormatPosition(m.MaxMoment.Position))
	zero := report.NotApplicable
	if m.HasZeroShear() {
		zero = report.FormatPosition(*m.ZeroShear) + " m"
	}
	fmt.Fprintf(w, "  Zero shear location:\t%s\t\n", zero)
	w.Flush()
	fmt.Println()

	fmt.Println(diagram.DrawSummaryBox("RESULT", []string{
		fmt.Sprintf("Mmax = %s kN·m at x = %s m",
			report.FormatForce(m.MaxMoment.Value), report.FormatPosition(m.MaxMoment.Position)),
		fmt.Sprintf("Vmax = %s kN, Vmin = %s kN",
			report.FormatForce(m.MaxShear.Value), report.FormatForce(m.MinShear.Value)),
	}))

	charts := []report.Chart{report.ShearChart(ds, m), report.MomentChart(ds, m)}

	// Show diagram if requested
	if summaryShowDiagram {
		for _, c := range charts {
			fmt.Println(diagram.DrawASCIIChart(c, 25))
		}
	}

	// Export diagrams if requested
	if summaryExportDir != "" {
		for _, c := range charts {
			path := filepath.Join(summaryExportDir, c.Kind.Slug()+".png")
			if err := diagram.ExportChart(c, path); err != nil {
				fmt.Printf("Error exporting diagram: %v\n", err)
				continue
			}
			fmt.Printf("Diagram exported to: %s\n", path)
		}
	}

	return nil
}
