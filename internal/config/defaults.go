package config

import (
	"time"

	"github.com/alexiusacademia/beamreport/internal/beam"
	"github.com/alexiusacademia/beamreport/internal/render"
	"github.com/alexiusacademia/beamreport/internal/report"
)

// DefaultOutputName is the base name of the generated .tex and .pdf
const DefaultOutputName = "Beam_Analysis_Report"

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	params := report.DefaultParams()

	return &Config{
		Report: ReportConfig{
			Title:      params.Title,
			Subtitle:   params.Subtitle,
			Project:    params.Project,
			Author:     params.Author,
			OutputName: DefaultOutputName,
		},
		Input: InputConfig{
			Columns: beam.DefaultColumns(),
		},
		Render: RenderConfig{
			Engine:            EngineLatex,
			Binary:            render.DefaultBinary,
			Passes:            2,
			Timeout:           2 * time.Minute,
			CleanupExtensions: append([]string(nil), render.DefaultCleanupExtensions...),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ReportParams maps the report section onto builder parameters
func (c *Config) ReportParams() report.Params {
	return report.Params{
		Title:    c.Report.Title,
		Subtitle: c.Report.Subtitle,
		Project:  c.Report.Project,
		Author:   c.Report.Author,
	}
}

// LoadOptions maps the input section onto loader options
func (c *Config) LoadOptions() beam.LoadOptions {
	return beam.LoadOptions{
		Columns:  c.Input.Columns,
		Sheet:    c.Input.Sheet,
		SortRows: c.Input.SortRows,
	}
}
