package render

import (
	"context"
	"fmt"

	"github.com/alexiusacademia/beamreport/internal/diagram"
	"github.com/alexiusacademia/beamreport/internal/pdfdoc"
	"github.com/alexiusacademia/beamreport/internal/report"
)

// Native renders the document model to PDF without a LaTeX installation.
// Charts are drawn to {base}.{slug}.png first and embedded as images.
type Native struct{}

func (Native) String() string {
	return "native"
}

// Passes is one: the layout resolves its own page references
func (Native) Passes() int {
	return 1
}

// Intermediates lists the chart images left next to the output
func (Native) Intermediates() []string {
	return []string{"sfd.png", "bmd.png"}
}

// Render exports the charts and writes the PDF
func (Native) Render(ctx context.Context, job Job) (Result, error) {
	if job.Document == nil {
		return Result{}, fmt.Errorf("%w: native: job has no document", ErrRendererFailed)
	}

	opts := pdfdoc.Options{ChartImages: make(map[report.ChartKind]string)}
	for _, c := range job.Document.Charts() {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("%w: native: %w", ErrRendererFailed, err)
		}
		path := job.Path("." + c.Kind.Slug() + ".png")
		if err := diagram.ExportChart(c, path); err != nil {
			return Result{}, fmt.Errorf("%w: exporting %s: %w", ErrRendererFailed, c.Kind, err)
		}
		opts.ChartImages[c.Kind] = path
	}

	out := job.Path(OutputExtension)
	if err := pdfdoc.Write(job.Document, out, opts); err != nil {
		// A layout failure is reported like a failed pass
		return Result{ExitCode: 1, OutputPath: out, Output: []byte(err.Error())}, nil
	}

	return Result{Success: true, OutputPath: out}, nil
}
