// Package render turns a generated report into its final document.
//
// A Renderer runs one pass over a Job. PDFLatex shells out to pdflatex and
// Native draws the document model directly with gofpdf. Renderers leave
// intermediate files behind; Cleanup removes them by extension.
package render

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alexiusacademia/beamreport/internal/report"
)

// OutputExtension is the extension of the final document
const OutputExtension = ".pdf"

// ErrRendererFailed is returned when a renderer could not run at all:
// a missing binary, a timeout or an I/O error.
var ErrRendererFailed = errors.New("renderer failed")

// Job describes one document to render. Dir is the working directory and
// every artifact is named {BaseName}.{ext} inside it.
type Job struct {
	Dir        string
	BaseName   string
	SourcePath string // serialized markup
	Document   *report.Document
}

// Path returns the path of the job artifact with the given extension
func (j Job) Path(ext string) string {
	return filepath.Join(j.Dir, j.BaseName+ext)
}

// Result is the outcome of one renderer pass
type Result struct {
	Success    bool
	ExitCode   int
	OutputPath string
	Output     []byte // combined process output, if any
}

// Renderer runs one rendering pass. A non-zero exit code is reported through
// Result with a nil error; an error means the renderer could not run.
type Renderer interface {
	Render(ctx context.Context, job Job) (Result, error)
}

// Passer is implemented by renderers that need a fixed number of passes
type Passer interface {
	Passes() int
}

// Intermediates is implemented by renderers that write extra artifacts
// besides the usual aux files. Extensions have no leading dot.
type Intermediates interface {
	Intermediates() []string
}

// Warning records a pass that exited non-zero. It is not fatal: the run
// is judged by whether the output file exists.
type Warning struct {
	Renderer string
	Pass     int
	ExitCode int
}

func (w *Warning) Error() string {
	return fmt.Sprintf("%s pass %d returned non-zero exit code: %d", w.Renderer, w.Pass, w.ExitCode)
}

// Name returns a printable name for r
func Name(r Renderer) string {
	if s, ok := r.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", r)
}
