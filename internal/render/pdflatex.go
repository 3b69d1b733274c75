package render

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"
)

// DefaultBinary is the LaTeX engine looked up on PATH
const DefaultBinary = "pdflatex"

// CommandRunner runs name with args in dir and returns the exit code with the
// combined output. A process that ran and exited non-zero is not an error.
type CommandRunner func(ctx context.Context, dir, name string, args ...string) (int, []byte, error)

// ExecRunner runs the command with os/exec
func ExecRunner(ctx context.Context, dir, name string, args ...string) (int, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, out, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), out, nil
	}
	if err != nil {
		return -1, out, err
	}
	return 0, out, nil
}

// PDFLatex renders a job by running pdflatex on its source file
type PDFLatex struct {
	Binary  string
	Timeout time.Duration // per pass, zero means none
	Run     CommandRunner
}

// NewPDFLatex returns a PDFLatex using the system process runner
func NewPDFLatex(binary string, timeout time.Duration) *PDFLatex {
	if binary == "" {
		binary = DefaultBinary
	}
	return &PDFLatex{Binary: binary, Timeout: timeout, Run: ExecRunner}
}

func (p *PDFLatex) String() string {
	return p.Binary
}

// Render runs a single pdflatex pass in the job directory
func (p *PDFLatex) Render(ctx context.Context, job Job) (Result, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	run := p.Run
	if run == nil {
		run = ExecRunner
	}

	source := job.SourcePath
	if source == "" {
		source = job.Path(".tex")
	}
	args := []string{"-interaction=nonstopmode", filepath.Base(source)}

	code, out, err := run(ctx, job.Dir, p.Binary, args...)
	if err != nil {
		return Result{ExitCode: code, Output: out}, fmt.Errorf("%w: %s: %w", ErrRendererFailed, p.Binary, err)
	}

	return Result{
		Success:    code == 0,
		ExitCode:   code,
		OutputPath: job.Path(OutputExtension),
		Output:     out,
	}, nil
}
