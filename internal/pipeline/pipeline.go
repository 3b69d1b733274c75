// Package pipeline runs a report from force table to final document:
// load, summarize, build, serialize, render and clean up.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/alexiusacademia/beamreport/internal/beam"
	"github.com/alexiusacademia/beamreport/internal/config"
	"github.com/alexiusacademia/beamreport/internal/latex"
	"github.com/alexiusacademia/beamreport/internal/render"
	"github.com/alexiusacademia/beamreport/internal/report"
	"github.com/alexiusacademia/beamreport/internal/summary"
)

var (
	// ErrInputMissing is returned when the table or image does not exist
	ErrInputMissing = errors.New("input file not found")

	// ErrRenderMissingOutput is returned when rendering finished but the
	// document was not produced
	ErrRenderMissingOutput = errors.New("rendered document not found")
)

// Options are the per-run inputs
type Options struct {
	TablePath string
	ImagePath string

	// Overrides for the configured report labels; empty keeps the config
	OutputName string
	Title      string

	// GeneratedOn is the report date; zero uses the pipeline clock
	GeneratedOn time.Time
}

// Result describes a finished run
type Result struct {
	RunID      string
	Dataset    *beam.Dataset
	Metrics    summary.Metrics
	Document   *report.Document
	MarkupPath string
	OutputPath string  // empty when no renderer ran
	Warnings   []error // non-fatal renderer passes
}

// Pipeline holds the collaborators of a run
type Pipeline struct {
	cfg      *config.Config
	logger   *slog.Logger
	renderer render.Renderer
	now      func() time.Time
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithRenderer replaces the renderer chosen from the config.
// A nil renderer stops after the markup is written.
func WithRenderer(r render.Renderer) Option {
	return func(p *Pipeline) {
		p.renderer = r
	}
}

// WithClock sets the clock used when Options.GeneratedOn is zero
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// New creates a pipeline for cfg. The renderer follows cfg.Render.Engine
// unless WithRenderer is given.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{
		cfg:      cfg,
		logger:   logger,
		renderer: rendererFor(cfg.Render),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func rendererFor(rc config.RenderConfig) render.Renderer {
	switch rc.Engine {
	case config.EngineLatex:
		return render.NewPDFLatex(rc.Binary, rc.Timeout)
	case config.EngineNative:
		return render.Native{}
	}
	return nil
}

// Run generates the report. Missing inputs and data errors abort before
// anything is written. Renderer passes that exit non-zero are recorded as
// warnings; the run fails only if the document is missing afterwards.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := checkInputs(opts.TablePath, opts.ImagePath); err != nil {
		return nil, err
	}

	ref := imageRef(opts.ImagePath)
	if err := latex.CheckPath(latex.NormalizePath(ref)); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	logger := p.logger.With("run_id", runID)

	ds, err := beam.Load(opts.TablePath, p.cfg.LoadOptions())
	if err != nil {
		return nil, err
	}
	logger.Info("loaded data", "path", opts.TablePath, "rows", ds.Len())

	m := summary.Summarize(ds)
	logger.Info("beam length", "beam_length", m.BeamLength)

	params := p.cfg.ReportParams()
	if opts.Title != "" {
		params.Title = opts.Title
	}
	params.ImagePath = ref
	params.GeneratedOn = opts.GeneratedOn
	if params.GeneratedOn.IsZero() {
		params.GeneratedOn = p.now()
	}

	doc := report.Build(ds, m, params)

	base := opts.OutputName
	if base == "" {
		base = p.cfg.Report.OutputName
	}
	job := render.Job{
		Dir:      filepath.Dir(opts.TablePath),
		BaseName: base,
		Document: doc,
	}
	job.SourcePath = job.Path(latex.Extension)

	if err := latex.WriteFile(job.SourcePath, latex.Serialize(doc)); err != nil {
		return nil, err
	}
	logger.Info("LaTeX file generated", "path", job.SourcePath)

	res := &Result{
		RunID:      runID,
		Dataset:    ds,
		Metrics:    m,
		Document:   doc,
		MarkupPath: job.SourcePath,
	}
	if p.renderer == nil {
		return res, nil
	}

	// A document left by an earlier run must not count as this run's output
	output := job.Path(render.OutputExtension)
	if err := os.Remove(output); err == nil {
		logger.Debug("removed previous output", "path", output)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return res, fmt.Errorf("removing previous output %s: %w", output, err)
	}

	warnings, renderErr := p.render(ctx, job, logger)
	res.Warnings = warnings

	_, statErr := os.Stat(output)

	if !p.cfg.Render.KeepAux {
		render.Cleanup(job.Dir, job.BaseName, p.cleanupExtensions(), logger)
	}

	if renderErr != nil {
		return res, renderErr
	}
	if statErr != nil {
		logger.Error("PDF file not found", "path", output)
		return res, fmt.Errorf("%w: %s", ErrRenderMissingOutput, output)
	}

	res.OutputPath = output
	logger.Info("PDF generated successfully", "path", output)
	return res, nil
}

// render runs every pass in order. Each pass runs exactly once.
func (p *Pipeline) render(ctx context.Context, job render.Job, logger *slog.Logger) ([]error, error) {
	passes := p.cfg.Render.Passes
	if ps, ok := p.renderer.(render.Passer); ok {
		passes = ps.Passes()
	}
	name := render.Name(p.renderer)

	var warnings []error
	for pass := 1; pass <= passes; pass++ {
		logger.Info("render pass", "renderer", name, "pass", pass, "of", passes)

		res, err := p.renderer.Render(ctx, job)
		if err != nil {
			return warnings, err
		}
		if !res.Success {
			w := &render.Warning{Renderer: name, Pass: pass, ExitCode: res.ExitCode}
			logger.Warn(w.Error(), "pass", pass, "exit_code", res.ExitCode)
			logger.Debug("renderer output", "output", string(res.Output))
			warnings = append(warnings, w)
		}
	}
	return warnings, nil
}

func (p *Pipeline) cleanupExtensions() []string {
	exts := slices.Clone(p.cfg.Render.CleanupExtensions)
	if in, ok := p.renderer.(render.Intermediates); ok {
		exts = append(exts, in.Intermediates()...)
	}
	return exts
}

func checkInputs(paths ...string) error {
	for _, path := range paths {
		if path == "" {
			return fmt.Errorf("%w: no path given", ErrInputMissing)
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%w: %s", ErrInputMissing, path)
		}
	}
	return nil
}

// imageRef makes the image path absolute so the renderer finds it from the
// output directory
func imageRef(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
