package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/beamreport/internal/beam"
	"github.com/alexiusacademia/beamreport/internal/config"
	"github.com/alexiusacademia/beamreport/internal/latex"
	"github.com/alexiusacademia/beamreport/internal/render"
)

// fakeRenderer writes the artifacts pdflatex would leave behind
type fakeRenderer struct {
	exitCode   int
	err        error
	writeOut   bool
	passes     int
	calls      int
	lastSource string
}

func (f *fakeRenderer) Render(ctx context.Context, job render.Job) (render.Result, error) {
	f.calls++
	f.lastSource = job.SourcePath
	if f.err != nil {
		return render.Result{}, f.err
	}
	for _, ext := range []string{".aux", ".log", ".out", ".toc"} {
		if err := os.WriteFile(job.Path(ext), []byte("x"), 0644); err != nil {
			return render.Result{}, err
		}
	}
	if f.writeOut {
		if err := os.WriteFile(job.Path(".pdf"), []byte("%PDF-1.5"), 0644); err != nil {
			return render.Result{}, err
		}
	}
	return render.Result{Success: f.exitCode == 0, ExitCode: f.exitCode, OutputPath: job.Path(".pdf")}, nil
}

type onePass struct{ fakeRenderer }

func (onePass) Passes() int { return 1 }

var generatedOn = time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

func writeInputs(t *testing.T, csv string) (dir, table, image string) {
	t.Helper()
	dir = t.TempDir()
	table = filepath.Join(dir, "forces.csv")
	image = filepath.Join(dir, "beam.png")
	require.NoError(t, os.WriteFile(table, []byte(csv), 0644))
	require.NoError(t, os.WriteFile(image, []byte("png"), 0644))
	return dir, table, image
}

const uniformLoad = "x,Shear force,Bending Moment\n0,50,0\n2,50,100\n4,50,0\n"

func newPipeline(t *testing.T, r render.Renderer) (*Pipeline, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(config.DefaultConfig(), logger, WithRenderer(r)), &buf
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestRunSuccess(t *testing.T) {
	dir, table, image := writeInputs(t, uniformLoad)
	fake := &fakeRenderer{writeOut: true}
	p, logs := newPipeline(t, fake)

	res, err := p.Run(context.Background(), Options{TablePath: table, ImagePath: image, GeneratedOn: generatedOn})
	require.NoError(t, err)

	assert.Equal(t, 2, fake.calls)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, filepath.Join(dir, "Beam_Analysis_Report.tex"), res.MarkupPath)
	assert.Equal(t, res.MarkupPath, fake.lastSource)
	assert.Equal(t, filepath.Join(dir, "Beam_Analysis_Report.pdf"), res.OutputPath)
	assert.True(t, exists(res.MarkupPath))
	assert.True(t, exists(res.OutputPath))

	for _, ext := range []string{".aux", ".log", ".out", ".toc"} {
		assert.False(t, exists(filepath.Join(dir, "Beam_Analysis_Report"+ext)), ext)
	}
	assert.Contains(t, logs.String(), "rows=3")
	assert.Contains(t, logs.String(), "beam_length=4")

	_, err = uuid.Parse(res.RunID)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "run_id="+res.RunID)
}

func TestRunUniformLoadScenario(t *testing.T) {
	_, table, image := writeInputs(t, uniformLoad)
	p, _ := newPipeline(t, nil)

	res, err := p.Run(context.Background(), Options{TablePath: table, ImagePath: image, GeneratedOn: generatedOn})
	require.NoError(t, err)

	m := res.Metrics
	assert.Equal(t, 4.0, m.BeamLength)
	assert.Equal(t, 50.0, m.MaxShear.Value)
	assert.Equal(t, 0.0, m.MaxShear.Position)
	assert.Equal(t, 50.0, m.MinShear.Value)
	assert.Equal(t, 0.0, m.MinShear.Position)
	assert.Equal(t, 100.0, m.MaxMoment.Value)
	assert.Equal(t, 2.0, m.MaxMoment.Position)
	assert.Nil(t, m.ZeroShear)

	markup, err := os.ReadFile(res.MarkupPath)
	require.NoError(t, err)
	assert.Contains(t, string(markup), "x = N/A")
	assert.Contains(t, string(markup), "January 15, 2025")
	assert.Contains(t, string(markup), "\\includegraphics[width=0.85\\textwidth]{\\detokenize{"+filepath.ToSlash(image)+"}}")
}

func TestRunPartialFailure(t *testing.T) {
	_, table, image := writeInputs(t, uniformLoad)
	fake := &fakeRenderer{exitCode: 1, writeOut: true}
	p, logs := newPipeline(t, fake)

	res, err := p.Run(context.Background(), Options{TablePath: table, ImagePath: image, GeneratedOn: generatedOn})
	require.NoError(t, err)

	require.Len(t, res.Warnings, 2)
	var w *render.Warning
	require.True(t, errors.As(res.Warnings[1], &w))
	assert.Equal(t, 2, w.Pass)
	assert.Equal(t, 1, w.ExitCode)
	assert.True(t, exists(res.OutputPath))
	assert.Contains(t, logs.String(), "level=WARN")
}

func TestRunMissingOutput(t *testing.T) {
	dir, table, image := writeInputs(t, uniformLoad)
	fake := &fakeRenderer{exitCode: 1}
	p, _ := newPipeline(t, fake)

	res, err := p.Run(context.Background(), Options{TablePath: table, ImagePath: image, GeneratedOn: generatedOn})
	assert.ErrorIs(t, err, ErrRenderMissingOutput)
	assert.Equal(t, ExitRenderMissingOutput, ExitCode(err))

	require.NotNil(t, res)
	assert.Empty(t, res.OutputPath)
	assert.True(t, exists(res.MarkupPath))
	for _, ext := range []string{".aux", ".log", ".out", ".toc"} {
		assert.False(t, exists(filepath.Join(dir, "Beam_Analysis_Report"+ext)), "cleanup still runs: %s", ext)
	}
}

func TestRunIgnoresPreviousOutput(t *testing.T) {
	dir, table, image := writeInputs(t, uniformLoad)
	stale := filepath.Join(dir, "Beam_Analysis_Report.pdf")
	require.NoError(t, os.WriteFile(stale, []byte("%PDF-1.5"), 0644))

	fake := &fakeRenderer{exitCode: 1}
	p, _ := newPipeline(t, fake)

	res, err := p.Run(context.Background(), Options{TablePath: table, ImagePath: image, GeneratedOn: generatedOn})
	assert.ErrorIs(t, err, ErrRenderMissingOutput)
	require.NotNil(t, res)
	assert.Empty(t, res.OutputPath)
	assert.False(t, exists(stale))
}

func TestRunUnsafeImagePath(t *testing.T) {
	dir, table, _ := writeInputs(t, uniformLoad)
	imgDir := filepath.Join(dir, "run#2")
	require.NoError(t, os.Mkdir(imgDir, 0755))
	image := filepath.Join(imgDir, "beam 50%.png")
	require.NoError(t, os.WriteFile(image, []byte("png"), 0644))

	fake := &fakeRenderer{writeOut: true}
	p, _ := newPipeline(t, fake)

	_, err := p.Run(context.Background(), Options{TablePath: table, ImagePath: image})
	assert.ErrorIs(t, err, latex.ErrUnsafePath)
	assert.Equal(t, ExitInputMissing, ExitCode(err))
	assert.Equal(t, 0, fake.calls)
	assert.False(t, exists(filepath.Join(dir, "Beam_Analysis_Report.tex")))
}

func TestRunKeepAux(t *testing.T) {
	dir, table, image := writeInputs(t, uniformLoad)
	cfg := config.DefaultConfig()
	cfg.Render.KeepAux = true
	p := New(cfg, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), WithRenderer(&fakeRenderer{writeOut: true}))

	_, err := p.Run(context.Background(), Options{TablePath: table, ImagePath: image})
	require.NoError(t, err)
	assert.True(t, exists(filepath.Join(dir, "Beam_Analysis_Report.aux")))
}

func TestRunRendererFailure(t *testing.T) {
	_, table, image := writeInputs(t, uniformLoad)
	fake := &fakeRenderer{err: fmt.Errorf("%w: pdflatex: not found", render.ErrRendererFailed)}
	p, _ := newPipeline(t, fake)

	_, err := p.Run(context.Background(), Options{TablePath: table, ImagePath: image})
	assert.ErrorIs(t, err, render.ErrRendererFailed)
	assert.Equal(t, ExitRendererFailed, ExitCode(err))
	assert.Equal(t, 1, fake.calls)
}

func TestRunRespectsRendererPasses(t *testing.T) {
	_, table, image := writeInputs(t, uniformLoad)
	fake := &onePass{fakeRenderer{writeOut: true}}
	p, _ := newPipeline(t, fake)

	_, err := p.Run(context.Background(), Options{TablePath: table, ImagePath: image})
	require.NoError(t, err)
	assert.Equal(t, 1, fake.calls)
}

func TestRunMissingInput(t *testing.T) {
	dir, table, image := writeInputs(t, uniformLoad)
	fake := &fakeRenderer{writeOut: true}
	p, _ := newPipeline(t, fake)

	tests := []struct {
		name  string
		table string
		image string
	}{
		{"table", filepath.Join(dir, "missing.xlsx"), image},
		{"image", table, filepath.Join(dir, "missing.png")},
		{"empty table path", "", image},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Run(context.Background(), Options{TablePath: tt.table, ImagePath: tt.image})
			assert.ErrorIs(t, err, ErrInputMissing)
			assert.Equal(t, ExitInputMissing, ExitCode(err))
		})
	}

	assert.Equal(t, 0, fake.calls)
	assert.False(t, exists(filepath.Join(dir, "Beam_Analysis_Report.tex")))
}

func TestRunDataErrorsWriteNothing(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want error
		code int
	}{
		{"missing column", "x,Shear force\n0,1\n", beam.ErrDataSource, ExitDataSource},
		{"bad number", "x,Shear force,Bending Moment\n0,abc,0\n", beam.ErrDataSource, ExitDataSource},
		{"empty", "x,Shear force,Bending Moment\n", beam.ErrEmptyDataset, ExitEmptyDataset},
		{"unsorted", "x,Shear force,Bending Moment\n2,1,1\n0,1,1\n", beam.ErrUnsortedData, ExitUnsortedData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, table, image := writeInputs(t, tt.csv)
			fake := &fakeRenderer{writeOut: true}
			p, _ := newPipeline(t, fake)

			_, err := p.Run(context.Background(), Options{TablePath: table, ImagePath: image})
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.code, ExitCode(err))
			assert.Equal(t, 0, fake.calls)
			assert.False(t, exists(filepath.Join(dir, "Beam_Analysis_Report.tex")))
		})
	}
}

func TestRunSortRows(t *testing.T) {
	_, table, image := writeInputs(t, "x,Shear force,Bending Moment\n2,1,1\n0,1,1\n")
	cfg := config.DefaultConfig()
	cfg.Input.SortRows = true
	p := New(cfg, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), WithRenderer(nil))

	res, err := p.Run(context.Background(), Options{TablePath: table, ImagePath: image})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2}, res.Dataset.Positions())
}

func TestRunOverridesAndClock(t *testing.T) {
	dir, table, image := writeInputs(t, uniformLoad)
	clock := func() time.Time { return time.Date(2024, time.December, 24, 0, 0, 0, 0, time.UTC) }
	p := New(config.DefaultConfig(), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
		WithRenderer(nil), WithClock(clock))

	res, err := p.Run(context.Background(), Options{
		TablePath:  table,
		ImagePath:  image,
		OutputName: "Girder_G1",
		Title:      "Girder G1",
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Girder_G1.tex"), res.MarkupPath)
	assert.Equal(t, "Girder G1", res.Document.Title)

	markup, err := os.ReadFile(res.MarkupPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(markup), "December 24, 2024"))
}

func TestNewPicksRendererFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	p := New(cfg, nil)
	_, ok := p.renderer.(*render.PDFLatex)
	assert.True(t, ok)

	cfg.Render.Engine = config.EngineNative
	p = New(cfg, nil)
	assert.IsType(t, render.Native{}, p.renderer)

	cfg.Render.Engine = config.EngineNone
	p = New(cfg, nil)
	assert.Nil(t, p.renderer)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{fmt.Errorf("wrap: %w", ErrInputMissing), ExitInputMissing},
		{&beam.DataSourceError{Path: "t.xlsx", Msg: "bad"}, ExitDataSource},
		{beam.ErrEmptyDataset, ExitEmptyDataset},
		{beam.ErrUnsortedData, ExitUnsortedData},
		{ErrRenderMissingOutput, ExitRenderMissingOutput},
		{render.ErrRendererFailed, ExitRendererFailed},
		{context.DeadlineExceeded, ExitRendererFailed},
		{config.ErrInvalidConfig, ExitUsage},
		{errors.New("unknown flag"), ExitUsage},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
