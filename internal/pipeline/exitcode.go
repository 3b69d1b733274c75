package pipeline

import (
	"context"
	"errors"

	"github.com/alexiusacademia/beamreport/internal/beam"
	"github.com/alexiusacademia/beamreport/internal/latex"
	"github.com/alexiusacademia/beamreport/internal/render"
)

// Process exit codes
const (
	ExitOK = iota
	ExitUsage
	ExitInputMissing
	ExitDataSource
	ExitEmptyDataset
	ExitUnsortedData
	ExitRenderMissingOutput
	ExitRendererFailed
)

// ExitCode maps a run error to the process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInputMissing), errors.Is(err, latex.ErrUnsafePath):
		return ExitInputMissing
	case errors.Is(err, beam.ErrDataSource):
		return ExitDataSource
	case errors.Is(err, beam.ErrEmptyDataset):
		return ExitEmptyDataset
	case errors.Is(err, beam.ErrUnsortedData):
		return ExitUnsortedData
	case errors.Is(err, ErrRenderMissingOutput):
		return ExitRenderMissingOutput
	case errors.Is(err, render.ErrRendererFailed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return ExitRendererFailed
	}
	return ExitUsage
}
