package render

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultCleanupExtensions are the pdflatex by-products removed after a run
var DefaultCleanupExtensions = []string{"aux", "log", "out", "toc"}

// CleanupError is a file that could not be removed
type CleanupError struct {
	Path string
	Err  error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("could not remove %s: %v", e.Path, e.Err)
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}

// Cleanup deletes {base}.{ext} in dir for each extension. Missing files are
// skipped. Failures are logged and returned, and never stop the loop.
func Cleanup(dir, base string, exts []string, logger *slog.Logger) []error {
	if logger == nil {
		logger = slog.Default()
	}

	var errs []error
	for _, ext := range exts {
		path := filepath.Join(dir, base+"."+strings.TrimPrefix(ext, "."))

		err := os.Remove(path)
		switch {
		case err == nil:
			logger.Info("cleaned up", "path", path)
		case errors.Is(err, fs.ErrNotExist):
		default:
			cerr := &CleanupError{Path: path, Err: err}
			logger.Warn("cleanup failed", "path", path, "error", err)
			errs = append(errs, cerr)
		}
	}
	return errs
}
