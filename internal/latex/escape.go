package latex

import (
	"errors"
	"fmt"
	"strings"
)

var textEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`%`, `\%`,
	`_`, `\_`,
	`^`, `\textasciicircum{}`,
	`~`, `\textasciitilde{}`,
	`·`, `$\cdot$`,
)

// Escape makes text safe to place in a LaTeX body
func Escape(s string) string {
	return textEscaper.Replace(s)
}

// NormalizePath converts Windows separators so a path can be passed to
// \includegraphics on any platform
func NormalizePath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// ErrUnsafePath is returned for paths that cannot be read back verbatim
// inside \detokenize
var ErrUnsafePath = errors.New("path cannot be embedded in LaTeX")

// CheckPath rejects paths holding a comment, parameter or brace character.
// Any other character survives \detokenize unchanged.
func CheckPath(p string) error {
	if i := strings.IndexAny(p, `%#{}`); i >= 0 {
		return fmt.Errorf("%w: %q in %s", ErrUnsafePath, p[i], p)
	}
	return nil
}
