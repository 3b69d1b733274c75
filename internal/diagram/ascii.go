package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/alexiusacademia/beamreport/internal/report"
)

// DrawASCIIChart draws a force diagram as horizontal bars, one row per
// station. Negative values extend left of the axis and positive values right.
// width is the number of characters available to each side of the axis.
func DrawASCIIChart(c report.Chart, width int) string {
	if width < 4 {
		width = 4
	}

	type station struct{ x, v float64 }

	// Series of a chart are parallel over the same rows; the non-zero value
	// wins. Rows sharing a position stay separate so jumps are kept.
	var rows []station
	for _, s := range c.Series {
		for i, p := range s.Points {
			if i == len(rows) {
				rows = append(rows, station{x: p.X, v: p.Y})
				continue
			}
			if rows[i].v == 0 && p.Y != 0 {
				rows[i].v = p.Y
			}
		}
	}

	var peak float64
	for _, r := range rows {
		peak = math.Max(peak, math.Abs(r.v))
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", strings.ToUpper(c.Title)))
	sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", utf8.RuneCountInString(c.Title))))

	for _, r := range rows {
		n := 0
		if peak > 0 {
			n = int(math.Round(math.Abs(r.v) / peak * float64(width)))
		}

		left := strings.Repeat(" ", width)
		right := ""
		if r.v < 0 {
			left = strings.Repeat(" ", width-n) + strings.Repeat("▒", n)
		} else if r.v > 0 {
			right = strings.Repeat("█", n)
		}

		line := fmt.Sprintf("  x=%6s │%s┼%s", report.FormatPosition(r.x), left, right)
		sb.WriteString(fmt.Sprintf("%s %s\n", pad(line, width*2+13), report.FormatForce(r.v)))
	}

	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ███ = positive\n")
	sb.WriteString("  ▒▒▒ = negative\n")

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s with spaces to n runes
func pad(s string, n int) string {
	if k := utf8.RuneCountInString(s); k < n {
		return s + strings.Repeat(" ", n-k)
	}
	return s
}
