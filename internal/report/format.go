package report

import (
	"strconv"
	"time"
)

// DateLayout is the date format printed on the title page
const DateLayout = "January 02, 2006"

// NotApplicable is printed in place of a value that does not exist,
// such as the zero shear station of a beam whose shear never hits zero.
const NotApplicable = "N/A"

// FormatPosition formats a position along the beam to 1 decimal place
func FormatPosition(x float64) string {
	return strconv.FormatFloat(x, 'f', 1, 64)
}

// FormatForce formats a shear force or bending moment to 2 decimal places
func FormatForce(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatCoord formats a chart coordinate with the shortest exact representation
func FormatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatDate formats the report date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
