// Package report assembles the beam analysis report as a document model.
// The model is independent of any output format; internal/latex turns it into
// markup and internal/pdfdoc draws it directly.
package report

import "github.com/alexiusacademia/beamreport/internal/beam"

// Document is the complete report in emission order
type Document struct {
	Title    string // running header and document metadata
	Author   string
	Sections []Section
}

// Charts returns the chart sections of the document in order
func (d *Document) Charts() []Chart {
	var charts []Chart
	for _, s := range d.Sections {
		if c, ok := s.(Chart); ok {
			charts = append(charts, c)
		}
	}
	return charts
}

// Section is one top-level node of the document.
// Implementations: TitlePage, TableOfContents, TextSection, DataTable,
// Chart, ConclusionTable.
type Section interface {
	isSection()
}

// Level is the heading depth of a TextSection
type Level int

const (
	LevelChapter Level = iota
	LevelSection
	LevelSubsection
)

// TitlePage is the unnumbered cover page
type TitlePage struct {
	Heading  string
	Subtitle string
	Fields   []Field
	Date     string
	Footer   string
}

// Field is a bold label followed by a value
type Field struct {
	Label string
	Value string
}

// TableOfContents marks where the contents listing goes
type TableOfContents struct{}

// TextSection is a heading followed by body blocks.
// PageBreak starts a new page after the body.
type TextSection struct {
	Level     Level
	Heading   string
	Body      []Block
	PageBreak bool
}

// DataTable lists every dataset row
type DataTable struct {
	Caption string
	Label   string
	Columns []Column
	Rows    []beam.Row
}

// Column is a table column heading with its unit
type Column struct {
	Title string
	Unit  string
}

// ChartKind identifies which diagram a Chart draws
type ChartKind int

const (
	ShearForceDiagram ChartKind = iota
	BendingMomentDiagram
)

// Slug is the short file-safe name of the chart kind
func (k ChartKind) Slug() string {
	switch k {
	case ShearForceDiagram:
		return "sfd"
	case BendingMomentDiagram:
		return "bmd"
	}
	return "chart"
}

func (k ChartKind) String() string {
	switch k {
	case ShearForceDiagram:
		return "Shear Force Diagram"
	case BendingMomentDiagram:
		return "Bending Moment Diagram"
	}
	return "Chart"
}

// Chart is a bar chart of a quantity along the beam
type Chart struct {
	Kind   ChartKind
	Title  string
	XLabel string
	YLabel string

	XMin, XMax float64
	YMin, YMax float64
	XTicks     []float64

	Series   []Series
	ZeroLine bool

	Caption string
	Label   string
}

// Series is one colored set of bars
type Series struct {
	Name   string
	Color  Color
	Points []Point
}

// Point is a chart coordinate
type Point struct {
	X float64
	Y float64
}

// ConclusionTable summarizes the critical values
type ConclusionTable struct {
	Caption string
	Rows    []CriticalValue
}

// CriticalValue is one row of the conclusion table, already formatted
type CriticalValue struct {
	Parameter string
	Value     string
	Location  string
}

func (TitlePage) isSection()       {}
func (TableOfContents) isSection() {}
func (TextSection) isSection()     {}
func (DataTable) isSection()       {}
func (Chart) isSection()           {}
func (ConclusionTable) isSection() {}

// Block is a piece of body content inside a TextSection.
// Implementations: Paragraph, List, Figure.
type Block interface {
	isBlock()
}

// Paragraph is a run of styled text
type Paragraph struct {
	Spans []Span
}

// Span is text with optional emphasis and color
type Span struct {
	Text  string
	Bold  bool
	Color Color // zero value means the default text color
}

// List is a bulleted or numbered list
type List struct {
	Ordered bool
	Items   []ListItem
}

// ListItem is list text with an optional bold label
type ListItem struct {
	Label string
	Text  string
}

// Figure is an image included by path
type Figure struct {
	ImagePath string
	Width     float64 // fraction of the text width
	Caption   string
	Label     string
}

func (Paragraph) isBlock() {}
func (List) isBlock()      {}
func (Figure) isBlock()    {}

// Text returns a plain paragraph
func Text(s string) Paragraph {
	return Paragraph{Spans: []Span{{Text: s}}}
}
