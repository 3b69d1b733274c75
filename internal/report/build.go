package report

import (
	"fmt"
	"time"

	"github.com/alexiusacademia/beamreport/internal/beam"
	"github.com/alexiusacademia/beamreport/internal/summary"
)

// Params are the inputs to Build that do not come from the dataset
type Params struct {
	Title     string // running header, e.g. "Beam Analysis Report"
	Heading   string // title page heading
	Subtitle  string
	Project   string
	Author    string
	Generator string // footer line of the title page

	ImagePath   string // beam configuration diagram, embedded by path
	GeneratedOn time.Time
}

// DefaultParams returns the labels used by the standard report
func DefaultParams() Params {
	return Params{
		Title:     "Beam Analysis Report",
		Heading:   "Structural Analysis Report",
		Subtitle:  "Simply Supported Beam Analysis",
		Project:   "FOSSEE Beam Analysis",
		Author:    "FOSSEE Project",
		Generator: "Generated using beamreport and LaTeX",
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.Title == "" {
		p.Title = d.Title
	}
	if p.Heading == "" {
		p.Heading = d.Heading
	}
	if p.Subtitle == "" {
		p.Subtitle = d.Subtitle
	}
	if p.Project == "" {
		p.Project = d.Project
	}
	if p.Author == "" {
		p.Author = d.Author
	}
	if p.Generator == "" {
		p.Generator = d.Generator
	}
	return p
}

// Chart axis padding
const (
	xPad         = 0.5
	shearPad     = 10.0
	momentYMin   = -10.0
	momentTopPad = 20.0
)

// Build assembles the report for a non-empty dataset and its metrics.
// It reads nothing but its arguments, so equal inputs give equal documents.
func Build(ds *beam.Dataset, m summary.Metrics, p Params) *Document {
	p = p.withDefaults()

	doc := &Document{Title: p.Title, Author: p.Author}
	doc.Sections = append(doc.Sections,
		titlePage(p),
		TableOfContents{},
	)
	doc.Sections = append(doc.Sections, introduction(ds, p)...)
	doc.Sections = append(doc.Sections, inputData(ds, m)...)
	doc.Sections = append(doc.Sections, shearResults(ds, m)...)
	doc.Sections = append(doc.Sections, momentResults(ds, m)...)
	doc.Sections = append(doc.Sections, conclusion(m)...)
	return doc
}

func titlePage(p Params) TitlePage {
	return TitlePage{
		Heading:  p.Heading,
		Subtitle: p.Subtitle,
		Fields: []Field{
			{Label: "Project", Value: p.Project},
			{Label: "Document Type", Value: "Engineering Analysis Report"},
			{Label: "Analysis Method", Value: "Shear Force & Bending Moment Analysis"},
		},
		Date:   FormatDate(p.GeneratedOn),
		Footer: p.Generator,
	}
}

func introduction(ds *beam.Dataset, p Params) []Section {
	return []Section{
		TextSection{Level: LevelChapter, Heading: "Introduction"},
		TextSection{
			Level:   LevelSection,
			Heading: "Overview",
			Body: []Block{
				Text("This report presents a structural analysis of a simply supported beam " +
					"subjected to a uniformly distributed load. The analysis includes the calculation and " +
					"visualization of internal forces, specifically the Shear Force Diagram (SFD) and " +
					"Bending Moment Diagram (BMD)."),
			},
		},
		TextSection{
			Level:   LevelSection,
			Heading: "Simply Supported Beam",
			Body: []Block{
				Text("A simply supported beam is a fundamental structural element that rests on two " +
					"supports: a pinned support at one end and a roller support at the other. This " +
					"configuration allows the beam to:"),
				List{Items: []ListItem{
					{Text: "Resist vertical loads through reaction forces at the supports"},
					{Text: "Freely expand or contract due to thermal effects (roller support)"},
					{Text: "Rotate freely at both support points"},
				}},
			},
		},
		TextSection{
			Level:   LevelSubsection,
			Heading: "Beam Configuration",
			Body: []Block{
				Text("The beam under analysis has the following configuration:"),
				Figure{
					ImagePath: p.ImagePath,
					Width:     0.85,
					Caption:   "Simply Supported Beam with Pinned and Roller Supports",
					Label:     "fig:beam_diagram",
				},
				Paragraph{Spans: []Span{{Text: "Beam Parameters:", Bold: true}}},
				List{Items: []ListItem{
					{Label: "Total Length", Text: FormatPosition(ds.Length()) + " meters"},
					{Label: "Left Support", Text: "Pinned support (restricts horizontal and vertical displacement)"},
					{Label: "Right Support", Text: "Roller support (restricts only vertical displacement)"},
					{Label: "Loading", Text: "Uniformly distributed load"},
				}},
			},
		},
		TextSection{
			Level:   LevelSection,
			Heading: "Analysis Objectives",
			Body: []Block{
				Text("The objectives of this structural analysis are:"),
				List{Ordered: true, Items: []ListItem{
					{Text: "Calculate shear forces at critical points along the beam"},
					{Text: "Calculate bending moments at critical points along the beam"},
					{Text: "Generate Shear Force Diagram (SFD)"},
					{Text: "Generate Bending Moment Diagram (BMD)"},
					{Text: "Identify maximum shear force and bending moment locations"},
				}},
			},
			PageBreak: true,
		},
	}
}

func inputData(ds *beam.Dataset, m summary.Metrics) []Section {
	zero := "x = " + NotApplicable
	if m.ZeroShear != nil {
		zero = fmt.Sprintf("x = %s m", FormatPosition(*m.ZeroShear))
	}

	return []Section{
		TextSection{Level: LevelChapter, Heading: "Input Data"},
		TextSection{
			Level:   LevelSection,
			Heading: "Force and Moment Data",
			Body: []Block{
				Text("The following table presents the calculated values of shear force and bending " +
					"moment at various positions along the beam. These values were obtained from " +
					"structural analysis calculations."),
			},
		},
		DataTable{
			Caption: "Shear Force and Bending Moment Values Along the Beam",
			Label:   "tab:force_data",
			Columns: []Column{
				{Title: "Position (x)", Unit: "meters"},
				{Title: "Shear Force (V)", Unit: "kN"},
				{Title: "Bending Moment (M)", Unit: "kN·m"},
			},
			Rows: ds.Rows(),
		},
		TextSection{
			Level:   LevelSection,
			Heading: "Data Interpretation",
			Body: []Block{
				Text("From the table above, we can observe:"),
				List{Items: []ListItem{
					{Label: "Maximum Positive Shear Force", Text: forceAt(m.MaxShear, "kN")},
					{Label: "Maximum Negative Shear Force", Text: forceAt(m.MinShear, "kN")},
					{Label: "Maximum Bending Moment", Text: forceAt(m.MaxMoment, "kN·m")},
					{Label: "Zero Shear Location", Text: zero + " (point of maximum moment)"},
				}},
			},
			PageBreak: true,
		},
	}
}

func forceAt(e summary.Extreme, unit string) string {
	return fmt.Sprintf("%s %s (at x = %s m)", FormatForce(e.Value), unit, FormatPosition(e.Position))
}

func shearResults(ds *beam.Dataset, m summary.Metrics) []Section {
	return []Section{
		TextSection{Level: LevelChapter, Heading: "Analysis Results"},
		TextSection{
			Level:   LevelSection,
			Heading: "Shear Force Diagram (SFD)",
			Body: []Block{
				Paragraph{Spans: []Span{
					{Text: "The Shear Force Diagram shows the variation of internal shear force along the " +
						"length of the beam. Positive shear forces are shown in "},
					{Text: "blue", Bold: true, Color: ShearPositive},
					{Text: " and negative shear forces are shown in "},
					{Text: "red", Bold: true, Color: ShearNegative},
					{Text: "."},
				}},
			},
		},
		ShearChart(ds, m),
		TextSection{
			Level:   LevelSubsection,
			Heading: "SFD Observations",
			Body: []Block{
				List{Items: []ListItem{
					{Text: "The shear force is maximum positive at the left support"},
					{Text: "The shear force decreases linearly under uniformly distributed load"},
					{Text: "The shear force crosses zero at the midpoint of the beam"},
					{Text: "The shear force is maximum negative at the right support"},
					{Text: "The slope of the SFD equals the intensity of the distributed load"},
				}},
			},
			PageBreak: true,
		},
	}
}

func momentResults(ds *beam.Dataset, m summary.Metrics) []Section {
	return []Section{
		TextSection{
			Level:   LevelSection,
			Heading: "Bending Moment Diagram (BMD)",
			Body: []Block{
				Paragraph{Spans: []Span{
					{Text: "The Bending Moment Diagram shows the variation of internal bending moment along " +
						"the length of the beam. Positive (sagging) moments are shown in "},
					{Text: "green", Bold: true, Color: MomentPositive},
					{Text: "."},
				}},
			},
		},
		MomentChart(ds, m),
		TextSection{
			Level:   LevelSubsection,
			Heading: "BMD Observations",
			Body: []Block{
				List{Items: []ListItem{
					{Text: "The bending moment is zero at both supports (simply supported conditions)"},
					{Text: fmt.Sprintf("The bending moment is maximum at x = %s m", FormatPosition(m.MaxMoment.Position))},
					{Text: fmt.Sprintf("Maximum bending moment value: %s kN·m", FormatForce(m.MaxMoment.Value))},
					{Text: "The BMD follows a parabolic curve for uniformly distributed loads"},
					{Text: "The slope of the BMD at any point equals the shear force at that point"},
				}},
			},
			PageBreak: true,
		},
	}
}

func conclusion(m summary.Metrics) []Section {
	location := func(e summary.Extreme) string {
		return fmt.Sprintf("x = %s m", FormatPosition(e.Position))
	}

	return []Section{
		TextSection{Level: LevelChapter, Heading: "Conclusion"},
		TextSection{
			Level:   LevelSection,
			Heading: "Summary of Results",
			Body: []Block{
				Text("This structural analysis report has presented an analysis of a simply " +
					"supported beam with the following key findings:"),
			},
		},
		ConclusionTable{
			Caption: "Summary of Critical Values",
			Rows: []CriticalValue{
				{Parameter: "Maximum Positive Shear", Value: FormatForce(m.MaxShear.Value) + " kN", Location: location(m.MaxShear)},
				{Parameter: "Maximum Negative Shear", Value: FormatForce(m.MinShear.Value) + " kN", Location: location(m.MinShear)},
				{Parameter: "Maximum Bending Moment", Value: FormatForce(m.MaxMoment.Value) + " kN·m", Location: location(m.MaxMoment)},
			},
		},
		TextSection{
			Level:   LevelSection,
			Heading: "Design Recommendations",
			Body: []Block{
				Text("Based on the analysis results, the following recommendations are made for the " +
					"design of this simply supported beam:"),
				List{Ordered: true, Items: []ListItem{
					{Label: "Shear Reinforcement", Text: "Provide adequate shear reinforcement near " +
						"the supports where shear forces are maximum."},
					{Label: "Flexural Reinforcement", Text: "Provide maximum flexural reinforcement " +
						"at the midspan where the bending moment is maximum."},
					{Label: "Deflection Check", Text: "Verify that the beam deflection under service " +
						"loads is within acceptable limits."},
					{Label: "Support Design", Text: "Design the supports to safely transfer the " +
						"reaction forces to the foundation."},
				}},
			},
		},
		TextSection{
			Level:   LevelSection,
			Heading: "Report Generation",
			Body: []Block{
				Text("This report was automatically generated using:"),
				List{Items: []ListItem{
					{Text: "Go for data processing and document generation"},
					{Text: "PGFPlots bar charts for the force diagrams"},
					{Text: "LaTeX for document formatting"},
				}},
			},
		},
	}
}

// ShearChart builds the SFD. Shear is split into a positive and a negative
// series, each holding zero where the other is non-zero, so every bar can be
// colored by sign.
func ShearChart(ds *beam.Dataset, m summary.Metrics) Chart {
	pos := Series{Name: "Positive Shear", Color: ShearPositive}
	neg := Series{Name: "Negative Shear", Color: ShearNegative}
	for _, r := range ds.Rows() {
		if r.Shear >= 0 {
			pos.Points = append(pos.Points, Point{X: r.Position, Y: r.Shear})
			neg.Points = append(neg.Points, Point{X: r.Position, Y: 0})
		} else {
			pos.Points = append(pos.Points, Point{X: r.Position, Y: 0})
			neg.Points = append(neg.Points, Point{X: r.Position, Y: r.Shear})
		}
	}

	return Chart{
		Kind:     ShearForceDiagram,
		Title:    "Shear Force Diagram",
		XLabel:   "Position along beam (m)",
		YLabel:   "Shear Force (kN)",
		XMin:     -xPad,
		XMax:     ds.Length() + xPad,
		YMin:     m.MinShear.Value - shearPad,
		YMax:     m.MaxShear.Value + shearPad,
		XTicks:   ds.Positions(),
		Series:   []Series{pos, neg},
		ZeroLine: true,
		Caption:  "Shear Force Diagram showing the distribution of shear force along the beam",
		Label:    "fig:sfd",
	}
}

// MomentChart builds the BMD as a single series
func MomentChart(ds *beam.Dataset, m summary.Metrics) Chart {
	s := Series{Name: "Bending Moment (Sagging)", Color: MomentPositive}
	for _, r := range ds.Rows() {
		s.Points = append(s.Points, Point{X: r.Position, Y: r.Moment})
	}

	return Chart{
		Kind:     BendingMomentDiagram,
		Title:    "Bending Moment Diagram",
		XLabel:   "Position along beam (m)",
		YLabel:   "Bending Moment (kN·m)",
		XMin:     -xPad,
		XMax:     ds.Length() + xPad,
		YMin:     momentYMin,
		YMax:     m.MaxMoment.Value + momentTopPad,
		XTicks:   ds.Positions(),
		Series:   []Series{s},
		ZeroLine: true,
		Caption:  "Bending Moment Diagram showing the distribution of bending moment along the beam",
		Label:    "fig:bmd",
	}
}
