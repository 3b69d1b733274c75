// Package latex serializes a report.Document into LaTeX source for pdflatex.
package latex

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexiusacademia/beamreport/internal/report"
)

// Extension is the file extension of the generated source
const Extension = ".tex"

// Serialize renders the document as a complete LaTeX source file.
// Sections are written in model order and the output depends only on doc.
func Serialize(doc *report.Document) string {
	var sb strings.Builder

	writePreamble(&sb, doc)
	for _, s := range doc.Sections {
		switch s := s.(type) {
		case report.TitlePage:
			writeTitlePage(&sb, s)
		case report.TableOfContents:
			sb.WriteString("\n\\tableofcontents\n\\thispagestyle{empty}\n\\newpage\n")
		case report.TextSection:
			writeTextSection(&sb, s)
		case report.DataTable:
			writeDataTable(&sb, s)
		case report.Chart:
			writeChart(&sb, s)
		case report.ConclusionTable:
			writeConclusionTable(&sb, s)
		}
	}
	sb.WriteString("\n\\end{document}\n")

	return sb.String()
}

// WriteFile writes serialized markup to path
func WriteFile(path, markup string) error {
	if err := os.WriteFile(path, []byte(markup), 0644); err != nil {
		return fmt.Errorf("writing LaTeX source: %w", err)
	}
	return nil
}

func writeTitlePage(sb *strings.Builder, tp report.TitlePage) {
	sb.WriteString("\n\\begin{titlepage}\n    \\centering\n\n    \\vspace*{2cm}\n\n")
	fmt.Fprintf(sb, "    {\\Huge\\bfseries\\color{%s} %s \\par}\n\n", report.TitleBlue.Name, Escape(tp.Heading))
	sb.WriteString("    \\vspace{1cm}\n\n")
	fmt.Fprintf(sb, "    {\\LARGE\\bfseries %s \\par}\n\n", Escape(tp.Subtitle))
	sb.WriteString("    \\vspace{2cm}\n\n    \\noindent\\rule{\\textwidth}{2pt}\n\n    \\vspace{2cm}\n\n")
	for i, f := range tp.Fields {
		if i > 0 {
			sb.WriteString("    \\vspace{0.5cm}\n\n")
		}
		fmt.Fprintf(sb, "    {\\Large\\textbf{%s:} %s \\par}\n\n", Escape(f.Label), Escape(f.Value))
	}
	sb.WriteString("    \\vspace{3cm}\n\n")
	fmt.Fprintf(sb, "    {\\large\\textbf{Date:} %s \\par}\n\n", Escape(tp.Date))
	sb.WriteString("    \\vfill\n\n    \\noindent\\rule{\\textwidth}{1pt}\n\n    \\vspace{0.5cm}\n\n")
	fmt.Fprintf(sb, "    {\\small %s \\par}\n\n", Escape(tp.Footer))
	sb.WriteString("\\end{titlepage}\n")
}

var headingCommand = map[report.Level]string{
	report.LevelChapter:    "chapter",
	report.LevelSection:    "section",
	report.LevelSubsection: "subsection",
}

func writeTextSection(sb *strings.Builder, ts report.TextSection) {
	fmt.Fprintf(sb, "\n\\%s{%s}\n", headingCommand[ts.Level], Escape(ts.Heading))
	for _, b := range ts.Body {
		sb.WriteString("\n")
		switch b := b.(type) {
		case report.Paragraph:
			writeParagraph(sb, b)
		case report.List:
			writeList(sb, b)
		case report.Figure:
			writeFigure(sb, b)
		}
	}
	if ts.PageBreak {
		sb.WriteString("\n\\newpage\n")
	}
}

func writeParagraph(sb *strings.Builder, p report.Paragraph) {
	for _, s := range p.Spans {
		sb.WriteString(span(s))
	}
	sb.WriteString("\n")
}

func span(s report.Span) string {
	text := Escape(s.Text)
	if s.Bold {
		text = `\textbf{` + text + `}`
	}
	if !s.Color.IsZero() {
		text = `\textcolor{` + s.Color.Name + `}{` + text + `}`
	}
	return text
}

func writeList(sb *strings.Builder, l report.List) {
	env := "itemize"
	if l.Ordered {
		env = "enumerate"
	}
	fmt.Fprintf(sb, "\\begin{%s}\n", env)
	for _, it := range l.Items {
		if it.Label != "" {
			fmt.Fprintf(sb, "    \\item \\textbf{%s:} %s\n", Escape(it.Label), Escape(it.Text))
		} else {
			fmt.Fprintf(sb, "    \\item %s\n", Escape(it.Text))
		}
	}
	fmt.Fprintf(sb, "\\end{%s}\n", env)
}

func writeFigure(sb *strings.Builder, f report.Figure) {
	sb.WriteString("\\begin{figure}[H]\n    \\centering\n")
	fmt.Fprintf(sb, "    \\includegraphics[width=%s\\textwidth]{\\detokenize{%s}}\n",
		report.FormatCoord(f.Width), NormalizePath(f.ImagePath))
	fmt.Fprintf(sb, "    \\caption{%s}\n", Escape(f.Caption))
	fmt.Fprintf(sb, "    \\label{%s}\n", f.Label)
	sb.WriteString("\\end{figure}\n")
}

func tableHead(sb *strings.Builder, caption, label, spec string) {
	sb.WriteString("\n\\begin{table}[H]\n    \\centering\n")
	fmt.Fprintf(sb, "    \\caption{%s}\n", Escape(caption))
	if label != "" {
		fmt.Fprintf(sb, "    \\label{%s}\n", label)
	}
	sb.WriteString("    \\vspace{0.5cm}\n")
	fmt.Fprintf(sb, "    \\begin{tabular}{%s}\n        \\hline\n", spec)
	fmt.Fprintf(sb, "        \\rowcolor{%s!20}\n", report.TitleBlue.Name)
}

func tableFoot(sb *strings.Builder) {
	sb.WriteString("    \\end{tabular}\n\\end{table}\n")
}

func writeDataTable(sb *strings.Builder, t report.DataTable) {
	tableHead(sb, t.Caption, t.Label, "|"+strings.Repeat("c|", len(t.Columns)))

	titles := make([]string, len(t.Columns))
	units := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		titles[i] = `\textbf{` + Escape(c.Title) + `}`
		units[i] = `\textbf{[` + Escape(c.Unit) + `]}`
	}
	fmt.Fprintf(sb, "        %s \\\\\n", strings.Join(titles, " & "))
	fmt.Fprintf(sb, "        %s \\\\\n", strings.Join(units, " & "))
	sb.WriteString("        \\hline\n")

	for _, r := range t.Rows {
		fmt.Fprintf(sb, "        %s & %s & %s \\\\\n",
			report.FormatPosition(r.Position), report.FormatForce(r.Shear), report.FormatForce(r.Moment))
		sb.WriteString("        \\hline\n")
	}
	tableFoot(sb)
}

func writeConclusionTable(sb *strings.Builder, t report.ConclusionTable) {
	tableHead(sb, t.Caption, "", "|l|c|c|")
	sb.WriteString("        \\textbf{Parameter} & \\textbf{Value} & \\textbf{Location} \\\\\n")
	sb.WriteString("        \\hline\n")
	for _, r := range t.Rows {
		fmt.Fprintf(sb, "        %s & %s & %s \\\\\n", Escape(r.Parameter), Escape(r.Value), Escape(r.Location))
		sb.WriteString("        \\hline\n")
	}
	tableFoot(sb)
}

func writeChart(sb *strings.Builder, c report.Chart) {
	ticks := make([]string, len(c.XTicks))
	for i, x := range c.XTicks {
		ticks[i] = report.FormatCoord(x)
	}

	sb.WriteString("\n\\begin{figure}[H]\n    \\centering\n    \\begin{tikzpicture}\n        \\begin{axis}[\n")
	fmt.Fprintf(sb, `            width=0.95\textwidth,
            height=8cm,
            xlabel={%s},
            ylabel={%s},
            title={\textbf{%s}},
            xmin=%s,
            xmax=%s,
            ymin=%s,
            ymax=%s,
            xtick={%s},
            grid=both,
            grid style={line width=0.2pt, draw=gray!30},
            major grid style={line width=0.4pt, draw=gray!50},
            axis lines=middle,
            axis line style={->, thick},
            legend style={
                at={(0.98,0.98)},
                anchor=north east,
                draw=black,
                fill=white,
                font=\small
            },
            every axis plot/.append style={thick},
            ybar,
            bar width=8pt,
            enlarge x limits=0.05,
        ]
`,
		Escape(c.XLabel), Escape(c.YLabel), Escape(c.Title),
		report.FormatCoord(c.XMin), report.FormatCoord(c.XMax),
		report.FormatCoord(c.YMin), report.FormatCoord(c.YMax),
		strings.Join(ticks, ","))

	for _, s := range c.Series {
		fmt.Fprintf(sb, "\n        \\addplot[\n            fill=%s,\n            draw=%s!80!black,\n        ] coordinates {\n",
			s.Color.Name, s.Color.Name)
		for _, p := range s.Points {
			fmt.Fprintf(sb, "            (%s, %s)\n", report.FormatCoord(p.X), report.FormatCoord(p.Y))
		}
		fmt.Fprintf(sb, "        };\n        \\addlegendentry{%s}\n", Escape(s.Name))
	}

	if c.ZeroLine {
		fmt.Fprintf(sb, "\n        \\draw[black, thick, dashed] (axis cs:%s,0) -- (axis cs:%s,0);\n",
			report.FormatCoord(c.XMin), report.FormatCoord(c.XMax))
	}

	sb.WriteString("\n        \\end{axis}\n    \\end{tikzpicture}\n")
	fmt.Fprintf(sb, "    \\caption{%s}\n    \\label{%s}\n\\end{figure}\n", Escape(c.Caption), c.Label)
}
