package latex

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/beamreport/internal/report"
)

var packages = []string{
	`[utf8]{inputenc}`,
	`[T1]{fontenc}`,
	`{geometry}`,
	`{graphicx}`,
	`{booktabs}`,
	`{array}`,
	`{float}`,
	`{xcolor}`,
	`{colortbl}`,
	`{tikz}`,
	`{pgfplots}`,
	`{hyperref}`,
	`{fancyhdr}`,
	`{titlesec}`,
	`{tocloft}`,
}

func writePreamble(sb *strings.Builder, doc *report.Document) {
	title := Escape(doc.Title)

	sb.WriteString("\\documentclass[12pt, a4paper]{report}\n\n")
	for _, p := range packages {
		sb.WriteString("\\usepackage" + p + "\n")
	}

	sb.WriteString("\n\\geometry{left=25mm, right=25mm, top=25mm, bottom=25mm}\n")
	sb.WriteString("\\pgfplotsset{compat=1.18}\n\n")

	for _, c := range report.Palette() {
		fmt.Fprintf(sb, "\\definecolor{%s}{RGB}{%d, %d, %d}\n", c.Name, c.R, c.G, c.B)
	}

	fmt.Fprintf(sb, `
\hypersetup{
    colorlinks=true,
    linkcolor=%s,
    filecolor=magenta,
    urlcolor=cyan,
    pdftitle={%s},
    pdfauthor={%s},
}

\pagestyle{fancy}
\fancyhf{}
\fancyhead[L]{\small %s}
\fancyhead[R]{\small \leftmark}
\fancyfoot[C]{\thepage}
\renewcommand{\headrulewidth}{0.4pt}
\renewcommand{\footrulewidth}{0.4pt}

\titleformat{\chapter}[display]
  {\normalfont\huge\bfseries\color{%s}}
  {\chaptertitlename\ \thechapter}{20pt}{\Huge}

\begin{document}
`, report.TitleBlue.Name, title, Escape(doc.Author), title, report.TitleBlue.Name)
}
