// Package pdfdoc draws a report.Document straight to PDF with gofpdf.
// It is the native engine used when no LaTeX installation is available.
package pdfdoc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/beamreport/internal/report"
)

// Page geometry in millimetres
const (
	margin     = 25.0
	lineHeight = 6.0
	bodySize   = 11.0
	fontFamily = "Helvetica"
)

// Options controls what the native layout embeds
type Options struct {
	// ChartImages maps each chart to a pre-rendered image. Charts without
	// an image are listed by caption only.
	ChartImages map[report.ChartKind]string
}

// ErrEmptyDocument is returned for a document without sections
var ErrEmptyDocument = errors.New("document has no sections")

// Write lays the document out and saves it to path.
// Layout runs twice: the first pass records the page of every heading and
// the second fills the table of contents with them.
func Write(doc *report.Document, path string, opts Options) error {
	if doc == nil || len(doc.Sections) == 0 {
		return ErrEmptyDocument
	}

	first, err := layout(doc, opts, nil)
	if err != nil {
		return err
	}
	second, err := layout(doc, opts, first.toc)
	if err != nil {
		return err
	}

	if err := second.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing PDF %s: %w", path, err)
	}
	return nil
}

// tocEntry is one heading as it appears in the table of contents
type tocEntry struct {
	level report.Level
	text  string
	page  int
}

type writer struct {
	pdf  *gofpdf.Fpdf
	tr   func(string) string
	opts Options

	contents []tocEntry // entries to print, from a previous pass
	links    []int
	toc      []tocEntry // entries recorded by this pass

	chapter, section, subsection int
	figures, tables              int

	fresh bool // nothing drawn since the last page break
}

func layout(doc *report.Document, opts Options, contents []tocEntry) (*writer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetCreator("beamreport", true)

	w := &writer{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		opts:     opts,
		contents: contents,
	}

	// Title and contents pages carry no running header or page number
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() <= 2 {
			return
		}
		pdf.SetFont(fontFamily, "I", 9)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(0, 6, w.tr(doc.Title), "B", 1, "L", false, 0, "")
		pdf.Ln(4)
		w.resetText()
	})
	pdf.SetFooterFunc(func() {
		if pdf.PageNo() <= 2 {
			return
		}
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "", 9)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	for _, s := range doc.Sections {
		switch s := s.(type) {
		case report.TitlePage:
			w.titlePage(s)
		case report.TableOfContents:
			w.tableOfContents()
		case report.TextSection:
			w.textSection(s)
		case report.DataTable:
			w.dataTable(s)
		case report.Chart:
			w.chart(s)
		case report.ConclusionTable:
			w.conclusionTable(s)
		}
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("laying out PDF: %w", err)
		}
	}

	return w, nil
}

func (w *writer) newPage() {
	w.pdf.AddPage()
	w.resetText()
	w.fresh = true
}

func (w *writer) resetText() {
	w.pdf.SetFont(fontFamily, "", bodySize)
	w.pdf.SetTextColor(0, 0, 0)
}

func (w *writer) setColor(c report.Color) {
	w.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}

func (w *writer) centered(style string, size float64, h float64, text string) {
	w.pdf.SetFont(fontFamily, style, size)
	w.pdf.MultiCell(0, h, w.tr(text), "", "C", false)
}

func (w *writer) rule(thickness float64) {
	left, _, right, _ := w.pdf.GetMargins()
	pageW, _ := w.pdf.GetPageSize()
	y := w.pdf.GetY()
	w.pdf.SetLineWidth(thickness)
	w.pdf.Line(left, y, pageW-right, y)
	w.pdf.SetLineWidth(0.2)
}

func (w *writer) titlePage(tp report.TitlePage) {
	w.newPage()
	w.pdf.Ln(20)

	w.setColor(report.TitleBlue)
	w.centered("B", 26, 12, tp.Heading)
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.Ln(10)
	w.centered("B", 18, 9, tp.Subtitle)
	w.pdf.Ln(20)
	w.rule(0.7)
	w.pdf.Ln(20)

	for _, f := range tp.Fields {
		w.field(14, 8, f.Label, f.Value)
		w.pdf.Ln(5)
	}

	w.pdf.Ln(25)
	w.field(12, 7, "Date", tp.Date)

	_, pageH := w.pdf.GetPageSize()
	w.pdf.SetY(pageH - margin - 20)
	w.rule(0.35)
	w.pdf.Ln(5)
	w.centered("", 9, 5, tp.Footer)
	w.fresh = false
}

// field writes "Label: value" centred on one line
func (w *writer) field(size, h float64, label, value string) {
	label = w.tr(label + ": ")
	value = w.tr(value)

	w.pdf.SetFont(fontFamily, "B", size)
	lw := w.pdf.GetStringWidth(label)
	w.pdf.SetFont(fontFamily, "", size)
	vw := w.pdf.GetStringWidth(value)

	pageW, _ := w.pdf.GetPageSize()
	w.pdf.SetX((pageW - lw - vw) / 2)
	w.pdf.SetFont(fontFamily, "B", size)
	w.pdf.CellFormat(lw, h, label, "", 0, "L", false, 0, "")
	w.pdf.SetFont(fontFamily, "", size)
	w.pdf.CellFormat(vw, h, value, "", 1, "L", false, 0, "")
}

func (w *writer) tableOfContents() {
	w.newPage()
	w.pdf.SetFont(fontFamily, "B", 22)
	w.pdf.CellFormat(0, 14, "Contents", "", 1, "L", false, 0, "")
	w.pdf.Ln(6)

	left, _, right, _ := w.pdf.GetMargins()
	pageW, _ := w.pdf.GetPageSize()
	textW := pageW - left - right

	w.links = make([]int, len(w.contents))
	for i, e := range w.contents {
		w.links[i] = w.pdf.AddLink()

		indent := float64(e.level) * 8
		style := ""
		if e.level == report.LevelChapter {
			style = "B"
			w.pdf.Ln(2)
		}
		w.pdf.SetFont(fontFamily, style, bodySize)

		text := w.tr(e.text)
		page := fmt.Sprintf("%d", e.page)
		pw := w.pdf.GetStringWidth(page) + 2
		avail := textW - indent - pw
		dots := ""
		if e.level != report.LevelChapter {
			dw := w.pdf.GetStringWidth(" .")
			if n := int((avail - w.pdf.GetStringWidth(text) - 2) / dw); n > 0 {
				dots = strings.Repeat(" .", n)
			}
		}

		w.pdf.SetX(left + indent)
		w.pdf.CellFormat(avail, lineHeight+1, text+dots, "", 0, "L", false, w.links[i], "")
		w.pdf.CellFormat(pw, lineHeight+1, page, "", 1, "R", false, w.links[i], "")
	}
	w.fresh = false
}

func (w *writer) heading(ts report.TextSection) {
	var number string
	var size, space float64

	switch ts.Level {
	case report.LevelChapter:
		w.chapter++
		w.section, w.subsection = 0, 0
		w.figures, w.tables = 0, 0
		number = fmt.Sprintf("%d", w.chapter)
		size, space = 20, 12
		if !w.fresh {
			w.newPage()
		}
	case report.LevelSection:
		w.section++
		w.subsection = 0
		number = fmt.Sprintf("%d.%d", w.chapter, w.section)
		size, space = 15, 9
		w.pdf.Ln(4)
	default:
		w.subsection++
		number = fmt.Sprintf("%d.%d.%d", w.chapter, w.section, w.subsection)
		size, space = 12.5, 8
		w.pdf.Ln(2)
	}

	text := number + "  " + ts.Heading

	// Keep a heading with at least a few lines of its body
	_, pageH := w.pdf.GetPageSize()
	if w.pdf.GetY()+space+3*lineHeight > pageH-margin {
		w.newPage()
	}

	if i := len(w.toc); i < len(w.links) {
		w.pdf.SetLink(w.links[i], w.pdf.GetY(), -1)
	}
	w.toc = append(w.toc, tocEntry{level: ts.Level, text: text, page: w.pdf.PageNo()})

	w.setColor(report.TitleBlue)
	w.pdf.SetFont(fontFamily, "B", size)
	w.pdf.MultiCell(0, space, w.tr(text), "", "L", false)
	if ts.Level == report.LevelChapter {
		w.rule(0.5)
		w.pdf.Ln(6)
	}
	w.resetText()
	w.fresh = false
}

func (w *writer) textSection(ts report.TextSection) {
	w.heading(ts)
	for _, b := range ts.Body {
		switch b := b.(type) {
		case report.Paragraph:
			w.paragraph(b)
		case report.List:
			w.list(b)
		case report.Figure:
			w.figure(b)
		}
	}
	if ts.PageBreak {
		w.newPage()
	}
}

func (w *writer) spans(spans []report.Span) {
	for _, s := range spans {
		style := ""
		if s.Bold {
			style = "B"
		}
		w.pdf.SetFont(fontFamily, style, bodySize)
		if !s.Color.IsZero() {
			w.setColor(s.Color)
		}
		w.pdf.Write(lineHeight, w.tr(s.Text))
		w.resetText()
	}
	w.fresh = false
}

func (w *writer) paragraph(p report.Paragraph) {
	w.pdf.Ln(2)
	w.spans(p.Spans)
	w.pdf.Ln(lineHeight + 2)
}

func (w *writer) list(l report.List) {
	left, _, _, _ := w.pdf.GetMargins()
	for i, it := range l.Items {
		marker := w.tr("•")
		if l.Ordered {
			marker = fmt.Sprintf("%d.", i+1)
		}
		w.pdf.SetX(left + 4)
		w.pdf.CellFormat(8, lineHeight, marker, "", 0, "L", false, 0, "")

		// Continuation lines wrap to the left margin
		var spans []report.Span
		if it.Label != "" {
			spans = append(spans, report.Span{Text: it.Label + ": ", Bold: true})
		}
		spans = append(spans, report.Span{Text: it.Text})
		w.spans(spans)
		w.pdf.Ln(lineHeight + 1)
	}
	w.pdf.Ln(2)
}

func (w *writer) caption(kind, text string, n int) {
	w.pdf.Ln(2)
	w.pdf.SetFont(fontFamily, "B", 10)
	label := w.tr(fmt.Sprintf("%s %d.%d: ", kind, w.chapter, n))
	lw := w.pdf.GetStringWidth(label)

	left, _, right, _ := w.pdf.GetMargins()
	pageW, _ := w.pdf.GetPageSize()
	w.pdf.SetFont(fontFamily, "", 10)
	body := w.tr(text)
	if total := lw + w.pdf.GetStringWidth(body); total < pageW-left-right {
		w.pdf.SetX((pageW - total) / 2)
	}
	w.pdf.SetFont(fontFamily, "B", 10)
	w.pdf.Write(5, label)
	w.pdf.SetFont(fontFamily, "", 10)
	w.pdf.Write(5, body)
	w.pdf.Ln(9)
	w.resetText()
	w.fresh = false
}

// image places a picture centred at the given fraction of the text width
func (w *writer) image(path string, fraction float64) {
	left, _, right, _ := w.pdf.GetMargins()
	pageW, _ := w.pdf.GetPageSize()
	width := (pageW - left - right) * fraction

	w.pdf.Ln(3)
	w.pdf.ImageOptions(path, (pageW-width)/2, -1, width, 0, true,
		gofpdf.ImageOptions{}, 0, "")
}

func (w *writer) figure(f report.Figure) {
	w.figures++
	w.image(f.ImagePath, f.Width)
	w.caption("Figure", f.Caption, w.figures)
}

func (w *writer) chart(c report.Chart) {
	w.figures++
	if path, ok := w.opts.ChartImages[c.Kind]; ok && path != "" {
		w.image(path, 0.95)
	} else {
		w.pdf.Ln(3)
		w.pdf.SetFont(fontFamily, "I", bodySize)
		w.pdf.MultiCell(0, lineHeight, w.tr(c.Title+" (image not available)"), "1", "C", false)
	}
	w.caption("Figure", c.Caption, w.figures)
}

// tableRow draws one bordered row centred on the page.
// Header rows are bold with the tinted fill.
func (w *writer) tableRow(widths []float64, align string, cells []string, header bool) {
	left, _, right, _ := w.pdf.GetMargins()
	pageW, _ := w.pdf.GetPageSize()

	total := 0.0
	for _, cw := range widths {
		total += cw
	}

	style := ""
	if header {
		style = "B"
		align = strings.Repeat("C", len(cells))
		r, g, b := report.TitleBlue.Tint(20)
		w.pdf.SetFillColor(int(r), int(g), int(b))
	}
	w.pdf.SetFont(fontFamily, style, 10)

	w.pdf.SetX(left + (pageW-left-right-total)/2)
	for i, cell := range cells {
		w.pdf.CellFormat(widths[i], 7, w.tr(cell), "1", 0, align[i:i+1], header, 0, "")
	}
	w.pdf.Ln(-1)
	w.fresh = false
}

func (w *writer) tableCaption(caption string) {
	w.tables++
	w.pdf.Ln(3)
	w.caption("Table", caption, w.tables)
}

func (w *writer) dataTable(t report.DataTable) {
	w.tableCaption(t.Caption)

	widths := make([]float64, len(t.Columns))
	titles := make([]string, len(t.Columns))
	units := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = 45
		titles[i] = c.Title
		units[i] = "[" + c.Unit + "]"
	}
	w.tableRow(widths, "", titles, true)
	w.tableRow(widths, "", units, true)

	for _, r := range t.Rows {
		w.tableRow(widths, "CCC", []string{
			report.FormatPosition(r.Position),
			report.FormatForce(r.Shear),
			report.FormatForce(r.Moment),
		}, false)
	}
	w.pdf.Ln(4)
}

func (w *writer) conclusionTable(t report.ConclusionTable) {
	w.tableCaption(t.Caption)

	widths := []float64{65, 45, 40}
	w.tableRow(widths, "", []string{"Parameter", "Value", "Location"}, true)
	for _, r := range t.Rows {
		w.tableRow(widths, "LCC", []string{r.Parameter, r.Value, r.Location}, false)
	}
	w.pdf.Ln(4)
}
