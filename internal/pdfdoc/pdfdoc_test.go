package pdfdoc

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/beamreport/internal/beam"
	"github.com/alexiusacademia/beamreport/internal/report"
	"github.com/alexiusacademia/beamreport/internal/summary"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.Set(x, 10, color.Black)
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func fixture(t *testing.T) (*report.Document, string) {
	t.Helper()
	dir := t.TempDir()
	beamImage := filepath.Join(dir, "beam.png")
	writePNG(t, beamImage)

	ds, err := beam.NewDataset([]beam.Row{
		{Position: 0, Shear: 25, Moment: 0},
		{Position: 2.5, Shear: 0, Moment: 31.25},
		{Position: 5, Shear: -25, Moment: 0},
	})
	require.NoError(t, err)

	doc := report.Build(ds, summary.Summarize(ds), report.Params{
		ImagePath:   beamImage,
		GeneratedOn: time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC),
	})
	return doc, dir
}

func TestWrite(t *testing.T) {
	doc, dir := fixture(t)
	chart := filepath.Join(dir, "chart.png")
	writePNG(t, chart)

	out := filepath.Join(dir, "report.pdf")
	err := Write(doc, out, Options{ChartImages: map[report.ChartKind]string{
		report.ShearForceDiagram:    chart,
		report.BendingMomentDiagram: chart,
	}})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))
}

func TestWriteWithoutChartImages(t *testing.T) {
	doc, dir := fixture(t)
	out := filepath.Join(dir, "report.pdf")

	require.NoError(t, Write(doc, out, Options{}))
	_, err := os.Stat(out)
	assert.NoError(t, err)
}

func TestWriteMissingImage(t *testing.T) {
	doc, dir := fixture(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "beam.png")))

	out := filepath.Join(dir, "report.pdf")
	assert.Error(t, Write(doc, out, Options{}))
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteEmptyDocument(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.pdf")
	assert.ErrorIs(t, Write(&report.Document{}, out, Options{}), ErrEmptyDocument)
	assert.ErrorIs(t, Write(nil, out, Options{}), ErrEmptyDocument)
}

func TestLayoutRecordsContents(t *testing.T) {
	doc, _ := fixture(t)

	w, err := layout(doc, Options{}, nil)
	require.NoError(t, err)

	var headings int
	for _, s := range doc.Sections {
		if _, ok := s.(report.TextSection); ok {
			headings++
		}
	}
	require.Len(t, w.toc, headings)

	first := w.toc[0]
	assert.Equal(t, report.LevelChapter, first.level)
	assert.Equal(t, "1  Introduction", first.text)
	assert.Equal(t, 3, first.page)

	var chapters []string
	for i, e := range w.toc {
		if i > 0 {
			assert.GreaterOrEqual(t, e.page, w.toc[i-1].page)
		}
		if e.level == report.LevelChapter {
			chapters = append(chapters, e.text)
		}
	}
	assert.Equal(t, []string{
		"1  Introduction",
		"2  Input Data",
		"3  Analysis Results",
		"4  Conclusion",
	}, chapters)

	// The second pass sees the same pages
	again, err := layout(doc, Options{}, w.toc)
	require.NoError(t, err)
	assert.Equal(t, w.toc, again.toc)
}
