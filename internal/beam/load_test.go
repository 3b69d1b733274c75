package beam

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves a single-sheet workbook holding header and rows
func writeWorkbook(t *testing.T, header []string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	path := filepath.Join(t.TempDir(), "Force Table.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forces.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

var defaultHeader = []string{"x", "Shear force", "Bending Moment"}

func TestLoadWorkbook(t *testing.T) {
	path := writeWorkbook(t, defaultHeader, [][]interface{}{
		{0, 50, 0},
		{2, 0, 100},
		{4, -50, 0},
	})

	ds, err := Load(path, LoadOptions{})
	require.NoError(t, err)

	require.Equal(t, 3, ds.Len())
	assert.Equal(t, Row{Position: 2, Shear: 0, Moment: 100}, ds.At(1))
	assert.Equal(t, 4.0, ds.Length())
	assert.Equal(t, path, ds.Source)
}

func TestLoadWorkbookKeepsPrecision(t *testing.T) {
	path := writeWorkbook(t, defaultHeader, [][]interface{}{
		{0.25, 12.3456, 1.005},
	})

	ds, err := Load(path, LoadOptions{})
	require.NoError(t, err)
	assert.InDelta(t, 12.3456, ds.At(0).Shear, 1e-9)
	assert.InDelta(t, 1.005, ds.At(0).Moment, 1e-9)
}

func TestLoadWorkbookColumnOrderIndependent(t *testing.T) {
	path := writeWorkbook(t, []string{"Bending Moment", "Notes", "x", "Shear force"}, [][]interface{}{
		{10, "support", 0, 25},
		{20, "", 1, 5},
	})

	ds, err := Load(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []Row{
		{Position: 0, Shear: 25, Moment: 10},
		{Position: 1, Shear: 5, Moment: 20},
	}, ds.Rows())
}

func TestLoadCustomColumns(t *testing.T) {
	path := writeCSV(t, "pos,V,M\n0,10,0\n1,-10,5\n")

	_, err := Load(path, LoadOptions{})
	require.ErrorIs(t, err, ErrDataSource)

	ds, err := Load(path, LoadOptions{Columns: ColumnNames{Position: "pos", Shear: "V", Moment: "M"}})
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, "\ufeffx,Shear force,Bending Moment\n0, 50, 0\n2, 50, 100\n\n4, 50, 0\n,,\n")

	ds, err := Load(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 4.0, ds.Length())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.xlsx") },
			wantErr: ErrDataSource,
		},
		{
			name:    "unsupported extension",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "forces.ods") },
			wantErr: ErrDataSource,
		},
		{
			name:    "column renamed",
			path:    func(t *testing.T) string { return writeCSV(t, "x,shear force,Bending Moment\n0,1,2\n") },
			wantErr: ErrDataSource,
		},
		{
			name:    "non numeric cell",
			path:    func(t *testing.T) string { return writeCSV(t, "x,Shear force,Bending Moment\n0,abc,2\n") },
			wantErr: ErrDataSource,
		},
		{
			name:    "NaN cell",
			path:    func(t *testing.T) string { return writeCSV(t, "x,Shear force,Bending Moment\n0,NaN,0\n") },
			wantErr: ErrDataSource,
		},
		{
			name:    "infinite cell",
			path:    func(t *testing.T) string { return writeCSV(t, "x,Shear force,Bending Moment\n0,50,0\n2,50,+Inf\n") },
			wantErr: ErrDataSource,
		},
		{
			name:    "empty cell in data row",
			path:    func(t *testing.T) string { return writeCSV(t, "x,Shear force,Bending Moment\n0,,2\n") },
			wantErr: ErrDataSource,
		},
		{
			name:    "no header",
			path:    func(t *testing.T) string { return writeCSV(t, "") },
			wantErr: ErrDataSource,
		},
		{
			name:    "header only",
			path:    func(t *testing.T) string { return writeCSV(t, "x,Shear force,Bending Moment\n") },
			wantErr: ErrEmptyDataset,
		},
		{
			name:    "unsorted positions",
			path:    func(t *testing.T) string { return writeCSV(t, "x,Shear force,Bending Moment\n0,1,0\n2,1,1\n1,1,1\n") },
			wantErr: ErrUnsortedData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Load(tt.path(t), LoadOptions{})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, ds)
		})
	}
}

func TestLoadMissingColumnsNamed(t *testing.T) {
	path := writeCSV(t, "x,Shear\n0,1\n")

	_, err := Load(path, LoadOptions{})

	var dsErr *DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Contains(t, dsErr.Msg, `"Shear force"`)
	assert.Contains(t, dsErr.Msg, `"Bending Moment"`)
	assert.NotContains(t, dsErr.Msg, `"x"`)
}

func TestLoadSortRows(t *testing.T) {
	path := writeCSV(t, "x,Shear force,Bending Moment\n2,5,1\n0,10,0\n2,6,2\n1,7,3\n")

	ds, err := Load(path, LoadOptions{SortRows: true})
	require.NoError(t, err)

	assert.Equal(t, []Row{
		{Position: 0, Shear: 10, Moment: 0},
		{Position: 1, Shear: 7, Moment: 3},
		{Position: 2, Shear: 5, Moment: 1},
		{Position: 2, Shear: 6, Moment: 2},
	}, ds.Rows())
}

func TestLoadDoesNotModifySource(t *testing.T) {
	content := "x,Shear force,Bending Moment\n0,50,0\n4,50,0\n"
	path := writeCSV(t, content)

	_, err := Load(path, LoadOptions{})
	require.NoError(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(after))
}
