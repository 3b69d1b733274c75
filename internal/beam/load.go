package beam

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ColumnNames maps the three required fields to the header text used in the
// force table. Matching is exact: case and spelling both matter.
type ColumnNames struct {
	Position string `yaml:"position"`
	Shear    string `yaml:"shear"`
	Moment   string `yaml:"moment"`
}

// DefaultColumns returns the header names written by the analysis spreadsheet
func DefaultColumns() ColumnNames {
	return ColumnNames{
		Position: "x",
		Shear:    "Shear force",
		Moment:   "Bending Moment",
	}
}

// LoadOptions controls how a force table is read
type LoadOptions struct {
	Columns ColumnNames
	Sheet   string // workbook sheet; empty selects the first sheet
	// SortRows stable-sorts rows by position instead of rejecting
	// tables whose positions decrease
	SortRows bool
}

// Load reads a force table (.xlsx, .xlsm or .csv) into a Dataset.
// The first row must be a header naming the position, shear and moment
// columns. The file is only read, never modified.
func Load(path string, opts LoadOptions) (*Dataset, error) {
	if opts.Columns == (ColumnNames{}) {
		opts.Columns = DefaultColumns()
	}

	records, err := readRecords(path, opts.Sheet)
	if err != nil {
		return nil, err
	}

	rows, err := parseRecords(path, records, opts.Columns)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyDataset)
	}

	if i := firstUnsorted(rows); i >= 0 {
		if !opts.SortRows {
			return nil, fmt.Errorf("%s: %w: data row %d (x=%g) follows x=%g",
				path, ErrUnsortedData, i+1, rows[i].Position, rows[i-1].Position)
		}
		sortByPosition(rows)
	}

	ds, err := NewDataset(rows)
	if err != nil {
		return nil, err
	}
	ds.Source = path
	return ds, nil
}

func readRecords(path, sheet string) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm":
		return readWorkbook(path, sheet)
	case ".csv":
		return readCSV(path)
	default:
		return nil, &DataSourceError{Path: path, Msg: fmt.Sprintf("unsupported table format %q", ext)}
	}
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &DataSourceError{Path: path, Msg: "opening workbook", Err: err}
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	// Raw values so a "0.00" number format does not round the data
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &DataSourceError{Path: path, Msg: fmt.Sprintf("reading sheet %q", sheet), Err: err}
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DataSourceError{Path: path, Msg: "opening table", Err: err}
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, &DataSourceError{Path: path, Msg: "parsing csv", Err: err}
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

// parseRecords maps header names to column indexes and converts every
// non-blank data record into a Row.
func parseRecords(path string, records [][]string, cols ColumnNames) ([]Row, error) {
	if len(records) == 0 {
		return nil, &DataSourceError{Path: path, Msg: "table has no header row"}
	}

	header := records[0]
	index := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		return -1
	}

	xi, vi, mi := index(cols.Position), index(cols.Shear), index(cols.Moment)
	var missing []string
	for _, c := range []struct {
		name string
		idx  int
	}{{cols.Position, xi}, {cols.Shear, vi}, {cols.Moment, mi}} {
		if c.idx < 0 {
			missing = append(missing, strconv.Quote(c.name))
		}
	}
	if len(missing) > 0 {
		return nil, &DataSourceError{
			Path: path,
			Msg:  fmt.Sprintf("missing required column(s) %s", strings.Join(missing, ", ")),
		}
	}

	var rows []Row
	for n, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}

		line := n + 2 // 1-based, counting the header
		x, err := parseCell(path, rec, xi, line, cols.Position)
		if err != nil {
			return nil, err
		}
		v, err := parseCell(path, rec, vi, line, cols.Shear)
		if err != nil {
			return nil, err
		}
		m, err := parseCell(path, rec, mi, line, cols.Moment)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{Position: x, Shear: v, Moment: m})
	}
	return rows, nil
}

func parseCell(path string, rec []string, idx, line int, column string) (float64, error) {
	var raw string
	if idx < len(rec) {
		raw = strings.TrimSpace(rec[idx])
	}
	if raw == "" {
		return 0, &DataSourceError{Path: path, Msg: fmt.Sprintf("row %d: empty %q cell", line, column)}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &DataSourceError{
			Path: path,
			Msg:  fmt.Sprintf("row %d: %q value %q is not a number", line, column, raw),
			Err:  err,
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &DataSourceError{
			Path: path,
			Msg:  fmt.Sprintf("row %d: %q value %q is not a finite number", line, column, raw),
		}
	}
	return v, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
