package beam

import "slices"

// Row is one station along the beam as read from the force table
type Row struct {
	Position float64 // x - distance from the left support (m)
	Shear    float64 // V - shear force (kN)
	Moment   float64 // M - bending moment (kN-m)
}

// Dataset is the ordered set of rows loaded from a force table.
// It is read-only once constructed.
type Dataset struct {
	rows   []Row
	length float64

	// Source is the path the rows were loaded from, if any
	Source string
}

// NewDataset copies rows into a new dataset and derives the beam length
// as the largest position. It fails with ErrEmptyDataset for zero rows.
func NewDataset(rows []Row) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	ds := &Dataset{rows: slices.Clone(rows)}
	ds.length = ds.rows[0].Position
	for _, r := range ds.rows[1:] {
		if r.Position > ds.length {
			ds.length = r.Position
		}
	}
	return ds, nil
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return len(d.rows)
}

// At returns the i-th row in source order
func (d *Dataset) At(i int) Row {
	return d.rows[i]
}

// Rows returns a copy of the rows in source order
func (d *Dataset) Rows() []Row {
	return slices.Clone(d.rows)
}

// Length returns the beam length, max(position) over all rows (m)
func (d *Dataset) Length() float64 {
	return d.length
}

// Positions returns the position of every row in source order
func (d *Dataset) Positions() []float64 {
	xs := make([]float64, len(d.rows))
	for i, r := range d.rows {
		xs[i] = r.Position
	}
	return xs
}

// firstUnsorted returns the index of the first row whose position is
// smaller than the one before it, or -1 when positions never decrease.
func firstUnsorted(rows []Row) int {
	for i := 1; i < len(rows); i++ {
		if rows[i].Position < rows[i-1].Position {
			return i
		}
	}
	return -1
}

func sortByPosition(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		switch {
		case a.Position < b.Position:
			return -1
		case a.Position > b.Position:
			return 1
		}
		return 0
	})
}
