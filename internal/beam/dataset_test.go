package beam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatasetLength(t *testing.T) {
	tests := []struct {
		name string
		rows []Row
		want float64
	}{
		{"single row", []Row{{Position: 3.5}}, 3.5},
		{"ascending", []Row{{Position: 0}, {Position: 2}, {Position: 4}}, 4},
		{"max not last", []Row{{Position: 0}, {Position: 6}, {Position: 5}}, 6},
		{"negative start", []Row{{Position: -1}, {Position: -0.5}}, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := NewDataset(tt.rows)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ds.Length())
		})
	}
}

func TestNewDatasetEmpty(t *testing.T) {
	ds, err := NewDataset(nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
	assert.Nil(t, ds)
}

func TestDatasetIsolation(t *testing.T) {
	rows := []Row{{Position: 0, Shear: 1}, {Position: 1, Shear: 2}}
	ds, err := NewDataset(rows)
	require.NoError(t, err)

	rows[0].Shear = 99
	out := ds.Rows()
	out[1].Shear = 42

	assert.Equal(t, 1.0, ds.At(0).Shear)
	assert.Equal(t, 2.0, ds.At(1).Shear)
	assert.Equal(t, []float64{0, 1}, ds.Positions())
}
