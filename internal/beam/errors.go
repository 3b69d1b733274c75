package beam

import (
	"errors"
	"fmt"
)

var (
	// ErrDataSource matches every *DataSourceError
	ErrDataSource = errors.New("data source error")

	// ErrEmptyDataset is returned when a table parses but holds no data rows
	ErrEmptyDataset = errors.New("dataset has no rows")

	// ErrUnsortedData is returned when positions decrease and sorting was not requested
	ErrUnsortedData = errors.New("positions are not in ascending order")
)

// DataSourceError reports a force table that is missing, unreadable or malformed
type DataSourceError struct {
	Path string
	Msg  string
	Err  error
}

func (e *DataSourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrDataSource) match any DataSourceError
func (e *DataSourceError) Is(target error) bool {
	return target == ErrDataSource
}
