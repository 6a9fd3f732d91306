package mockclickhouserows

import (
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Row is a canned single-row result for QueryRow-based queries.
type Row struct {
	Data    []any
	ScanErr error
}

var _ driver.Row = &Row{}

func (r *Row) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	if len(dest) != len(r.Data) {
		return fmt.Errorf("scan: want %d destinations, got %d", len(r.Data), len(dest))
	}
	for i, val := range r.Data {
		if err := assign(dest[i], val); err != nil {
			return err
		}
	}
	return nil
}

func (r *Row) ScanStruct(dest any) error {
	return fmt.Errorf("ScanStruct not supported")
}

func (r *Row) Err() error {
	return r.ScanErr
}
