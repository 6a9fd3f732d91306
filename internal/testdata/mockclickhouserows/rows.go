// Package mockclickhouserows provides a canned-data driver.Rows fake for
// repository tests: each row is a slice of values assigned to Scan
// destinations in order.
package mockclickhouserows

import (
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

type Rows struct {
	Data [][]any

	pos int
	err error
}

var _ driver.Rows = &Rows{}

func New(data ...[]any) *Rows {
	return &Rows{Data: data}
}

func (r *Rows) Next() bool {
	if r.pos >= len(r.Data) {
		return false
	}
	r.pos++
	return true
}

func (r *Rows) Scan(dest ...any) error {
	row := r.Data[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: want %d destinations, got %d", len(row), len(dest))
	}
	for i, val := range row {
		if err := assign(dest[i], val); err != nil {
			return err
		}
	}
	return nil
}

func (r *Rows) ScanStruct(dest any) error {
	return fmt.Errorf("ScanStruct not supported")
}

func (r *Rows) ColumnTypes() []driver.ColumnType {
	return nil
}

func (r *Rows) Totals(dest ...any) error {
	return fmt.Errorf("Totals not supported")
}

func (r *Rows) Columns() []string {
	return nil
}

func (r *Rows) Close() error {
	return nil
}

func (r *Rows) Err() error {
	return r.err
}

func assign(dest, val any) error {
	switch d := dest.(type) {
	case *string:
		*d = val.(string)
	case *int64:
		*d = val.(int64)
	case *uint64:
		*d = val.(uint64)
	case *uint8:
		*d = val.(uint8)
	case *bool:
		*d = val.(bool)
	default:
		return fmt.Errorf("unsupported scan destination %T", dest)
	}
	return nil
}
