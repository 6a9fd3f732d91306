// Package report implements the grouping-and-ranking engine shared by the
// query endpoint and the CSV export jobs: fold raw stat rows into grouped
// records keyed by content id or role, accumulate the measure, sort by it
// and render the result as delimited text or JSON-ready maps.
package report

import (
	"sort"

	"github.com/davez1000/dbo-stats/internal/model"
)

// SortAsc requests ascending order by measure. Any other sort value,
// including empty, sorts descending.
const SortAsc = "asc"

// Descriptor configures one report shape for the engine.
type Descriptor struct {
	// Key buckets a row. Rows sharing a key fold into one record.
	Key func(model.StatRow) string

	// Measure returns the value added to the record total. Accumulation
	// is additive across all rows of a key, never last-row-wins.
	Measure func(model.StatRow) int64

	// Fields captures the descriptive fields of a record from the first
	// row seen for its key. Later rows are assumed to carry the same
	// values; if they differ the first ones win.
	Fields func(model.StatRow) map[string]any

	// Accumulate, when set, folds secondary per-row measures into the
	// record on every row.
	Accumulate func(*model.GroupedRecord, model.StatRow)
}

// Engine folds stat rows into ranked grouped records. Rows carrying an
// excluded role are dropped even when the source query already filtered,
// so no excluded role can reach any rendered output.
type Engine struct {
	excluded map[string]struct{}
}

// NewEngine creates an Engine with the configured role exclusion set.
func NewEngine(excludedRoles []string) *Engine {
	excluded := make(map[string]struct{}, len(excludedRoles))
	for _, role := range excludedRoles {
		excluded[role] = struct{}{}
	}
	return &Engine{excluded: excluded}
}

// Build groups rows per the descriptor, sorts by measure and truncates to
// limit (0 = unbounded). Empty input yields the NoData sentinel; input
// that is emptied by exclusion filtering yields an empty record list.
func (e *Engine) Build(rows []model.StatRow, desc Descriptor, sortDir string, limit int) model.ReportResult {
	if len(rows) == 0 {
		return model.ReportResult{NoData: true}
	}

	records := make(map[string]*model.GroupedRecord)
	var order []string

	for _, row := range rows {
		if row.Role != "" && e.isExcluded(row.Role) {
			continue
		}

		key := desc.Key(row)
		rec, ok := records[key]
		if !ok {
			rec = &model.GroupedRecord{Key: key}
			if desc.Fields != nil {
				rec.Fields = desc.Fields(row)
			}
			records[key] = rec
			order = append(order, key)
		}

		rec.Count += desc.Measure(row)
		if desc.Accumulate != nil {
			desc.Accumulate(rec, row)
		}
	}

	out := make([]model.GroupedRecord, 0, len(order))
	for _, key := range order {
		out = append(out, *records[key])
	}

	// Stable sort keeps first-appearance order for equal measures.
	if sortDir == SortAsc {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Count < out[j].Count })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return model.ReportResult{Records: out}
}

func (e *Engine) isExcluded(role string) bool {
	_, ok := e.excluded[role]
	return ok
}
