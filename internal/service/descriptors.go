package service

import (
	"strconv"

	"github.com/davez1000/dbo-stats/internal/model"
	"github.com/davez1000/dbo-stats/internal/report"
)

// popularDescriptor groups counter rows by content id, summing hit counts.
// The legacy content endpoint omits the url alias and date fields.
func popularDescriptor(legacy bool) report.Descriptor {
	return report.Descriptor{
		Key:     func(r model.StatRow) string { return strconv.FormatInt(r.NID, 10) },
		Measure: func(r model.StatRow) int64 { return r.Count },
		Fields: func(r model.StatRow) map[string]any {
			fields := map[string]any{
				"nid":     r.NID,
				"title":   r.Title,
				"type":    r.ContentType,
				"status":  r.Status,
				"created": r.Created,
				"changed": r.Changed,
			}
			if !legacy {
				fields["aurl"] = r.Alias
				fields["dmy"] = r.DMY
			}
			return fields
		},
	}
}

// hitsByRoleDescriptor groups counter rows by role, summing hit counts.
func hitsByRoleDescriptor(names map[string]string) report.Descriptor {
	return report.Descriptor{
		Key:     func(r model.StatRow) string { return r.Role },
		Measure: func(r model.StatRow) int64 { return r.Count },
		Fields: func(r model.StatRow) map[string]any {
			return map[string]any{
				"role_machine_name": r.Role,
				"role_name":         names[r.Role],
			}
		},
	}
}

// failedSearchesDescriptor groups failed-search rows by role. The measure
// is the derived total; success and fail counts accumulate alongside it.
func failedSearchesDescriptor(names map[string]string) report.Descriptor {
	return report.Descriptor{
		Key:     func(r model.StatRow) string { return r.Role },
		Measure: func(r model.StatRow) int64 { return r.TotalSearches },
		Fields: func(r model.StatRow) map[string]any {
			return map[string]any{"role": names[r.Role]}
		},
		Accumulate: func(rec *model.GroupedRecord, r model.StatRow) {
			rec.Success += r.Success
			rec.Fail += r.Fail
		},
	}
}
