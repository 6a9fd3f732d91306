package model

// StatRow is a raw record fetched from storage. Field population varies by
// report type: counter rows carry NID/Role/Count plus joined content
// metadata, failed-search rows carry Role/Success/Fail with the derived
// total. Rows are ephemeral and folded into GroupedRecords per request.
type StatRow struct {
	DMY           string
	NID           int64
	Role          string
	Count         int64
	Success       int64
	Fail          int64
	TotalSearches int64
	Title         string
	Alias         string
	ContentType   string
	Status        bool
	Created       int64
	Changed       int64
}

// RowFilter describes storage-level filters for a row fetch. Date and
// DateFrom/DateTo are mutually exclusive; the caller splits "a,b" encoded
// parameters before building the filter. A single role means equality,
// multiple roles a set-membership condition. Limit 0 fetches unbounded.
type RowFilter struct {
	Date     string
	DateFrom string
	DateTo   string
	Roles    []string
	Limit    int
}

// GroupedRecord is one aggregated output unit per grouping key. Count is
// the accumulated measure; Success/Fail carry the secondary sums of
// failed-search reports. Descriptive fields come from the first row seen
// for the key.
type GroupedRecord struct {
	Key     string
	Count   int64
	Success int64
	Fail    int64
	Fields  map[string]any
}

// ReportResult is an ordered, possibly truncated sequence of grouped
// records. NoData distinguishes "ran, found nothing" from an empty
// post-filter result.
type ReportResult struct {
	Records []GroupedRecord
	NoData  bool
}

// StatsQuery is a parsed query-endpoint request.
type StatsQuery struct {
	Type  string
	Date  string
	Role  string
	Limit int
	Sort  string
}

// Role pairs a role machine name with its display name.
type Role struct {
	MachineName string `json:"machine_name"`
	Name        string `json:"name"`
}

// SearchTerm is one logged search term with its outcome counters.
type SearchTerm struct {
	Term    string `json:"term"`
	Success int64  `json:"success"`
	Fail    int64  `json:"fail"`
}

// OnlineUser identifies a user seen within the online lookback window.
type OnlineUser struct {
	Name string `json:"name"`
	Mail string `json:"mail"`
}

// FieldNoticeView records one viewer of one field-notice content item.
type FieldNoticeView struct {
	NID    int64
	Viewer string
}
