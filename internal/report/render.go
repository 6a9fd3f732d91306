package report

import (
	"regexp"
	"strings"

	"github.com/davez1000/dbo-stats/internal/model"
)

// Delimiter separates fields in export output. Five pipes so titles
// containing single pipes survive an Excel import split.
const Delimiter = "|||||"

var (
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
	commaSpaceRe = regexp.MustCompile(`,\s+`)
)

// RenderLines renders grouped records into delimited text: one header row,
// one newline-terminated data row per record, fields laid out by line.
func RenderLines(header string, records []model.GroupedRecord, line func(model.GroupedRecord) []string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for _, rec := range records {
		b.WriteString(strings.Join(line(rec), Delimiter))
		b.WriteByte('\n')
	}
	return b.String()
}

// JSONRecord renders a grouped record as a JSON-ready map including the
// accumulated count. No sanitization applies on the JSON path.
func JSONRecord(rec model.GroupedRecord) map[string]any {
	out := make(map[string]any, len(rec.Fields)+1)
	for k, v := range rec.Fields {
		out[k] = v
	}
	out["count"] = rec.Count
	return out
}

// SanitizeTitle strips quote characters and collapses runs of whitespace
// in titles bound for delimited-text output.
func SanitizeTitle(title string) string {
	title = strings.ReplaceAll(strings.TrimSpace(title), `"`, "")
	return multiSpaceRe.ReplaceAllString(title, " ")
}

// CollapseCommas folds comma-plus-whitespace runs into a single space.
// Applied on top of SanitizeTitle by the total-hits export only.
func CollapseCommas(title string) string {
	return commaSpaceRe.ReplaceAllString(title, " ")
}

// FullDate prefixes the stored 6-digit date key with its century for
// display, e.g. "200609" -> "20200609".
func FullDate(dmy string) string {
	return "20" + dmy
}

// FixContentType corrects the historical filed_notices typo carried by
// stored counter rows.
func FixContentType(contentType string) string {
	if contentType == "filed_notices" {
		return "field_notices"
	}
	return contentType
}

// PublishedLabel renders a published flag for delimited-text output.
func PublishedLabel(status bool) string {
	if status {
		return "Yes"
	}
	return "No"
}
