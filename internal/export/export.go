// Package export implements the operator-invoked CSV export jobs. Each job
// fetches rows, folds them through the report engine where the report is
// grouped, renders delimited text and writes it via the file writer,
// replacing any previous export at the same path.
package export

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/davez1000/dbo-stats/internal/model"
	"github.com/davez1000/dbo-stats/internal/report"
	"github.com/davez1000/dbo-stats/internal/repository"
	"github.com/davez1000/dbo-stats/internal/roles"
)

const (
	searchTermsHeader    = "Search term|||||Number of successful searches|||||Number of unsuccessful searches"
	failedSearchesHeader = "Date: YYYYMMDD|||||Total searches|||||Successful searches (results >= 1)|||||Failed searches (0 results)"
	pageHitsHeader       = "Date: YYYYMMDD|||||Hit Count|||||Content ID|||||Title|||||URL|||||Content Type|||||Published"
	totalHitsHeader      = "Hit Count|||||Content ID|||||Title|||||URL|||||Content Type|||||Published"
)

// Exporter runs the CSV export jobs.
type Exporter struct {
	repo      repository.StatsRepository
	dir       roles.RoleDirectory
	engine    *report.Engine
	writer    FileWriter
	urlPrefix string
	log       zerolog.Logger
	out       io.Writer
}

// NewExporter constructs an Exporter. Completion signals go to out; error
// detail goes to the logger only.
func NewExporter(repo repository.StatsRepository, dir roles.RoleDirectory, engine *report.Engine, writer FileWriter, urlPrefix string, log zerolog.Logger, out io.Writer) *Exporter {
	return &Exporter{
		repo:      repo,
		dir:       dir,
		engine:    engine,
		writer:    writer,
		urlPrefix: urlPrefix,
		log:       log,
		out:       out,
	}
}

// ExportSearchTerms dumps every logged search term with its outcome
// counters. Nothing is written when the table is empty.
func (e *Exporter) ExportSearchTerms(ctx context.Context) error {
	terms, err := e.repo.FetchSearchTerms(ctx, false)
	if err != nil {
		e.log.Warn().Err(err).Msg("search terms export failed")
		return fmt.Errorf("search terms export failed")
	}
	if len(terms) == 0 {
		e.log.Info().Msg("search terms export: no data")
		return nil
	}

	blob := searchTermsHeader + "\n"
	for _, term := range terms {
		blob += report.SanitizeTitle(term.Term) +
			report.Delimiter + strconv.FormatInt(term.Success, 10) +
			report.Delimiter + strconv.FormatInt(term.Fail, 10) + "\n"
	}

	if err := e.writer.Write("search_terms/search_terms.csv", []byte(blob)); err != nil {
		e.log.Warn().Err(err).Msg("search terms export failed")
		return fmt.Errorf("search terms export failed")
	}

	fmt.Fprintln(e.out, "DONE")
	return nil
}

// ExportFailedSearches writes one failed-search file per non-excluded
// role, grouped by date.
func (e *Exporter) ExportFailedSearches(ctx context.Context) error {
	return e.perRole(ctx, func(ctx context.Context, role string) (bool, error) {
		rows, err := e.repo.FetchFailedSearchRows(ctx, model.RowFilter{Roles: []string{role}})
		if err != nil {
			return false, err
		}

		result := e.engine.Build(rows, failedSearchExportDescriptor(), "", 0)
		if result.NoData || len(result.Records) == 0 {
			return false, nil
		}

		blob := report.RenderLines(failedSearchesHeader, result.Records, func(rec model.GroupedRecord) []string {
			return []string{
				report.FullDate(rec.Key),
				strconv.FormatInt(rec.Count, 10),
				strconv.FormatInt(rec.Success, 10),
				strconv.FormatInt(rec.Fail, 10),
			}
		})

		return true, e.writer.Write("failed_searches/"+role+".csv", []byte(blob))
	})
}

// ExportPopularContent writes one page-hits file per non-excluded role:
// counter rows joined with content metadata, grouped by content id,
// ranked by hit count.
func (e *Exporter) ExportPopularContent(ctx context.Context) error {
	return e.perRole(ctx, func(ctx context.Context, role string) (bool, error) {
		rows, err := e.repo.FetchCounterRows(ctx, model.RowFilter{Roles: []string{role}}, true)
		if err != nil {
			return false, err
		}

		result := e.engine.Build(rows, contentExportDescriptor(), "", 0)
		if result.NoData || len(result.Records) == 0 {
			return false, nil
		}

		blob := report.RenderLines(pageHitsHeader, result.Records, func(rec model.GroupedRecord) []string {
			return []string{
				report.FullDate(rec.Fields["dmy"].(string)),
				strconv.FormatInt(rec.Count, 10),
				rec.Key,
				report.SanitizeTitle(rec.Fields["title"].(string)),
				e.urlPrefix + rec.Fields["alias"].(string),
				report.FixContentType(rec.Fields["type"].(string)),
				report.PublishedLabel(rec.Fields["status"].(bool)),
			}
		})

		return true, e.writer.Write("page_hits/"+role+".csv", []byte(blob))
	})
}

// ExportTotalHits writes a single file of hit totals per content item
// across all roles and dates.
func (e *Exporter) ExportTotalHits(ctx context.Context) error {
	rows, err := e.repo.FetchCounterRows(ctx, model.RowFilter{}, true)
	if err != nil {
		e.log.Warn().Err(err).Msg("total hits export failed")
		return fmt.Errorf("total hits export failed")
	}

	result := e.engine.Build(rows, contentExportDescriptor(), "", 0)
	if result.NoData || len(result.Records) == 0 {
		e.log.Info().Msg("total hits export: no data")
		return nil
	}

	blob := report.RenderLines(totalHitsHeader, result.Records, func(rec model.GroupedRecord) []string {
		title := report.CollapseCommas(report.SanitizeTitle(rec.Fields["title"].(string)))
		return []string{
			strconv.FormatInt(rec.Count, 10),
			rec.Key,
			title,
			e.urlPrefix + rec.Fields["alias"].(string),
			report.FixContentType(rec.Fields["type"].(string)),
			report.PublishedLabel(rec.Fields["status"].(bool)),
		}
	})

	if err := e.writer.Write("total_hits/total_hits_by_content.csv", []byte(blob)); err != nil {
		e.log.Warn().Err(err).Msg("total hits export failed")
		return fmt.Errorf("total hits export failed")
	}

	fmt.Fprintln(e.out, "DONE")
	return nil
}

// perRole runs a role-scoped export for every non-excluded role. A
// failing role is logged and skipped so one bad role cannot abort the
// remaining exports.
func (e *Exporter) perRole(ctx context.Context, job func(ctx context.Context, role string) (bool, error)) error {
	rs, err := e.dir.ListRoles(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("role listing failed")
		return fmt.Errorf("role listing failed")
	}

	failed := 0
	for _, role := range rs {
		wrote, err := job(ctx, role.MachineName)
		if err != nil {
			e.log.Warn().Err(err).Str("role", role.MachineName).Msg("role export failed")
			failed++
			continue
		}
		if wrote {
			fmt.Fprintln(e.out, role.MachineName+" DONE")
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d role exports failed", failed, len(rs))
	}
	return nil
}

// failedSearchExportDescriptor groups failed-search rows by date.
func failedSearchExportDescriptor() report.Descriptor {
	return report.Descriptor{
		Key:     func(r model.StatRow) string { return r.DMY },
		Measure: func(r model.StatRow) int64 { return r.Success + r.Fail },
		Accumulate: func(rec *model.GroupedRecord, r model.StatRow) {
			rec.Success += r.Success
			rec.Fail += r.Fail
		},
	}
}

// contentExportDescriptor groups joined counter rows by content id.
func contentExportDescriptor() report.Descriptor {
	return report.Descriptor{
		Key:     func(r model.StatRow) string { return strconv.FormatInt(r.NID, 10) },
		Measure: func(r model.StatRow) int64 { return r.Count },
		Fields: func(r model.StatRow) map[string]any {
			return map[string]any{
				"dmy":    r.DMY,
				"title":  r.Title,
				"alias":  r.Alias,
				"type":   r.ContentType,
				"status": r.Status,
			}
		},
	}
}
