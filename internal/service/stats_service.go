package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/davez1000/dbo-stats/internal/model"
	"github.com/davez1000/dbo-stats/internal/report"
	"github.com/davez1000/dbo-stats/internal/repository"
	"github.com/davez1000/dbo-stats/internal/roles"
)

// ValidationError represents user input issues.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Report type enumeration for the query endpoint.
const (
	TypePopular        = "popular"
	TypeHitsByRole     = "hitsbyrole"
	TypeFailedSearches = "failedsearches"
	TypeActive         = "active"
	TypeOnline         = "online"
	TypeFNReadership   = "fn_readership"
	TypeSearchTerms    = "searchterms"
	TypeRoles          = "roles"
)

const (
	defaultLimit       = 25
	legacyDefaultLimit = 10

	// encoded-date layout: 2-digit year, month, day
	dateKeyLayout = "060102"
)

// activeWindows are the lookback windows, in hours, reported by the
// active-user count.
var activeWindows = []int{1, 3, 6, 24}

// serviceAccounts never count as active users.
var serviceAccounts = []string{"mi_dashboard", "admin"}

var dateRangeRe = regexp.MustCompile(`^\d+,\d+$`)

// StatsService answers on-demand stats queries.
type StatsService interface {
	// GetStats serves the main query endpoint. The returned value is the
	// JSON-ready response body; its shape varies by report type.
	GetStats(ctx context.Context, q model.StatsQuery) (any, error)

	// GetContentStats serves the legacy content endpoint: popular and
	// hitsbyrole only, exact-date filtering, default limit 10.
	GetContentStats(ctx context.Context, q model.StatsQuery) (any, error)

	// GetRoles lists the non-excluded role directory.
	GetRoles(ctx context.Context) ([]model.Role, error)
}

type statsService struct {
	repo   repository.StatsRepository
	dir    roles.RoleDirectory
	engine *report.Engine
	now    func() time.Time
}

// NewStatsService constructs a statsService.
func NewStatsService(repo repository.StatsRepository, dir roles.RoleDirectory, engine *report.Engine) StatsService {
	return &statsService{
		repo:   repo,
		dir:    dir,
		engine: engine,
		now:    time.Now,
	}
}

func (s *statsService) GetStats(ctx context.Context, q model.StatsQuery) (any, error) {
	switch q.Type {
	case TypeActive:
		return s.activeUsers(ctx)
	case TypeOnline:
		return s.onlineUsers(ctx)
	case TypeFNReadership:
		return s.fieldNoticeReadership(ctx)
	case TypeSearchTerms:
		return s.failedSearchTerms(ctx)
	case TypeRoles:
		rs, err := s.GetRoles(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"data": rs}, nil
	case TypePopular, TypeHitsByRole, TypeFailedSearches:
		return s.tabularReport(ctx, q, false)
	default:
		return nil, &ValidationError{Message: "incorrect type"}
	}
}

func (s *statsService) GetContentStats(ctx context.Context, q model.StatsQuery) (any, error) {
	switch q.Type {
	case TypePopular, TypeHitsByRole:
		return s.tabularReport(ctx, q, true)
	default:
		return nil, &ValidationError{Message: "incorrect type"}
	}
}

func (s *statsService) GetRoles(ctx context.Context) ([]model.Role, error) {
	rs, err := s.dir.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	if rs == nil {
		rs = []model.Role{}
	}
	return rs, nil
}

// tabularReport drives the report engine for the three grouped report
// types. The limit applies to the source query, not the grouped output, so
// a "top N" request may collapse into fewer than N records.
func (s *statsService) tabularReport(ctx context.Context, q model.StatsQuery, legacy bool) (any, error) {
	filter := s.buildRowFilter(q, legacy)

	var (
		rows []model.StatRow
		err  error
		desc report.Descriptor
	)

	switch q.Type {
	case TypePopular:
		rows, err = s.repo.FetchCounterRows(ctx, filter, true)
		desc = popularDescriptor(legacy)
	case TypeHitsByRole:
		var names map[string]string
		names, err = s.roleNames(ctx)
		if err != nil {
			return nil, err
		}
		rows, err = s.repo.FetchCounterRows(ctx, filter, false)
		desc = hitsByRoleDescriptor(names)
	case TypeFailedSearches:
		var names map[string]string
		names, err = s.roleNames(ctx)
		if err != nil {
			return nil, err
		}
		rows, err = s.repo.FetchFailedSearchRows(ctx, filter)
		desc = failedSearchesDescriptor(names)
	}
	if err != nil {
		return nil, err
	}

	result := s.engine.Build(rows, desc, q.Sort, 0)
	if result.NoData {
		return noDataResponse(), nil
	}

	data := make([]any, 0, len(result.Records))
	for _, rec := range result.Records {
		switch q.Type {
		case TypePopular:
			data = append(data, map[string]any{"node": report.JSONRecord(rec)})
		case TypeHitsByRole:
			data = append(data, map[string]any{"role": report.JSONRecord(rec)})
		case TypeFailedSearches:
			data = append(data, map[string]any{
				"role":          rec.Fields["role"],
				"success":       rec.Success,
				"fail":          rec.Fail,
				"totalsearches": rec.Count,
			})
		}
	}

	if legacy {
		return data, nil
	}
	if q.Type == TypeFailedSearches {
		return data, nil
	}
	return map[string]any{"data": data}, nil
}

// buildRowFilter parses the date and role parameters into a structured
// filter. An empty date means today; "a,b" dispatches to an inclusive
// range (main endpoint only); a comma-joined role list becomes a set
// filter. The limit defaults per entry point.
func (s *statsService) buildRowFilter(q model.StatsQuery, legacy bool) model.RowFilter {
	limit := q.Limit
	if limit <= 0 {
		if legacy {
			limit = legacyDefaultLimit
		} else {
			limit = defaultLimit
		}
	}
	filter := model.RowFilter{Limit: limit}

	date := q.Date
	if date == "" {
		date = s.now().Format(dateKeyLayout)
	}
	if !legacy && dateRangeRe.MatchString(date) {
		parts := strings.SplitN(date, ",", 2)
		filter.DateFrom, filter.DateTo = parts[0], parts[1]
	} else {
		filter.Date = date
	}

	if q.Role != "" {
		filter.Roles = strings.Split(q.Role, ",")
	}

	return filter
}

func (s *statsService) roleNames(ctx context.Context) (map[string]string, error) {
	rs, err := s.dir.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(rs))
	for _, r := range rs {
		names[r.MachineName] = r.Name
	}
	return names, nil
}

func (s *statsService) activeUsers(ctx context.Context) (any, error) {
	now := s.now().Unix()
	counts := make(map[string]uint64, len(activeWindows))
	for _, hours := range activeWindows {
		n, err := s.repo.CountActiveUsers(ctx, now-int64(hours)*3600, now, serviceAccounts)
		if err != nil {
			return nil, err
		}
		counts[strconv.Itoa(hours)] = n
	}
	return []any{counts}, nil
}

func (s *statsService) onlineUsers(ctx context.Context) (any, error) {
	now := s.now().Unix()
	users, err := s.repo.FetchOnlineUsers(ctx, now-3600, now)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.OnlineUser{}
	}
	return users, nil
}

// fieldNoticeReadership inverts the stored content-to-viewers records into
// a viewer-to-content-ids mapping.
func (s *statsService) fieldNoticeReadership(ctx context.Context) (any, error) {
	views, err := s.repo.FetchFieldNoticeViewers(ctx)
	if err != nil {
		return nil, err
	}
	readers := make(map[string][]int64)
	for _, view := range views {
		readers[view.Viewer] = append(readers[view.Viewer], view.NID)
	}
	return map[string]any{"data": readers}, nil
}

func (s *statsService) failedSearchTerms(ctx context.Context) (any, error) {
	terms, err := s.repo.FetchSearchTerms(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		out = append(out, term.Term)
	}
	return out, nil
}

func noDataResponse() map[string]any {
	return map[string]any{
		"message": "no data",
		"error":   true,
	}
}
