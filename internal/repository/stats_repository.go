package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/davez1000/dbo-stats/internal/model"
)

// StatsRepository defines the row-fetch operations the reports consume.
// All methods are read-only; the stat tables are populated by the
// collecting platform.
type StatsRepository interface {
	// FetchCounterRows reads page-hit counter rows, optionally joined
	// against content metadata, ordered by hit count descending.
	FetchCounterRows(ctx context.Context, filter model.RowFilter, joinContent bool) ([]model.StatRow, error)

	// FetchFailedSearchRows reads failed-search rows with the derived
	// totalsearches column computed server-side.
	FetchFailedSearchRows(ctx context.Context, filter model.RowFilter) ([]model.StatRow, error)

	// FetchSearchTerms reads logged search terms, optionally only the
	// failed ones.
	FetchSearchTerms(ctx context.Context, failedOnly bool) ([]model.SearchTerm, error)

	// CountActiveUsers counts users whose last access falls inside the
	// inclusive window, skipping the named service accounts.
	CountActiveUsers(ctx context.Context, from, to int64, excludeNames []string) (uint64, error)

	// FetchOnlineUsers lists users with an access-time row inside the
	// inclusive window. The superuser (uid 1) is always skipped.
	FetchOnlineUsers(ctx context.Context, from, to int64) ([]model.OnlineUser, error)

	// FetchFieldNoticeViewers reads the content-to-viewer records.
	FetchFieldNoticeViewers(ctx context.Context) ([]model.FieldNoticeView, error)

	// FetchRoles reads the full role directory, unfiltered.
	FetchRoles(ctx context.Context) ([]model.Role, error)
}

type statsRepository struct {
	conn clickhouse.Conn
}

// NewStatsRepository creates a StatsRepository backed by ClickHouse.
func NewStatsRepository(conn clickhouse.Conn) StatsRepository {
	return &statsRepository{conn: conn}
}

const counterJoinQuery = `
	SELECT a.dmy, a.nid, a.role, a.count,
	       nfd.title, nfd.type, nfd.status, nfd.created, nfd.changed, nfd.alias
	FROM dbo_stats_counter AS a
	INNER JOIN node_field_data AS nfd ON a.nid = nfd.nid
`

const counterQuery = `
	SELECT a.dmy, a.nid, a.role, a.count
	FROM dbo_stats_counter AS a
`

const failedSearchQuery = `
	SELECT a.dmy, a.role, a.success, a.fail, a.success + a.fail AS totalsearches
	FROM dbo_stats_failed_searches AS a
`

func (r *statsRepository) FetchCounterRows(ctx context.Context, filter model.RowFilter, joinContent bool) ([]model.StatRow, error) {
	query := counterQuery
	if joinContent {
		query = counterJoinQuery
	}

	where, args := buildRowFilter(filter)
	query += where + " ORDER BY a.count DESC" + limitClause(filter.Limit)

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch counter rows: %w", err)
	}
	defer rows.Close()

	var out []model.StatRow
	for rows.Next() {
		var row model.StatRow
		if joinContent {
			var status uint8
			err = rows.Scan(&row.DMY, &row.NID, &row.Role, &row.Count,
				&row.Title, &row.ContentType, &status, &row.Created, &row.Changed, &row.Alias)
			row.Status = status != 0
		} else {
			err = rows.Scan(&row.DMY, &row.NID, &row.Role, &row.Count)
		}
		if err != nil {
			return nil, fmt.Errorf("scan counter row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch counter rows: %w", err)
	}
	return out, nil
}

func (r *statsRepository) FetchFailedSearchRows(ctx context.Context, filter model.RowFilter) ([]model.StatRow, error) {
	where, args := buildRowFilter(filter)
	query := failedSearchQuery + where + limitClause(filter.Limit)

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch failed-search rows: %w", err)
	}
	defer rows.Close()

	var out []model.StatRow
	for rows.Next() {
		var row model.StatRow
		if err := rows.Scan(&row.DMY, &row.Role, &row.Success, &row.Fail, &row.TotalSearches); err != nil {
			return nil, fmt.Errorf("scan failed-search row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch failed-search rows: %w", err)
	}
	return out, nil
}

func (r *statsRepository) FetchSearchTerms(ctx context.Context, failedOnly bool) ([]model.SearchTerm, error) {
	query := "SELECT term, success, fail FROM dbo_stats_search_terms"
	if failedOnly {
		query += " WHERE fail = 1"
	}

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch search terms: %w", err)
	}
	defer rows.Close()

	var out []model.SearchTerm
	for rows.Next() {
		var term model.SearchTerm
		if err := rows.Scan(&term.Term, &term.Success, &term.Fail); err != nil {
			return nil, fmt.Errorf("scan search term: %w", err)
		}
		out = append(out, term)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch search terms: %w", err)
	}
	return out, nil
}

func (r *statsRepository) CountActiveUsers(ctx context.Context, from, to int64, excludeNames []string) (uint64, error) {
	query := "SELECT count() FROM users_field_data WHERE access BETWEEN ? AND ?"
	args := []any{from, to}
	if len(excludeNames) > 0 {
		query += " AND name NOT IN (?)"
		args = append(args, excludeNames)
	}

	var count uint64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active users: %w", err)
	}
	return count, nil
}

func (r *statsRepository) FetchOnlineUsers(ctx context.Context, from, to int64) ([]model.OnlineUser, error) {
	query := `
	SELECT DISTINCT u.name, u.mail
	FROM dbo_stats_access_time AS a
	INNER JOIN users_field_data AS u ON a.uid = u.uid
	WHERE a.time BETWEEN ? AND ? AND a.uid != 1
`

	rows, err := r.conn.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch online users: %w", err)
	}
	defer rows.Close()

	var out []model.OnlineUser
	for rows.Next() {
		var user model.OnlineUser
		if err := rows.Scan(&user.Name, &user.Mail); err != nil {
			return nil, fmt.Errorf("scan online user: %w", err)
		}
		out = append(out, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch online users: %w", err)
	}
	return out, nil
}

func (r *statsRepository) FetchFieldNoticeViewers(ctx context.Context) ([]model.FieldNoticeView, error) {
	rows, err := r.conn.Query(ctx, "SELECT nid, viewer FROM dbo_stats_field_notice_viewers ORDER BY nid")
	if err != nil {
		return nil, fmt.Errorf("fetch field-notice viewers: %w", err)
	}
	defer rows.Close()

	var out []model.FieldNoticeView
	for rows.Next() {
		var view model.FieldNoticeView
		if err := rows.Scan(&view.NID, &view.Viewer); err != nil {
			return nil, fmt.Errorf("scan field-notice viewer: %w", err)
		}
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch field-notice viewers: %w", err)
	}
	return out, nil
}

func (r *statsRepository) FetchRoles(ctx context.Context) ([]model.Role, error) {
	rows, err := r.conn.Query(ctx, "SELECT machine_name, name FROM user_roles ORDER BY machine_name")
	if err != nil {
		return nil, fmt.Errorf("fetch roles: %w", err)
	}
	defer rows.Close()

	var out []model.Role
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.MachineName, &role.Name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		out = append(out, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch roles: %w", err)
	}
	return out, nil
}

// buildRowFilter renders the WHERE clause for a RowFilter. A date range
// takes precedence over an exact date; a single role becomes an equality
// condition, multiple roles a set-membership one.
func buildRowFilter(filter model.RowFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.DateFrom != "" && filter.DateTo != "" {
		conds = append(conds, "a.dmy BETWEEN ? AND ?")
		args = append(args, filter.DateFrom, filter.DateTo)
	} else if filter.Date != "" {
		conds = append(conds, "a.dmy = ?")
		args = append(args, filter.Date)
	}

	switch len(filter.Roles) {
	case 0:
	case 1:
		conds = append(conds, "a.role = ?")
		args = append(args, filter.Roles[0])
	default:
		conds = append(conds, "a.role IN (?)")
		args = append(args, filter.Roles)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func limitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", limit)
}
