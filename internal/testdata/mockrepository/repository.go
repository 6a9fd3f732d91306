package mockrepository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davez1000/dbo-stats/internal/model"
	"github.com/davez1000/dbo-stats/internal/repository"
)

type Repository struct {
	mock.Mock
}

// Interface compliance check
var _ repository.StatsRepository = &Repository{}

func (m *Repository) FetchCounterRows(ctx context.Context, filter model.RowFilter, joinContent bool) ([]model.StatRow, error) {
	args := m.Called(ctx, filter, joinContent)
	var rows []model.StatRow
	if v := args.Get(0); v != nil {
		rows = v.([]model.StatRow)
	}
	return rows, args.Error(1)
}

func (m *Repository) FetchFailedSearchRows(ctx context.Context, filter model.RowFilter) ([]model.StatRow, error) {
	args := m.Called(ctx, filter)
	var rows []model.StatRow
	if v := args.Get(0); v != nil {
		rows = v.([]model.StatRow)
	}
	return rows, args.Error(1)
}

func (m *Repository) FetchSearchTerms(ctx context.Context, failedOnly bool) ([]model.SearchTerm, error) {
	args := m.Called(ctx, failedOnly)
	var terms []model.SearchTerm
	if v := args.Get(0); v != nil {
		terms = v.([]model.SearchTerm)
	}
	return terms, args.Error(1)
}

func (m *Repository) CountActiveUsers(ctx context.Context, from, to int64, excludeNames []string) (uint64, error) {
	args := m.Called(ctx, from, to, excludeNames)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *Repository) FetchOnlineUsers(ctx context.Context, from, to int64) ([]model.OnlineUser, error) {
	args := m.Called(ctx, from, to)
	var users []model.OnlineUser
	if v := args.Get(0); v != nil {
		users = v.([]model.OnlineUser)
	}
	return users, args.Error(1)
}

func (m *Repository) FetchFieldNoticeViewers(ctx context.Context) ([]model.FieldNoticeView, error) {
	args := m.Called(ctx)
	var views []model.FieldNoticeView
	if v := args.Get(0); v != nil {
		views = v.([]model.FieldNoticeView)
	}
	return views, args.Error(1)
}

func (m *Repository) FetchRoles(ctx context.Context) ([]model.Role, error) {
	args := m.Called(ctx)
	var rs []model.Role
	if v := args.Get(0); v != nil {
		rs = v.([]model.Role)
	}
	return rs, args.Error(1)
}
