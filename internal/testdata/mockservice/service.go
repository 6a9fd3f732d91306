package mockservice

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davez1000/dbo-stats/internal/model"
	"github.com/davez1000/dbo-stats/internal/service"
)

type Service struct {
	mock.Mock
}

// Interface compliance check
var _ service.StatsService = &Service{}

func (m *Service) GetStats(ctx context.Context, q model.StatsQuery) (any, error) {
	args := m.Called(ctx, q)
	return args.Get(0), args.Error(1)
}

func (m *Service) GetContentStats(ctx context.Context, q model.StatsQuery) (any, error) {
	args := m.Called(ctx, q)
	return args.Get(0), args.Error(1)
}

func (m *Service) GetRoles(ctx context.Context) ([]model.Role, error) {
	args := m.Called(ctx)
	var rs []model.Role
	if v := args.Get(0); v != nil {
		rs = v.([]model.Role)
	}
	return rs, args.Error(1)
}
