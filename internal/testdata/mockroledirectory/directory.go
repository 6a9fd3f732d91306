package mockroledirectory

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davez1000/dbo-stats/internal/model"
	"github.com/davez1000/dbo-stats/internal/roles"
)

type Directory struct {
	mock.Mock
}

// Interface compliance check
var _ roles.RoleDirectory = &Directory{}

func (m *Directory) ListRoles(ctx context.Context) ([]model.Role, error) {
	args := m.Called(ctx)
	var rs []model.Role
	if v := args.Get(0); v != nil {
		rs = v.([]model.Role)
	}
	return rs, args.Error(1)
}

func (m *Directory) IsExcluded(role string) bool {
	return m.Called(role).Bool(0)
}
