package roles

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davez1000/dbo-stats/internal/model"
)

type stubSource struct {
	roles []model.Role
	err   error
}

func (s *stubSource) FetchRoles(ctx context.Context) ([]model.Role, error) {
	return s.roles, s.err
}

func TestListRolesFiltersExcluded(t *testing.T) {
	source := &stubSource{roles: []model.Role{
		{MachineName: "administrator", Name: "Administrator"},
		{MachineName: "census_user", Name: "Census User"},
		{MachineName: "authenticated", Name: "Authenticated"},
		{MachineName: "field_officer", Name: "Field Officer"},
	}}
	dir := NewDirectory(source, []string{"administrator", "authenticated"})

	out, err := dir.ListRoles(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.Role{
		{MachineName: "census_user", Name: "Census User"},
		{MachineName: "field_officer", Name: "Field Officer"},
	}, out)
}

func TestIsExcluded(t *testing.T) {
	dir := NewDirectory(&stubSource{}, []string{"administrator"})

	assert.True(t, dir.IsExcluded("administrator"))
	assert.False(t, dir.IsExcluded("census_user"))
}

func TestListRolesPropagatesSourceError(t *testing.T) {
	wantErr := errors.New("directory unavailable")
	dir := NewDirectory(&stubSource{err: wantErr}, nil)

	_, err := dir.ListRoles(context.Background())

	assert.ErrorIs(t, err, wantErr)
}
