package roles

import (
	"context"

	"github.com/davez1000/dbo-stats/internal/model"
)

// Source supplies the raw role directory.
type Source interface {
	FetchRoles(ctx context.Context) ([]model.Role, error)
}

// RoleDirectory lists roles with the exclusion set applied.
type RoleDirectory interface {
	ListRoles(ctx context.Context) ([]model.Role, error)
	IsExcluded(role string) bool
}

type directory struct {
	source   Source
	excluded map[string]struct{}
}

// NewDirectory wraps a role source with the configured exclusion set.
func NewDirectory(source Source, excludedRoles []string) RoleDirectory {
	excluded := make(map[string]struct{}, len(excludedRoles))
	for _, role := range excludedRoles {
		excluded[role] = struct{}{}
	}
	return &directory{source: source, excluded: excluded}
}

// ListRoles returns the role directory minus excluded roles, preserving
// source order.
func (d *directory) ListRoles(ctx context.Context) ([]model.Role, error) {
	all, err := d.source.FetchRoles(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Role, 0, len(all))
	for _, role := range all {
		if d.IsExcluded(role.MachineName) {
			continue
		}
		out = append(out, role)
	}
	return out, nil
}

func (d *directory) IsExcluded(role string) bool {
	_, ok := d.excluded[role]
	return ok
}
