package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
	"github.com/aussiebroadwan/identity/internal/auth/store"
	"github.com/aussiebroadwan/identity/internal/auth/store/drivers/postgres/gen"
)

type tenantsRepo struct {
	q *gen.Queries
}

func (r *tenantsRepo) CreateTenant(ctx context.Context, t domain.Tenant) (domain.Tenant, error) {
	row, err := r.q.CreateTenant(ctx, gen.CreateTenantParams{
		Name:    t.Name,
		Address: t.Address,
		Now:     dbTime(time.Now()),
	})
	if err != nil {
		return domain.Tenant{}, mapConstraint(err)
	}
	return mapTenant(row), nil
}

func (r *tenantsRepo) GetTenantByID(ctx context.Context, id int64) (domain.Tenant, error) {
	row, err := r.q.GetTenantByID(ctx, id)
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}
	return mapTenant(row), nil
}

func (r *tenantsRepo) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	rows, err := r.q.ListTenants(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Tenant, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapTenant(row))
	}
	return out, nil
}

func (r *tenantsRepo) UpdateTenant(ctx context.Context, t domain.Tenant) (domain.Tenant, error) {
	row, err := r.q.UpdateTenant(ctx, gen.UpdateTenantParams{
		ID:      t.ID,
		Name:    t.Name,
		Address: t.Address,
		Now:     dbTime(time.Now()),
	})
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}
	return mapTenant(row), nil
}

func (r *tenantsRepo) DeleteTenant(ctx context.Context, id int64) error {
	n, err := r.q.DeleteTenant(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
