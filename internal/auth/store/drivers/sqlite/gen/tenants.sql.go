package gen

import (
	"context"
	"time"
)

const tenantColumns = `id, name, address, created_at, updated_at`

func scanTenant(row interface{ Scan(...any) error }) (Tenant, error) {
	var t Tenant
	err := row.Scan(&t.ID, &t.Name, &t.Address, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

type CreateTenantParams struct {
	Name    string
	Address string
	Now     time.Time
}

const createTenant = `INSERT INTO tenants (name, address, created_at, updated_at)
VALUES (?, ?, ?, ?)
RETURNING ` + tenantColumns

func (q *Queries) CreateTenant(ctx context.Context, arg CreateTenantParams) (Tenant, error) {
	return scanTenant(q.db.QueryRowContext(ctx, createTenant, arg.Name, arg.Address, arg.Now, arg.Now))
}

const getTenantByID = `SELECT ` + tenantColumns + ` FROM tenants WHERE id = ?`

func (q *Queries) GetTenantByID(ctx context.Context, id int64) (Tenant, error) {
	return scanTenant(q.db.QueryRowContext(ctx, getTenantByID, id))
}

const listTenants = `SELECT ` + tenantColumns + ` FROM tenants ORDER BY id`

func (q *Queries) ListTenants(ctx context.Context) ([]Tenant, error) {
	rows, err := q.db.QueryContext(ctx, listTenants)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

type UpdateTenantParams struct {
	ID      int64
	Name    string
	Address string
	Now     time.Time
}

const updateTenant = `UPDATE tenants SET name = ?, address = ?, updated_at = ?
WHERE id = ?
RETURNING ` + tenantColumns

func (q *Queries) UpdateTenant(ctx context.Context, arg UpdateTenantParams) (Tenant, error) {
	return scanTenant(q.db.QueryRowContext(ctx, updateTenant, arg.Name, arg.Address, arg.Now, arg.ID))
}

const deleteTenant = `DELETE FROM tenants WHERE id = ?`

func (q *Queries) DeleteTenant(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTenant, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
