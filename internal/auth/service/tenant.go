package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
	"github.com/aussiebroadwan/identity/internal/auth/store"
)

type TenantService struct {
	Store store.Store
}

func (s *TenantService) Create(ctx context.Context, name, address string) (domain.PublicTenant, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)

	if err := validateTenant(name, address); err != nil {
		return domain.PublicTenant{}, err
	}

	t, err := s.Store.Tenants().CreateTenant(ctx, domain.Tenant{Name: name, Address: address})
	if err != nil {
		return domain.PublicTenant{}, err
	}
	return t.Public(), nil
}

func (s *TenantService) Get(ctx context.Context, id int64) (domain.PublicTenant, error) {
	t, err := s.Store.Tenants().GetTenantByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicTenant{}, ErrTenantNotFound
		}
		return domain.PublicTenant{}, err
	}
	return t.Public(), nil
}

func (s *TenantService) List(ctx context.Context) ([]domain.PublicTenant, error) {
	tenants, err := s.Store.Tenants().ListTenants(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PublicTenant, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, t.Public())
	}
	return out, nil
}

// Update changes name and/or address; nil leaves a field as is. Provided
// values are trimmed and must be non-empty.
func (s *TenantService) Update(ctx context.Context, id int64, name, address *string) (domain.PublicTenant, error) {
	if name == nil && address == nil {
		return domain.PublicTenant{}, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	var updated domain.Tenant
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		t, err := tx.Tenants().GetTenantByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTenantNotFound
			}
			return err
		}
		if name != nil {
			t.Name = strings.TrimSpace(*name)
		}
		if address != nil {
			t.Address = strings.TrimSpace(*address)
		}
		if err := validateTenant(t.Name, t.Address); err != nil {
			return err
		}

		updated, err = tx.Tenants().UpdateTenant(ctx, t)
		return err
	})
	if err != nil {
		return domain.PublicTenant{}, err
	}
	return updated.Public(), nil
}

func validateTenant(name, address string) error {
	if name == "" || utf8.RuneCountInString(name) > domain.MaxTenantNameLen {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxTenantNameLen)
	}
	if address == "" || utf8.RuneCountInString(address) > domain.MaxTenantAddressLen {
		return fmt.Errorf("%w: address must be 1-%d characters", ErrInvalidInput, domain.MaxTenantAddressLen)
	}
	return nil
}

// Delete removes the tenant. Its managers stay, detached from any tenant.
func (s *TenantService) Delete(ctx context.Context, id int64) error {
	if err := s.Store.Tenants().DeleteTenant(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTenantNotFound
		}
		return err
	}
	return nil
}
