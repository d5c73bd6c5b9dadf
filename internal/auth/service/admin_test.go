package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestTenantService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.tenants.Create(ctx, "", "addr")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.tenants.Create(ctx, strings.Repeat("n", domain.MaxTenantNameLen+1), "addr")
	require.ErrorIs(t, err, ErrInvalidInput)

	tenant, err := f.tenants.Create(ctx, " Acme ", "1 Road St")
	require.NoError(t, err)
	require.Equal(t, "Acme", tenant.Name)

	got, err := f.tenants.Get(ctx, tenant.ID)
	require.NoError(t, err)
	require.Equal(t, tenant.ID, got.ID)

	list, err := f.tenants.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.tenants.Delete(ctx, tenant.ID))
	require.ErrorIs(t, f.tenants.Delete(ctx, tenant.ID), ErrTenantNotFound)
	_, err = f.tenants.Get(ctx, tenant.ID)
	require.ErrorIs(t, err, ErrTenantNotFound)
}

func TestAdminUserService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	in := NewUserInput{FirstName: "Root", LastName: "User", Email: "Root@Example.com", Password: "Secret123!"}

	admin, err := f.admins.CreateAdmin(ctx, in)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, admin.Role)
	require.Equal(t, "root@example.com", admin.Email)

	_, err = f.admins.CreateAdmin(ctx, in)
	require.ErrorIs(t, err, ErrUserAlreadyExists)

	t.Run("manager needs an existing tenant", func(t *testing.T) {
		_, err := f.admins.CreateManager(ctx, NewUserInput{
			FirstName: "M", LastName: "G", Email: "m@example.com", Password: "Secret123!",
		}, 9999)
		require.ErrorIs(t, err, ErrTenantNotFound)

		_, err = f.store.Users().GetUserByEmail(ctx, "m@example.com")
		require.Error(t, err)
	})

	t.Run("get and delete", func(t *testing.T) {
		got, err := f.admins.Get(ctx, admin.ID)
		require.NoError(t, err)
		require.Equal(t, admin.Email, got.Email)

		require.NoError(t, f.admins.Delete(ctx, admin.ID))
		require.ErrorIs(t, f.admins.Delete(ctx, admin.ID), ErrUserNotFound)
		_, err = f.admins.Get(ctx, admin.ID)
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestTenantServiceUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tenant, err := f.tenants.Create(ctx, "Orig Name", "Orig Address")
	require.NoError(t, err)

	t.Run("single field", func(t *testing.T) {
		got, err := f.tenants.Update(ctx, tenant.ID, nil, ptr("  New Address "))
		require.NoError(t, err)
		require.Equal(t, "Orig Name", got.Name)
		require.Equal(t, "New Address", got.Address)
	})

	t.Run("boundary lengths", func(t *testing.T) {
		_, err := f.tenants.Update(ctx, tenant.ID,
			ptr(strings.Repeat("x", domain.MaxTenantNameLen)),
			ptr(strings.Repeat("y", domain.MaxTenantAddressLen)))
		require.NoError(t, err)
	})

	t.Run("invalid input leaves the row alone", func(t *testing.T) {
		before, err := f.tenants.Get(ctx, tenant.ID)
		require.NoError(t, err)

		for _, tc := range []struct {
			name         string
			nameV, addrV *string
		}{
			{"empty body", nil, nil},
			{"blank name", ptr("   "), nil},
			{"long name", ptr(strings.Repeat("x", domain.MaxTenantNameLen+1)), nil},
			{"long address", nil, ptr(strings.Repeat("y", domain.MaxTenantAddressLen+1))},
		} {
			t.Run(tc.name, func(t *testing.T) {
				_, err := f.tenants.Update(ctx, tenant.ID, tc.nameV, tc.addrV)
				require.ErrorIs(t, err, ErrInvalidInput)
			})
		}

		after, err := f.tenants.Get(ctx, tenant.ID)
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("missing tenant", func(t *testing.T) {
		_, err := f.tenants.Update(ctx, 9999, ptr("x"), nil)
		require.ErrorIs(t, err, ErrTenantNotFound)
	})
}

func TestAdminUserServiceList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, email := range []string{"ann@example.com", "ben@example.com", "cat@example.com"} {
		register(t, f, email)
	}
	_, err := f.admins.CreateAdmin(ctx, NewUserInput{FirstName: "Rita", LastName: "Root", Email: "rita@corp.io", Password: "Secret123!"})
	require.NoError(t, err)

	t.Run("defaults", func(t *testing.T) {
		page, err := f.admins.List(ctx, ListUsersInput{})
		require.NoError(t, err)
		require.Equal(t, 1, page.Page)
		require.Equal(t, DefaultListLimit, page.Limit)
		require.Equal(t, "id", page.Sort)
		require.Equal(t, "desc", page.Order)
		require.EqualValues(t, 4, page.Total)
		require.Equal(t, 1, page.TotalPages)
		require.Equal(t, "rita@corp.io", page.Users[0].Email, "newest first")
	})

	t.Run("paging", func(t *testing.T) {
		page, err := f.admins.List(ctx, ListUsersInput{Page: 2, Limit: 3, Order: "ASC"})
		require.NoError(t, err)
		require.Len(t, page.Users, 1)
		require.Equal(t, 2, page.TotalPages)

		page, err = f.admins.List(ctx, ListUsersInput{Page: 99})
		require.NoError(t, err)
		require.Empty(t, page.Users)
		require.EqualValues(t, 4, page.Total)
	})

	t.Run("filters", func(t *testing.T) {
		page, err := f.admins.List(ctx, ListUsersInput{Role: "Admin"})
		require.NoError(t, err)
		require.EqualValues(t, 1, page.Total)

		page, err = f.admins.List(ctx, ListUsersInput{Search: "  ROOT\x00 "})
		require.NoError(t, err)
		require.EqualValues(t, 1, page.Total)
		require.Equal(t, "rita@corp.io", page.Users[0].Email)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, in := range []ListUsersInput{
			{Page: -1},
			{Limit: MaxListLimit + 1},
			{Sort: "email"},
			{Order: "up"},
			{Role: "root"},
			{Search: strings.Repeat("q", MaxSearchLen+1)},
		} {
			_, err := f.admins.List(ctx, in)
			require.ErrorIs(t, err, ErrInvalidInput, "%+v", in)
		}
	})
}

func TestAdminUserServiceUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	one := register(t, f, "one@example.com").User
	two := register(t, f, "two@example.com").User
	tenant, err := f.tenants.Create(ctx, "Acme", "1 Road St")
	require.NoError(t, err)
	manager, err := f.admins.CreateManager(ctx, NewUserInput{
		FirstName: "M", LastName: "G", Email: "mgr@example.com", Password: "Secret123!",
	}, tenant.ID)
	require.NoError(t, err)

	t.Run("normalizes and trims", func(t *testing.T) {
		got, err := f.admins.Update(ctx, two.ID, UpdateUserInput{
			Email:     ptr("  NEW.Email@Example.COM "),
			FirstName: ptr("  Jane "),
			LastName:  ptr(" Smith "),
		})
		require.NoError(t, err)
		require.Equal(t, "new.email@example.com", got.Email)
		require.Equal(t, "Jane", got.FirstName)
		require.Equal(t, "Smith", got.LastName)
		require.Equal(t, domain.RoleCustomer, got.Role)
	})

	t.Run("password is rehashed", func(t *testing.T) {
		_, err := f.admins.Update(ctx, one.ID, UpdateUserInput{Password: ptr("NewPass@123")})
		require.NoError(t, err)

		_, err = f.auth.Login(ctx, "one@example.com", "Secret123!")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = f.auth.Login(ctx, "one@example.com", "NewPass@123")
		require.NoError(t, err)
	})

	t.Run("email taken by someone else", func(t *testing.T) {
		_, err := f.admins.Update(ctx, one.ID, UpdateUserInput{Email: ptr("MGR@example.com")})
		require.ErrorIs(t, err, ErrUserAlreadyExists)

		got, err := f.admins.Get(ctx, one.ID)
		require.NoError(t, err)
		require.Equal(t, "one@example.com", got.Email)
	})

	t.Run("keeping own email is fine", func(t *testing.T) {
		_, err := f.admins.Update(ctx, one.ID, UpdateUserInput{Email: ptr("One@Example.com")})
		require.NoError(t, err)
	})

	t.Run("tenant reassignment", func(t *testing.T) {
		other, err := f.tenants.Create(ctx, "Other", "2 Road St")
		require.NoError(t, err)

		got, err := f.admins.Update(ctx, manager.ID, UpdateUserInput{TenantSet: true, TenantID: &other.ID})
		require.NoError(t, err)
		require.Equal(t, other.ID, *got.TenantID)

		missing := int64(9999)
		_, err = f.admins.Update(ctx, manager.ID, UpdateUserInput{TenantSet: true, TenantID: &missing})
		require.ErrorIs(t, err, ErrTenantNotFound)

		got, err = f.admins.Update(ctx, manager.ID, UpdateUserInput{TenantSet: true})
		require.NoError(t, err)
		require.Nil(t, got.TenantID)
	})

	t.Run("tenant only for managers", func(t *testing.T) {
		_, err := f.admins.Update(ctx, one.ID, UpdateUserInput{TenantSet: true, TenantID: &tenant.ID})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty update and missing user", func(t *testing.T) {
		_, err := f.admins.Update(ctx, one.ID, UpdateUserInput{})
		require.ErrorIs(t, err, ErrInvalidInput)

		_, err = f.admins.Update(ctx, 9999, UpdateUserInput{FirstName: ptr("New")})
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func ptr[T any](v T) *T { return &v }

func TestBootstrapEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("missing credentials", func(t *testing.T) {
		b := &BootstrapService{Store: f.store, Passwords: f.passwords}
		require.ErrorIs(t, b.EnsureAdmin(ctx), ErrAdminCredentialsNotFound)
	})

	b := &BootstrapService{
		Store:     f.store,
		Passwords: f.passwords,
		Email:     "Admin@Example.com",
		Password:  "Admin123!",
		FirstName: "System",
		LastName:  "Administrator",
	}

	require.NoError(t, b.EnsureAdmin(ctx))
	require.NoError(t, b.EnsureAdmin(ctx), "second run is a no-op")

	res, err := f.auth.Login(ctx, "admin@example.com", "Admin123!")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, res.User.Role)
}

func TestHousekeepingCleanup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	res := register(t, f, "hk@example.com")

	_, err := f.store.Sessions().CreateSession(ctx, res.User.ID, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	hk := NewHousekeepingService(f.store, slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
	require.Equal(t, time.Hour, hk.Interval)
	require.EqualValues(t, 1, hk.cleanup())
	require.EqualValues(t, 1, f.sessionCount(t, res.User.ID))

	hk.Start()
	hk.Stop()
}
