package jwtx

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestAccessClaims_JSONShape(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()

	tests := []struct {
		name       string
		tenantID   string
		wantTenant bool
	}{
		{"with tenant", "7", true},
		{"without tenant", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewAccessClaims("42", "manager", tt.tenantID, time.Hour, DefaultIssuer, now)

			b, err := json.Marshal(c)
			require.NoError(t, err)

			var m map[string]any
			require.NoError(t, json.Unmarshal(b, &m))
			require.Equal(t, "42", m["sub"])
			require.Equal(t, "manager", m["role"])
			require.Equal(t, DefaultIssuer, m["iss"])
			require.EqualValues(t, now.Add(time.Hour).Unix(), m["exp"])

			_, has := m["tenantId"]
			require.Equal(t, tt.wantTenant, has)
		})
	}
}

func TestRefreshClaims_JTIIsSession(t *testing.T) {
	c := NewRefreshClaims("42", "1001", time.Hour, DefaultIssuer, time.Now())

	b, err := json.Marshal(c)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	require.Equal(t, "1001", m["jti"])
	require.Equal(t, "42", m["sub"])
}

func TestValidateIssuer(t *testing.T) {
	rc := &jwt.RegisteredClaims{Issuer: "auth-service"}

	require.NoError(t, validateIssuer(rc, "auth-service"))
	require.NoError(t, validateIssuer(rc, ""))
	require.ErrorIs(t, validateIssuer(rc, "other"), ErrIssuer)
}
