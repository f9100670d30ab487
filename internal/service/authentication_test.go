package service

import (
	"context"
	"testing"
	"time"

	"annuary/internal/model"

	"github.com/stretchr/testify/require"
)

func TestAuthenticateUser(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	user := model.User{ID: 1, Email: "a@b.c", PasswordHash: hash}

	got, err := AuthenticateUser(context.Background(), user, "pw")
	require.NoError(t, err)
	require.Equal(t, 1, got.ID)

	_, err = AuthenticateUser(context.Background(), user, "nope")
	require.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	user := model.User{ID: 7, Roles: []string{model.RoleProvider}}
	tok, err := IssueAccessToken(user, time.Minute)
	require.NoError(t, err)

	claims, err := VerifyAccessToken(tok)
	require.NoError(t, err)
	require.Equal(t, 7, claims.UserID)
	require.True(t, claims.HasRole(model.RoleProvider))
	require.False(t, claims.HasRole(model.RoleCustomer))
}

func TestVerifyAccessTokenExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	tok, err := IssueAccessToken(model.User{ID: 1}, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyAccessToken(tok)
	require.Error(t, err)
}

func TestIssueAccessTokenNoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := IssueAccessToken(model.User{ID: 1}, time.Minute)
	require.Error(t, err)
}
