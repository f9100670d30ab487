package store

import (
	"context"
	"testing"
	"time"

	"annuary/internal/database"
	"annuary/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func userRow(u model.User) *fakeRow {
	return &fakeRow{scan: func(dest ...any) error {
		*dest[0].(*int) = u.ID
		*dest[1].(*string) = u.Email
		*dest[2].(*string) = u.PasswordHash
		*dest[3].(*[]string) = u.Roles
		*dest[4].(*bool) = u.IsVerified
		*dest[5].(*time.Time) = u.RegisteredOn
		*dest[6].(**int) = u.LocalityID
		return nil
	}}
}

func TestGetUserByID(t *testing.T) {
	locality := 3
	sample := model.User{
		ID:         1,
		Email:      "alice@example.com",
		Roles:      []string{model.RoleCustomer},
		IsVerified: true,
		LocalityID: &locality,
	}

	t.Run("ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, []any{1}, args)
				return userRow(sample)
			},
		}
		got, err := GetUserByID(context.Background(), db, 1)
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", got.Email)
		require.Equal(t, 3, *got.LocalityID)
	})

	t.Run("not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := GetUserByID(context.Background(), db, 1)
		require.ErrorIs(t, err, pgx.ErrNoRows)
	})
}

func TestGetUserByEmail(t *testing.T) {
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "WHERE email = $1")
			require.Equal(t, []any{"alice@example.com"}, args)
			return userRow(model.User{ID: 1, Email: "alice@example.com"})
		},
	}
	got, err := GetUserByEmail(context.Background(), db, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, 1, got.ID)
}

func TestCreateUser(t *testing.T) {
	now := time.Now()
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "INSERT INTO users")
			require.Contains(t, sql, "RETURNING id, registered_on")
			require.Len(t, args, 5)
			return &fakeRow{scan: func(dest ...any) error {
				*dest[0].(*int) = 21
				*dest[1].(*time.Time) = now
				return nil
			}}
		},
	}
	u := &model.User{Email: "bob@example.com", Roles: []string{model.RoleProvider}}
	got, err := CreateUser(context.Background(), db, u)
	require.NoError(t, err)
	require.Equal(t, 21, got.ID)
	require.Equal(t, now, got.RegisteredOn)
}

func TestMarkUserVerified(t *testing.T) {
	db := &database.FakeDB{
		ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			require.Contains(t, sql, "SET is_verified = TRUE")
			require.Equal(t, []any{21}, args)
			return pgconn.CommandTag{}, nil
		},
	}
	require.NoError(t, MarkUserVerified(context.Background(), db, 21))
}

func TestDeleteUser(t *testing.T) {
	db := &database.FakeDB{
		ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			require.Contains(t, sql, "DELETE FROM users")
			require.Equal(t, []any{21}, args)
			return pgconn.CommandTag{}, nil
		},
	}
	require.NoError(t, DeleteUser(context.Background(), db, 21))
}
