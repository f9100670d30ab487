package store

import (
	"context"
	"testing"

	"annuary/internal/database"
	"annuary/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func categoryRow(c model.ServiceCategory) *fakeRow {
	return &fakeRow{scan: func(dest ...any) error {
		*dest[0].(*int) = c.ID
		*dest[1].(*string) = c.Name
		*dest[2].(*bool) = c.Validated
		*dest[3].(*bool) = c.Highlighted
		return nil
	}}
}

type fakeCategoryRows struct {
	data []model.ServiceCategory
	idx  int
}

func (r *fakeCategoryRows) Close()                                       {}
func (r *fakeCategoryRows) Err() error                                   { return nil }
func (r *fakeCategoryRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeCategoryRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeCategoryRows) Next() bool                                   { return r.idx < len(r.data) }
func (r *fakeCategoryRows) Scan(dest ...any) error {
	c := r.data[r.idx]
	r.idx++
	*dest[0].(*int) = c.ID
	*dest[1].(*string) = c.Name
	*dest[2].(*bool) = c.Validated
	*dest[3].(*bool) = c.Highlighted
	return nil
}
func (r *fakeCategoryRows) Values() ([]any, error) { return nil, nil }
func (r *fakeCategoryRows) RawValues() [][]byte    { return nil }
func (r *fakeCategoryRows) Conn() *pgx.Conn        { return nil }

func TestGetHighlightedCategory(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
				require.Contains(t, sql, "WHERE highlighted")
				return categoryRow(model.ServiceCategory{ID: 2, Name: "Massage", Validated: true, Highlighted: true})
			},
		}
		got, err := GetHighlightedCategory(context.Background(), db)
		require.NoError(t, err)
		require.Equal(t, "Massage", got.Name)
	})

	t.Run("none", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := GetHighlightedCategory(context.Background(), db)
		require.ErrorIs(t, err, pgx.ErrNoRows)
	})
}

func TestGetFirstValidatedCategory(t *testing.T) {
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
			require.Contains(t, sql, "WHERE validated")
			require.Contains(t, sql, "ORDER BY id ASC")
			return categoryRow(model.ServiceCategory{ID: 1, Name: "Yoga", Validated: true})
		},
	}
	got, err := GetFirstValidatedCategory(context.Background(), db)
	require.NoError(t, err)
	require.Equal(t, 1, got.ID)
}

func TestListCategories(t *testing.T) {
	db := &database.FakeDB{
		QueryFn: func(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
			require.Contains(t, sql, "ORDER BY name ASC")
			return &fakeCategoryRows{data: []model.ServiceCategory{
				{ID: 2, Name: "Massage", Validated: true},
				{ID: 1, Name: "Yoga", Validated: true},
			}}, nil
		},
	}
	got, err := ListCategories(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Massage", got[0].Name)
}

func TestHighlightCategory(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		var calls []string
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				calls = append(calls, sql)
				if len(calls) == 1 {
					require.Contains(t, sql, "highlighted = FALSE WHERE id <> $1")
					return pgconn.NewCommandTag("UPDATE 4"), nil
				}
				require.Contains(t, sql, "highlighted = TRUE WHERE id = $1 AND validated")
				require.Equal(t, []any{2}, args)
				return pgconn.NewCommandTag("UPDATE 1"), nil
			},
		}
		require.NoError(t, HighlightCategory(context.Background(), db, 2))
		require.Len(t, calls, 2)
	})

	t.Run("not validated", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("UPDATE 0"), nil
			},
		}
		err := HighlightCategory(context.Background(), db, 9)
		require.Error(t, err)
		require.Contains(t, err.Error(), "no validated category")
	})
}
