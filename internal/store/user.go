package store

import (
	"context"
	"fmt"

	"annuary/internal/database"
	"annuary/internal/model"
)

func GetUserByID(ctx context.Context, db database.Querier, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, email, password_hash, roles, is_verified, registered_on, locality_id
		 FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Roles,
		&u.IsVerified,
		&u.RegisteredOn,
		&u.LocalityID,
	); err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.Querier, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, email, password_hash, roles, is_verified, registered_on, locality_id
		 FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Roles,
		&u.IsVerified,
		&u.RegisteredOn,
		&u.LocalityID,
	); err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, roles, is_verified, locality_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, registered_on`,
		u.Email,
		u.PasswordHash,
		u.Roles,
		u.IsVerified,
		u.LocalityID,
	)
	if err := row.Scan(&u.ID, &u.RegisteredOn); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// MarkUserVerified 將使用者標記為已驗證，重複呼叫無害
func MarkUserVerified(ctx context.Context, db database.Querier, userID int) error {
	_, err := db.Exec(ctx,
		`UPDATE users SET is_verified = TRUE WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("MarkUserVerified: %w", err)
	}
	return nil
}

func DeleteUser(ctx context.Context, db database.Querier, userID int) error {
	_, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	return nil
}
