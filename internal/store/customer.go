package store

import (
	"context"
	"fmt"

	"annuary/internal/database"
	"annuary/internal/model"
)

func GetCustomerByUserID(ctx context.Context, db database.Querier, userID int) (*model.Customer, error) {
	row := db.QueryRow(ctx,
		`SELECT id, first_name, last_name, newsletter, avatar, user_id
		 FROM customers WHERE user_id = $1`,
		userID,
	)
	c := &model.Customer{}
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Newsletter, &c.Avatar, &c.UserID); err != nil {
		return nil, fmt.Errorf("GetCustomerByUserID: %w", err)
	}
	return c, nil
}

func CreateCustomer(ctx context.Context, db database.Querier, c *model.Customer) (*model.Customer, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO customers (first_name, last_name, newsletter, avatar, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		c.FirstName,
		c.LastName,
		c.Newsletter,
		c.Avatar,
		c.UserID,
	)
	if err := row.Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("CreateCustomer: %w", err)
	}
	return c, nil
}

// AddFavorite 建立 customer 與 provider 的最愛關聯
// 關聯只有一列 join row，兩側集合因此必然一致
func AddFavorite(ctx context.Context, db database.Querier, customerID, providerID int) error {
	_, err := db.Exec(ctx,
		`INSERT INTO favorites (customer_id, provider_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		customerID, providerID,
	)
	if err != nil {
		return fmt.Errorf("AddFavorite: %w", err)
	}
	return nil
}

// RemoveFavorite 移除最愛關聯，不存在時不視為錯誤
func RemoveFavorite(ctx context.Context, db database.Querier, customerID, providerID int) error {
	_, err := db.Exec(ctx,
		`DELETE FROM favorites WHERE customer_id = $1 AND provider_id = $2`,
		customerID, providerID,
	)
	if err != nil {
		return fmt.Errorf("RemoveFavorite: %w", err)
	}
	return nil
}

// ListFavorites 回傳 customer 的最愛 provider，依名稱排序
func ListFavorites(ctx context.Context, db database.Querier, customerID int) ([]model.Provider, error) {
	rows, err := db.Query(ctx,
		`SELECT p.id, p.name, p.description, p.logo, p.user_id
		 FROM providers p
		 JOIN favorites f ON f.provider_id = p.id
		 WHERE f.customer_id = $1
		 ORDER BY p.name ASC`,
		customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListFavorites: %w", err)
	}
	defer rows.Close()

	var providers []model.Provider
	for rows.Next() {
		var p model.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Logo, &p.UserID); err != nil {
			return nil, fmt.Errorf("ListFavorites: %w", err)
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListFavorites: %w", err)
	}
	return providers, nil
}
