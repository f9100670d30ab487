package store

import (
	"context"
	"fmt"

	"annuary/internal/database"
	"annuary/internal/model"
)

func CreateComment(ctx context.Context, db database.Querier, c *model.Comment) (*model.Comment, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO comments (content, customer_id, provider_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		c.Content,
		c.CustomerID,
		c.ProviderID,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateComment: %w", err)
	}
	return c, nil
}

// ListCommentsByProvider 回傳 provider 頁面的留言，新的在前
func ListCommentsByProvider(ctx context.Context, db database.Querier, providerID int) ([]model.Comment, error) {
	rows, err := db.Query(ctx,
		`SELECT id, content, created_at, customer_id, provider_id
		 FROM comments
		 WHERE provider_id = $1
		 ORDER BY created_at DESC`,
		providerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListCommentsByProvider: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.CustomerID, &c.ProviderID); err != nil {
			return nil, fmt.Errorf("ListCommentsByProvider: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListCommentsByProvider: %w", err)
	}
	return comments, nil
}
