// File: internal/model/comment.go
package model

import "time"

type Comment struct {
	ID         int       `db:"id" json:"id"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	CustomerID int       `db:"customer_id" json:"customer_id"`
	ProviderID int       `db:"provider_id" json:"provider_id"`
}
