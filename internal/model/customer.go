// File: internal/model/customer.go
package model

type Customer struct {
	ID         int    `db:"id" json:"id"`
	FirstName  string `db:"first_name" json:"first_name"`
	LastName   string `db:"last_name" json:"last_name"`
	Newsletter bool   `db:"newsletter" json:"newsletter"`
	Avatar     string `db:"avatar" json:"avatar"`
	UserID     int    `db:"user_id" json:"user_id"`
}
