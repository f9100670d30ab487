// File: internal/model/service_category.go
package model

type ServiceCategory struct {
	ID          int    `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Validated   bool   `db:"validated" json:"validated"`
	Highlighted bool   `db:"highlighted" json:"highlighted"`
}
