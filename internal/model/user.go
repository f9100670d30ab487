// File: internal/model/user.go
package model

import "time"

const (
	RoleCustomer = "ROLE_CUSTOMER"
	RoleProvider = "ROLE_PROVIDER"
)

type User struct {
	ID           int       `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Roles        []string  `db:"roles" json:"roles"`
	IsVerified   bool      `db:"is_verified" json:"is_verified"`
	RegisteredOn time.Time `db:"registered_on" json:"registered_on"`
	LocalityID   *int      `db:"locality_id" json:"locality_id,omitempty"`
}

// HasRole 檢查使用者是否具備指定角色
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
