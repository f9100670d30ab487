// File: internal/model/provider.go
package model

import "time"

type Provider struct {
	ID          int    `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Logo        string `db:"logo" json:"logo"`
	UserID      int    `db:"user_id" json:"user_id"`
}

// ProviderListing 是搜尋結果的一列，附帶 user 的註冊時間
type ProviderListing struct {
	Provider
	RegisteredOn time.Time `db:"registered_on" json:"registered_on"`
}

// ProviderSuggestion 是自動完成的投影，僅含 id/name/description
type ProviderSuggestion struct {
	ID          int    `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
}
