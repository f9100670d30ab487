// File: internal/model/promotion.go
package model

import "time"

type Promotion struct {
	ID                int       `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	Description       string    `db:"description" json:"description"`
	PDFDocument       *string   `db:"pdf_document" json:"pdf_document,omitempty"`
	StartAt           time.Time `db:"start_at" json:"start_at"`
	EndAt             time.Time `db:"end_at" json:"end_at"`
	DisplayedFrom     time.Time `db:"displayed_from" json:"displayed_from"`
	DisplayedUntil    time.Time `db:"displayed_until" json:"displayed_until"`
	ProviderID        int       `db:"provider_id" json:"provider_id"`
	ServiceCategoryID *int      `db:"service_category_id" json:"service_category_id,omitempty"`
}

// DatesValid 檢查有效區間與顯示區間，兩者皆須嚴格遞增
func (p *Promotion) DatesValid() bool {
	return p.StartAt.Before(p.EndAt) && p.DisplayedFrom.Before(p.DisplayedUntil)
}
