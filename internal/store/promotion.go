package store

import (
	"context"
	"fmt"

	"annuary/internal/database"
	"annuary/internal/model"
)

func GetPromotionByID(ctx context.Context, db database.Querier, promotionID int) (*model.Promotion, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, description, pdf_document, start_at, end_at,
		        displayed_from, displayed_until, provider_id, service_category_id
		 FROM promotions WHERE id = $1`,
		promotionID,
	)
	p := &model.Promotion{}
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.PDFDocument,
		&p.StartAt,
		&p.EndAt,
		&p.DisplayedFrom,
		&p.DisplayedUntil,
		&p.ProviderID,
		&p.ServiceCategoryID,
	); err != nil {
		return nil, fmt.Errorf("GetPromotionByID: %w", err)
	}
	return p, nil
}

func CreatePromotion(ctx context.Context, db database.Querier, p *model.Promotion) (*model.Promotion, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO promotions (name, description, pdf_document, start_at, end_at,
		                         displayed_from, displayed_until, provider_id, service_category_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		p.Name,
		p.Description,
		p.PDFDocument,
		p.StartAt,
		p.EndAt,
		p.DisplayedFrom,
		p.DisplayedUntil,
		p.ProviderID,
		p.ServiceCategoryID,
	)
	if err := row.Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("CreatePromotion: %w", err)
	}
	return p, nil
}

func UpdatePromotion(ctx context.Context, db database.Querier, p *model.Promotion) error {
	_, err := db.Exec(ctx,
		`UPDATE promotions
		 SET name = $1, description = $2, pdf_document = $3, start_at = $4, end_at = $5,
		     displayed_from = $6, displayed_until = $7, service_category_id = $8
		 WHERE id = $9`,
		p.Name,
		p.Description,
		p.PDFDocument,
		p.StartAt,
		p.EndAt,
		p.DisplayedFrom,
		p.DisplayedUntil,
		p.ServiceCategoryID,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdatePromotion: %w", err)
	}
	return nil
}

func DeletePromotion(ctx context.Context, db database.Querier, promotionID int) error {
	_, err := db.Exec(ctx,
		`DELETE FROM promotions WHERE id = $1`,
		promotionID,
	)
	if err != nil {
		return fmt.Errorf("DeletePromotion: %w", err)
	}
	return nil
}

// ListPromotionsByProvider 回傳 provider 的促銷，依顯示起始日遞減
func ListPromotionsByProvider(ctx context.Context, db database.Querier, providerID int) ([]model.Promotion, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, description, pdf_document, start_at, end_at,
		        displayed_from, displayed_until, provider_id, service_category_id
		 FROM promotions
		 WHERE provider_id = $1
		 ORDER BY displayed_from DESC`,
		providerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListPromotionsByProvider: %w", err)
	}
	defer rows.Close()

	var promotions []model.Promotion
	for rows.Next() {
		var p model.Promotion
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.PDFDocument,
			&p.StartAt,
			&p.EndAt,
			&p.DisplayedFrom,
			&p.DisplayedUntil,
			&p.ProviderID,
			&p.ServiceCategoryID,
		); err != nil {
			return nil, fmt.Errorf("ListPromotionsByProvider: %w", err)
		}
		promotions = append(promotions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPromotionsByProvider: %w", err)
	}
	return promotions, nil
}
