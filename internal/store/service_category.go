package store

import (
	"context"
	"fmt"

	"annuary/internal/database"
	"annuary/internal/model"
)

// GetHighlightedCategory 回傳被標記為本月分類的第一筆
// 資料模型名義上只允許一筆 highlighted，但仍以 id 排序取第一筆防禦多列
func GetHighlightedCategory(ctx context.Context, db database.Querier) (*model.ServiceCategory, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, validated, highlighted
		 FROM service_categories
		 WHERE highlighted
		 ORDER BY id ASC
		 LIMIT 1`,
	)
	c := &model.ServiceCategory{}
	if err := row.Scan(&c.ID, &c.Name, &c.Validated, &c.Highlighted); err != nil {
		return nil, fmt.Errorf("GetHighlightedCategory: %w", err)
	}
	return c, nil
}

// GetFirstValidatedCategory 回傳第一筆已審核的分類，作為無 highlighted 時的後備
func GetFirstValidatedCategory(ctx context.Context, db database.Querier) (*model.ServiceCategory, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, validated, highlighted
		 FROM service_categories
		 WHERE validated
		 ORDER BY id ASC
		 LIMIT 1`,
	)
	c := &model.ServiceCategory{}
	if err := row.Scan(&c.ID, &c.Name, &c.Validated, &c.Highlighted); err != nil {
		return nil, fmt.Errorf("GetFirstValidatedCategory: %w", err)
	}
	return c, nil
}

// ListCategories 回傳所有分類，依名稱排序（選單用）
func ListCategories(ctx context.Context, db database.Querier) ([]model.ServiceCategory, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, validated, highlighted
		 FROM service_categories
		 ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}
	defer rows.Close()

	var categories []model.ServiceCategory
	for rows.Next() {
		var c model.ServiceCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Validated, &c.Highlighted); err != nil {
			return nil, fmt.Errorf("ListCategories: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}
	return categories, nil
}

func GetCategoryByID(ctx context.Context, db database.Querier, categoryID int) (*model.ServiceCategory, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, validated, highlighted
		 FROM service_categories WHERE id = $1`,
		categoryID,
	)
	c := &model.ServiceCategory{}
	if err := row.Scan(&c.ID, &c.Name, &c.Validated, &c.Highlighted); err != nil {
		return nil, fmt.Errorf("GetCategoryByID: %w", err)
	}
	return c, nil
}

// HighlightCategory 將指定分類設為本月分類並清除其他分類的旗標
// 兩個更新須在同一交易內執行，寫入時即維持唯一性
func HighlightCategory(ctx context.Context, db database.Querier, categoryID int) error {
	if _, err := db.Exec(ctx,
		`UPDATE service_categories SET highlighted = FALSE WHERE id <> $1`,
		categoryID,
	); err != nil {
		return fmt.Errorf("HighlightCategory: %w", err)
	}
	tag, err := db.Exec(ctx,
		`UPDATE service_categories SET highlighted = TRUE WHERE id = $1 AND validated`,
		categoryID,
	)
	if err != nil {
		return fmt.Errorf("HighlightCategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("HighlightCategory: no validated category %d", categoryID)
	}
	return nil
}
