package store

import (
	"context"
	"fmt"

	"annuary/internal/database"
	"annuary/internal/model"
)

func GetLocalityByID(ctx context.Context, db database.Querier, localityID int) (*model.Locality, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, post_code_id
		 FROM localities WHERE id = $1`,
		localityID,
	)
	l := &model.Locality{}
	if err := row.Scan(&l.ID, &l.Name, &l.PostCodeID); err != nil {
		return nil, fmt.Errorf("GetLocalityByID: %w", err)
	}
	return l, nil
}

// ListLocalities 回傳所有地區，依名稱排序（註冊表單用）
func ListLocalities(ctx context.Context, db database.Querier) ([]model.Locality, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, post_code_id
		 FROM localities
		 ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListLocalities: %w", err)
	}
	defer rows.Close()

	var localities []model.Locality
	for rows.Next() {
		var l model.Locality
		if err := rows.Scan(&l.ID, &l.Name, &l.PostCodeID); err != nil {
			return nil, fmt.Errorf("ListLocalities: %w", err)
		}
		localities = append(localities, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListLocalities: %w", err)
	}
	return localities, nil
}
