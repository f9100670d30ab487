package store

import (
	"context"
	"fmt"
	"strconv"

	"annuary/internal/database"
	"annuary/internal/model"
)

// ProvidersPerPage 是所有分頁列表的固定頁面大小
const ProvidersPerPage = 10

// SearchParams 是搜尋的可選條件，零值代表不套用該過濾
type SearchParams struct {
	What     string // 名稱或描述的子字串
	Where    string // 地區、市鎮名稱或郵遞區號的子字串
	Category int    // 分類 id，0 表示不過濾
	Offset   int    // 以列為單位的位移
}

const searchFrom = `
	 FROM providers p
	 JOIN users u ON u.id = p.user_id
	 LEFT JOIN localities l ON l.id = u.locality_id
	 LEFT JOIN post_codes pc ON pc.id = l.post_code_id
	 LEFT JOIN municipalities m ON m.id = pc.municipality_id`

// buildSearchWhere 組出 WHERE 子句：已驗證為固定條件，其餘依參數附加
func buildSearchWhere(params SearchParams) (string, []any) {
	where := ` WHERE u.is_verified`
	args := []any{}

	if params.What != "" {
		args = append(args, "%"+params.What+"%")
		n := strconv.Itoa(len(args))
		where += ` AND (p.name ILIKE $` + n + ` OR p.description ILIKE $` + n + `)`
	}
	if params.Where != "" {
		args = append(args, "%"+params.Where+"%")
		n := strconv.Itoa(len(args))
		where += ` AND (l.name ILIKE $` + n + ` OR m.name ILIKE $` + n + ` OR pc.post_code ILIKE $` + n + `)`
	}
	if params.Category != 0 {
		args = append(args, params.Category)
		n := strconv.Itoa(len(args))
		where += ` AND EXISTS (SELECT 1 FROM provider_categories x
			 WHERE x.provider_id = p.id AND x.category_id = $` + n + `)`
	}
	return where, args
}

// SearchProviders 依自由字串、分類與地區搜尋已驗證的 provider
// 依名稱遞增排序，固定每頁 10 筆，另回傳符合條件的總數
func SearchProviders(ctx context.Context, db database.Querier, params SearchParams) ([]model.ProviderListing, int, error) {
	where, args := buildSearchWhere(params)

	var total int
	row := db.QueryRow(ctx, `SELECT COUNT(*)`+searchFrom+where, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("SearchProviders: %w", err)
	}

	args = append(args, ProvidersPerPage, params.Offset)
	n := len(args)
	rows, err := db.Query(ctx,
		`SELECT p.id, p.name, p.description, p.logo, p.user_id, u.registered_on`+
			searchFrom+where+
			` ORDER BY p.name ASC LIMIT $`+strconv.Itoa(n-1)+` OFFSET $`+strconv.Itoa(n),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("SearchProviders: %w", err)
	}
	defer rows.Close()

	providers, err := scanListings(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("SearchProviders: %w", err)
	}
	return providers, total, nil
}

// FindByCategory 回傳分類下已驗證的 provider，依註冊時間遞減、名稱遞增
func FindByCategory(ctx context.Context, db database.Querier, categoryID, offset int) ([]model.ProviderListing, int, error) {
	const from = `
		 FROM providers p
		 JOIN users u ON u.id = p.user_id
		 JOIN provider_categories x ON x.provider_id = p.id
		 WHERE u.is_verified AND x.category_id = $1`

	var total int
	row := db.QueryRow(ctx, `SELECT COUNT(*)`+from, categoryID)
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("FindByCategory: %w", err)
	}

	rows, err := db.Query(ctx,
		`SELECT p.id, p.name, p.description, p.logo, p.user_id, u.registered_on`+from+
			` ORDER BY u.registered_on DESC, p.name ASC LIMIT $2 OFFSET $3`,
		categoryID, ProvidersPerPage, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("FindByCategory: %w", err)
	}
	defer rows.Close()

	providers, err := scanListings(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("FindByCategory: %w", err)
	}
	return providers, total, nil
}

// LastSubscribers 回傳最近註冊且已驗證的 provider
func LastSubscribers(ctx context.Context, db database.Querier, start, limit int) ([]model.ProviderListing, int, error) {
	const from = `
		 FROM providers p
		 JOIN users u ON u.id = p.user_id
		 WHERE u.is_verified`

	var total int
	row := db.QueryRow(ctx, `SELECT COUNT(*)`+from)
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("LastSubscribers: %w", err)
	}

	rows, err := db.Query(ctx,
		`SELECT p.id, p.name, p.description, p.logo, p.user_id, u.registered_on`+from+
			` ORDER BY u.registered_on DESC, p.name ASC LIMIT $1 OFFSET $2`,
		limit, start,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("LastSubscribers: %w", err)
	}
	defer rows.Close()

	providers, err := scanListings(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("LastSubscribers: %w", err)
	}
	return providers, total, nil
}

// FindSimilar 回傳與指定 provider 同市鎮且至少共享一個分類的其他已驗證 provider
func FindSimilar(ctx context.Context, db database.Querier, providerID int) ([]model.Provider, error) {
	rows, err := db.Query(ctx,
		`SELECT DISTINCT p.id, p.name, p.description, p.logo, p.user_id
		 FROM providers p
		 JOIN users u ON u.id = p.user_id
		 JOIN localities l ON l.id = u.locality_id
		 JOIN post_codes pc ON pc.id = l.post_code_id
		 WHERE u.is_verified
		   AND p.id <> $1
		   AND pc.municipality_id = (
			 SELECT pc2.municipality_id
			 FROM providers p2
			 JOIN users u2 ON u2.id = p2.user_id
			 JOIN localities l2 ON l2.id = u2.locality_id
			 JOIN post_codes pc2 ON pc2.id = l2.post_code_id
			 WHERE p2.id = $1)
		   AND EXISTS (
			 SELECT 1 FROM provider_categories a
			 JOIN provider_categories b ON b.category_id = a.category_id
			 WHERE a.provider_id = p.id AND b.provider_id = $1)
		 ORDER BY p.name ASC`,
		providerID,
	)
	if err != nil {
		return nil, fmt.Errorf("FindSimilar: %w", err)
	}
	defer rows.Close()

	var providers []model.Provider
	for rows.Next() {
		var p model.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Logo, &p.UserID); err != nil {
			return nil, fmt.Errorf("FindSimilar: %w", err)
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FindSimilar: %w", err)
	}
	return providers, nil
}

// AutoComplete 依名稱或描述的子字串提出最多 10 筆建議，僅投影 id/name/description
func AutoComplete(ctx context.Context, db database.Querier, query string) ([]model.ProviderSuggestion, error) {
	rows, err := db.Query(ctx,
		`SELECT p.id, p.name, p.description
		 FROM providers p
		 JOIN users u ON u.id = p.user_id
		 WHERE u.is_verified AND (p.name ILIKE $1 OR p.description ILIKE $1)
		 ORDER BY p.name ASC
		 LIMIT 10`,
		"%"+query+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("AutoComplete: %w", err)
	}
	defer rows.Close()

	var suggestions []model.ProviderSuggestion
	for rows.Next() {
		var s model.ProviderSuggestion
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, fmt.Errorf("AutoComplete: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("AutoComplete: %w", err)
	}
	return suggestions, nil
}

func scanListings(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]model.ProviderListing, error) {
	var providers []model.ProviderListing
	for rows.Next() {
		var p model.ProviderListing
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Logo, &p.UserID, &p.RegisteredOn); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

func GetProviderByID(ctx context.Context, db database.Querier, providerID int) (*model.Provider, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, description, logo, user_id
		 FROM providers WHERE id = $1`,
		providerID,
	)
	p := &model.Provider{}
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Logo, &p.UserID); err != nil {
		return nil, fmt.Errorf("GetProviderByID: %w", err)
	}
	return p, nil
}

func GetProviderByUserID(ctx context.Context, db database.Querier, userID int) (*model.Provider, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, description, logo, user_id
		 FROM providers WHERE user_id = $1`,
		userID,
	)
	p := &model.Provider{}
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Logo, &p.UserID); err != nil {
		return nil, fmt.Errorf("GetProviderByUserID: %w", err)
	}
	return p, nil
}

func CreateProvider(ctx context.Context, db database.Querier, p *model.Provider) (*model.Provider, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO providers (name, description, logo, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		p.Name,
		p.Description,
		p.Logo,
		p.UserID,
	)
	if err := row.Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("CreateProvider: %w", err)
	}
	return p, nil
}

// SetProviderCategories 以傳入的集合取代 provider 的分類
func SetProviderCategories(ctx context.Context, db database.Querier, providerID int, categoryIDs []int) error {
	if _, err := db.Exec(ctx,
		`DELETE FROM provider_categories WHERE provider_id = $1`,
		providerID,
	); err != nil {
		return fmt.Errorf("SetProviderCategories: %w", err)
	}
	for _, categoryID := range categoryIDs {
		if _, err := db.Exec(ctx,
			`INSERT INTO provider_categories (provider_id, category_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			providerID, categoryID,
		); err != nil {
			return fmt.Errorf("SetProviderCategories: %w", err)
		}
	}
	return nil
}
