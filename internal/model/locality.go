// File: internal/model/locality.go
package model

// 三層固定的地理階層：Locality -> PostCode -> Municipality

type Municipality struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type PostCode struct {
	ID             int    `db:"id" json:"id"`
	PostCode       string `db:"post_code" json:"post_code"`
	MunicipalityID int    `db:"municipality_id" json:"municipality_id"`
}

type Locality struct {
	ID         int    `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	PostCodeID int    `db:"post_code_id" json:"post_code_id"`
}
