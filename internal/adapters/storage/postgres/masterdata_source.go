package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"cattle-records/internal/domain/masterdata"
)

// MasterDataSource lee las tablas de referencia de master_data.
// Categorías desconocidas se ignoran (Tables.Set las descarta).
type MasterDataSource struct {
	db *sql.DB
}

var _ masterdata.Source = (*MasterDataSource)(nil)

func NewMasterDataSource(db *sql.DB) *MasterDataSource {
	return &MasterDataSource{db: db}
}

func (s *MasterDataSource) Tables(ctx context.Context) (masterdata.Tables, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, id, name
		FROM master_data
		ORDER BY category, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query master data: %w", err)
	}
	defer rows.Close()

	t := masterdata.NewTables()
	for rows.Next() {
		var (
			category string
			id       int
			name     string
		)
		if err := rows.Scan(&category, &id, &name); err != nil {
			return nil, fmt.Errorf("scan master data: %w", err)
		}
		if c, ok := masterdata.ParseCategory(category); ok {
			t.Set(c, id, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate master data: %w", err)
	}
	return t, nil
}
