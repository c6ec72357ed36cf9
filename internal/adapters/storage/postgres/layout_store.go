package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"cattle-records/internal/domain/layout"
)

type LayoutStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ layout.Store = (*LayoutStore)(nil)

func NewLayoutStore(db *sql.DB) *LayoutStore {
	return &LayoutStore{db: db, now: time.Now}
}

func (s *LayoutStore) Load(ctx context.Context, profileID string) (layout.Blob, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return layout.Blob{}, layout.ErrNotFound
	}

	var (
		cols    []byte
		version string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT columns, version
		FROM column_layouts
		WHERE profile_id = $1
	`, profileID).Scan(&cols, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return layout.Blob{}, layout.ErrNotFound
	}
	if err != nil {
		return layout.Blob{}, err
	}
	return layout.Blob{Columns: cols, Version: version}, nil
}

// Save hace upsert: una fila por perfil.
func (s *LayoutStore) Save(ctx context.Context, profileID string, b layout.Blob) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO column_layouts (profile_id, columns, version, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (profile_id) DO UPDATE
		SET columns = EXCLUDED.columns,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`,
		strings.TrimSpace(profileID),
		string(b.Columns),
		b.Version,
		s.now().UTC(),
	)
	return err
}
