package memory

import (
	"context"
	"strings"
	"sync"

	"cattle-records/internal/domain/layout"
)

type layoutStore struct {
	mu    sync.RWMutex
	blobs map[string]layout.Blob
}

// NewLayoutStore guarda layouts en memoria del proceso (modo dev y tests).
func NewLayoutStore() layout.Store {
	return &layoutStore{
		blobs: make(map[string]layout.Blob),
	}
}

func (s *layoutStore) Load(ctx context.Context, profileID string) (layout.Blob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[strings.TrimSpace(profileID)]
	if !ok {
		return layout.Blob{}, layout.ErrNotFound
	}
	// copia: el caller no debe poder mutar lo guardado
	return layout.Blob{Columns: append([]byte(nil), b.Columns...), Version: b.Version}, nil
}

func (s *layoutStore) Save(ctx context.Context, profileID string, b layout.Blob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[strings.TrimSpace(profileID)] = layout.Blob{
		Columns: append([]byte(nil), b.Columns...),
		Version: b.Version,
	}
	return nil
}
