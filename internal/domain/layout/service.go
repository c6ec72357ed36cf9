package layout

import (
	"context"
	"errors"
	"strings"
	"sync"

	"cattle-records/internal/platform/logger"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnknownColumn = errors.New("unknown column")
)

// Service mantiene un Manager por perfil y serializa el acceso a cada uno.
type Service struct {
	store    Store
	log      logger.Logger
	observer Observer

	mu       sync.Mutex // solo protege el map
	managers map[string]*profileEntry
}

// profileEntry serializa un perfil; la carga y los persist de un perfil lento
// no bloquean a los demás.
type profileEntry struct {
	mu      sync.Mutex
	manager *Manager
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		log:      logger.NewNop(),
		observer: nopObserver{},
		managers: map[string]*profileEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// withManager corre fn con el lock del perfil tomado; la primera vez carga su layout.
func (s *Service) withManager(ctx context.Context, profileID string, fn func(m *Manager)) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ErrInvalidInput
	}

	s.mu.Lock()
	e, ok := s.managers[profileID]
	if !ok {
		e = &profileEntry{}
		s.managers[profileID] = e
	}
	s.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.manager == nil {
		m := NewManager(s.store, profileID,
			WithManagerLogger(s.log),
			WithManagerObserver(s.observer),
		)
		m.Load(ctx)
		e.manager = m
	}
	fn(e.manager)
	return nil
}

func (s *Service) Columns(ctx context.Context, profileID string) ([]Column, error) {
	var out []Column
	err := s.withManager(ctx, profileID, func(m *Manager) {
		out = m.Columns()
	})
	return out, err
}

func (s *Service) Visible(ctx context.Context, profileID string) ([]Column, error) {
	var out []Column
	err := s.withManager(ctx, profileID, func(m *Manager) {
		out = m.VisibleOrdered()
	})
	return out, err
}

// VisibleKeys alimenta la proyección de filas en records.
func (s *Service) VisibleKeys(ctx context.Context, profileID string) ([]string, error) {
	cols, err := s.Visible(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return Keys(cols), nil
}

func (s *Service) Toggle(ctx context.Context, profileID, key string) ([]Column, error) {
	var (
		out     []Column
		changed bool
	)
	err := s.withManager(ctx, profileID, func(m *Manager) {
		out, changed = m.ToggleVisibility(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return out, ErrUnknownColumn
	}
	return out, nil
}

// Reorder: misma key es un no-op válido; key inexistente es ErrUnknownColumn.
func (s *Service) Reorder(ctx context.Context, profileID, source, target string) ([]Column, error) {
	var (
		out   []Column
		known bool
	)
	err := s.withManager(ctx, profileID, func(m *Manager) {
		cols := m.Columns()
		known = Has(cols, source) && Has(cols, target)
		out, _ = m.Reorder(ctx, source, target)
	})
	if err != nil {
		return nil, err
	}
	if !known {
		return out, ErrUnknownColumn
	}
	return out, nil
}

func (s *Service) Reset(ctx context.Context, profileID string) ([]Column, error) {
	var out []Column
	err := s.withManager(ctx, profileID, func(m *Manager) {
		out = m.Reset(ctx)
	})
	return out, err
}

// Forget descarta el estado en memoria del perfil; el próximo acceso vuelve a cargar.
func (s *Service) Forget(profileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.managers, strings.TrimSpace(profileID))
}
