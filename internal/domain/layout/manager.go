package layout

import (
	"context"
	"errors"

	"cattle-records/internal/platform/logger"
)

// LoadOutcome explica de dónde salió el layout cargado.
type LoadOutcome string

const (
	LoadRestored        LoadOutcome = "restored"
	LoadNotFound        LoadOutcome = "not_found"
	LoadVersionMismatch LoadOutcome = "version_mismatch"
	LoadCardinality     LoadOutcome = "cardinality_mismatch"
	LoadMalformed       LoadOutcome = "malformed"
	LoadStoreError      LoadOutcome = "store_error"
)

// Observer recibe métricas de carga y persistencia (ver platform/metrics).
type Observer interface {
	ObserveLayoutLoad(outcome LoadOutcome)
	ObserveLayoutPersist(ok bool)
}

type nopObserver struct{}

func (nopObserver) ObserveLayoutLoad(LoadOutcome) {}
func (nopObserver) ObserveLayoutPersist(bool)     {}

// Manager es el layout de un perfil. El estado en memoria manda:
// si falla la persistencia se loguea y se sigue.
// No es seguro para uso concurrente (Service serializa el acceso).
type Manager struct {
	store    Store
	profile  string
	cols     []Column
	log      logger.Logger
	observer Observer
}

type ManagerOption func(*Manager)

func WithManagerLogger(l logger.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

func WithManagerObserver(o Observer) ManagerOption {
	return func(m *Manager) {
		if o != nil {
			m.observer = o
		}
	}
}

// NewManager arranca con el default; llamar Load para leer lo persistido.
func NewManager(store Store, profileID string, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:    store,
		profile:  profileID,
		cols:     DefaultColumns(),
		log:      logger.NewNop(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(map[string]any{"profile": profileID})
	return m
}

// Load restaura el set persistido si la versión coincide, la cardinalidad es la del
// default y decodifica con keys únicas. En cualquier otro caso regenera y persiste.
func (m *Manager) Load(ctx context.Context) ([]Column, LoadOutcome) {
	outcome := m.restore(ctx)
	m.observer.ObserveLayoutLoad(outcome)

	if outcome != LoadRestored {
		m.log.Info("column layout regenerated", map[string]any{"reason": string(outcome)})
		m.cols = DefaultColumns()
		m.persist(ctx)
	}
	return m.Columns(), outcome
}

func (m *Manager) restore(ctx context.Context) LoadOutcome {
	if m.store == nil {
		return LoadNotFound
	}
	blob, err := m.store.Load(ctx, m.profile)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoadNotFound
		}
		m.log.Warn("column layout load failed", map[string]any{"error": err.Error()})
		return LoadStoreError
	}
	if blob.Version != SchemaVersion {
		return LoadVersionMismatch
	}
	cols, err := Decode(blob)
	if err != nil || !valid(cols) {
		return LoadMalformed
	}
	if len(cols) != len(DefaultColumns()) {
		return LoadCardinality
	}
	m.cols = cols
	return LoadRestored
}

// ToggleVisibility invierte la visibilidad y persiste. Key desconocida: no-op.
func (m *Manager) ToggleVisibility(ctx context.Context, key string) ([]Column, bool) {
	next, changed := Toggle(m.cols, key)
	if !changed {
		return m.Columns(), false
	}
	m.cols = next
	m.persist(ctx)
	return m.Columns(), true
}

// Reorder intercambia el Order de dos columnas y persiste.
func (m *Manager) Reorder(ctx context.Context, source, target string) ([]Column, bool) {
	next, changed := Reorder(m.cols, source, target)
	if !changed {
		return m.Columns(), false
	}
	m.cols = next
	m.persist(ctx)
	return m.Columns(), true
}

// Reset vuelve al default tal cual y persiste.
func (m *Manager) Reset(ctx context.Context) []Column {
	m.cols = DefaultColumns()
	m.persist(ctx)
	return m.Columns()
}

func (m *Manager) Columns() []Column {
	return Clone(m.cols)
}

func (m *Manager) VisibleOrdered() []Column {
	return VisibleOrdered(m.cols)
}

func (m *Manager) persist(ctx context.Context) {
	if m.store == nil {
		return
	}
	blob, err := Encode(m.cols)
	if err == nil {
		err = m.store.Save(ctx, m.profile, blob)
	}
	if err != nil {
		m.observer.ObserveLayoutPersist(false)
		m.log.Warn("column layout persist failed", map[string]any{"error": err.Error()})
		return
	}
	m.observer.ObserveLayoutPersist(true)
}
