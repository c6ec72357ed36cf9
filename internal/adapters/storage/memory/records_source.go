package memory

import (
	"context"
	"slices"
	"sync"

	"cattle-records/internal/domain/masterdata"
	"cattle-records/internal/domain/records"
)

// RecordSource es un snapshot fijo de registros, reemplazable en caliente.
type RecordSource struct {
	mu   sync.RWMutex
	recs []records.Record
}

var _ records.Source = (*RecordSource)(nil)

func NewRecordSource(recs []records.Record) *RecordSource {
	return &RecordSource{recs: slices.Clone(recs)}
}

func (s *RecordSource) Snapshot(ctx context.Context) ([]records.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recs), nil
}

func (s *RecordSource) Replace(recs []records.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = slices.Clone(recs)
}

// MasterDataSource sirve tablas fijas.
type MasterDataSource struct {
	mu     sync.RWMutex
	tables masterdata.Tables
}

var _ masterdata.Source = (*MasterDataSource)(nil)

func NewMasterDataSource(t masterdata.Tables) *MasterDataSource {
	if t == nil {
		t = masterdata.NewTables()
	}
	return &MasterDataSource{tables: t.Clone()}
}

func (s *MasterDataSource) Tables(ctx context.Context) (masterdata.Tables, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tables.Clone(), nil
}

func (s *MasterDataSource) Set(c masterdata.Category, id int, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables.Set(c, id, name)
}
