package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cattle-records/internal/domain/masterdata"
	"cattle-records/internal/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

var (
	ErrSourceUnavailable     = errors.New("records source unavailable")
	ErrMasterDataUnavailable = errors.New("master data unavailable")
)

// Observer recibe métricas de cada búsqueda (ver platform/metrics).
type Observer interface {
	ObserveSearch(mode QueryMode, total, matched int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveSearch(QueryMode, int, int, time.Duration) {}

type Service struct {
	source     Source
	masterData masterdata.Source

	now    func() time.Time
	newID  func() string
	locale language.Tag

	log      logger.Logger
	observer Observer
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

func WithCollation(tag language.Tag) Option {
	return func(s *Service) {
		s.locale = tag
	}
}

func NewService(source Source, masterData masterdata.Source, opts ...Option) *Service {
	s := &Service{
		source:     source,
		masterData: masterData,
		now:        time.Now,
		newID:      uuid.NewString,
		locale:     language.Und,
		log:        logger.NewNop(),
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type SearchInput struct {
	Criteria Criteria
	Sort     SortSpec
}

// Result es la vista lista para render: registros ordenados + metadatos.
type Result struct {
	QueryID    string
	Query      Query
	Records    []Record
	Scores     []Scored
	Sort       SortSpec
	Indicators map[string]Indicator
	Stats      Stats
	Total      int // tamaño del snapshot antes de filtrar

	engine *Engine
}

// Project proyecta los registros del resultado sobre las columnas dadas.
func (r Result) Project(keys []string) []Row {
	if r.engine == nil {
		return []Row{}
	}
	return r.engine.Project(r.Records, keys)
}

func (s *Service) Search(ctx context.Context, in SearchInput) (Result, error) {
	started := s.now()

	eng, err := s.Engine(ctx)
	if err != nil {
		return Result{}, err
	}

	recs, err := s.snapshot(ctx)
	if err != nil {
		return Result{}, err
	}

	out := eng.Run(recs, in.Criteria, in.Sort)
	res := Result{
		QueryID:    s.newID(),
		Query:      out.Query,
		Records:    out.Records,
		Scores:     out.Scores,
		Sort:       in.Sort.Clone(),
		Indicators: in.Sort.Indicators(),
		Stats:      Summarize(out.Records),
		Total:      len(recs),
		engine:     eng,
	}

	elapsed := s.now().Sub(started)
	s.observer.ObserveSearch(out.Query.Mode, len(recs), len(out.Records), elapsed)

	log := s.log.With(map[string]any{"query_id": res.QueryID})
	if out.Query.Mode == QueryField && !out.Query.Field.Known() {
		log.Debug("unknown field in field query", map[string]any{"field": out.Query.Field.Field})
	}
	log.Debug("records search", map[string]any{
		"mode":    string(out.Query.Mode),
		"total":   len(recs),
		"matched": len(out.Records),
		"sort":    in.Sort.String(),
	})

	return res, nil
}

// Engine arma un engine con las tablas de referencia vigentes.
func (s *Service) Engine(ctx context.Context) (*Engine, error) {
	tables, err := s.tables(ctx)
	if err != nil {
		return nil, err
	}
	return NewEngine(
		masterdata.NewResolver(tables),
		WithClock(s.now),
		WithLocale(s.locale),
	), nil
}

// HealthStatuses lista los estados de salud presentes en el snapshot.
func (s *Service) HealthStatuses(ctx context.Context) ([]string, error) {
	recs, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return HealthStatuses(recs), nil
}

func (s *Service) snapshot(ctx context.Context) ([]Record, error) {
	if s.source == nil {
		return nil, ErrSourceUnavailable
	}
	recs, err := s.source.Snapshot(ctx)
	if err != nil {
		s.log.Error("records snapshot failed", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return recs, nil
}

// tables: sin fuente de master data se usan placeholders, no es un error.
func (s *Service) tables(ctx context.Context) (masterdata.Tables, error) {
	if s.masterData == nil {
		return masterdata.NewTables(), nil
	}
	t, err := s.masterData.Tables(ctx)
	if err != nil {
		s.log.Error("master data load failed", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrMasterDataUnavailable, err)
	}
	return t, nil
}
