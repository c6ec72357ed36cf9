package records

import (
	"time"

	"cattle-records/internal/domain/masterdata"

	"golang.org/x/text/language"
)

// Engine agrupa búsqueda, filtros y orden sobre un snapshot.
// Es determinístico: misma entrada + mismo reloj => misma salida.
type Engine struct {
	resolver masterdata.Resolver
	now      func() time.Time
	locale   language.Tag
}

type EngineOption func(*Engine)

// WithClock fija el reloj usado para derivar edades.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLocale fija la colación de las columnas de texto.
func WithLocale(tag language.Tag) EngineOption {
	return func(e *Engine) {
		e.locale = tag
	}
}

func NewEngine(resolver masterdata.Resolver, opts ...EngineOption) *Engine {
	if resolver == nil {
		resolver = masterdata.NewResolver(nil)
	}
	e := &Engine{
		resolver: resolver,
		now:      time.Now,
		locale:   language.Und,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Outcome es la salida completa del pipeline.
type Outcome struct {
	Query   Query
	Records []Record
	Scores  []Scored // solo en modo terms: ranking antes de los filtros exactos
}

// Run aplica parse -> search -> filtros exactos -> orden.
func (e *Engine) Run(recs []Record, c Criteria, spec SortSpec) Outcome {
	ev := e.evaluation()

	out := ev.filter(recs, c)
	sorted := ev.sort(out.Records, spec, e.locale)

	return Outcome{
		Query:   out.Query,
		Records: sorted,
		Scores:  out.Scores,
	}
}

// Rank puntúa y ordena por relevancia (solo multi-término).
func (e *Engine) Rank(recs []Record, terms []string) []Scored {
	return e.evaluation().rank(recs, terms)
}

// Filter aplica búsqueda y filtros exactos, sin ordenar por columnas.
func (e *Engine) Filter(recs []Record, c Criteria) Outcome {
	return e.evaluation().filter(recs, c)
}

// Sort devuelve una copia ordenada según spec (estable).
func (e *Engine) Sort(recs []Record, spec SortSpec) []Record {
	return e.evaluation().sort(recs, spec, e.locale)
}

// Resolver expone el resolver con el que se construyó el engine.
func (e *Engine) Resolver() masterdata.Resolver {
	return e.resolver
}

// Now devuelve el instante que usaría el engine para derivar edades.
func (e *Engine) Now() time.Time {
	return e.now()
}

func (e *Engine) evaluation() evaluation {
	return evaluation{
		resolver: e.resolver,
		now:      e.now(),
	}
}

// evaluation fija el reloj para toda una corrida.
type evaluation struct {
	resolver masterdata.Resolver
	now      time.Time
}

func (ev evaluation) age(r Record) int {
	age, _ := AgeYears(r.DateOfBirth, ev.now)
	return age
}
