package records

import "strings"

// Criteria son las selecciones del usuario sobre la tabla.
// Cada criterio vacío/nil deja pasar todo.
type Criteria struct {
	Search       string
	HealthStatus string
	Breed        string // nombre resuelto, match exacto
	Active       *bool
	LocationID   *int
}

// IsZero indica que no hay ningún criterio activo.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Search) == "" &&
		c.HealthStatus == "" &&
		c.Breed == "" &&
		c.Active == nil &&
		c.LocationID == nil
}

// keep es un filtro estable: conserva el orden relativo de la entrada.
func keep(recs []Record, pred func(Record) bool) []Record {
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// filter: búsqueda (ranking o campo) y luego filtros exactos en orden fijo.
func (ev evaluation) filter(recs []Record, c Criteria) Outcome {
	q := ParseQuery(c.Search)

	var (
		out    []Record
		scores []Scored
	)

	switch q.Mode {
	case QueryField:
		out = ev.matchField(recs, q.Field)
	case QueryTerms:
		scores = ev.rank(recs, q.Terms)
		out = make([]Record, 0, len(scores))
		for _, s := range scores {
			out = append(out, s.Record)
		}
	default:
		out = make([]Record, len(recs))
		copy(out, recs)
	}

	if c.HealthStatus != "" {
		out = keep(out, func(r Record) bool { return r.HealthStatus == c.HealthStatus })
	}
	if c.Breed != "" {
		out = keep(out, func(r Record) bool { return ev.resolver.BreedName(r.BreedID) == c.Breed })
	}
	if c.Active != nil {
		want := *c.Active
		out = keep(out, func(r Record) bool { return r.IsActive == want })
	}
	if c.LocationID != nil {
		want := *c.LocationID
		out = keep(out, func(r Record) bool { return r.LocationID == want })
	}

	return Outcome{
		Query:   q,
		Records: out,
		Scores:  scores,
	}
}
