package records

import (
	"maps"
	"slices"
	"strings"
)

// fieldPredicate recibe el valor ya normalizado (minúsculas, sin espacios extremos).
type fieldPredicate func(ev evaluation, r Record, value string) bool

func containsFold(field, value string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), value)
}

func textPredicate(get func(Record) string) fieldPredicate {
	return func(_ evaluation, r Record, value string) bool {
		return containsFold(get(r), value)
	}
}

var fieldPredicates = map[string]fieldPredicate{
	"name": textPredicate(func(r Record) string { return r.Name }),
	"id":   textPredicate(func(r Record) string { return r.UniqueID }),
	"rfid": textPredicate(func(r Record) string { return r.RFIDTag }),

	"breed": func(ev evaluation, r Record, v string) bool {
		return containsFold(ev.resolver.BreedName(r.BreedID), v)
	},
	"gender": func(ev evaluation, r Record, v string) bool {
		return containsFold(ev.resolver.GenderName(r.GenderID), v)
	},
	"species": func(ev evaluation, r Record, v string) bool {
		return containsFold(ev.resolver.SpeciesName(r.SpeciesID), v)
	},
	"color": func(ev evaluation, r Record, v string) bool {
		return containsFold(ev.resolver.ColorName(r.ColorID), v)
	},

	"weight": textPredicate(weightText),
	"age": func(ev evaluation, r Record, v string) bool {
		return containsFold(ageText(r, ev.now), v)
	},
	"health": textPredicate(func(r Record) string { return r.HealthStatus }),
	"shed":   textPredicate(func(r Record) string { return r.ShedNumber }),

	"ear":       textPredicate(func(r Record) string { return r.EarTag }),
	"eartag":    textPredicate(func(r Record) string { return r.EarTag }),
	"chip":      textPredicate(func(r Record) string { return r.MicrochipID }),
	"microchip": textPredicate(func(r Record) string { return r.MicrochipID }),
}

func lookupField(name string) (fieldPredicate, bool) {
	p, ok := fieldPredicates[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// IsKnownField informa si el nombre de campo tiene predicado.
// Campo desconocido y "conocido sin coincidencias" son casos distintos.
func IsKnownField(name string) bool {
	_, ok := lookupField(name)
	return ok
}

// FieldNames lista (ordenados) los campos aceptados en "campo:valor".
func FieldNames() []string {
	return slices.Sorted(maps.Keys(fieldPredicates))
}

// matchField filtra preservando el orden; campo desconocido => ningún resultado.
func (ev evaluation) matchField(recs []Record, fq FieldQuery) []Record {
	pred, ok := lookupField(fq.Field)
	if !ok {
		return []Record{}
	}
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if pred(ev, r, fq.Value) {
			out = append(out, r)
		}
	}
	return out
}
