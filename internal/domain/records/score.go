package records

import (
	"slices"
	"strings"
)

const (
	scoreExact    = 100
	scorePrefix   = 50
	scoreContains = 25

	weightTags    = 30
	weightBreed   = 20
	weightSpecies = 20
	weightGender  = 15
	weightColor   = 15
	weightHealth  = 15
	weightShed    = 10
	weightNumeric = 10
)

// Scored es un registro que sobrevivió a la búsqueda multi-término.
type Scored struct {
	Record     Record
	Index      int // posición en el snapshot de entrada
	Score      int
	MatchCount int
}

// scoredField es un campo ya en minúsculas con su forma de puntuar.
// tiered: bonos acumulativos exacto/prefijo/contiene; si no, weight plano por "contiene".
type scoredField struct {
	value  string
	weight int
	tiered bool
}

func (ev evaluation) searchFields(r Record) []scoredField {
	lower := strings.ToLower
	return []scoredField{
		{value: lower(r.Name), tiered: true},
		{value: lower(r.UniqueID), tiered: true},
		{value: lower(r.RFIDTag), tiered: true},

		{value: lower(ev.resolver.BreedName(r.BreedID)), weight: weightBreed},
		{value: lower(ev.resolver.SpeciesName(r.SpeciesID)), weight: weightSpecies},
		{value: lower(ev.resolver.GenderName(r.GenderID)), weight: weightGender},
		{value: lower(ev.resolver.ColorName(r.ColorID)), weight: weightColor},

		{value: lower(r.EarTag), weight: weightTags},
		{value: lower(r.MicrochipID), weight: weightTags},
		{value: lower(r.ShedNumber), weight: weightShed},

		{value: weightText(r), weight: weightNumeric},
		{value: ageText(r, ev.now), weight: weightNumeric},

		{value: lower(r.HealthStatus), weight: weightHealth},
	}
}

// pairScore puntúa un (término, campo). Los tres chequeos del modo tiered son
// independientes: una coincidencia exacta suma 100+50+25.
func pairScore(f scoredField, term string) int {
	if f.value == "" || term == "" {
		return 0
	}
	if !f.tiered {
		if strings.Contains(f.value, term) {
			return f.weight
		}
		return 0
	}

	score := 0
	if f.value == term {
		score += scoreExact
	}
	if strings.HasPrefix(f.value, term) {
		score += scorePrefix
	}
	if strings.Contains(f.value, term) {
		score += scoreContains
	}
	return score
}

// scoreFields devuelve (score total, cantidad de términos distintos que matchean algún campo).
// Un término repetido suma score en cada aparición pero cuenta una sola vez para matchCount.
func scoreFields(fields []scoredField, terms []string) (int, int) {
	total := 0
	matched := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		for _, f := range fields {
			if s := pairScore(f, term); s > 0 {
				total += s
				matched[term] = struct{}{}
			}
		}
	}
	return total, len(matched)
}

// rank descarta score <= 0 y ordena por score desc, matchCount desc, posición original.
func (ev evaluation) rank(recs []Record, terms []string) []Scored {
	out := make([]Scored, 0, len(recs))
	for i, r := range recs {
		score, matched := scoreFields(ev.searchFields(r), terms)
		if score <= 0 {
			continue
		}
		out = append(out, Scored{
			Record:     r,
			Index:      i,
			Score:      score,
			MatchCount: matched,
		})
	}

	slices.SortStableFunc(out, func(a, b Scored) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return b.MatchCount - a.MatchCount
	})
	return out
}
