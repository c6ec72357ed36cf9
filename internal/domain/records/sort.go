package records

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, true
	case Desc:
		return Desc, true
	default:
		return "", false
	}
}

// Claves de columna ordenables. Coinciden con las keys del layout.
const (
	ColumnName         = "name"
	ColumnUniqueID     = "uniqueId"
	ColumnRFIDTag      = "rfidTag"
	ColumnBreed        = "breed"
	ColumnSpecies      = "species"
	ColumnGender       = "gender"
	ColumnColor        = "color"
	ColumnLocation     = "location"
	ColumnEarTag       = "earTag"
	ColumnMicrochipID  = "microchipId"
	ColumnAge          = "age"
	ColumnWeight       = "weight"
	ColumnHealthStatus = "healthStatus"
	ColumnIsActive     = "isActive"
	ColumnCreatedAt    = "createdAt"
	ColumnShedNumber   = "shedNumber"
)

type SortKey struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// SortSpec: el orden de las entradas es la prioridad (la primera es la clave primaria).
type SortSpec []SortKey

// Gesture es un click de encabezado; Shift indica click con shift.
type Gesture struct {
	ColumnKey string `json:"column"`
	Shift     bool   `json:"shift"`
}

// Indicator alimenta la flecha y el badge de prioridad (1-based) de una columna.
type Indicator struct {
	Direction Direction `json:"direction"`
	Priority  int       `json:"priority"`
}

func (s SortSpec) index(col string) int {
	for i, k := range s {
		if k.Column == col {
			return i
		}
	}
	return -1
}

func (s SortSpec) Clone() SortSpec {
	out := make(SortSpec, len(s))
	copy(out, s)
	return out
}

// Click (sin shift): reemplaza todo el spec.
// ausente -> [C asc]; asc -> [C desc]; desc -> [].
func (s SortSpec) Click(col string) SortSpec {
	i := s.index(col)
	if i < 0 {
		return SortSpec{{Column: col, Direction: Asc}}
	}
	if s[i].Direction == Asc {
		return SortSpec{{Column: col, Direction: Desc}}
	}
	return SortSpec{}
}

// ShiftClick: edita solo la entrada de col.
// ausente -> append asc; asc -> desc en el lugar; desc -> se quita.
func (s SortSpec) ShiftClick(col string) SortSpec {
	out := s.Clone()
	i := out.index(col)
	switch {
	case i < 0:
		return append(out, SortKey{Column: col, Direction: Asc})
	case out[i].Direction == Asc:
		out[i].Direction = Desc
		return out
	default:
		return slices.Delete(out, i, i+1)
	}
}

func (s SortSpec) Apply(g Gesture) SortSpec {
	col := strings.TrimSpace(g.ColumnKey)
	if col == "" {
		return s.Clone()
	}
	if g.Shift {
		return s.ShiftClick(col)
	}
	return s.Click(col)
}

func (s SortSpec) Indicator(col string) (Indicator, bool) {
	i := s.index(col)
	if i < 0 {
		return Indicator{}, false
	}
	return Indicator{Direction: s[i].Direction, Priority: i + 1}, true
}

// Indicators devuelve el indicador de cada columna activa.
func (s SortSpec) Indicators() map[string]Indicator {
	out := make(map[string]Indicator, len(s))
	for i, k := range s {
		out[k.Column] = Indicator{Direction: k.Direction, Priority: i + 1}
	}
	return out
}

// String serializa como "age:asc,name:desc".
func (s SortSpec) String() string {
	parts := make([]string, 0, len(s))
	for _, k := range s {
		parts = append(parts, fmt.Sprintf("%s:%s", k.Column, k.Direction))
	}
	return strings.Join(parts, ",")
}

// ParseSortSpec lee "age:asc,name:desc". Sin dirección => asc.
// Entradas mal formadas o repetidas se ignoran.
func ParseSortSpec(raw string) SortSpec {
	out := SortSpec{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		col, dirRaw, hasDir := strings.Cut(part, ":")
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		dir := Asc
		if hasDir {
			d, ok := ParseDirection(dirRaw)
			if !ok {
				continue
			}
			dir = d
		}
		if out.index(col) >= 0 {
			continue
		}
		out = append(out, SortKey{Column: col, Direction: dir})
	}
	return out
}

// SortState guarda el spec de una sesión. No se persiste.
// No es seguro para uso concurrente: el host serializa el acceso.
type SortState struct {
	spec SortSpec
}

func NewSortState(initial SortSpec) *SortState {
	return &SortState{spec: initial.Clone()}
}

func (st *SortState) Click(col string) SortSpec {
	st.spec = st.spec.Click(col)
	return st.Spec()
}

func (st *SortState) ShiftClick(col string) SortSpec {
	st.spec = st.spec.ShiftClick(col)
	return st.Spec()
}

func (st *SortState) Apply(g Gesture) SortSpec {
	st.spec = st.spec.Apply(g)
	return st.Spec()
}

func (st *SortState) Spec() SortSpec {
	return st.spec.Clone()
}

func (st *SortState) Reset() {
	st.spec = SortSpec{}
}

// comparator compara por una columna; resultado < 0 si a va antes en asc.
type comparator func(a, b Record) int

func (ev evaluation) comparators(col *collate.Collator) map[string]comparator {
	text := func(get func(Record) string) comparator {
		return func(a, b Record) int {
			return col.CompareString(get(a), get(b))
		}
	}

	return map[string]comparator{
		ColumnName:        text(func(r Record) string { return r.Name }),
		ColumnUniqueID:    text(func(r Record) string { return r.UniqueID }),
		ColumnRFIDTag:     text(func(r Record) string { return r.RFIDTag }),
		ColumnEarTag:      text(func(r Record) string { return r.EarTag }),
		ColumnMicrochipID: text(func(r Record) string { return r.MicrochipID }),
		ColumnShedNumber:  text(func(r Record) string { return r.ShedNumber }),

		ColumnBreed:    text(func(r Record) string { return ev.resolver.BreedName(r.BreedID) }),
		ColumnSpecies:  text(func(r Record) string { return ev.resolver.SpeciesName(r.SpeciesID) }),
		ColumnGender:   text(func(r Record) string { return ev.resolver.GenderName(r.GenderID) }),
		ColumnColor:    text(func(r Record) string { return ev.resolver.ColorName(r.ColorID) }),
		ColumnLocation: text(func(r Record) string { return ev.resolver.LocationName(r.LocationID) }),

		ColumnAge: func(a, b Record) int {
			return cmp.Compare(ev.age(a), ev.age(b))
		},
		ColumnWeight: func(a, b Record) int {
			return cmp.Compare(weightValue(a), weightValue(b))
		},
		ColumnHealthStatus: func(a, b Record) int {
			return strings.Compare(a.HealthStatus, b.HealthStatus)
		},
		ColumnIsActive: func(a, b Record) int {
			return cmp.Compare(boolInt(a.IsActive), boolInt(b.IsActive))
		},
		ColumnCreatedAt: func(a, b Record) int {
			return cmp.Compare(createdAtMillis(a), createdAtMillis(b))
		},
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// sort ordena una copia; empates totales conservan el orden de entrada.
func (ev evaluation) sort(recs []Record, spec SortSpec, locale language.Tag) []Record {
	out := make([]Record, len(recs))
	copy(out, recs)
	if len(spec) == 0 || len(out) < 2 {
		return out
	}

	// collate.Collator no es seguro para uso concurrente: uno por corrida.
	byColumn := ev.comparators(collate.New(locale))

	type step struct {
		cmp  comparator
		sign int
	}
	steps := make([]step, 0, len(spec))
	for _, k := range spec {
		c, ok := byColumn[k.Column]
		if !ok {
			continue
		}
		sign := 1
		if k.Direction == Desc {
			sign = -1
		}
		steps = append(steps, step{cmp: c, sign: sign})
	}
	if len(steps) == 0 {
		return out
	}

	slices.SortStableFunc(out, func(a, b Record) int {
		for _, s := range steps {
			if r := s.cmp(a, b); r != 0 {
				return r * s.sign
			}
		}
		return 0
	})
	return out
}
