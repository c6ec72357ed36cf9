package records

import (
	"regexp"
	"strings"
)

// QueryMode clasifica el texto de búsqueda.
type QueryMode string

const (
	QueryNone  QueryMode = "none"
	QueryField QueryMode = "field"
	QueryTerms QueryMode = "terms"
)

var fieldQueryPattern = regexp.MustCompile(`^(\w+):(.+)$`)

// Query es el resultado de ParseQuery: exactamente una de las dos formas, o ninguna.
type Query struct {
	Mode  QueryMode
	Field FieldQuery
	Terms []string
	Raw   string
}

// FieldQuery es "campo:valor" ya normalizado.
type FieldQuery struct {
	Field string
	Value string
}

// Known indica si el campo existe en la tabla de predicados.
func (fq FieldQuery) Known() bool {
	return IsKnownField(fq.Field)
}

// ParseQuery nunca falla: todo texto termina en none, field o terms.
func ParseQuery(raw string) Query {
	q := strings.ToLower(strings.TrimSpace(raw))
	if q == "" {
		return Query{Mode: QueryNone, Raw: raw}
	}

	if m := fieldQueryPattern.FindStringSubmatch(q); m != nil {
		return Query{
			Mode: QueryField,
			Field: FieldQuery{
				Field: m[1],
				Value: strings.TrimSpace(m[2]),
			},
			Raw: raw,
		}
	}

	return Query{
		Mode:  QueryTerms,
		Terms: strings.Fields(q),
		Raw:   raw,
	}
}
