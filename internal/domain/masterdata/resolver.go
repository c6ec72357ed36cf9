package masterdata

import "context"

// Resolver traduce ids numéricos a nombres visibles.
// Nunca falla: un id ausente devuelve Placeholder.
type Resolver interface {
	Name(c Category, id int) string
	BreedName(id int) string
	SpeciesName(id int) string
	GenderName(id int) string
	ColorName(id int) string
	LocationName(id int) string
}

// Source entrega las tablas de referencia (postgres, REST, archivo, memoria).
type Source interface {
	Tables(ctx context.Context) (Tables, error)
}

// TableResolver implementa Resolver sobre un snapshot de Tables.
type TableResolver struct {
	tables Tables
}

var _ Resolver = (*TableResolver)(nil)

func NewResolver(t Tables) *TableResolver {
	if t == nil {
		t = NewTables()
	}
	return &TableResolver{tables: t}
}

func (r *TableResolver) Name(c Category, id int) string {
	if r != nil {
		if m, ok := r.tables[c]; ok {
			if name, ok := m[id]; ok && name != "" {
				return name
			}
		}
	}
	return Placeholder(c, id)
}

func (r *TableResolver) BreedName(id int) string    { return r.Name(CategoryBreed, id) }
func (r *TableResolver) SpeciesName(id int) string  { return r.Name(CategorySpecies, id) }
func (r *TableResolver) GenderName(id int) string   { return r.Name(CategoryGender, id) }
func (r *TableResolver) ColorName(id int) string    { return r.Name(CategoryColor, id) }
func (r *TableResolver) LocationName(id int) string { return r.Name(CategoryLocation, id) }
