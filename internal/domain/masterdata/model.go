package masterdata

import (
	"fmt"
	"strings"
)

// Category identifica una tabla de referencia.
type Category string

const (
	CategoryBreed    Category = "breed"
	CategorySpecies  Category = "species"
	CategoryGender   Category = "gender"
	CategoryColor    Category = "color"
	CategoryLocation Category = "location"
)

// Categories en orden estable (útil para iterar y para tests).
var Categories = []Category{
	CategoryBreed,
	CategorySpecies,
	CategoryGender,
	CategoryColor,
	CategoryLocation,
}

// Label devuelve el nombre visible de la categoría ("Breed", "Location", ...).
func (c Category) Label() string {
	switch c {
	case CategoryBreed:
		return "Breed"
	case CategorySpecies:
		return "Species"
	case CategoryGender:
		return "Gender"
	case CategoryColor:
		return "Color"
	case CategoryLocation:
		return "Location"
	default:
		s := strings.TrimSpace(string(c))
		if s == "" {
			return "Unknown"
		}
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

// ParseCategory acepta el nombre en cualquier casing.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Placeholder es el nombre determinístico para un id sin entrada: "Breed #7".
func Placeholder(c Category, id int) string {
	return fmt.Sprintf("%s #%d", c.Label(), id)
}

// Tables es un snapshot read-only de las tablas de referencia.
type Tables map[Category]map[int]string

// NewTables crea un set vacío con todas las categorías inicializadas.
func NewTables() Tables {
	t := make(Tables, len(Categories))
	for _, c := range Categories {
		t[c] = map[int]string{}
	}
	return t
}

// Set agrega (o reemplaza) un nombre. Ignora categorías desconocidas.
func (t Tables) Set(c Category, id int, name string) {
	if _, ok := ParseCategory(string(c)); !ok {
		return
	}
	m, ok := t[c]
	if !ok {
		m = map[int]string{}
		t[c] = m
	}
	m[id] = strings.TrimSpace(name)
}

// Len cuenta entradas en todas las categorías.
func (t Tables) Len() int {
	n := 0
	for _, m := range t {
		n += len(m)
	}
	return n
}

// Clone hace copia profunda; los consumidores no deben mutar el snapshot compartido.
func (t Tables) Clone() Tables {
	out := NewTables()
	for c, m := range t {
		for id, name := range m {
			out.Set(c, id, name)
		}
	}
	return out
}
