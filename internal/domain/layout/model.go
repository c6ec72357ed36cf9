package layout

import (
	"slices"
	"strings"
)

// SchemaVersion se incrementa cada vez que cambia el set por defecto.
// Un layout persistido con otra versión se descarta.
const SchemaVersion = "3"

// Column es la preferencia de una columna de la tabla.
type Column struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
	Order   int    `json:"order"`
}

// DefaultColumns devuelve una copia nueva del set por defecto (14 columnas).
// Las keys coinciden con las columnas ordenables de records.
func DefaultColumns() []Column {
	return []Column{
		{Key: "uniqueId", Label: "ID", Visible: true, Order: 0},
		{Key: "name", Label: "Name", Visible: true, Order: 1},
		{Key: "rfidTag", Label: "RFID Tag", Visible: true, Order: 2},
		{Key: "breed", Label: "Breed", Visible: true, Order: 3},
		{Key: "species", Label: "Species", Visible: true, Order: 4},
		{Key: "gender", Label: "Gender", Visible: true, Order: 5},
		{Key: "color", Label: "Color", Visible: false, Order: 6},
		{Key: "age", Label: "Age", Visible: true, Order: 7},
		{Key: "weight", Label: "Weight (kg)", Visible: true, Order: 8},
		{Key: "healthStatus", Label: "Health", Visible: true, Order: 9},
		{Key: "location", Label: "Location", Visible: true, Order: 10},
		{Key: "earTag", Label: "Ear Tag", Visible: false, Order: 11},
		{Key: "microchipId", Label: "Microchip", Visible: false, Order: 12},
		{Key: "isActive", Label: "Status", Visible: true, Order: 13},
	}
}

// Clone copia el slice; Column no tiene referencias internas.
func Clone(cols []Column) []Column {
	return slices.Clone(cols)
}

func indexOf(cols []Column, key string) int {
	key = strings.TrimSpace(key)
	for i, c := range cols {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// Has indica si la key existe en el set.
func Has(cols []Column, key string) bool {
	return indexOf(cols, key) >= 0
}

// Toggle invierte Visible de la columna key. Devuelve (nuevo set, cambió).
func Toggle(cols []Column, key string) ([]Column, bool) {
	out := Clone(cols)
	i := indexOf(out, key)
	if i < 0 {
		return out, false
	}
	out[i].Visible = !out[i].Visible
	return out, true
}

// Reorder intercambia los Order de source y target (no mueve posiciones en el slice).
// No-op si son la misma key o alguna no existe.
func Reorder(cols []Column, source, target string) ([]Column, bool) {
	out := Clone(cols)
	si := indexOf(out, source)
	ti := indexOf(out, target)
	if si < 0 || ti < 0 || si == ti {
		return out, false
	}
	out[si].Order, out[ti].Order = out[ti].Order, out[si].Order
	return out, true
}

// VisibleOrdered filtra las visibles y las ordena por Order ascendente.
func VisibleOrdered(cols []Column) []Column {
	out := make([]Column, 0, len(cols))
	for _, c := range cols {
		if c.Visible {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b Column) int {
		return a.Order - b.Order
	})
	return out
}

// Keys devuelve las keys en el orden del slice recibido.
func Keys(cols []Column) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, c.Key)
	}
	return out
}

// valid: keys únicas y no vacías.
func valid(cols []Column) bool {
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if strings.TrimSpace(c.Key) == "" {
			return false
		}
		if _, dup := seen[c.Key]; dup {
			return false
		}
		seen[c.Key] = struct{}{}
	}
	return true
}
