package records

import (
	"strconv"
	"time"
)

// Cell es un valor listo para mostrar en una columna.
type Cell struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Row es un registro proyectado sobre las columnas visibles, en orden.
type Row struct {
	UniqueID string `json:"unique_id"`
	Cells    []Cell `json:"cells"`
}

// Project proyecta registros (ya ordenados) sobre las keys de columna dadas.
func (e *Engine) Project(recs []Record, keys []string) []Row {
	ev := e.evaluation()
	out := make([]Row, 0, len(recs))
	for _, r := range recs {
		cells := make([]Cell, 0, len(keys))
		for _, k := range keys {
			cells = append(cells, Cell{Key: k, Value: ev.cell(r, k)})
		}
		out = append(out, Row{UniqueID: r.UniqueID, Cells: cells})
	}
	return out
}

// CellValue renderiza una sola celda.
func (e *Engine) CellValue(r Record, key string) string {
	return e.evaluation().cell(r, key)
}

func (ev evaluation) cell(r Record, key string) string {
	switch key {
	case ColumnName:
		return r.Name
	case ColumnUniqueID:
		return r.UniqueID
	case ColumnRFIDTag:
		return r.RFIDTag
	case ColumnBreed:
		return ev.resolver.BreedName(r.BreedID)
	case ColumnSpecies:
		return ev.resolver.SpeciesName(r.SpeciesID)
	case ColumnGender:
		return ev.resolver.GenderName(r.GenderID)
	case ColumnColor:
		return ev.resolver.ColorName(r.ColorID)
	case ColumnLocation:
		return ev.resolver.LocationName(r.LocationID)
	case ColumnEarTag:
		return r.EarTag
	case ColumnMicrochipID:
		return r.MicrochipID
	case ColumnShedNumber:
		return r.ShedNumber
	case ColumnAge:
		if age, ok := AgeYears(r.DateOfBirth, ev.now); ok {
			return strconv.Itoa(age)
		}
		return ""
	case ColumnWeight:
		return weightText(r)
	case ColumnHealthStatus:
		return r.HealthStatus
	case ColumnIsActive:
		if r.IsActive {
			return "Active"
		}
		return "Inactive"
	case ColumnCreatedAt:
		if r.CreatedAt == nil {
			return ""
		}
		return r.CreatedAt.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}
