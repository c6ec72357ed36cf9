package records

import (
	"context"
	"strconv"
	"time"
)

// Record es un animal del registro de ganado, tal como llega del servicio de datos.
// Los campos opcionales vacíos ("" / nil) se tratan como ausentes.
type Record struct {
	Name     string `json:"name" yaml:"name"`
	UniqueID string `json:"uniqueId" yaml:"uniqueId"`
	RFIDTag  string `json:"rfidTag,omitempty" yaml:"rfidTag,omitempty"`

	BreedID    int `json:"breedId" yaml:"breedId"`
	SpeciesID  int `json:"speciesId" yaml:"speciesId"`
	GenderID   int `json:"genderId" yaml:"genderId"`
	ColorID    int `json:"colorId" yaml:"colorId"`
	LocationID int `json:"locationId" yaml:"locationId"`

	EarTag      string `json:"earTag,omitempty" yaml:"earTag,omitempty"`
	MicrochipID string `json:"microchipId,omitempty" yaml:"microchipId,omitempty"`

	Weight      *float64   `json:"weight,omitempty" yaml:"weight,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty" yaml:"dateOfBirth,omitempty"`

	HealthStatus string `json:"healthStatus,omitempty" yaml:"healthStatus,omitempty"`
	ShedNumber   string `json:"shedNumber,omitempty" yaml:"shedNumber,omitempty"`
	IsActive     bool   `json:"isActive" yaml:"isActive"`

	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// Source entrega el snapshot materializado de registros.
// El core nunca escribe registros.
type Source interface {
	Snapshot(ctx context.Context) ([]Record, error)
}

// AgeYears deriva la edad en años cumplidos a la fecha now.
// Sin fecha de nacimiento (o fecha futura) devuelve (0, false).
func AgeYears(dob *time.Time, now time.Time) (int, bool) {
	if dob == nil || dob.IsZero() {
		return 0, false
	}
	b := dob.UTC()
	n := now.UTC()
	if n.Before(b) {
		return 0, false
	}
	years := n.Year() - b.Year()
	if n.Month() < b.Month() || (n.Month() == b.Month() && n.Day() < b.Day()) {
		years--
	}
	return years, true
}

// weightValue: ausente = 0.
func weightValue(r Record) float64 {
	if r.Weight == nil {
		return 0
	}
	return *r.Weight
}

// formatNumber reproduce la forma "corta" de un número: 450, 450.5.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func weightText(r Record) string {
	if r.Weight == nil {
		return ""
	}
	return formatNumber(*r.Weight)
}

func ageText(r Record, now time.Time) string {
	age, ok := AgeYears(r.DateOfBirth, now)
	if !ok {
		return ""
	}
	return strconv.Itoa(age)
}

func createdAtMillis(r Record) int64 {
	if r.CreatedAt == nil {
		return 0
	}
	return r.CreatedAt.UnixMilli()
}
