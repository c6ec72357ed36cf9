package records

import (
	"time"

	"cattle-records/internal/domain/masterdata"
)

var fixedNow = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// bornYearsAgo devuelve una fecha de nacimiento que da exactamente n años en fixedNow.
func bornYearsAgo(n int) *time.Time {
	d := fixedNow.AddDate(-n, -1, 0)
	return &d
}

func kg(v float64) *float64 { return &v }

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

func fixtureTables() masterdata.Tables {
	t := masterdata.NewTables()
	t.Set(masterdata.CategoryBreed, 1, "Gir")
	t.Set(masterdata.CategoryBreed, 2, "Jersey")
	t.Set(masterdata.CategoryBreed, 3, "Holstein")
	t.Set(masterdata.CategorySpecies, 1, "Bovine")
	t.Set(masterdata.CategoryGender, 1, "Female")
	t.Set(masterdata.CategoryGender, 2, "Male")
	t.Set(masterdata.CategoryColor, 1, "Black")
	t.Set(masterdata.CategoryColor, 2, "Brown")
	t.Set(masterdata.CategoryLocation, 1, "North Pasture")
	t.Set(masterdata.CategoryLocation, 2, "South Barn")
	return t
}

func newTestEngine() *Engine {
	return NewEngine(masterdata.NewResolver(fixtureTables()), WithClock(fixedClock))
}

// herd es un snapshot chico y variado para los tests del pipeline.
func herd() []Record {
	return []Record{
		{
			Name: "Bessie", UniqueID: "COW-001", RFIDTag: "RF1001",
			BreedID: 2, SpeciesID: 1, GenderID: 1, ColorID: 2, LocationID: 1,
			EarTag: "ET-77", Weight: kg(450), DateOfBirth: bornYearsAgo(5),
			HealthStatus: "Healthy", ShedNumber: "S1", IsActive: true,
		},
		{
			Name: "Daisy", UniqueID: "COW-002", RFIDTag: "RF1002",
			BreedID: 1, SpeciesID: 1, GenderID: 1, ColorID: 1, LocationID: 2,
			MicrochipID: "MC-9001", Weight: kg(380.5), DateOfBirth: bornYearsAgo(3),
			HealthStatus: "Sick", ShedNumber: "S2", IsActive: true,
		},
		{
			Name: "Bruno", UniqueID: "BULL-003",
			BreedID: 3, SpeciesID: 1, GenderID: 2, ColorID: 1, LocationID: 1,
			Weight: kg(900), DateOfBirth: bornYearsAgo(7),
			HealthStatus: "Healthy", IsActive: false,
		},
		{
			Name: "Luna", UniqueID: "COW-004",
			BreedID: 2, SpeciesID: 1, GenderID: 1, ColorID: 2, LocationID: 2,
			HealthStatus: "Quarantine", IsActive: true,
		},
	}
}

func names(recs []Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Name)
	}
	return out
}
