package memory

import (
	"fmt"
	"math/rand/v2"
	"time"

	"cattle-records/internal/domain/masterdata"
	"cattle-records/internal/domain/records"

	"github.com/google/uuid"
)

var (
	sampleBreeds    = []string{"Gir", "Jersey", "Holstein", "Angus", "Hereford", "Brahman"}
	sampleSpecies   = []string{"Bovine", "Buffalo"}
	sampleGenders   = []string{"Female", "Male"}
	sampleColors    = []string{"Black", "Brown", "White", "Red", "Spotted"}
	sampleLocations = []string{"North Pasture", "South Barn", "East Paddock", "Quarantine Pen"}
	sampleNames     = []string{"Bessie", "Daisy", "Luna", "Bruno", "Canela", "Estrella", "Manchas", "Toro", "Lola", "Nube"}
	sampleHealth    = []string{"Healthy", "Healthy", "Healthy", "Sick", "Under Treatment", "Quarantine"}
)

// SampleTables son las tablas de referencia que usa SampleHerd (ids 1-based).
func SampleTables() masterdata.Tables {
	t := masterdata.NewTables()
	fill := func(c masterdata.Category, names []string) {
		for i, n := range names {
			t.Set(c, i+1, n)
		}
	}
	fill(masterdata.CategoryBreed, sampleBreeds)
	fill(masterdata.CategorySpecies, sampleSpecies)
	fill(masterdata.CategoryGender, sampleGenders)
	fill(masterdata.CategoryColor, sampleColors)
	fill(masterdata.CategoryLocation, sampleLocations)
	return t
}

// SampleHerd genera n registros plausibles. Con el mismo seed el contenido es el mismo
// salvo los uniqueId (uuid).
func SampleHerd(n int, now time.Time, seed uint64) []records.Record {
	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pick := func(max int) int { return rnd.IntN(max) + 1 }

	out := make([]records.Record, 0, n)
	for i := 0; i < n; i++ {
		id := uuid.New()

		r := records.Record{
			Name:         fmt.Sprintf("%s %d", sampleNames[rnd.IntN(len(sampleNames))], i+1),
			UniqueID:     id.String(),
			BreedID:      pick(len(sampleBreeds)),
			SpeciesID:    pick(len(sampleSpecies)),
			GenderID:     pick(len(sampleGenders)),
			ColorID:      pick(len(sampleColors)),
			LocationID:   pick(len(sampleLocations)),
			HealthStatus: sampleHealth[rnd.IntN(len(sampleHealth))],
			ShedNumber:   fmt.Sprintf("S%d", pick(12)),
			IsActive:     rnd.IntN(10) > 0,
		}

		// campos opcionales: algunos registros vienen incompletos a propósito
		if rnd.IntN(4) > 0 {
			r.RFIDTag = fmt.Sprintf("RF%06d", rnd.IntN(1_000_000))
		}
		if rnd.IntN(3) > 0 {
			r.EarTag = fmt.Sprintf("ET-%03d", i+1)
		}
		if rnd.IntN(3) == 0 {
			r.MicrochipID = fmt.Sprintf("MC-%04d", rnd.IntN(10_000))
		}
		if rnd.IntN(5) > 0 {
			w := float64(250+rnd.IntN(700)) + float64(rnd.IntN(2))*0.5
			r.Weight = &w
		}
		if rnd.IntN(6) > 0 {
			dob := now.AddDate(-rnd.IntN(12), -rnd.IntN(12), -rnd.IntN(28)).UTC().Truncate(24 * time.Hour)
			r.DateOfBirth = &dob
		}
		created := now.Add(-time.Duration(rnd.IntN(900*24)) * time.Hour).UTC().Truncate(time.Second)
		r.CreatedAt = &created

		out = append(out, r)
	}
	return out
}
