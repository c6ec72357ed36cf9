package records

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_EmptySetHasNoNaN(t *testing.T) {
	st := Summarize(nil)

	assert.Equal(t, 0, st.Total)
	assert.False(t, math.IsNaN(st.ActiveRatio))
	assert.False(t, math.IsNaN(st.AverageWeight))
	assert.Equal(t, 0.0, st.ActiveRatio)
	assert.NotNil(t, st.ByHealth)
}

func TestSummarize_Herd(t *testing.T) {
	recs := append(herd(), Record{Name: "NoHealth", UniqueID: "X-9"})
	st := Summarize(recs)

	assert.Equal(t, 5, st.Total)
	assert.Equal(t, 3, st.Active)
	assert.Equal(t, 2, st.Inactive)
	assert.InDelta(t, 0.6, st.ActiveRatio, 1e-9)
	assert.Equal(t, 3, st.WeighedCount)
	assert.InDelta(t, (450+380.5+900)/3, st.AverageWeight, 1e-9)
	assert.Equal(t, map[string]int{"Healthy": 2, "Sick": 1, "Quarantine": 1, "unknown": 1}, st.ByHealth)
}

func TestHealthStatuses_SortedDistinct(t *testing.T) {
	assert.Equal(t, []string{"Healthy", "Quarantine", "Sick"}, HealthStatuses(herd()))
	assert.Equal(t, []string{}, HealthStatuses(nil))
}

func TestAgeYears(t *testing.T) {
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	at := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	cases := []struct {
		name string
		dob  *time.Time
		age  int
		ok   bool
	}{
		{name: "absent", dob: nil, age: 0, ok: false},
		{name: "birthday passed", dob: at(2020, time.January, 1), age: 6, ok: true},
		{name: "birthday today", dob: at(2020, time.March, 10), age: 6, ok: true},
		{name: "birthday tomorrow", dob: at(2020, time.March, 11), age: 5, ok: true},
		{name: "future", dob: at(2027, time.January, 1), age: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			age, ok := AgeYears(tc.dob, now)
			assert.Equal(t, tc.age, age)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestProject_VisibleColumnsInOrder(t *testing.T) {
	eng := newTestEngine()
	created := time.Date(2024, time.May, 2, 8, 30, 0, 0, time.UTC)
	bessie := herd()[0]
	bessie.CreatedAt = &created

	rows := eng.Project([]Record{bessie, herd()[3]}, []string{
		ColumnName, ColumnBreed, ColumnAge, ColumnWeight, ColumnIsActive, ColumnLocation, ColumnCreatedAt, "bogus",
	})

	assert.Equal(t, []Row{
		{UniqueID: "COW-001", Cells: []Cell{
			{Key: ColumnName, Value: "Bessie"},
			{Key: ColumnBreed, Value: "Jersey"},
			{Key: ColumnAge, Value: "5"},
			{Key: ColumnWeight, Value: "450"},
			{Key: ColumnIsActive, Value: "Active"},
			{Key: ColumnLocation, Value: "North Pasture"},
			{Key: ColumnCreatedAt, Value: "2024-05-02T08:30:00Z"},
			{Key: "bogus", Value: ""},
		}},
		{UniqueID: "COW-004", Cells: []Cell{
			{Key: ColumnName, Value: "Luna"},
			{Key: ColumnBreed, Value: "Jersey"},
			{Key: ColumnAge, Value: ""},
			{Key: ColumnWeight, Value: ""},
			{Key: ColumnIsActive, Value: "Active"},
			{Key: ColumnLocation, Value: "South Barn"},
			{Key: ColumnCreatedAt, Value: ""},
			{Key: "bogus", Value: ""},
		}},
	}, rows)
}
