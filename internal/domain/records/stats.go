package records

import "sort"

// Stats resume el resultado para las tarjetas del dashboard.
type Stats struct {
	Total         int            `json:"total"`
	Active        int            `json:"active"`
	Inactive      int            `json:"inactive"`
	ActiveRatio   float64        `json:"active_ratio"`
	AverageWeight float64        `json:"average_weight"`
	WeighedCount  int            `json:"weighed_count"`
	ByHealth      map[string]int `json:"by_health"`
}

// Summarize nunca devuelve NaN: sobre un set vacío los ratios valen 0.
func Summarize(recs []Record) Stats {
	st := Stats{ByHealth: map[string]int{}}
	if len(recs) == 0 {
		return st
	}

	var weightSum float64
	for _, r := range recs {
		st.Total++
		if r.IsActive {
			st.Active++
		} else {
			st.Inactive++
		}
		if r.Weight != nil {
			weightSum += *r.Weight
			st.WeighedCount++
		}
		health := r.HealthStatus
		if health == "" {
			health = "unknown"
		}
		st.ByHealth[health]++
	}

	st.ActiveRatio = ratio(float64(st.Active), float64(st.Total))
	st.AverageWeight = ratio(weightSum, float64(st.WeighedCount))
	return st
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// HealthStatuses devuelve los estados presentes (ordenados), para poblar el filtro.
func HealthStatuses(recs []Record) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, r := range recs {
		if r.HealthStatus == "" {
			continue
		}
		if _, ok := seen[r.HealthStatus]; ok {
			continue
		}
		seen[r.HealthStatus] = struct{}{}
		out = append(out, r.HealthStatus)
	}
	sort.Strings(out)
	return out
}
