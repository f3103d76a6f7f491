package stats

import "github.com/chachabrian/wodlog-backend/internal/models"

// PercentRow is one line of a percentage-of-max table.
type PercentRow struct {
	Percent int     `json:"percent"`
	Weight  float64 `json:"weight"`
}

// PercentOfMaxTable lists 10% through 95% of oneRepMax in steps of 5, weights rounded to 0.1.
func PercentOfMaxTable(oneRepMax float64) ([]PercentRow, error) {
	if oneRepMax <= 0 || !finite(oneRepMax) {
		return nil, ErrNoMaxAvailable
	}
	table := make([]PercentRow, 0, 18)
	for p := 10; p <= 95; p += 5 {
		table = append(table, PercentRow{Percent: p, Weight: round(oneRepMax*(float64(p)/100), 1)})
	}
	return table, nil
}

// ResolveOneRepMax picks the base for a percent table: a positive override, else the
// best historical estimate.
func ResolveOneRepMax(override *float64, records []models.PRRecord) (float64, error) {
	if override != nil && *override > 0 && finite(*override) {
		return *override, nil
	}
	if best := BestOneRepMax(records); best > 0 {
		return best, nil
	}
	return 0, ErrNoMaxAvailable
}

// Round1 rounds to one decimal, the precision percent tables are shown in.
func Round1(v float64) float64 {
	return round(v, 1)
}
