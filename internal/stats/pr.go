package stats

import "github.com/chachabrian/wodlog-backend/internal/models"

// MovementStats summarises a user's history on one movement.
type MovementStats struct {
	Best1RM      float64 `json:"best_1rm"`
	First1RM     float64 `json:"first_1rm"`
	Last1RM      float64 `json:"last_1rm"`
	DeltaPercent float64 `json:"delta_percent"`
	TotalRecords int     `json:"total_records"`
}

// PRMovementStats computes best, first and last estimated 1RM over records for one
// movement. Records without an estimate only count toward TotalRecords.
func PRMovementStats(records []models.PRRecord) MovementStats {
	out := MovementStats{TotalRecords: len(records)}

	estimated := make([]models.PRRecord, 0, len(records))
	for _, r := range records {
		if r.Est1RM != nil {
			estimated = append(estimated, r)
		}
	}
	if len(estimated) == 0 {
		return out
	}

	order := chronological(len(estimated), func(i int) dated {
		return dated{date: estimated[i].Date, createdAt: estimated[i].CreatedAt, id: estimated[i].ID}
	})
	out.First1RM = *estimated[order[0]].Est1RM
	out.Last1RM = *estimated[order[len(order)-1]].Est1RM
	for _, r := range estimated {
		if *r.Est1RM > out.Best1RM {
			out.Best1RM = *r.Est1RM
		}
	}
	out.DeltaPercent = DeltaPercent(out.First1RM, out.Last1RM)
	return out
}

// DeltaPercent is the change from first to last in percent, rounded to one decimal.
// Zero when first is not positive.
func DeltaPercent(first, last float64) float64 {
	if first <= 0 {
		return 0
	}
	d := round((last-first)/first*100, 1)
	if !finite(d) {
		return 0
	}
	return d
}

// BestOneRepMax returns the highest estimate among records, or 0.
func BestOneRepMax(records []models.PRRecord) float64 {
	best := 0.0
	for _, r := range records {
		if r.Est1RM != nil && *r.Est1RM > best {
			best = *r.Est1RM
		}
	}
	return best
}
