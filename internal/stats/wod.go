package stats

import (
	"encoding/json"

	"github.com/chachabrian/wodlog-backend/internal/models"
)

// AMRAPScore is rounds completed plus reps into the next round.
type AMRAPScore struct {
	Rounds    int `json:"rounds"`
	ExtraReps int `json:"extra_reps"`
}

// Compare orders scores by rounds, then extra reps. Returns -1, 0 or 1.
func (s AMRAPScore) Compare(o AMRAPScore) int {
	switch {
	case s.Rounds != o.Rounds:
		if s.Rounds < o.Rounds {
			return -1
		}
		return 1
	case s.ExtraReps < o.ExtraReps:
		return -1
	case s.ExtraReps > o.ExtraReps:
		return 1
	}
	return 0
}

// Composite packs the score as rounds*1000 + extra reps for display.
func (s AMRAPScore) Composite() int {
	return s.Rounds*1000 + s.ExtraReps
}

func (s AMRAPScore) MarshalJSON() ([]byte, error) {
	type plain AMRAPScore
	return json.Marshal(struct {
		plain
		Score int `json:"score"`
	}{plain(s), s.Composite()})
}

func scoreOf(r models.WODResult) AMRAPScore {
	var s AMRAPScore
	if r.Rounds != nil {
		s.Rounds = *r.Rounds
	}
	if r.ExtraReps != nil {
		s.ExtraReps = *r.ExtraReps
	}
	return s
}

// WODSummary is the derived view of a user's attempts at one workout.
// Time fields are set for For Time, score fields for AMRAP.
type WODSummary struct {
	Format        models.WODFormat `json:"format"`
	TotalAttempts int              `json:"total_attempts"`
	BestTime      *int             `json:"best_time,omitempty"`
	FirstTime     *int             `json:"first_time,omitempty"`
	LastTime      *int             `json:"last_time,omitempty"`
	BestScore     *AMRAPScore      `json:"best_score,omitempty"`
	FirstScore    *AMRAPScore      `json:"first_score,omitempty"`
	LastScore     *AMRAPScore      `json:"last_score,omitempty"`
}

// WODStats derives best, first and last results according to format.
func WODStats(results []models.WODResult, format models.WODFormat) WODSummary {
	switch format {
	case models.FormatForTime:
		return forTimeStats(results)
	case models.FormatAMRAP:
		return amrapStats(results)
	default:
		return WODSummary{Format: format, TotalAttempts: len(results)}
	}
}

func forTimeStats(results []models.WODResult) WODSummary {
	out := WODSummary{Format: models.FormatForTime}
	timed := make([]models.WODResult, 0, len(results))
	for _, r := range results {
		if r.TimeSec != nil {
			timed = append(timed, r)
		}
	}
	out.TotalAttempts = len(timed)
	if len(timed) == 0 {
		return out
	}

	order := chronological(len(timed), func(i int) dated {
		return dated{date: timed[i].Date, createdAt: timed[i].CreatedAt, id: timed[i].ID}
	})
	first := *timed[order[0]].TimeSec
	last := *timed[order[len(order)-1]].TimeSec
	best := *timed[0].TimeSec
	for _, r := range timed[1:] {
		if *r.TimeSec < best {
			best = *r.TimeSec
		}
	}
	out.BestTime, out.FirstTime, out.LastTime = &best, &first, &last
	return out
}

func amrapStats(results []models.WODResult) WODSummary {
	out := WODSummary{Format: models.FormatAMRAP, TotalAttempts: len(results)}
	if len(results) == 0 {
		return out
	}

	order := chronological(len(results), func(i int) dated {
		return dated{date: results[i].Date, createdAt: results[i].CreatedAt, id: results[i].ID}
	})
	first := scoreOf(results[order[0]])
	last := scoreOf(results[order[len(order)-1]])
	best := scoreOf(results[0])
	for _, r := range results[1:] {
		if s := scoreOf(r); s.Compare(best) > 0 {
			best = s
		}
	}
	out.BestScore, out.FirstScore, out.LastScore = &best, &first, &last
	return out
}
