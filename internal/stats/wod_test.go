package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chachabrian/wodlog-backend/internal/models"
)

func result(id uint, daysIn int) models.WODResult {
	return models.WODResult{
		Record: models.Record{ID: id, CreatedAt: day0},
		Date:  day0.AddDate(0, 0, daysIn),
	}
}

func timed(id uint, daysIn int, sec *int) models.WODResult {
	r := result(id, daysIn)
	r.TimeSec = sec
	return r
}

func scored(id uint, daysIn int, rounds, extra *int) models.WODResult {
	r := result(id, daysIn)
	r.Rounds, r.ExtraReps = rounds, extra
	return r
}

func TestWODStats_ForTime(t *testing.T) {
	results := []models.WODResult{
		timed(2, 7, intp(290)),
		timed(1, 0, intp(330)),
		timed(3, 14, intp(305)),
		timed(4, 21, nil),
	}

	got := WODStats(results, models.FormatForTime)

	assert.Equal(t, 3, got.TotalAttempts)
	require.NotNil(t, got.BestTime)
	assert.Equal(t, 290, *got.BestTime)
	assert.Equal(t, 330, *got.FirstTime)
	assert.Equal(t, 305, *got.LastTime)
	assert.Nil(t, got.BestScore)
}

func TestWODStats_ForTimeNoTimes(t *testing.T) {
	got := WODStats([]models.WODResult{timed(1, 0, nil)}, models.FormatForTime)

	assert.Equal(t, 0, got.TotalAttempts)
	assert.Nil(t, got.BestTime)
}

func TestWODStats_AMRAP(t *testing.T) {
	results := []models.WODResult{
		scored(1, 0, intp(5), intp(10)),
		scored(2, 7, intp(6), intp(0)),
	}

	got := WODStats(results, models.FormatAMRAP)

	assert.Equal(t, 2, got.TotalAttempts)
	require.NotNil(t, got.BestScore)
	assert.Equal(t, 6000, got.BestScore.Composite())
	assert.Equal(t, 5010, got.FirstScore.Composite())
	assert.Equal(t, 6000, got.LastScore.Composite())
}

func TestWODStats_AMRAPComparesRoundsBeforeReps(t *testing.T) {
	results := []models.WODResult{
		scored(1, 0, intp(4), intp(1500)),
		scored(2, 1, intp(5), intp(0)),
		scored(3, 2, nil, intp(12)),
	}

	got := WODStats(results, models.FormatAMRAP)

	assert.Equal(t, AMRAPScore{Rounds: 5}, *got.BestScore)
	assert.Equal(t, AMRAPScore{ExtraReps: 12}, *got.LastScore)
}

func TestWODStats_OtherFormatCountsOnly(t *testing.T) {
	got := WODStats([]models.WODResult{result(1, 0), result(2, 1)}, models.FormatEMOM)

	assert.Equal(t, WODSummary{Format: models.FormatEMOM, TotalAttempts: 2}, got)
}

func TestAMRAPScore_Compare(t *testing.T) {
	a := AMRAPScore{Rounds: 5, ExtraReps: 10}
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, a.Compare(AMRAPScore{Rounds: 6}))
	assert.Equal(t, 1, a.Compare(AMRAPScore{Rounds: 5, ExtraReps: 9}))
}

func TestAMRAPScore_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(AMRAPScore{Rounds: 5, ExtraReps: 10})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rounds":5,"extra_reps":10,"score":5010}`, string(b))
}
