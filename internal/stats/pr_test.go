package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chachabrian/wodlog-backend/internal/models"
)

var day0 = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func pr(id uint, daysIn int, created time.Duration, est *float64) models.PRRecord {
	return models.PRRecord{
		Record: models.Record{ID: id, CreatedAt: day0.Add(created)},
		Date:   day0.AddDate(0, 0, daysIn),
		Est1RM: est,
	}
}

func TestPRMovementStats(t *testing.T) {
	records := []models.PRRecord{
		pr(3, 20, 0, f64(110)),
		pr(1, 0, 0, f64(100)),
		pr(2, 10, 0, f64(125)),
		pr(4, 5, 0, nil),
	}

	got := PRMovementStats(records)

	assert.Equal(t, 125.0, got.Best1RM)
	assert.Equal(t, 100.0, got.First1RM)
	assert.Equal(t, 110.0, got.Last1RM)
	assert.Equal(t, 10.0, got.DeltaPercent)
	assert.Equal(t, 4, got.TotalRecords)
}

func TestPRMovementStats_SameDateUsesCreationOrder(t *testing.T) {
	records := []models.PRRecord{
		pr(2, 0, 2*time.Hour, f64(105)),
		pr(1, 0, time.Hour, f64(100)),
		pr(3, 0, 3*time.Hour, f64(90)),
	}

	got := PRMovementStats(records)

	assert.Equal(t, 100.0, got.First1RM)
	assert.Equal(t, 90.0, got.Last1RM)
	assert.Equal(t, -10.0, got.DeltaPercent)
}

func TestPRMovementStats_NoEstimates(t *testing.T) {
	got := PRMovementStats([]models.PRRecord{pr(1, 0, 0, nil)})

	assert.Equal(t, MovementStats{TotalRecords: 1}, got)
	assert.Equal(t, MovementStats{}, PRMovementStats(nil))
}

func TestDeltaPercent(t *testing.T) {
	assert.Equal(t, 10.0, DeltaPercent(100, 110))
	assert.Equal(t, 0.0, DeltaPercent(0, 110))
	assert.Equal(t, 33.3, DeltaPercent(90, 120))
	assert.Equal(t, 0.0, DeltaPercent(1e-300, 1e308), "overflow is not reported")
}
