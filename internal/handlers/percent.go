package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/chachabrian/wodlog-backend/internal/models"
	"github.com/chachabrian/wodlog-backend/internal/stats"
	"github.com/chachabrian/wodlog-backend/internal/store"
	"github.com/gin-gonic/gin"
)

// PercentCalculator returns 10%..95% of a base 1RM: ?base_1rm when positive,
// else the caller's best estimate for the movement.
func PercentCalculator(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		movementID, ok := parseID(c.Param("movement_id"))
		if !ok {
			badRequest(c, "Invalid movement id")
			return
		}

		var override *float64
		if raw := c.Query("base_1rm"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
				badRequest(c, "base_1rm must be a number")
				return
			}
			override = &v
		}

		var records []models.PRRecord
		if override == nil || *override <= 0 {
			var err error
			records, err = d.Store.ListPRRecords(c.Request.Context(), store.RecordFilter{UserID: currentUser(c), ParentID: &movementID})
			if err != nil {
				respondError(c, d.Logger, err, "Failed to calculate percentages")
				return
			}
		}

		base, err := stats.ResolveOneRepMax(override, records)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No PR records found for this movement"})
			return
		}
		table, err := stats.PercentOfMaxTable(base)
		if err != nil {
			respondError(c, d.Logger, err, "Failed to calculate percentages")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"base_1rm": stats.Round1(base),
			"table":    table,
		})
	}
}
