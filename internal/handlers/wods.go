package handlers

import (
	"net/http"
	"strings"

	"github.com/chachabrian/wodlog-backend/internal/models"
	"github.com/chachabrian/wodlog-backend/internal/services"
	"github.com/chachabrian/wodlog-backend/internal/stats"
	"github.com/chachabrian/wodlog-backend/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ListWODs(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		wods, err := d.Store.ListWODs(c.Request.Context(), currentUser(c))
		if err != nil {
			respondError(c, d.Logger, err, "Failed to get WODs")
			return
		}
		c.JSON(http.StatusOK, wods)
	}
}

// CreateWOD adds a custom workout owned by the caller.
func CreateWOD(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name            string  `json:"name"`
			Format          string  `json:"format"`
			Description     string  `json:"description"`
			PrescribedLoads *string `json:"prescribed_loads"`
			Tags            *string `json:"tags"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err.Error())
			return
		}
		name := strings.TrimSpace(input.Name)
		description := strings.TrimSpace(input.Description)
		format := strings.TrimSpace(input.Format)
		if name == "" || format == "" || description == "" {
			badRequest(c, "Name, format, and description are required")
			return
		}

		userID := currentUser(c)
		wod := models.WOD{
			UserID:          &userID,
			Name:            name,
			Format:          models.WODFormat(format),
			Description:     description,
			PrescribedLoads: optionalString(input.PrescribedLoads),
			Tags:            optionalString(input.Tags),
			IsCustom:        true,
		}
		if err := d.Store.CreateWOD(c.Request.Context(), &wod); err != nil {
			respondError(c, d.Logger, err, "Failed to create WOD")
			return
		}
		c.JSON(http.StatusCreated, wod)
	}
}

// WODStats summarises the caller's attempts at a workout according to its format.
func WODStats(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		wodID, ok := parseID(c.Param("id"))
		if !ok {
			badRequest(c, "Invalid WOD id")
			return
		}
		ctx := c.Request.Context()
		userID := currentUser(c)

		wod, err := d.Store.GetWOD(ctx, userID, wodID)
		if err != nil {
			respondError(c, d.Logger, err, "Failed to get stats")
			return
		}

		key := services.WODStatsKey(userID, wodID)
		var summary stats.WODSummary
		if hit, err := d.Cache.Get(ctx, key, &summary); err != nil {
			d.Logger.Warn("stats cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			c.JSON(http.StatusOK, summary)
			return
		}

		results, err := d.Store.ListWODResults(ctx, store.RecordFilter{UserID: userID, ParentID: &wodID})
		if err != nil {
			respondError(c, d.Logger, err, "Failed to get stats")
			return
		}
		summary = stats.WODStats(results, wod.Format)
		if err := d.Cache.Set(ctx, key, summary); err != nil {
			d.Logger.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
		}
		c.JSON(http.StatusOK, summary)
	}
}
