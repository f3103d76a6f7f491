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

// ListMovements returns the catalog plus the caller's custom movements.
func ListMovements(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		movements, err := d.Store.ListMovements(c.Request.Context(), currentUser(c))
		if err != nil {
			respondError(c, d.Logger, err, "Failed to get movements")
			return
		}
		c.JSON(http.StatusOK, movements)
	}
}

// CreateMovement adds a custom movement owned by the caller.
func CreateMovement(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     string  `json:"name"`
			Category string  `json:"category"`
			Notes    *string `json:"notes"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err.Error())
			return
		}
		name := strings.TrimSpace(input.Name)
		if name == "" {
			badRequest(c, "Name is required")
			return
		}
		category := strings.TrimSpace(input.Category)
		if category == "" {
			category = "Other"
		}

		userID := currentUser(c)
		movement := models.Movement{
			UserID:   &userID,
			Name:     name,
			Category: category,
			IsCustom: true,
			Notes:    optionalString(input.Notes),
		}
		if err := d.Store.CreateMovement(c.Request.Context(), &movement); err != nil {
			respondError(c, d.Logger, err, "Failed to create movement")
			return
		}
		c.JSON(http.StatusCreated, movement)
	}
}

// MovementStats returns best, first and last estimated 1RM for one movement.
func MovementStats(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		movementID, ok := parseID(c.Param("id"))
		if !ok {
			badRequest(c, "Invalid movement id")
			return
		}
		ctx := c.Request.Context()
		userID := currentUser(c)

		if _, err := d.Store.GetMovement(ctx, userID, movementID); err != nil {
			respondError(c, d.Logger, err, "Failed to get stats")
			return
		}

		key := services.MovementStatsKey(userID, movementID)
		var summary stats.MovementStats
		if hit, err := d.Cache.Get(ctx, key, &summary); err != nil {
			d.Logger.Warn("stats cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			c.JSON(http.StatusOK, summary)
			return
		}

		records, err := d.Store.ListPRRecords(ctx, store.RecordFilter{UserID: userID, ParentID: &movementID})
		if err != nil {
			respondError(c, d.Logger, err, "Failed to get stats")
			return
		}
		summary = stats.PRMovementStats(records)
		if err := d.Cache.Set(ctx, key, summary); err != nil {
			d.Logger.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
		}
		c.JSON(http.StatusOK, summary)
	}
}
