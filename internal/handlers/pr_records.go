package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/chachabrian/wodlog-backend/internal/models"
	"github.com/chachabrian/wodlog-backend/internal/services"
	"github.com/chachabrian/wodlog-backend/internal/stats"
	"github.com/chachabrian/wodlog-backend/internal/store"
	"github.com/gin-gonic/gin"
)

// maxWeight bounds a logged load in either unit.
const maxWeight = 10000

type prRecordInput struct {
	MovementID uint     `json:"movement_id"`
	Date       string   `json:"date"`
	RepScheme  string   `json:"rep_scheme"`
	Weight     *float64 `json:"weight"`
	Reps       *int     `json:"reps"`
	Note       *string  `json:"note"`
	MediaLink  *string  `json:"media_link"`
	Unit       string   `json:"unit"`
	IsPR       bool     `json:"is_pr"`
}

// apply validates input into r and derives the 1RM estimate. It returns a client message on failure.
func (in prRecordInput) apply(r *models.PRRecord) string {
	scheme := strings.TrimSpace(in.RepScheme)
	if in.Date == "" || scheme == "" || in.Unit == "" {
		return "Missing required fields: date, rep_scheme, unit"
	}
	date, ok := parseDate(in.Date)
	if !ok {
		return "date must be YYYY-MM-DD"
	}
	unit := models.UnitSystem(in.Unit)
	if !unit.Valid() {
		return "unit must be kg or lb"
	}
	if in.Weight != nil && (*in.Weight < 0 || *in.Weight > maxWeight) {
		return fmt.Sprintf("weight must be between 0 and %d", maxWeight)
	}
	if in.Reps != nil && *in.Reps < 0 {
		return "reps must not be negative"
	}

	r.Date = date
	r.RepScheme = scheme
	r.Weight = in.Weight
	r.Reps = in.Reps
	r.Note = optionalString(in.Note)
	r.MediaLink = optionalString(in.MediaLink)
	r.Unit = unit
	r.IsPR = in.IsPR
	r.Est1RM = stats.EstimateOneRepMax(in.Weight, in.Reps, scheme)
	return ""
}

// ListPRRecords returns the caller's records, newest first, optionally for one movement.
func ListPRRecords(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		movementID, ok := optionalID(c.Query("movement_id"))
		if !ok {
			badRequest(c, "Invalid movement_id")
			return
		}
		records, err := d.Store.ListPRRecords(c.Request.Context(), store.RecordFilter{UserID: currentUser(c), ParentID: movementID})
		if err != nil {
			respondError(c, d.Logger, err, "Failed to get PR records")
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

func CreatePRRecord(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input prRecordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err.Error())
			return
		}
		if input.MovementID == 0 {
			badRequest(c, "Missing required fields: movement_id, date, rep_scheme, unit")
			return
		}

		ctx := c.Request.Context()
		userID := currentUser(c)
		record := models.PRRecord{UserID: userID, MovementID: input.MovementID}
		if msg := input.apply(&record); msg != "" {
			badRequest(c, msg)
			return
		}
		if _, err := d.Store.GetMovement(ctx, userID, input.MovementID); err != nil {
			respondError(c, d.Logger, err, "Failed to create PR record")
			return
		}

		if err := d.Store.CreatePRRecord(ctx, &record); err != nil {
			respondError(c, d.Logger, err, "Failed to create PR record")
			return
		}
		d.invalidate(ctx, services.MovementStatsKey(userID, record.MovementID))
		d.publish(userID, services.EventPRRecordCreated, record)
		c.JSON(http.StatusCreated, record)
	}
}

// UpdatePRRecord replaces a record's fields and recomputes its estimate.
func UpdatePRRecord(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			badRequest(c, "Invalid record id")
			return
		}
		var input prRecordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err.Error())
			return
		}

		ctx := c.Request.Context()
		userID := currentUser(c)
		record, err := d.Store.GetPRRecord(ctx, userID, id)
		if err != nil {
			respondError(c, d.Logger, err, "Failed to update PR record")
			return
		}
		if msg := input.apply(record); msg != "" {
			badRequest(c, msg)
			return
		}
		if err := d.Store.UpdatePRRecord(ctx, record); err != nil {
			respondError(c, d.Logger, err, "Failed to update PR record")
			return
		}
		d.invalidate(ctx, services.MovementStatsKey(userID, record.MovementID))
		d.publish(userID, services.EventPRRecordUpdated, record)
		c.JSON(http.StatusOK, record)
	}
}

func DeletePRRecord(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			badRequest(c, "Invalid record id")
			return
		}

		ctx := c.Request.Context()
		userID := currentUser(c)
		record, err := d.Store.GetPRRecord(ctx, userID, id)
		if err != nil {
			respondError(c, d.Logger, err, "Failed to delete PR record")
			return
		}
		if err := d.Store.DeletePRRecord(ctx, userID, id); err != nil {
			respondError(c, d.Logger, err, "Failed to delete PR record")
			return
		}
		d.invalidate(ctx, services.MovementStatsKey(userID, record.MovementID))
		d.publish(userID, services.EventPRRecordDeleted, services.RecordDeleted{ID: id})
		c.JSON(http.StatusOK, gin.H{"message": "PR record deleted"})
	}
}
