package handlers

import (
	"net/http"
	"strings"

	"github.com/chachabrian/wodlog-backend/internal/models"
	"github.com/chachabrian/wodlog-backend/internal/services"
	"github.com/chachabrian/wodlog-backend/internal/store"
	"github.com/gin-gonic/gin"
)

type wodResultInput struct {
	WODID     uint    `json:"wod_id"`
	Date      string  `json:"date"`
	Format    string  `json:"format"`
	TimeSec   *int    `json:"time_sec"`
	Rounds    *int    `json:"rounds"`
	ExtraReps *int    `json:"extra_reps"`
	LoadsUsed *string `json:"loads_used"`
	RxScaled  string  `json:"rx_scaled"`
	Note      *string `json:"note"`
	MediaLink *string `json:"media_link"`
}

func (in wodResultInput) apply(r *models.WODResult) string {
	if in.Date == "" {
		return "Missing required fields: wod_id, date"
	}
	date, ok := parseDate(in.Date)
	if !ok {
		return "date must be YYYY-MM-DD"
	}
	for _, v := range []*int{in.TimeSec, in.Rounds, in.ExtraReps} {
		if v != nil && *v < 0 {
			return "time_sec, rounds and extra_reps must not be negative"
		}
	}
	rx := strings.TrimSpace(in.RxScaled)
	if rx == "" {
		rx = models.RxPrescribed
	}
	if rx != models.RxPrescribed && rx != models.RxScaled {
		return "rx_scaled must be Rx or Scaled"
	}

	r.Date = date
	r.TimeSec = in.TimeSec
	r.Rounds = in.Rounds
	r.ExtraReps = in.ExtraReps
	r.LoadsUsed = optionalString(in.LoadsUsed)
	r.RxScaled = rx
	r.Note = optionalString(in.Note)
	r.MediaLink = optionalString(in.MediaLink)
	return ""
}

func ListWODResults(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		wodID, ok := optionalID(c.Query("wod_id"))
		if !ok {
			badRequest(c, "Invalid wod_id")
			return
		}
		results, err := d.Store.ListWODResults(c.Request.Context(), store.RecordFilter{UserID: currentUser(c), ParentID: wodID})
		if err != nil {
			respondError(c, d.Logger, err, "Failed to get WOD results")
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

// CreateWODResult logs an attempt. The format defaults to the workout's own.
func CreateWODResult(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input wodResultInput
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err.Error())
			return
		}
		if input.WODID == 0 {
			badRequest(c, "Missing required fields: wod_id, date")
			return
		}

		ctx := c.Request.Context()
		userID := currentUser(c)
		result := models.WODResult{UserID: userID, WODID: input.WODID}
		if msg := input.apply(&result); msg != "" {
			badRequest(c, msg)
			return
		}

		wod, err := d.Store.GetWOD(ctx, userID, input.WODID)
		if err != nil {
			respondError(c, d.Logger, err, "Failed to save WOD result")
			return
		}
		result.Format = wod.Format
		if f := strings.TrimSpace(input.Format); f != "" {
			result.Format = models.WODFormat(f)
		}

		if err := d.Store.CreateWODResult(ctx, &result); err != nil {
			respondError(c, d.Logger, err, "Failed to save WOD result")
			return
		}
		d.invalidate(ctx, services.WODStatsKey(userID, result.WODID))
		d.publish(userID, services.EventWODResultCreated, result)
		c.JSON(http.StatusCreated, result)
	}
}

func UpdateWODResult(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			badRequest(c, "Invalid result id")
			return
		}
		var input wodResultInput
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err.Error())
			return
		}

		ctx := c.Request.Context()
		userID := currentUser(c)
		result, err := d.Store.GetWODResult(ctx, userID, id)
		if err != nil {
			respondError(c, d.Logger, err, "Failed to update WOD result")
			return
		}
		if msg := input.apply(result); msg != "" {
			badRequest(c, msg)
			return
		}
		if err := d.Store.UpdateWODResult(ctx, result); err != nil {
			respondError(c, d.Logger, err, "Failed to update WOD result")
			return
		}
		d.invalidate(ctx, services.WODStatsKey(userID, result.WODID))
		d.publish(userID, services.EventWODResultUpdated, result)
		c.JSON(http.StatusOK, result)
	}
}

func DeleteWODResult(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			badRequest(c, "Invalid result id")
			return
		}

		ctx := c.Request.Context()
		userID := currentUser(c)
		result, err := d.Store.GetWODResult(ctx, userID, id)
		if err != nil {
			respondError(c, d.Logger, err, "Failed to delete WOD result")
			return
		}
		if err := d.Store.DeleteWODResult(ctx, userID, id); err != nil {
			respondError(c, d.Logger, err, "Failed to delete WOD result")
			return
		}
		d.invalidate(ctx, services.WODStatsKey(userID, result.WODID))
		d.publish(userID, services.EventWODResultDeleted, services.RecordDeleted{ID: id})
		c.JSON(http.StatusOK, gin.H{"message": "WOD result deleted"})
	}
}
