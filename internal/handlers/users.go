package handlers

import (
	"net/http"
	"strings"

	"github.com/chachabrian/wodlog-backend/internal/models"
	"github.com/chachabrian/wodlog-backend/internal/store"
	"github.com/gin-gonic/gin"
)

// GetProfile retrieves the user's profile
func GetProfile(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := d.Store.GetUser(c.Request.Context(), currentUser(c))
		if err != nil {
			respondError(c, d.Logger, err, "Failed to get profile")
			return
		}
		if user == nil {
			respondError(c, d.Logger, store.ErrNotFound, "Failed to get profile")
			return
		}
		c.JSON(http.StatusOK, userResponse(user))
	}
}

// UpdateProfile replaces the editable profile fields. Name and unit_system are required.
func UpdateProfile(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name       string  `json:"name"`
			UnitSystem string  `json:"unit_system"`
			Timezone   string  `json:"timezone"`
			BirthDate  *string `json:"birth_date"`
			Gender     *string `json:"gender"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err.Error())
			return
		}

		name := strings.TrimSpace(input.Name)
		if name == "" || input.UnitSystem == "" {
			badRequest(c, "Name and unit_system are required")
			return
		}
		unit := models.UnitSystem(input.UnitSystem)
		if !unit.Valid() {
			badRequest(c, "unit_system must be kg or lb")
			return
		}

		update := models.ProfileUpdate{
			Name:       name,
			UnitSystem: unit,
			Timezone:   strings.TrimSpace(input.Timezone),
			Gender:     optionalString(input.Gender),
		}
		if update.Timezone == "" {
			update.Timezone = models.DefaultTimezone
		}
		if bd := optionalString(input.BirthDate); bd != nil {
			t, ok := parseDate(*bd)
			if !ok {
				badRequest(c, "birth_date must be YYYY-MM-DD")
				return
			}
			update.BirthDate = &t
		}

		user, err := d.Store.UpdateProfile(c.Request.Context(), currentUser(c), update)
		if err != nil {
			respondError(c, d.Logger, err, "Failed to update profile")
			return
		}
		c.JSON(http.StatusOK, userResponse(user))
	}
}
