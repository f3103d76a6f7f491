package handlers

import (
	"net/http"
	"time"

	"github.com/chachabrian/wodlog-backend/internal/models"
	"github.com/gin-gonic/gin"
)

type requestOTPInput struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type verifyOTPInput struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	Code  string `json:"code" binding:"required"`
}

// userResponse is the account view returned after login and by the profile endpoints.
func userResponse(u *models.User) gin.H {
	return gin.H{
		"id":               u.ID,
		"email":            u.Email,
		"phone":            u.Phone,
		"name":             u.Name,
		"unit_system":      u.UnitSystem,
		"timezone":         u.Timezone,
		"birth_date":       formatDate(u.BirthDate),
		"gender":           u.Gender,
		"needs_onboarding": u.NeedsOnboarding(),
	}
}

func formatDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

// RequestOTP starts a login by sending a one-time code.
func RequestOTP(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input requestOTPInput
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, "Email or phone is required")
			return
		}

		res, err := d.Auth.RequestChallenge(c.Request.Context(), models.Contact{Email: input.Email, Phone: input.Phone})
		if err != nil {
			respondError(c, d.Logger, err, "Failed to send OTP")
			return
		}

		body := gin.H{
			"message":    "OTP sent successfully",
			"expires_at": res.ExpiresAt,
		}
		if res.DevCode != "" {
			body["dev_code"] = res.DevCode
		}
		c.JSON(http.StatusOK, body)
	}
}

// VerifyOTP exchanges a code for an access token.
func VerifyOTP(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input verifyOTPInput
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, "Code and email or phone are required")
			return
		}

		ctx := c.Request.Context()
		res, err := d.Auth.VerifyChallenge(ctx, models.Contact{Email: input.Email, Phone: input.Phone}, input.Code)
		if err != nil {
			respondError(c, d.Logger, err, "Failed to verify OTP")
			return
		}

		token, err := d.Auth.IssueToken(res.User.ID)
		if err != nil {
			respondError(c, d.Logger, err, "Failed to verify OTP")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user":  userResponse(res.User),
		})
	}
}
