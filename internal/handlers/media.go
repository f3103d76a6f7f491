package handlers

import (
	"errors"
	"net/http"

	"github.com/chachabrian/wodlog-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// UploadMedia stores a photo or video and returns the URL to put in media_link.
func UploadMedia(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxMediaSize+1<<20)

		file, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "Media file is required")
			return
		}

		url, err := d.Media.Save(c.Request.Context(), file, currentUser(c))
		if errors.Is(err, services.ErrUnsupportedMedia) {
			badRequest(c, err.Error())
			return
		}
		if err != nil {
			respondError(c, d.Logger, err, "Failed to upload media")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}
