package handlers

import (
	"github.com/gin-gonic/gin"
)

// WebSocketHandler attaches the caller to the record event stream.
func WebSocketHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		d.Hub.Serve(c.Writer, c.Request, currentUser(c))
	}
}
