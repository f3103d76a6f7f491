package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Search matches movement and WOD names visible to the caller, ten of each at most.
// ?type=movements or ?type=wods restricts the search to one kind.
func Search(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			badRequest(c, "Query parameter required")
			return
		}
		kind := c.Query("type")
		if kind != "" && kind != "movements" && kind != "wods" {
			badRequest(c, "type must be movements or wods")
			return
		}

		ctx := c.Request.Context()
		userID := currentUser(c)
		results := gin.H{}

		if kind == "" || kind == "movements" {
			movements, err := d.Store.SearchMovements(ctx, userID, q)
			if err != nil {
				respondError(c, d.Logger, err, "Search failed")
				return
			}
			results["movements"] = movements
		}
		if kind == "" || kind == "wods" {
			wods, err := d.Store.SearchWODs(ctx, userID, q)
			if err != nil {
				respondError(c, d.Logger, err, "Search failed")
				return
			}
			results["wods"] = wods
		}

		c.JSON(http.StatusOK, results)
	}
}
