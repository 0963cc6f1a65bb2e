package user

import (
	"net/http"
	"strconv"

	"procureapp/accounts-api/internal"

	"github.com/gin-gonic/gin"
)

// List returns a page of users. The limit is capped server side at 100
func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid skip parameter",
			"requestID": requestID,
		})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid limit parameter",
			"requestID": requestID,
		})
		return
	}

	users, err := d.Accounts.List(c.Request.Context(), skip, limit)
	if err != nil {
		writeError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
