package user

import (
	"net/http"
	"strconv"

	"procureapp/accounts-api/internal"

	"github.com/gin-gonic/gin"
)

// Fetch returns a single user by id
func Fetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid user ID",
			"requestID": requestID,
		})
		return
	}

	u, err := d.Accounts.Get(c.Request.Context(), uint(id))
	if err != nil {
		writeError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, u)
}
