package user

import (
	"net/http"
	"strconv"

	"procureapp/accounts-api/internal"

	"github.com/gin-gonic/gin"
)

// Delete removes a user by id. Any authenticated caller may delete any
// account; there is deliberately no ownership check here
func Delete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid user ID",
			"requestID": requestID,
		})
		return
	}

	if err := d.Accounts.Delete(c.Request.Context(), uint(id)); err != nil {
		writeError(c, requestID, err)
		return
	}

	c.Status(http.StatusNoContent)
}
