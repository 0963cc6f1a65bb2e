package user

import (
	"net/http"

	"procureapp/accounts-api/internal"

	"github.com/gin-gonic/gin"
)

// Me returns the record of the authenticated caller
func Me(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	email := c.MustGet("userEmail").(string)

	u, err := d.Accounts.CurrentUser(c.Request.Context(), email)
	if err != nil {
		writeError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, u)
}
