package user

import (
	"net/http"

	"procureapp/accounts-api/internal"

	"github.com/gin-gonic/gin"
)

// ResendConfirmation mails a fresh confirmation link to the caller
func ResendConfirmation(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	email := c.MustGet("userEmail").(string)

	u, err := d.Accounts.CurrentUser(c.Request.Context(), email)
	if err != nil {
		writeError(c, requestID, err)
		return
	}

	if err := d.Accounts.ResendConfirmation(c.Request.Context(), u); err != nil {
		writeError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Please check your email to confirm your registration with a new token.",
	})
}
