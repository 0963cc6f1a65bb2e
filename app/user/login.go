package user

import (
	"net/http"

	"procureapp/accounts-api/internal"

	"github.com/gin-gonic/gin"
)

// Login exchanges form credentials for a bearer token. The form field
// names follow the password grant convention the original clients use
func Login(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	email := c.PostForm("username")
	password := c.PostForm("password")

	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Password field can't be empty",
			"requestID": requestID,
		})
		return
	}

	at, err := d.Accounts.Login(c.Request.Context(), email, password)
	if err != nil {
		writeError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, at)
}
