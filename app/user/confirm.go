package user

import (
	"errors"
	"net/http"

	"procureapp/accounts-api/internal"
	"procureapp/accounts-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConfirmEmail is reached by following the link from the confirmation
// mail, so both outcomes render a small HTML page instead of JSON
func ConfirmEmail(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	u, err := d.Accounts.Confirm(c.Request.Context(), c.Param("token"))
	if err != nil {
		var msg string

		switch {
		case errors.Is(err, security.ErrTokenExpired):
			msg = "Confirmation link has expired"
		case errors.Is(err, security.ErrTokenInvalid):
			msg = "Invalid token provided"
		default:
			msg = "Account could not be confirmed"

			zap.L().Error("Failed to confirm account", zap.Error(err), zap.String("requestID", requestID))
		}

		c.HTML(http.StatusBadRequest, "confirm_failed.html", gin.H{
			"Message": msg,
		})
		return
	}

	c.HTML(http.StatusOK, "confirm_success.html", gin.H{
		"Email": u.Email,
	})
}
