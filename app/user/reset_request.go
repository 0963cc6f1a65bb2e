package user

import (
	"net/http"

	"procureapp/accounts-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resetRequestBody struct {
	Email string `json:"email"`
}

// ResetPassword mails a password reset link. The client sends its own
// base URL in the Client-Url header so the link points back at it
func ResetPassword(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data resetRequestBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	clientURL := c.GetHeader("Client-Url")

	if err := d.Accounts.RequestPasswordReset(c.Request.Context(), data.Email, clientURL); err != nil {
		writeError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Please check your email. We send you a link to reset your password",
	})
}
