package user

import (
	"net/http"

	"procureapp/accounts-api/internal"
	"procureapp/accounts-api/internal/account"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Register(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data account.RegisterInput
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if _, err := d.Accounts.Register(c.Request.Context(), data); err != nil {
		writeError(c, requestID, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Please check your email to confirm your registration.",
	})
}
