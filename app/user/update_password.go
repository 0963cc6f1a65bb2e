package user

import (
	"net/http"

	"procureapp/accounts-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type updatePasswordBody struct {
	Password string `json:"password"`
}

// UpdatePassword sets a new password for the account a valid reset
// token resolves to
func UpdatePassword(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data updatePasswordBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if _, err := d.Accounts.UpdatePasswordByToken(c.Request.Context(), c.Param("token"), data.Password); err != nil {
		writeError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successfully!",
	})
}
