package user

import (
	"net/http"
	"strconv"

	"procureapp/accounts-api/internal"
	"procureapp/accounts-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Update merges the supplied fields into a user record. Fields missing
// from the body are left as they are
func Update(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid user ID",
			"requestID": requestID,
		})
		return
	}

	var patch store.Patch
	if err := c.ShouldBind(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No fields to update",
			"requestID": requestID,
		})
		return
	}

	u, err := d.Accounts.Update(c.Request.Context(), uint(id), patch)
	if err != nil {
		writeError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, u)
}
