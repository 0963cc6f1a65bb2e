// Package user contains the HTTP handlers for the account endpoints
package user

import (
	"errors"
	"net/http"

	"procureapp/accounts-api/internal/account"
	"procureapp/accounts-api/pkg/security"
	"procureapp/accounts-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// validation failures carry their own human-readable reason
var validationErrs = []error{
	validators.ErrEmailEmpty,
	validators.ErrEmailInvalid,
	validators.ErrPasswordEmpty,
	validators.ErrPasswordTooShort,
	validators.ErrPasswordTooLong,
	validators.ErrPasswordNoUpper,
	validators.ErrPasswordNoSpecial,
	validators.ErrNameTooLong,
}

// writeError maps a workflow error onto a JSON response. Anything that
// isn't part of the taxonomy becomes an opaque 500
func writeError(c *gin.Context, requestID string, err error) {
	for _, v := range validationErrs {
		if errors.Is(err, v) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}
	}

	switch {
	case errors.Is(err, account.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "This email already exists!",
			"requestID": requestID,
		})
	case errors.Is(err, account.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "User not found!",
			"requestID": requestID,
		})
	case errors.Is(err, account.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid user credentials!",
			"requestID": requestID,
		})
	case errors.Is(err, account.ErrMissingClientURL):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No url client found!",
			"requestID": requestID,
		})
	case errors.Is(err, security.ErrTokenExpired):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Confirmation link expired",
			"requestID": requestID,
		})
	case errors.Is(err, security.ErrTokenInvalid):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid token provided",
			"requestID": requestID,
		})
	case errors.Is(err, account.ErrMailDispatch):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Server Error! Email could not be sent",
			"requestID": requestID,
		})

		zap.L().Error("Mail dispatch failed", zap.Error(err), zap.String("requestID", requestID))
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Unclassified error", zap.Error(err), zap.String("requestID", requestID))
	}
}
