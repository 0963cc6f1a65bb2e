package middleware

import (
	"errors"
	"net/http"
	"strings"

	"procureapp/accounts-api/internal/account"
	"procureapp/accounts-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewJWTMiddleware guards a route group behind a bearer session token.
// The subject is resolved to a live account on every request so a token
// for a deleted user stops working immediately; on success userID and
// userEmail are set in the context
func NewJWTMiddleware(accounts *account.Service, sessions *security.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "No authorization header",
				"requestID": requestID,
			})
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization header is not a bearer token",
				"requestID": requestID,
			})
			return
		}

		subject, err := sessions.Verify(token)
		if err != nil {
			if errors.Is(err, security.ErrSessionExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "Authorization token expired. Please log in again",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization token invalid",
				"requestID": requestID,
			})

			zap.L().Debug("Failed to verify session token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		u, err := accounts.CurrentUser(c.Request.Context(), subject)
		if err != nil {
			if errors.Is(err, account.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "Could not validate credentials",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to resolve session subject", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", u.ID)
		c.Set("userEmail", u.Email)
		c.Next()
	}
}
