// Package app wires the endpoints, middleware and collaborators into a
// runnable gin engine
package app

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"procureapp/accounts-api/app/root"
	"procureapp/accounts-api/app/user"
	"procureapp/accounts-api/config"
	"procureapp/accounts-api/db"
	"procureapp/accounts-api/internal"
	"procureapp/accounts-api/internal/account"
	"procureapp/accounts-api/internal/service"
	"procureapp/accounts-api/internal/store"
	"procureapp/accounts-api/pkg/middleware"
	"procureapp/accounts-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

//go:embed templates/*.html
var templates embed.FS

var cacheStore = persist.NewMemoryStore(time.Minute)

func NewRouter(cfg *config.Config) (*gin.Engine, error) {
	makeLogger(cfg.LogLevel)

	conn, err := db.New(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	secret := []byte(cfg.Security.JWTSecret)
	sessions := security.NewSessions(secret, cfg.Security.SessionTTL)

	accounts := account.New(
		store.NewGorm(conn),
		security.NewSigner(secret),
		sessions,
		security.NewArgon(),
		service.NewSMTP(cfg.Mail),
		cfg.Host.BaseURL()+"/api/v1/users/confirm-email",
		cfg.Security.TokenMaxAge,
	)

	d := &internal.Deps{
		DB:       conn,
		Accounts: accounts,
		Sessions: sessions,
		Config:   cfg,
	}

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.Host.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Client-Url"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("requestID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.SetHTMLTemplate(template.Must(template.ParseFS(templates, "templates/*.html")))

	jwt := middleware.NewJWTMiddleware(accounts, sessions)
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.Security.RateLimit,
		Burst:             cfg.Security.RateLimit * 2,
		CleanupInterval:   time.Second,
	})

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates a bearer token
		m.GET("/validate", jwt, root.Validate)
	}

	u := m.Group("/v1/users", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/v1/users/register			-> Registers a new account and mails a confirmation link
		u.POST("/register", func(c *gin.Context) { user.Register(c, d) })

		// GET /api/v1/users/confirm-email/:token	-> Confirms an account, rendered as HTML
		u.GET("/confirm-email/:token", func(c *gin.Context) { user.ConfirmEmail(c, d) })

		// POST /api/v1/users/get-email-confirmation	-> Mails a fresh confirmation link
		u.POST("/get-email-confirmation", jwt, func(c *gin.Context) { user.ResendConfirmation(c, d) })

		// POST /api/v1/users/token			-> Logs in and returns a bearer token
		u.POST("/token", func(c *gin.Context) { user.Login(c, d) })

		// POST /api/v1/users/reset-password		-> Mails a password reset link
		u.POST("/reset-password", func(c *gin.Context) { user.ResetPassword(c, d) })

		// PATCH /api/v1/users/update-password/:token	-> Sets a new password via reset token
		u.PATCH("/update-password/:token", func(c *gin.Context) { user.UpdatePassword(c, d) })

		// GET /api/v1/users/me				-> Returns the caller's own record
		u.GET("/me", jwt, func(c *gin.Context) { user.Me(c, d) })

		// GET /api/v1/users				-> Lists users, limit capped at 100
		u.GET("", jwt, cacheFor(30), func(c *gin.Context) { user.List(c, d) })

		// GET /api/v1/users/:id			-> Returns a user by ID
		u.GET("/:id", jwt, func(c *gin.Context) { user.Fetch(c, d) })

		// PUT /api/v1/users/update/:id			-> Partially updates a user
		u.PUT("/update/:id", jwt, func(c *gin.Context) { user.Update(c, d) })

		// DELETE /api/v1/users/delete/:id		-> Deletes a user by ID
		u.DELETE("/delete/:id", jwt, func(c *gin.Context) { user.Delete(c, d) })
	}

	return router, nil
}

func makeLogger(level string) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(cacheStore, time.Second*time.Duration(sec))
}
