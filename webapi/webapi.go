// Package webapi assembles the HTTP API. Handlers live in one sub-package per
// resource:
// - auth: login
// - user: registration and profile
// - property: listings
// - transaction: payments and escrow
// - verification: property inspections
// - notification: in-app notifications
// - webhook: provider callbacks
package webapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/piolcm/piol/docs"
	"github.com/piolcm/piol/pkg/app"
	authweb "github.com/piolcm/piol/webapi/auth"
	"github.com/piolcm/piol/webapi/common"
	notificationweb "github.com/piolcm/piol/webapi/notification"
	propertyweb "github.com/piolcm/piol/webapi/property"
	transactionweb "github.com/piolcm/piol/webapi/transaction"
	userweb "github.com/piolcm/piol/webapi/user"
	verificationweb "github.com/piolcm/piol/webapi/verification"
	webhookweb "github.com/piolcm/piol/webapi/webhook"
)

// SetupApp builds the Fiber app with every route group mounted.
func SetupApp(app *app.App) *fiber.App {
	cfg := app.Config

	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	// Behind a proxy the client is the first X-Forwarded-For hop.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		Next: func(c *fiber.Ctx) bool {
			// provider callbacks are not rate limited
			return strings.HasPrefix(c.Path(), "/webhooks/")
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Piol API is running")
	})
	if app.Metrics != nil {
		fiberApp.Get("/metrics", adaptor.HTTPHandler(app.Metrics.Handler()))
	}

	webhookweb.Routes(fiberApp, app.PaymentService)
	authweb.Routes(fiberApp, app.AuthService)
	userweb.Routes(fiberApp, app.UserService, app.AuthService, cfg)
	propertyweb.Routes(fiberApp, app.PropertyService, app.AuthService, cfg)
	transactionweb.Routes(fiberApp, app.PaymentService, app.AuthService, cfg)
	verificationweb.Routes(fiberApp, app.VerificationService, app.AuthService, cfg)
	notificationweb.Routes(fiberApp, app.NotificationService, app.AuthService, cfg)
	return fiberApp
}
