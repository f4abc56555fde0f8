// Package middleware authenticates requests and resolves the caller.
package middleware

import (
	"errors"
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/piolcm/piol/pkg/authz"
	"github.com/piolcm/piol/pkg/config"
	authsvc "github.com/piolcm/piol/pkg/service/auth"
	"github.com/piolcm/piol/webapi/common"
)

const (
	tokenKey = "user"
	authKey  = "auth"
)

// JwtProtected rejects requests without a valid HS256 bearer token.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ContextKey:   tokenKey,
		ErrorHandler: jwtError,
	})
}

// JwtOptional validates a bearer token when one is sent and lets anonymous
// requests through.
func JwtOptional(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ContextKey:   tokenKey,
		ErrorHandler: jwtError,
		Filter: func(c *fiber.Ctx) bool {
			return strings.TrimSpace(c.Get(fiber.HeaderAuthorization)) == ""
		},
	})
}

// Resolve joins the token subject to its local user and stores the
// AuthContext for handlers. With required set, a subject with no local user
// is rejected.
func Resolve(authSvc *authsvc.Service, required bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals(tokenKey).(*jwt.Token)
		if !ok {
			if required {
				return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
			}
			return c.Next()
		}
		ac, err := authSvc.Resolve(c.UserContext(), token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		if ac == nil && required {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "no account for this identity", fiber.StatusUnauthorized)
		}
		c.Locals(authKey, ac)
		return c.Next()
	}
}

// Protected is JwtProtected followed by a required Resolve.
func Protected(cfg *config.Jwt, authSvc *authsvc.Service) []fiber.Handler {
	return []fiber.Handler{JwtProtected(cfg), Resolve(authSvc, true)}
}

// Optional is JwtOptional followed by a lenient Resolve.
func Optional(cfg *config.Jwt, authSvc *authsvc.Service) []fiber.Handler {
	return []fiber.Handler{JwtOptional(cfg), Resolve(authSvc, false)}
}

// AuthContext returns the caller resolved for this request, nil when anonymous.
func AuthContext(c *fiber.Ctx) *authz.AuthContext {
	ac, _ := c.Locals(authKey).(*authz.AuthContext)
	return ac
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) || err.Error() == "Missing or malformed JWT" {
		return common.ProblemDetailsJSON(c, "Bad Request", nil, "Missing or malformed JWT", fiber.StatusBadRequest)
	}
	return common.ProblemDetailsJSON(c, "Unauthorized", nil, "Invalid or expired JWT", fiber.StatusUnauthorized)
}
