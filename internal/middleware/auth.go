// Package middleware contains HTTP middleware functions for the Survivor Pool API.
// Middleware sits between the HTTP server and route handlers — it runs on every
// request that passes through it, making it the right place for cross-cutting
// concerns like authentication and the site-wide submission lock.
package middleware

import (
	"strings"
	"time"

	// fiber is the HTTP framework; fiber.Handler is the function signature for middleware
	"github.com/gofiber/fiber/v2"
	// jwt signs and parses the JSON Web Tokens used for admin sessions
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/config"
)

// Claims is the payload of an admin session token. The tokens are issued by
// our own /api/v1/login handler, so the only custom claim is the role — there
// is no external identity provider involved.
type Claims struct {
	jwt.RegisteredClaims        // Standard JWT fields: ID, ExpiresAt, IssuedAt, etc.
	Role                 string `json:"role"` // Always "admin" for tokens we issue
}

// TokenTTL is how long an admin session token stays valid.
const TokenTTL = 24 * time.Hour

// NewAdminToken issues a signed admin session token. Called by the login
// handler after the admin credential checks out. The token is HMAC-signed
// (HS256) with the configured secret, so only this server can mint one.
func NewAdminToken(cfg *config.Config) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(), // Unique token ID, handy for log correlation
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		Role: "admin",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// Auth returns a Fiber middleware handler that:
//  1. Extracts the token from the "Authorization: Bearer <token>" header
//  2. Verifies its signature against our configured secret and checks expiry
//  3. Stores the token's role in the request context (c.Locals) so downstream
//     handlers and RequireRole can read it without re-parsing the token
//
// Unlike setups that delegate to an external identity provider, these tokens
// are self-issued, so full signature verification happens right here.
func Auth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid authorization header",
			})
		}

		// Strip the "Bearer " prefix to get just the raw JWT string
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			// Refuse any signing algorithm other than the one we issue with.
			// Without this check a forged token could claim "alg": "none".
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		// c.Locals is a key-value store scoped to this single request.
		// RequireRole reads "userRole" from here.
		c.Locals("userRole", claims.Role)

		return c.Next()
	}
}
