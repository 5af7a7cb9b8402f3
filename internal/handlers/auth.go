// Package handlers contains HTTP route handler functions for the Survivor Pool API.
// This file handles POST /api/v1/login — exchanging the admin credential for a
// session token. There are no per-player accounts: players are identified by the
// id an admin assigned them, and only the pool admin authenticates.
package handlers

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/config"
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/middleware"
)

// LoginRequest is the JSON body we expect on POST /api/v1/login.
type LoginRequest struct {
	Password string `json:"password"` // The shared admin credential
}

// LoginResponse carries the signed session token the admin uses on
// subsequent requests ("Authorization: Bearer <token>").
type LoginResponse struct {
	Token string `json:"token"`
}

// Login returns a handler for POST /api/v1/login.
// It checks the posted credential against the configured admin password and,
// on a match, issues a signed admin session token.
func Login(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		// An empty configured password means admin login is disabled outright —
		// otherwise a blank POST would authenticate against a blank credential.
		if cfg.AdminPassword == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin login is not configured",
			})
		}

		// Constant-time comparison so response timing doesn't reveal how much
		// of a guessed password matched.
		if subtle.ConstantTimeCompare([]byte(req.Password), []byte(cfg.AdminPassword)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid credentials",
			})
		}

		token, err := middleware.NewAdminToken(cfg)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to issue token",
			})
		}

		return c.JSON(LoginResponse{Token: token})
	}
}
