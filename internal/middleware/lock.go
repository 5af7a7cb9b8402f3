// lock.go — the site-wide submission lock.
// Admins close submissions while games are in progress; while the lock is on,
// the pick-submission route answers 423 Locked with the configured message
// instead of reaching the rules engine at all.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/contest"
)

// RequireUnlocked returns a middleware handler that blocks the request while
// the contest is locked. Applied only to the pick-submission route — reads
// and admin routes stay available during a lock.
func RequireUnlocked(svc *contest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cfg, err := svc.Snapshot()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load contest state",
			})
		}
		if cfg.Locked {
			msg := cfg.LockMessage
			if msg == "" {
				msg = "pick submission is currently closed"
			}
			return c.Status(fiber.StatusLocked).JSON(fiber.Map{
				"error":   "locked",
				"message": msg,
			})
		}
		return c.Next()
	}
}
