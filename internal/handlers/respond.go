// respond.go — shared error-to-HTTP mapping.
// Rule errors from the contest engine are client problems and map to 4xx with
// the engine's human-readable message; anything else (storage failures) is an
// internal error and gets a generic 500 so database details never leak out.
package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/contest"
)

// statusForKind maps each rule-error kind to its HTTP status code.
// Missing records are 404s; resubmission and reprocessing are conflicts (409);
// every other rule violation is a plain bad request.
func statusForKind(kind contest.ErrorKind) int {
	switch kind {
	case contest.ErrPlayerNotFound, contest.ErrDayNotFound, contest.ErrGameNotFound:
		return fiber.StatusNotFound
	case contest.ErrAlreadySubmitted, contest.ErrDayAlreadyProcessed:
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

// respondError writes the right response for any error coming out of the
// contest service. Handlers call this instead of repeating the mapping.
func respondError(c *fiber.Ctx, err error) error {
	if re, ok := contest.AsRuleError(err); ok {
		return c.Status(statusForKind(re.Kind)).JSON(fiber.Map{
			"error":   string(re.Kind),
			"message": re.Message,
		})
	}
	// Storage or other unexpected failure — log the detail server-side only.
	log.Printf("internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
	})
}
