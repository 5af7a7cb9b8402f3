// Package handlers contains HTTP route handler functions for the Survivor Pool API.
// This file handles the /api/v1/admin routes — everything behind the admin token:
// managing players, entering games and scores, running day processing, and the
// site-wide submission lock.
//
// --- Permission model ---
// One layer of access control: the whole admin group sits behind
// middleware.Auth + middleware.RequireRole("admin"). There are no per-resource
// permissions — a single admin runs the pool.
//
// Player edits use a typed whitelist (contest.PlayerUpdate) rather than merging
// arbitrary posted fields into the record, so an admin tool can never write to
// a field the rules engine owns (the pick and result maps).
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/contest"
)

// CreatePlayerRequest is the JSON body we expect on POST /api/v1/admin/players.
type CreatePlayerRequest struct {
	Name string `json:"name"` // Required: the player's display name
}

// CreatePlayer returns a handler for POST /api/v1/admin/players.
// The new player starts alive with one buy-in of spend recorded.
func CreatePlayer(svc *contest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreatePlayerRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "name is required",
			})
		}

		p, err := svc.CreatePlayer(req.Name)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// UpdatePlayer returns a handler for PUT /api/v1/admin/players/:id.
// The request body is the contest.PlayerUpdate whitelist; omitted fields are
// left untouched.
func UpdatePlayer(svc *contest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := playerID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player id must be a positive integer",
			})
		}

		var req contest.PlayerUpdate
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		p, err := svc.UpdatePlayer(id, req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	}
}

// DeletePlayer returns a handler for DELETE /api/v1/admin/players/:id.
func DeletePlayer(svc *contest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := playerID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player id must be a positive integer",
			})
		}
		if err := svc.DeletePlayer(id); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ReplaceGamesRequest is the JSON body we expect on PUT /api/v1/admin/games/:day.
type ReplaceGamesRequest struct {
	Games []contest.GameInput `json:"games"` // The full schedule for the day, in slot order
}

// ReplaceGames returns a handler for PUT /api/v1/admin/games/:day.
// The day's previous schedule is discarded entirely — this is how a day's
// slate is entered once the bracket for it is known.
func ReplaceGames(svc *contest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ReplaceGamesRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		games, err := svc.ReplaceGames(c.Params("day"), req.Games)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(games)
	}
}

// UpdateGame returns a handler for PATCH /api/v1/admin/games/:day/:slot.
// Used to enter scores as games finish and to record the final winner.
func UpdateGame(svc *contest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slot, err := strconv.Atoi(c.Params("slot"))
		if err != nil || slot <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game slot must be a positive integer",
			})
		}

		var req contest.GamePatch
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		g, err := svc.UpdateGame(c.Params("day"), slot, req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(g)
	}
}

// ProcessDay returns a handler for POST /api/v1/admin/days/:day/process.
// This is the contest's state machine tick: losses become eliminations, the
// current-day pointer advances, and the summary goes out to live clients.
func ProcessDay(svc *contest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := svc.ProcessDay(c.Params("day"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(summary)
	}
}

// SetLockRequest is the JSON body we expect on PUT /api/v1/admin/lock.
type SetLockRequest struct {
	Locked  bool   `json:"locked"`
	Message string `json:"message"` // Shown to players while locked; optional
}

// SetLock returns a handler for PUT /api/v1/admin/lock.
func SetLock(svc *contest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SetLockRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		cfg, err := svc.SetLock(req.Locked, req.Message)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(cfg)
	}
}

// UpdateConfig returns a handler for PUT /api/v1/admin/config.
// The request body is the contest.ConfigUpdate whitelist (roster, buyback
// days, current day); omitted fields are left untouched.
func UpdateConfig(svc *contest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req contest.ConfigUpdate
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		cfg, err := svc.UpdateConfig(req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(cfg)
	}
}

// GetSubmissions returns a handler for GET /api/v1/admin/submissions —
// the pick-submission audit log, newest first.
func GetSubmissions(svc *contest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subs, err := svc.Submissions()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(subs)
	}
}
