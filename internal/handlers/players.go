// Package handlers contains HTTP route handler functions for the Survivor Pool API.
// This file handles the public player routes: standings and pick submission.
//
// Each exported function follows the "handler factory" pattern: it takes the
// contest service and returns a fiber.Handler (a function that handles a single
// HTTP request). This lets us inject dependencies without global variables.
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/contest"
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/models"
)

// ContestResponse is the public view of the contest served by GET /api/v1/contest:
// the config record plus the full game schedule and the fixed day ordering, so a
// client can render the whole bracket state from one request.
type ContestResponse struct {
	Config      models.Config            `json:"config"`
	Games       map[string][]models.Game `json:"games"`
	DaySequence []string                 `json:"day_sequence"`
}

// GetContest returns a handler for GET /api/v1/contest.
func GetContest(svc *contest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cfg, err := svc.Snapshot()
		if err != nil {
			return respondError(c, err)
		}
		games, err := svc.Games()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(ContestResponse{
			Config:      cfg,
			Games:       games,
			DaySequence: models.DaySequence,
		})
	}
}

// GetPlayers returns a handler for GET /api/v1/players — the standings list.
func GetPlayers(svc *contest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		players, err := svc.Players()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(players)
	}
}

// GetPlayer returns a handler for GET /api/v1/players/:id.
func GetPlayer(svc *contest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := playerID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player id must be a positive integer",
			})
		}
		p, err := svc.Player(id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	}
}

// SubmitPickRequest is the JSON body we expect on POST /api/v1/players/:id/picks.
type SubmitPickRequest struct {
	Day     string   `json:"day"`     // Optional: defaults to the contest's current day
	Picks   []string `json:"picks"`   // The teams being wagered on for that day
	Buyback bool     `json:"buyback"` // True when this submission is a paid re-entry
}

// SubmitPick returns a handler for POST /api/v1/players/:id/picks.
// All pick legality rules live in the contest engine — this handler only
// parses the request and translates the outcome.
func SubmitPick(svc *contest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := playerID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player id must be a positive integer",
			})
		}

		var req SubmitPickRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if len(req.Picks) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "picks are required",
			})
		}

		p, err := svc.SubmitPick(id, req.Day, req.Picks, req.Buyback)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	}
}

// playerID parses the :id route parameter. Player ids are positive integers
// assigned by the database.
func playerID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, fiber.ErrBadRequest
	}
	return id, nil
}
