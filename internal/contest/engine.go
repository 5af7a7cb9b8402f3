// engine.go — the pure survivor-pool rules engine.
//
// Everything in this file operates on in-memory records and returns updated
// copies; persistence is the caller's job. The rules themselves are fixed
// tournament knowledge (see the constants below), not configurable policy.
package contest

import (
	"slices"

	"github.com/ryankeefer-alt/SurvivorPool-website/internal/models"
)

const (
	// BuyInAmount is the flat dollar cost of entering the pool, and of each
	// buyback. Buybacks add this amount to the player's cumulative spend.
	BuyInAmount = 25

	// MaxBuybacks caps how many times a single player can buy back in.
	MaxBuybacks = 3
)

// RequiredPickCount returns how many teams a player must pick for the given
// day. The baseline is 2 picks on each round-of-64 session (every team plays,
// so there are picks to spare) and 1 pick per day after that. A player who
// owes a buyback pays a pick penalty on top: 4 picks if buying back on the
// second opening-round session, 3 picks on any later buyback day.
func RequiredPickCount(p *models.Player, day string) int {
	if p.NeedsBuyback {
		if day == models.DayRound1Day2 {
			return 4
		}
		return 3
	}
	if models.IsOpeningRound(day) {
		return 2
	}
	return 1
}

// SubmitPick validates a pick submission against the contest rules and, if
// legal, returns the player's updated state. The input player is not modified.
//
// The checks run in a fixed order because the first failure is what the
// player sees; e.g. a duplicate team in the list should be reported as a
// duplicate, not as a wrong pick count.
func SubmitPick(cfg *models.Config, p models.Player, day string, picks []string, buyback bool) (models.Player, error) {
	// Resubmission is rejected outright, never merged. This is what makes the
	// operation safe to retry from the client side.
	if p.HasPicked(day) {
		return p, ruleErr(ErrAlreadySubmitted, "picks for %s have already been submitted", day)
	}

	// No team twice within this submission.
	for i, team := range picks {
		if slices.Contains(picks[:i], team) {
			return p, ruleErr(ErrDuplicatePick, "%s appears more than once in your picks", team)
		}
	}

	// No team the player has ever picked before. Team use is cumulative
	// across the whole contest, not just within a day.
	for _, team := range picks {
		if p.HasUsedTeam(team) {
			return p, ruleErr(ErrTeamReused, "you have already used %s on a previous day", team)
		}
	}

	// Every pick must name a team in the configured roster.
	for _, team := range picks {
		if !cfg.HasTeam(team) {
			return p, ruleErr(ErrInvalidTeam, "%s is not a team in this tournament", team)
		}
	}

	if want := RequiredPickCount(&p, day); len(picks) != want {
		return p, ruleErr(ErrWrongPickCount, "%s requires exactly %d pick(s), got %d", day, want, len(picks))
	}

	updated := clonePlayer(p)

	if buyback {
		if p.Buybacks >= MaxBuybacks {
			return p, ruleErr(ErrBuybackLimitReached, "buyback limit of %d reached", MaxBuybacks)
		}
		if !cfg.BuybackEligible(day) {
			return p, ruleErr(ErrBuybackNotAllowed, "buybacks are not allowed on %s", day)
		}
		updated.Status = models.PlayerStatusAlive
		updated.Buybacks++
		updated.AmountSpent += BuyInAmount
		updated.NeedsBuyback = false
	}

	updated.Picks[day] = slices.Clone(picks)
	updated.Results[day] = models.ResultPending
	return updated, nil
}

// PlayerOutcome is one row of a day summary: where a player stands after the
// day was processed. Result is empty for players who were skipped (not alive,
// or no picks recorded for the day).
type PlayerOutcome struct {
	PlayerID int                 `json:"player_id"`
	Name     string              `json:"name"`
	Status   models.PlayerStatus `json:"status"`
	Result   models.PickResult   `json:"result,omitempty"`
}

// DaySummary reports the outcome of processing one day.
type DaySummary struct {
	Day      string          `json:"day"`
	Winners  []string        `json:"winners"`
	Outcomes []PlayerOutcome `json:"outcomes"`
}

// ProcessDay converts a day's final game results into win/loss outcomes for
// every alive player who picked that day, and advances the contest to the
// next day in the sequence. Inputs are not modified; the updated config and
// player list are returned alongside the summary.
//
// A day can only be processed once: if any player already holds a resolved
// result for it, the whole call fails with DayAlreadyProcessed and nothing
// changes. Without this guard a second run would re-evaluate eliminations
// against already-updated state.
func ProcessDay(cfg models.Config, players []models.Player, games []models.Game, day string) (DaySummary, models.Config, []models.Player, error) {
	if !models.ValidDay(day) {
		return DaySummary{}, cfg, players, ruleErr(ErrDayNotFound, "%s is not a tournament day", day)
	}

	for i := range players {
		if r, ok := players[i].Results[day]; ok && r != models.ResultPending {
			return DaySummary{}, cfg, players, ruleErr(ErrDayAlreadyProcessed, "%s has already been processed", day)
		}
	}

	// The winners set: every final game with a recorded winner contributes.
	// Unfinished games, and final games missing a winner, contribute nothing —
	// partial results are tolerated, not treated as errors.
	winners := make(map[string]bool)
	for _, g := range games {
		if g.Final && g.Winner != "" {
			winners[g.Winner] = true
		}
	}

	summary := DaySummary{Day: day, Winners: sortedKeys(winners)}
	updated := make([]models.Player, len(players))

	for i, p := range players {
		updated[i] = clonePlayer(p)

		// Eliminated players and players with no picks for the day are left
		// untouched; they still appear in the summary with no result.
		if p.Status != models.PlayerStatusAlive || !p.HasPicked(day) {
			summary.Outcomes = append(summary.Outcomes, PlayerOutcome{
				PlayerID: p.ID, Name: p.Name, Status: p.Status,
			})
			continue
		}

		survived := true
		for _, team := range p.Picks[day] {
			if !winners[team] {
				survived = false
				break
			}
		}

		if survived {
			updated[i].Results[day] = models.ResultWin
		} else {
			updated[i].Results[day] = models.ResultLoss
			updated[i].Status = models.PlayerStatusEliminated
			// A losing player lands "on the bubble" only if a buyback is
			// still available to them today; otherwise the elimination is
			// terminal.
			updated[i].NeedsBuyback = cfg.BuybackEligible(day) && p.Buybacks < MaxBuybacks
		}

		summary.Outcomes = append(summary.Outcomes, PlayerOutcome{
			PlayerID: p.ID,
			Name:     p.Name,
			Status:   updated[i].Status,
			Result:   updated[i].Results[day],
		})
	}

	// Advance the contest pointer. The championship is terminal: processing
	// it leaves CurrentDay where it is.
	if next, ok := models.NextDay(day); ok {
		cfg.CurrentDay = next
	}

	return summary, cfg, updated, nil
}

// clonePlayer returns a copy of p whose maps are independent of the original.
// The engine promises not to mutate its inputs, and Go maps are references,
// so a plain struct copy is not enough.
func clonePlayer(p models.Player) models.Player {
	c := p
	c.Picks = make(map[string][]string, len(p.Picks))
	for day, picks := range p.Picks {
		c.Picks[day] = slices.Clone(picks)
	}
	c.Results = make(map[string]models.PickResult, len(p.Results))
	for day, r := range p.Results {
		c.Results[day] = r
	}
	return c
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
