// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go values.
// The struct field tags (the backtick strings like `gorm:"..."`) tell GORM how to handle
// each field: its column type, constraints, defaults, and serialization.
//
// The data model represents a survivor-pool contest run over a single-elimination
// tournament:
//   - A single Config row holds the team roster and contest-wide state
//   - Players submit team picks for each scheduled Day of the tournament
//   - Games record the tournament results that decide who survives a day
//   - PickSubmissions are an append-only audit trail of accepted submissions
//
// There is no separate "contest" table — the backend runs exactly one contest,
// so Config IS the contest. This keeps the hierarchy flat: Config, Players, Games.
package models

import (
	"time"

	// uuid provides universally unique identifiers for the audit-log primary keys.
	// Audit rows are written on every accepted pick submission, so UUIDs avoid
	// coordinating a counter and are safe to generate before the INSERT.
	"github.com/google/uuid"
)

// --- Enums ---
// Go doesn't have a built-in enum keyword, so we simulate them using a named string
// type plus constants. This gives us type safety — you can't accidentally pass a
// PlayerStatus where a PickResult is expected — while keeping the values
// human-readable in the database.

// PlayerStatus tracks whether a player is still in the contest.
type PlayerStatus string

const (
	PlayerStatusAlive      PlayerStatus = "alive"      // Still surviving; may submit picks
	PlayerStatusEliminated PlayerStatus = "eliminated" // Out — either waiting on a buyback or done for good
)

// PickResult is the per-day outcome of a player's pick list.
type PickResult string

const (
	ResultPending PickResult = "pending" // Picks recorded; the day hasn't been processed yet
	ResultWin     PickResult = "win"     // Every picked team won its final game that day
	ResultLoss    PickResult = "loss"    // At least one picked team failed to win
)

// --- Day sequence ---
// The tournament is played over ten scheduled sessions ("days"), from the opening
// round of 64 through the championship. This ordering is fixed domain knowledge:
// it never comes from the database and admin actions cannot change it.

const (
	DayRound1Day1   = "round1-day1" // Round of 64, first session
	DayRound1Day2   = "round1-day2" // Round of 64, second session
	DayRound2Day1   = "round2-day1"
	DayRound2Day2   = "round2-day2"
	DaySweet16Day1  = "sweet16-day1"
	DaySweet16Day2  = "sweet16-day2"
	DayElite8Day1   = "elite8-day1"
	DayElite8Day2   = "elite8-day2"
	DayFinal4       = "final4"
	DayChampionship = "championship"
)

// DaySequence lists every day identifier in chronological order.
var DaySequence = []string{
	DayRound1Day1,
	DayRound1Day2,
	DayRound2Day1,
	DayRound2Day2,
	DaySweet16Day1,
	DaySweet16Day2,
	DayElite8Day1,
	DayElite8Day2,
	DayFinal4,
	DayChampionship,
}

// DayIndex returns the position of a day in the sequence, or -1 if the
// identifier isn't a known tournament day.
func DayIndex(day string) int {
	for i, d := range DaySequence {
		if d == day {
			return i
		}
	}
	return -1
}

// ValidDay reports whether the identifier names a known tournament day.
func ValidDay(day string) bool {
	return DayIndex(day) >= 0
}

// NextDay returns the day immediately after the given one. The second return
// value is false when the given day is the championship (nothing follows it)
// or isn't a known day at all.
func NextDay(day string) (string, bool) {
	i := DayIndex(day)
	if i < 0 || i == len(DaySequence)-1 {
		return "", false
	}
	return DaySequence[i+1], true
}

// IsOpeningRound reports whether the day is one of the two round-of-64 sessions.
// The opening round is the only part of the bracket where every team plays,
// which is why the pick-count rules treat these two days specially.
func IsOpeningRound(day string) bool {
	return day == DayRound1Day1 || day == DayRound1Day2
}

// --- Models ---
// Each struct below maps to a database table. GORM uses the struct name
// (snake_cased and pluralized) as the table name by default: Player -> players.
//
// Slice and map fields carry `gorm:"serializer:json"` — GORM stores them as a
// single JSON column. The original system kept these records as flat JSON
// documents, and the per-day pick/result maps have no relational structure
// worth modelling; a JSON column keeps the load/save cycle a single-row
// read and write.

// Config is the single-row contest record: roster, buyback schedule, and
// contest-wide flags. Exactly one row exists; the store creates it on first load.
// The admin credential deliberately does NOT live here — it is runtime
// configuration (an environment variable), never stored alongside contest data.
type Config struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Teams       []string  `gorm:"serializer:json" json:"teams"`         // Ordered roster of valid team identifiers
	BuybackDays []string  `gorm:"serializer:json" json:"buyback_days"`  // Days on which an eliminated player may buy back in
	CurrentDay  string    `json:"current_day"`                          // The active day; empty before the contest starts
	Locked      bool      `gorm:"not null;default:false" json:"locked"` // When true, pick submission is closed site-wide
	LockMessage string    `json:"lock_message"`                         // Shown to players while the site is locked
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// BuybackEligible reports whether the given day is in the configured
// buyback-day set.
func (c *Config) BuybackEligible(day string) bool {
	for _, d := range c.BuybackDays {
		if d == day {
			return true
		}
	}
	return false
}

// HasTeam reports whether the team is part of the configured roster.
func (c *Config) HasTeam(team string) bool {
	for _, t := range c.Teams {
		if t == team {
			return true
		}
	}
	return false
}

// Player is one contestant. Picks and Results are keyed by day identifier;
// a day appears in Results exactly when it appears in Picks (set to "pending"
// at submission time and resolved by day processing).
//
// Invariants maintained by the contest engine:
//   - a team appears in at most one day's pick list across the player's history
//   - Buybacks never exceeds the buyback limit (3)
type Player struct {
	ID           int                   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string                `gorm:"not null" json:"name"`
	Status       PlayerStatus          `gorm:"not null;default:'alive'" json:"status"`
	Buybacks     int                   `gorm:"not null;default:0" json:"buybacks"`          // How many times this player has bought back in (0–3)
	NeedsBuyback bool                  `gorm:"not null;default:false" json:"needs_buyback"` // True while eliminated but still able to buy back
	AmountSpent  int                   `gorm:"not null;default:0" json:"amount_spent"`      // Cumulative buy-in spend in whole dollars
	Picks        map[string][]string   `gorm:"serializer:json" json:"picks"`                // day -> teams picked that day
	Results      map[string]PickResult `gorm:"serializer:json" json:"results"`              // day -> outcome of that day's picks
	CreatedAt    time.Time             `json:"-"`
	UpdatedAt    time.Time             `json:"-"`
}

// HasPicked reports whether the player already has a recorded pick list
// for the given day.
func (p *Player) HasPicked(day string) bool {
	_, ok := p.Picks[day]
	return ok
}

// HasUsedTeam reports whether the team appears anywhere in the player's
// pick history. Teams are single-use for the life of the contest.
func (p *Player) HasUsedTeam(team string) bool {
	for _, picks := range p.Picks {
		for _, t := range picks {
			if t == team {
				return true
			}
		}
	}
	return false
}

// Game is one tournament game on a given day. Slot is the game's identifier
// within its day (1, 2, 3, ...); the pair (Day, Slot) is unique. Scores and
// the winner are filled in by admin score updates as results come in.
type Game struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Day       string    `gorm:"not null;uniqueIndex:idx_day_slot" json:"day"`
	Slot      int       `gorm:"not null;uniqueIndex:idx_day_slot" json:"slot"`
	Home      string    `gorm:"not null" json:"home"`
	Away      string    `gorm:"not null" json:"away"`
	HomeScore *int      `json:"home_score"` // Pointer = nullable; nil until a score is entered
	AwayScore *int      `json:"away_score"`
	Final     bool      `gorm:"not null;default:false" json:"final"` // True once the result won't change
	Winner    string    `json:"winner"`                              // The winning team, set once final; empty = not recorded
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// PickSubmission is an append-only audit row recorded for every accepted
// pick submission. It is never read back by the rules engine — it exists so
// an admin can reconstruct who submitted what, and when, after the fact.
type PickSubmission struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PlayerID  int       `gorm:"not null;index" json:"player_id"`
	Day       string    `gorm:"not null" json:"day"`
	Picks     []string  `gorm:"serializer:json" json:"picks"`
	Buyback   bool      `gorm:"not null;default:false" json:"buyback"`
	CreatedAt time.Time `json:"created_at"`
}
