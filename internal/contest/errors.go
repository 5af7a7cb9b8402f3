// Package contest implements the survivor-pool rules: which pick submissions
// are legal, how buybacks bring eliminated players back, and how a day's game
// results turn into wins, losses, and eliminations.
//
// The engine functions in this package are pure — records in, updated records
// out — so every rule can be tested without a database. The Service type wraps
// the engine with storage and a mutex to give the HTTP layer safe
// read-modify-write semantics.
package contest

import (
	"errors"
	"fmt"
)

// ErrorKind identifies which contest rule a request violated. Handlers map
// kinds onto HTTP status codes; the message is safe to show to the player.
type ErrorKind string

const (
	ErrAlreadySubmitted    ErrorKind = "already_submitted"
	ErrDuplicatePick       ErrorKind = "duplicate_pick"
	ErrTeamReused          ErrorKind = "team_reused"
	ErrInvalidTeam         ErrorKind = "invalid_team"
	ErrWrongPickCount      ErrorKind = "wrong_pick_count"
	ErrBuybackLimitReached ErrorKind = "buyback_limit_reached"
	ErrBuybackNotAllowed   ErrorKind = "buyback_not_allowed_today"
	ErrPlayerNotFound      ErrorKind = "player_not_found"
	ErrDayNotFound         ErrorKind = "day_not_found"
	ErrGameNotFound        ErrorKind = "game_not_found"
	ErrDayAlreadyProcessed ErrorKind = "day_already_processed"
	ErrInvalidArgument     ErrorKind = "invalid_argument"
)

// RuleError is a recoverable validation failure: the request broke a contest
// rule, nothing about the system is wrong. It carries a kind for programmatic
// handling and a human-readable message for the client.
type RuleError struct {
	Kind    ErrorKind
	Message string
}

func (e *RuleError) Error() string { return e.Message }

// ruleErr builds a RuleError with a formatted message.
func ruleErr(kind ErrorKind, format string, args ...any) *RuleError {
	return &RuleError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsRuleError unwraps err into a *RuleError if it is one. Handlers use this
// to decide between a 4xx rule response and a 500 storage response.
func AsRuleError(err error) (*RuleError, bool) {
	var re *RuleError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
