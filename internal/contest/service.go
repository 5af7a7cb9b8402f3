// service.go — the stateful wrapper around the pure engine.
//
// The Service owns the persistence collaborator and a single mutex. Every
// operation, mutating or not, runs a full load -> compute -> save cycle under
// that lock, which is what prevents a pick submission racing a day-processing
// run from losing updates. Nothing here is long-running, so one mutex for the
// whole contest is plenty.
package contest

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/ryankeefer-alt/SurvivorPool-website/internal/models"
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/store"
)

// Broadcaster receives contest events for live delivery to connected clients.
// Declared as an interface so the service doesn't depend on the hub package.
type Broadcaster interface {
	Broadcast(data []byte)
}

// Service serializes all contest operations behind one mutex and pushes
// notable events (processed days, lock changes) to the broadcaster.
type Service struct {
	store       *store.Store
	broadcaster Broadcaster
	mu          sync.Mutex
}

// NewService creates a Service over the given store.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// SetBroadcaster wires in the live-update hub. Optional: without one, events
// are simply dropped.
func (s *Service) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// broadcast JSON-encodes a typed event and hands it to the hub, if any.
func (s *Service) broadcast(eventType string, payload any) {
	if s.broadcaster == nil {
		return
	}
	data, err := json.Marshal(map[string]any{"type": eventType, "payload": payload})
	if err != nil {
		return
	}
	s.broadcaster.Broadcast(data)
}

// Snapshot returns the current contest config.
func (s *Service) Snapshot() (models.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadConfig()
}

// Players returns every player, ordered by id.
func (s *Service) Players() ([]models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadPlayers()
}

// Player returns one player, or a PlayerNotFound rule error.
func (s *Service) Player(id int) (models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadPlayer(id)
}

func (s *Service) loadPlayer(id int) (models.Player, error) {
	p, err := s.store.Player(id)
	if errors.Is(err, store.ErrNotFound) {
		return p, ruleErr(ErrPlayerNotFound, "player %d not found", id)
	}
	return p, err
}

// Games returns every game grouped by day.
func (s *Service) Games() (map[string][]models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadGames()
}

// Submissions returns the pick-submission audit log, newest first.
func (s *Service) Submissions() ([]models.PickSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Submissions()
}

// SubmitPick validates and records a pick submission for one player. An empty
// day means "the current day". On success the updated player is persisted and
// an audit row is appended.
func (s *Service) SubmitPick(playerID int, day string, picks []string, buyback bool) (models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.store.LoadConfig()
	if err != nil {
		return models.Player{}, err
	}

	if day == "" {
		day = cfg.CurrentDay
	}
	if !models.ValidDay(day) {
		return models.Player{}, ruleErr(ErrDayNotFound, "%q is not a tournament day", day)
	}

	p, err := s.loadPlayer(playerID)
	if err != nil {
		return models.Player{}, err
	}

	updated, err := SubmitPick(&cfg, p, day, picks, buyback)
	if err != nil {
		return models.Player{}, err
	}

	if err := s.store.SavePlayer(updated); err != nil {
		return models.Player{}, err
	}
	if err := s.store.AppendSubmission(models.PickSubmission{
		PlayerID: updated.ID,
		Day:      day,
		Picks:    picks,
		Buyback:  buyback,
	}); err != nil {
		return models.Player{}, err
	}
	return updated, nil
}

// ProcessDay runs the day processor over the stored records, persists the
// updated config and players, and broadcasts the summary to live clients.
func (s *Service) ProcessDay(day string) (DaySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.store.LoadConfig()
	if err != nil {
		return DaySummary{}, err
	}
	players, err := s.store.LoadPlayers()
	if err != nil {
		return DaySummary{}, err
	}
	games, err := s.store.GamesForDay(day)
	if err != nil {
		return DaySummary{}, err
	}

	summary, newCfg, newPlayers, err := ProcessDay(cfg, players, games, day)
	if err != nil {
		return DaySummary{}, err
	}

	if err := s.store.SavePlayers(newPlayers); err != nil {
		return DaySummary{}, err
	}
	if err := s.store.SaveConfig(newCfg); err != nil {
		return DaySummary{}, err
	}

	s.broadcast("day_processed", summary)
	return summary, nil
}

// CreatePlayer adds a new contestant. Entry costs one buy-in, so spend
// starts at BuyInAmount.
func (s *Service) CreatePlayer(name string) (models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.Player{
		Name:        name,
		Status:      models.PlayerStatusAlive,
		AmountSpent: BuyInAmount,
		Picks:       map[string][]string{},
		Results:     map[string]models.PickResult{},
	}
	return s.store.CreatePlayer(p)
}

// PlayerUpdate is the explicit whitelist of player fields an admin may edit.
// Pointer fields distinguish "not sent" from a zero value; anything not
// listed here cannot be changed through the API. The pick/result maps are
// deliberately absent — those only move through submission and processing.
type PlayerUpdate struct {
	Name         *string              `json:"name"`
	Status       *models.PlayerStatus `json:"status"`
	Buybacks     *int                 `json:"buybacks"`
	NeedsBuyback *bool                `json:"needs_buyback"`
	AmountSpent  *int                 `json:"amount_spent"`
}

// UpdatePlayer applies a whitelisted admin edit to one player.
func (s *Service) UpdatePlayer(id int, upd PlayerUpdate) (models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.loadPlayer(id)
	if err != nil {
		return models.Player{}, err
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Status != nil {
		switch *upd.Status {
		case models.PlayerStatusAlive, models.PlayerStatusEliminated:
			p.Status = *upd.Status
		default:
			return models.Player{}, ruleErr(ErrInvalidArgument, "unknown player status %q", *upd.Status)
		}
	}
	if upd.Buybacks != nil {
		if *upd.Buybacks < 0 || *upd.Buybacks > MaxBuybacks {
			return models.Player{}, ruleErr(ErrInvalidArgument, "buybacks must be between 0 and %d", MaxBuybacks)
		}
		p.Buybacks = *upd.Buybacks
	}
	if upd.NeedsBuyback != nil {
		p.NeedsBuyback = *upd.NeedsBuyback
	}
	if upd.AmountSpent != nil {
		p.AmountSpent = *upd.AmountSpent
	}

	if err := s.store.SavePlayer(p); err != nil {
		return models.Player{}, err
	}
	return p, nil
}

// DeletePlayer removes a contestant entirely.
func (s *Service) DeletePlayer(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.DeletePlayer(id)
	if errors.Is(err, store.ErrNotFound) {
		return ruleErr(ErrPlayerNotFound, "player %d not found", id)
	}
	return err
}

// GameInput is one game in an admin's replace-day request. Slots are
// assigned server-side in list order.
type GameInput struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// ReplaceGames swaps out a day's entire game schedule.
func (s *Service) ReplaceGames(day string, inputs []GameInput) ([]models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !models.ValidDay(day) {
		return nil, ruleErr(ErrDayNotFound, "%q is not a tournament day", day)
	}

	games := make([]models.Game, len(inputs))
	for i, in := range inputs {
		games[i] = models.Game{Day: day, Slot: i + 1, Home: in.Home, Away: in.Away}
	}
	if err := s.store.ReplaceGames(day, games); err != nil {
		return nil, err
	}
	return games, nil
}

// GamePatch is an admin score/result update for one game.
type GamePatch struct {
	HomeScore *int    `json:"home_score"`
	AwayScore *int    `json:"away_score"`
	Final     *bool   `json:"final"`
	Winner    *string `json:"winner"`
}

// UpdateGame applies a score/result patch to one game. A winner, when set,
// must be one of the two teams actually playing.
func (s *Service) UpdateGame(day string, slot int, patch GamePatch) (models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !models.ValidDay(day) {
		return models.Game{}, ruleErr(ErrDayNotFound, "%q is not a tournament day", day)
	}

	g, err := s.store.Game(day, slot)
	if errors.Is(err, store.ErrNotFound) {
		return models.Game{}, ruleErr(ErrGameNotFound, "no game %d on %s", slot, day)
	}
	if err != nil {
		return models.Game{}, err
	}

	if patch.HomeScore != nil {
		g.HomeScore = patch.HomeScore
	}
	if patch.AwayScore != nil {
		g.AwayScore = patch.AwayScore
	}
	if patch.Final != nil {
		g.Final = *patch.Final
	}
	if patch.Winner != nil {
		if *patch.Winner != "" && *patch.Winner != g.Home && *patch.Winner != g.Away {
			return models.Game{}, ruleErr(ErrInvalidTeam, "%s is not playing in game %d on %s", *patch.Winner, slot, day)
		}
		g.Winner = *patch.Winner
	}

	if err := s.store.SaveGame(g); err != nil {
		return models.Game{}, err
	}
	return g, nil
}

// SetLock opens or closes pick submission site-wide.
func (s *Service) SetLock(locked bool, message string) (models.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.store.LoadConfig()
	if err != nil {
		return cfg, err
	}
	cfg.Locked = locked
	cfg.LockMessage = message
	if err := s.store.SaveConfig(cfg); err != nil {
		return cfg, err
	}

	s.broadcast("lock_changed", map[string]any{"locked": locked, "message": message})
	return cfg, nil
}

// ConfigUpdate is the whitelist of contest-config fields an admin may edit.
type ConfigUpdate struct {
	Teams       *[]string `json:"teams"`
	BuybackDays *[]string `json:"buyback_days"`
	CurrentDay  *string   `json:"current_day"`
}

// UpdateConfig applies an admin edit to the contest config. Buyback days and
// the current day must be known tournament days.
func (s *Service) UpdateConfig(upd ConfigUpdate) (models.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.store.LoadConfig()
	if err != nil {
		return cfg, err
	}

	if upd.Teams != nil {
		cfg.Teams = *upd.Teams
	}
	if upd.BuybackDays != nil {
		for _, d := range *upd.BuybackDays {
			if !models.ValidDay(d) {
				return cfg, ruleErr(ErrDayNotFound, "%q is not a tournament day", d)
			}
		}
		cfg.BuybackDays = *upd.BuybackDays
	}
	if upd.CurrentDay != nil {
		if *upd.CurrentDay != "" && !models.ValidDay(*upd.CurrentDay) {
			return cfg, ruleErr(ErrDayNotFound, "%q is not a tournament day", *upd.CurrentDay)
		}
		cfg.CurrentDay = *upd.CurrentDay
	}

	if err := s.store.SaveConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
