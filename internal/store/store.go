// Package store is the persistence collaborator for the contest: it loads and
// saves the three flat records (config, players, games) plus the submission
// audit log. The rules engine never touches the database — handlers and the
// contest service go through this package, and every failure here is wrapped
// in a StorageError so callers can tell an I/O fault from a rule violation.
package store

import (
	"errors"
	"fmt"

	"github.com/ryankeefer-alt/SurvivorPool-website/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested player or game does not exist.
// It is distinct from StorageError: the database worked fine, the record
// just isn't there.
var ErrNotFound = errors.New("record not found")

// StorageError wraps a database failure with the operation that hit it.
// These surface to clients as internal errors — they are never validation
// problems the player can fix.
type StorageError struct {
	Op  string // Which store operation failed, e.g. "load players"
	Err error  // The underlying gorm/driver error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// Store wraps the GORM handle with contest-shaped load/save operations.
type Store struct {
	db *gorm.DB
}

// New creates a Store on top of an open database connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// LoadConfig returns the single contest config row, creating an empty one on
// first access so the rest of the code never deals with a missing config.
func (s *Store) LoadConfig() (models.Config, error) {
	var cfg models.Config
	err := s.db.First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg = models.Config{ID: 1}
		if err := s.db.Create(&cfg).Error; err != nil {
			return cfg, storageErr("create config", err)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, storageErr("load config", err)
	}
	return cfg, nil
}

// SaveConfig writes the contest config back.
func (s *Store) SaveConfig(cfg models.Config) error {
	if err := s.db.Save(&cfg).Error; err != nil {
		return storageErr("save config", err)
	}
	return nil
}

// LoadPlayers returns every player, ordered by id for stable output.
func (s *Store) LoadPlayers() ([]models.Player, error) {
	var players []models.Player
	if err := s.db.Order("id").Find(&players).Error; err != nil {
		return nil, storageErr("load players", err)
	}
	return players, nil
}

// SavePlayers writes a full player list back in one transaction, so a
// day-processing run either lands completely or not at all.
func (s *Store) SavePlayers(players []models.Player) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range players {
			if err := tx.Save(&players[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storageErr("save players", err)
	}
	return nil
}

// Player returns one player by id, or ErrNotFound.
func (s *Store) Player(id int) (models.Player, error) {
	var p models.Player
	err := s.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, ErrNotFound
	}
	if err != nil {
		return p, storageErr("load player", err)
	}
	return p, nil
}

// CreatePlayer inserts a new player row and returns it with the assigned id.
func (s *Store) CreatePlayer(p models.Player) (models.Player, error) {
	if err := s.db.Create(&p).Error; err != nil {
		return p, storageErr("create player", err)
	}
	return p, nil
}

// SavePlayer writes one player back.
func (s *Store) SavePlayer(p models.Player) error {
	if err := s.db.Save(&p).Error; err != nil {
		return storageErr("save player", err)
	}
	return nil
}

// DeletePlayer removes a player. Deleting a missing player is ErrNotFound so
// the handler can answer 404 instead of silently succeeding.
func (s *Store) DeletePlayer(id int) error {
	res := s.db.Delete(&models.Player{}, "id = ?", id)
	if res.Error != nil {
		return storageErr("delete player", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GamesForDay returns the games scheduled on one day, ordered by slot.
func (s *Store) GamesForDay(day string) ([]models.Game, error) {
	var games []models.Game
	if err := s.db.Where("day = ?", day).Order("slot").Find(&games).Error; err != nil {
		return nil, storageErr("load games", err)
	}
	return games, nil
}

// LoadGames returns every game grouped by day — the DayToGameList shape the
// contest view serves.
func (s *Store) LoadGames() (map[string][]models.Game, error) {
	var games []models.Game
	if err := s.db.Order("day, slot").Find(&games).Error; err != nil {
		return nil, storageErr("load games", err)
	}
	byDay := make(map[string][]models.Game)
	for _, g := range games {
		byDay[g.Day] = append(byDay[g.Day], g)
	}
	return byDay, nil
}

// ReplaceGames swaps out a day's entire game list. Delete + insert inside one
// transaction keeps the day consistent if any insert fails.
func (s *Store) ReplaceGames(day string, games []models.Game) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("day = ?", day).Delete(&models.Game{}).Error; err != nil {
			return err
		}
		for i := range games {
			if err := tx.Create(&games[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storageErr("replace games", err)
	}
	return nil
}

// Game returns one game by its day and slot, or ErrNotFound.
func (s *Store) Game(day string, slot int) (models.Game, error) {
	var g models.Game
	err := s.db.First(&g, "day = ? AND slot = ?", day, slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return g, ErrNotFound
	}
	if err != nil {
		return g, storageErr("load game", err)
	}
	return g, nil
}

// SaveGame writes one game back.
func (s *Store) SaveGame(g models.Game) error {
	if err := s.db.Save(&g).Error; err != nil {
		return storageErr("save game", err)
	}
	return nil
}

// AppendSubmission records an accepted pick submission in the audit log.
func (s *Store) AppendSubmission(sub models.PickSubmission) error {
	if err := s.db.Create(&sub).Error; err != nil {
		return storageErr("append submission", err)
	}
	return nil
}

// Submissions returns the audit log, newest first.
func (s *Store) Submissions() ([]models.PickSubmission, error) {
	var subs []models.PickSubmission
	if err := s.db.Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, storageErr("load submissions", err)
	}
	return subs, nil
}
