package store

import (
	"context"
	"errors"
	"fmt"

	"what-do-you-meme/internal/db"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GameSummary is a game together with its rounds in play order.
type GameSummary struct {
	Game   db.Game
	Rounds []db.Round
}

// PendingRounds counts rounds still waiting for an answer.
func (g GameSummary) PendingRounds() int {
	pending := 0
	for _, round := range g.Rounds {
		switch round.Status {
		case db.RoundPending:
			pending++
		case db.RoundAnswered:
		}
	}
	return pending
}

// UsedMemes lists the memes already shown in the game.
func (g GameSummary) UsedMemes() []uint {
	out := make([]uint, 0, len(g.Rounds))
	for _, round := range g.Rounds {
		out = append(out, round.MemeID)
	}
	return out
}

// CreateGame starts an IN_PROGRESS game with no rounds for an existing user.
func (s *Store) CreateGame(ctx context.Context, username string) (*db.Game, error) {
	game := db.Game{
		Username: username,
		Score:    0,
		Status:   db.GameInProgress,
		Rounds:   db.IDList{},
		Version:  1,
	}
	var event db.Event
	err := s.withTx(ctx, "create game", func(tx *gorm.DB) error {
		var users int64
		if err := tx.Model(&db.User{}).Where("username = ?", username).Count(&users).Error; err != nil {
			return err
		}
		if users == 0 {
			return fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		if err := tx.Create(&game).Error; err != nil {
			return err
		}
		var err error
		event, err = recordEvent(tx, game.ID, nil, db.EventGameCreated, eventPayload{
			Username: username,
			Status:   game.Status.String(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event)
	s.log.WithFields(logrus.Fields{
		"game_id":  game.ID,
		"username": username,
	}).Info("game created")
	return &game, nil
}

func (s *Store) GetGame(ctx context.Context, gameID uint) (*db.Game, error) {
	var game db.Game
	if err := s.db.WithContext(ctx).First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("game %d: %w", gameID, ErrNotFound)
		}
		return nil, translate("get game", err)
	}
	return &game, nil
}

// ListGames returns the user's games, newest first.
func (s *Store) ListGames(ctx context.Context, username string) ([]db.Game, error) {
	var games []db.Game
	if err := s.db.WithContext(ctx).
		Where("username = ?", username).
		Order("id DESC").
		Find(&games).Error; err != nil {
		return nil, translate("list games", err)
	}
	return games, nil
}

// ActiveGame returns the user's most recent IN_PROGRESS game.
func (s *Store) ActiveGame(ctx context.Context, username string) (*db.Game, error) {
	var game db.Game
	err := s.db.WithContext(ctx).
		Where("username = ? AND status = ?", username, db.GameInProgress).
		Order("id DESC").
		First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("active game of %q: %w", username, ErrNotFound)
		}
		return nil, translate("active game", err)
	}
	return &game, nil
}

// CompleteGame moves a game to COMPLETED once every round has been answered.
func (s *Store) CompleteGame(ctx context.Context, gameID uint) (*db.Game, error) {
	unlock := s.locks.lock(gameID)
	defer unlock()

	var (
		game  *db.Game
		event db.Event
	)
	err := s.withTx(ctx, "complete game", func(tx *gorm.DB) error {
		var err error
		game, err = lockGameRow(tx, gameID)
		if err != nil {
			return err
		}
		switch game.Status {
		case db.GameCompleted:
			return fmt.Errorf("game %d already completed: %w", gameID, ErrInvalidState)
		case db.GameInProgress:
		default:
			return fmt.Errorf("game %d has status %s: %w", gameID, game.Status, ErrInvalidState)
		}
		var pending int64
		if err := tx.Model(&db.Round{}).
			Where("game_id = ? AND status = ?", gameID, db.RoundPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return fmt.Errorf("game %d has %d pending rounds: %w", gameID, pending, ErrInvalidState)
		}
		if err := bumpGame(tx, game, map[string]any{"status": db.GameCompleted}); err != nil {
			return err
		}
		game.Status = db.GameCompleted
		event, err = recordEvent(tx, game.ID, nil, db.EventGameCompleted, eventPayload{
			Username:  game.Username,
			GameScore: intPtr(game.Score),
			Rounds:    len(game.Rounds),
			Status:    game.Status.String(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event)
	s.log.WithFields(logrus.Fields{
		"game_id": game.ID,
		"score":   game.Score,
	}).Info("game completed")
	return game, nil
}

// GetGameSummary reads a game and its rounds from one consistent snapshot.
func (s *Store) GetGameSummary(ctx context.Context, gameID uint) (*GameSummary, error) {
	var summary GameSummary
	err := s.withTx(ctx, "game summary", func(tx *gorm.DB) error {
		if err := tx.First(&summary.Game, gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("game %d: %w", gameID, ErrNotFound)
			}
			return err
		}
		rounds, err := loadRounds(tx, summary.Game)
		if err != nil {
			return err
		}
		summary.Rounds = rounds
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// loadRounds returns the game's rounds ordered as in game.Rounds.
func loadRounds(tx *gorm.DB, game db.Game) ([]db.Round, error) {
	if len(game.Rounds) == 0 {
		return []db.Round{}, nil
	}
	var rows []db.Round
	if err := tx.Where("id IN ?", []uint(game.Rounds)).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]db.Round, len(rows))
	for _, row := range rows {
		if row.GameID != game.ID {
			return nil, &StorageError{
				Op:  fmt.Sprintf("load rounds of game %d", game.ID),
				Err: fmt.Errorf("round %d belongs to game %d", row.ID, row.GameID),
			}
		}
		byID[row.ID] = row
	}
	out := make([]db.Round, 0, len(game.Rounds))
	for _, id := range game.Rounds {
		row, ok := byID[id]
		if !ok {
			return nil, &StorageError{
				Op:  fmt.Sprintf("load rounds of game %d", game.ID),
				Err: fmt.Errorf("round %d is missing", id),
			}
		}
		out = append(out, row)
	}
	return out, nil
}
