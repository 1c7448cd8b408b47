package store

import (
	"context"
	"errors"
	"fmt"

	"what-do-you-meme/internal/db"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RoundParams struct {
	GameID     uint
	MemeID     uint
	CaptionIDs []uint
	// CorrectCaptionID, when set, must be one of CaptionIDs and is the only
	// answer that scores. When nil any caption valid for the meme scores.
	CorrectCaptionID *uint
}

// CreateRound appends a PENDING round to an IN_PROGRESS game.
func (s *Store) CreateRound(ctx context.Context, params RoundParams) (*db.Round, error) {
	candidates := db.IDList(append([]uint(nil), params.CaptionIDs...))
	if len(candidates) == 0 {
		return nil, fmt.Errorf("create round: no candidate captions: %w", ErrInvalidInput)
	}
	if err := candidates.Validate(); err != nil {
		return nil, fmt.Errorf("create round: %v: %w", err, ErrInvalidInput)
	}
	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := cat.Meme(params.MemeID); !ok {
		return nil, fmt.Errorf("meme %d: %w", params.MemeID, ErrNotFound)
	}
	for _, id := range candidates {
		if _, ok := cat.Caption(id); !ok {
			return nil, fmt.Errorf("caption %d: %w", id, ErrNotFound)
		}
	}
	var correct *uint
	if params.CorrectCaptionID != nil {
		if !candidates.Contains(*params.CorrectCaptionID) {
			return nil, fmt.Errorf("correct caption %d is not a candidate: %w", *params.CorrectCaptionID, ErrNotFound)
		}
		id := *params.CorrectCaptionID
		correct = &id
	}

	unlock := s.locks.lock(params.GameID)
	defer unlock()

	round := db.Round{
		GameID:           params.GameID,
		MemeID:           params.MemeID,
		Captions:         candidates,
		CorrectCaptionID: correct,
		Status:           db.RoundPending,
	}
	var event db.Event
	err = s.withTx(ctx, "create round", func(tx *gorm.DB) error {
		game, err := lockGameRow(tx, params.GameID)
		if err != nil {
			return err
		}
		switch game.Status {
		case db.GameInProgress:
		case db.GameCompleted:
			return fmt.Errorf("game %d is completed: %w", game.ID, ErrInvalidState)
		default:
			return fmt.Errorf("game %d has status %s: %w", game.ID, game.Status, ErrInvalidState)
		}
		if err := tx.Create(&round).Error; err != nil {
			return err
		}
		rounds := append(game.Rounds.Clone(), round.ID)
		if err := bumpGame(tx, game, map[string]any{"rounds": rounds}); err != nil {
			return err
		}
		event, err = recordEvent(tx, game.ID, &round.ID, db.EventRoundCreated, eventPayload{
			MemeID:   round.MemeID,
			Captions: round.Captions,
			Rounds:   len(rounds),
			Status:   round.Status.String(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event)
	s.log.WithFields(logrus.Fields{
		"game_id":  round.GameID,
		"round_id": round.ID,
		"meme_id":  round.MemeID,
	}).Debug("round created")
	return &round, nil
}

// ResolveRound records the player's answer, scores the round and adds the
// score to the parent game in the same transaction.
func (s *Store) ResolveRound(ctx context.Context, roundID, chosenCaptionID uint) (*db.Round, error) {
	owner, err := s.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(owner.GameID)
	defer unlock()

	var (
		round db.Round
		event db.Event
	)
	err = s.withTx(ctx, "resolve round", func(tx *gorm.DB) error {
		game, err := lockGameRow(tx, owner.GameID)
		if err != nil {
			return err
		}
		if err := tx.First(&round, roundID).Error; err != nil {
			return err
		}
		switch round.Status {
		case db.RoundPending:
		case db.RoundAnswered:
			return fmt.Errorf("round %d already answered: %w", roundID, ErrInvalidState)
		default:
			return fmt.Errorf("round %d has status %s: %w", roundID, round.Status, ErrInvalidState)
		}
		switch game.Status {
		case db.GameInProgress:
		case db.GameCompleted:
			return fmt.Errorf("game %d is completed: %w", game.ID, ErrInvalidState)
		default:
			return fmt.Errorf("game %d has status %s: %w", game.ID, game.Status, ErrInvalidState)
		}
		if !round.Captions.Contains(chosenCaptionID) {
			return fmt.Errorf("caption %d is not a candidate of round %d: %w", chosenCaptionID, roundID, ErrNotFound)
		}

		score := s.scorer.Score(round, chosenCaptionID, cat)
		result := tx.Model(&db.Round{}).
			Where("id = ? AND status = ?", roundID, db.RoundPending).
			Updates(map[string]any{
				"status": db.RoundAnswered,
				"answer": chosenCaptionID,
				"score":  score,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return &StorageError{Op: fmt.Sprintf("answer round %d", roundID), Err: ErrConflict}
		}
		if err := bumpGame(tx, game, map[string]any{"score": gorm.Expr("score + ?", score)}); err != nil {
			return err
		}
		game.Score += score

		answer := chosenCaptionID
		round.Status = db.RoundAnswered
		round.Answer = &answer
		round.Score = score
		event, err = recordEvent(tx, game.ID, &round.ID, db.EventRoundResolved, eventPayload{
			MemeID:    round.MemeID,
			Answer:    round.Answer,
			Score:     intPtr(score),
			GameScore: intPtr(game.Score),
			Status:    round.Status.String(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event)
	s.log.WithFields(logrus.Fields{
		"game_id":  round.GameID,
		"round_id": round.ID,
		"answer":   chosenCaptionID,
		"score":    round.Score,
	}).Debug("round resolved")
	return &round, nil
}

func (s *Store) GetRound(ctx context.Context, roundID uint) (*db.Round, error) {
	var round db.Round
	if err := s.db.WithContext(ctx).First(&round, roundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("round %d: %w", roundID, ErrNotFound)
		}
		return nil, translate("get round", err)
	}
	return &round, nil
}

// CurrentRound returns the first PENDING round of the game in play order.
func (s *Store) CurrentRound(ctx context.Context, gameID uint) (*db.Round, error) {
	summary, err := s.GetGameSummary(ctx, gameID)
	if err != nil {
		return nil, err
	}
	for i := range summary.Rounds {
		switch summary.Rounds[i].Status {
		case db.RoundPending:
			return &summary.Rounds[i], nil
		case db.RoundAnswered:
		}
	}
	return nil, fmt.Errorf("pending round of game %d: %w", gameID, ErrNotFound)
}
