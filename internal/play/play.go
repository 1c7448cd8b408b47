// Package play runs a single-player game on top of the store: it picks memes
// and captions for each round, records answers and closes the game once the
// configured number of rounds has been played.
package play

import (
	"context"
	"errors"
	"fmt"

	"what-do-you-meme/internal/config"
	"what-do-you-meme/internal/db"
	"what-do-you-meme/internal/store"

	"github.com/sirupsen/logrus"
)

var ErrActiveGame = fmt.Errorf("game already in progress: %w", store.ErrInvalidState)

type Service struct {
	store       *store.Store
	log         *logrus.Logger
	rounds      int
	valid       int
	distractors int
}

func New(st *store.Store, cfg config.Config, log *logrus.Logger) *Service {
	def := config.Default()
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Service{
		store:       st,
		log:         log,
		rounds:      cfg.RoundsPerGame,
		valid:       cfg.ValidCaptionsPerRound,
		distractors: cfg.DistractorsPerRound,
	}
	if s.rounds <= 0 {
		s.rounds = def.RoundsPerGame
	}
	if s.valid <= 0 {
		s.valid = def.ValidCaptionsPerRound
	}
	if s.distractors < 0 {
		s.distractors = def.DistractorsPerRound
	}
	return s
}

// RoundView is what a player is shown for one round. RoundID is zero for
// guest rounds.
type RoundView struct {
	RoundID  uint
	Meme     db.Meme
	Captions []db.Caption
}

// Outcome reports an answered round. Next is nil once the game is over.
type Outcome struct {
	Round     db.Round
	GameScore int
	Completed bool
	Next      *RoundView
}

// StartGame opens a new game for username together with its first round.
func (s *Service) StartGame(ctx context.Context, username string) (*db.Game, *RoundView, error) {
	active, err := s.store.ActiveGame(ctx, username)
	switch {
	case err == nil:
		return nil, nil, fmt.Errorf("user %q, game %d: %w", username, active.ID, ErrActiveGame)
	case !errors.Is(err, store.ErrNotFound):
		return nil, nil, err
	}

	game, err := s.store.CreateGame(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	view, err := s.nextRound(ctx, game.ID, nil)
	if err != nil {
		// an empty game would block every later start
		if _, cerr := s.store.CompleteGame(ctx, game.ID); cerr != nil {
			s.log.WithError(cerr).WithField("game_id", game.ID).Error("could not close game without rounds")
		}
		return nil, nil, fmt.Errorf("deal first round of game %d: %w", game.ID, err)
	}
	s.log.WithFields(logrus.Fields{
		"username": username,
		"game_id":  game.ID,
		"round_id": view.RoundID,
	}).Info("game started")
	return game, view, nil
}

// Resume returns the user's game in progress and its pending round. A game
// left without a pending round gets its next round dealt, or is completed
// when it has none left, in which case ErrNotFound is returned.
func (s *Service) Resume(ctx context.Context, username string) (*db.Game, *RoundView, error) {
	game, err := s.store.ActiveGame(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	round, err := s.store.CurrentRound(ctx, game.ID)
	if errors.Is(err, store.ErrNotFound) {
		summary, err := s.store.GetGameSummary(ctx, game.ID)
		if err != nil {
			return nil, nil, err
		}
		next, completed, err := s.settle(ctx, summary)
		if err != nil {
			return nil, nil, err
		}
		if completed != nil {
			return nil, nil, fmt.Errorf("game in progress for %q: %w", username, store.ErrNotFound)
		}
		return &summary.Game, next, nil
	}
	if err != nil {
		return nil, nil, err
	}
	view, err := s.view(ctx, round.ID, round.MemeID, round.Captions)
	if err != nil {
		return nil, nil, err
	}
	return game, view, nil
}

// Answer resolves the pending round of the game and either deals the next
// round or completes the game.
func (s *Service) Answer(ctx context.Context, username string, gameID, captionID uint) (*Outcome, error) {
	game, err := s.owned(ctx, username, gameID)
	if err != nil {
		return nil, err
	}
	switch game.Status {
	case db.GameInProgress:
	case db.GameCompleted:
		return nil, fmt.Errorf("game %d is completed: %w", gameID, store.ErrInvalidState)
	default:
		return nil, fmt.Errorf("game %d has status %s: %w", gameID, game.Status, store.ErrInvalidState)
	}

	current, err := s.store.CurrentRound(ctx, gameID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("game %d has no pending round, resume it first: %w", gameID, store.ErrInvalidState)
		}
		return nil, err
	}
	resolved, err := s.store.ResolveRound(ctx, current.ID, captionID)
	if err != nil {
		return nil, err
	}
	summary, err := s.store.GetGameSummary(ctx, gameID)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Round: *resolved, GameScore: summary.Game.Score}
	next, completed, err := s.settle(ctx, summary)
	if err != nil {
		// the answer is stored; Resume deals the missing round
		return nil, fmt.Errorf("deal next round of game %d: %w", gameID, err)
	}
	if completed == nil {
		outcome.Next = next
		return outcome, nil
	}
	outcome.Completed = true
	outcome.GameScore = completed.Score
	s.log.WithFields(logrus.Fields{
		"username": username,
		"game_id":  gameID,
		"score":    completed.Score,
	}).Info("game finished")
	return outcome, nil
}

// settle moves a game without a pending round forward: it deals the next
// round, or completes the game once the round limit is reached or no meme is
// left.
func (s *Service) settle(ctx context.Context, summary *store.GameSummary) (*RoundView, *db.Game, error) {
	gameID := summary.Game.ID
	if len(summary.Rounds) < s.rounds {
		next, err := s.nextRound(ctx, gameID, summary.UsedMemes())
		switch {
		case err == nil:
			return next, nil, nil
		case !errors.Is(err, store.ErrExhausted):
			return nil, nil, err
		}
		s.log.WithField("game_id", gameID).Warn("out of memes, ending game early")
	}
	completed, err := s.store.CompleteGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	return nil, completed, nil
}

// Finish completes a game whose rounds have all been answered.
func (s *Service) Finish(ctx context.Context, username string, gameID uint) (*db.Game, error) {
	if _, err := s.owned(ctx, username, gameID); err != nil {
		return nil, err
	}
	return s.store.CompleteGame(ctx, gameID)
}

// GuestRound deals a round that is not stored anywhere.
func (s *Service) GuestRound(ctx context.Context) (*RoundView, error) {
	meme, candidates, err := s.deal(ctx, nil)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, 0, meme.ID, candidates)
}

// History returns every game of username, newest first, with its rounds.
func (s *Service) History(ctx context.Context, username string) ([]store.GameSummary, error) {
	if _, err := s.store.GetUser(ctx, username); err != nil {
		return nil, err
	}
	games, err := s.store.ListGames(ctx, username)
	if err != nil {
		return nil, err
	}
	out := make([]store.GameSummary, 0, len(games))
	for _, game := range games {
		summary, err := s.store.GetGameSummary(ctx, game.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *summary)
	}
	return out, nil
}

func (s *Service) owned(ctx context.Context, username string, gameID uint) (*db.Game, error) {
	game, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Username != username {
		return nil, fmt.Errorf("game %d of %q: %w", gameID, username, store.ErrNotFound)
	}
	return game, nil
}

func (s *Service) nextRound(ctx context.Context, gameID uint, used []uint) (*RoundView, error) {
	meme, candidates, err := s.deal(ctx, used)
	if err != nil {
		return nil, err
	}
	round, err := s.store.CreateRound(ctx, store.RoundParams{
		GameID:     gameID,
		MemeID:     meme.ID,
		CaptionIDs: candidates,
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, round.ID, round.MemeID, round.Captions)
}

// deal picks an unused meme with enough captions and mixes its valid
// captions with distractors. Memes with too few captions are skipped.
func (s *Service) deal(ctx context.Context, used []uint) (*db.Meme, []uint, error) {
	exclude := append([]uint(nil), used...)
	for {
		meme, err := s.store.SelectRoundMeme(ctx, exclude)
		if err != nil {
			return nil, nil, err
		}
		valid, err := s.store.SelectCandidateCaptions(ctx, meme.ID, s.valid, nil)
		if errors.Is(err, store.ErrInsufficientData) {
			s.log.WithField("meme_id", meme.ID).Debug("meme skipped, not enough captions")
			exclude = append(exclude, meme.ID)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		candidates := valid
		if s.distractors > 0 {
			distractors, err := s.store.SelectDistractorCaptions(ctx, meme.ID, s.distractors, valid)
			if err != nil {
				return nil, nil, err
			}
			candidates = append(candidates, distractors...)
		}
		s.store.Shuffle(candidates)
		return meme, candidates, nil
	}
}

func (s *Service) view(ctx context.Context, roundID, memeID uint, captionIDs []uint) (*RoundView, error) {
	meme, err := s.store.GetMeme(ctx, memeID)
	if err != nil {
		return nil, err
	}
	view := &RoundView{RoundID: roundID, Meme: *meme, Captions: make([]db.Caption, 0, len(captionIDs))}
	for _, id := range captionIDs {
		caption, err := s.store.GetCaption(ctx, id)
		if err != nil {
			return nil, err
		}
		view.Captions = append(view.Captions, *caption)
	}
	return view, nil
}
