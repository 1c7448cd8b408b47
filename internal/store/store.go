// Package store is the persistence layer of the game: users, games, rounds and
// the meme/caption reference set, with the round and game state machines
// enforced on every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"what-do-you-meme/internal/catalog"
	"what-do-you-meme/internal/db"
	"what-do-you-meme/internal/events"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultTxTimeout = 5 * time.Second

type Store struct {
	db        *gorm.DB
	log       *logrus.Logger
	validate  *validator.Validate
	source    catalog.Source
	catalog   atomic.Pointer[catalog.Catalog]
	loadMu    sync.Mutex
	locks     *gameLocks
	scorer    Scorer
	publisher events.Publisher
	txTimeout time.Duration
	rngMu     sync.Mutex
	rng       *rand.Rand
}

type Option func(*Store)

// WithSeed makes every random selection reproducible.
func WithSeed(seed int64) Option {
	return func(s *Store) {
		s.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	}
}

func WithScorer(scorer Scorer) Option {
	return func(s *Store) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

func WithCorrectPoints(points int) Option {
	return func(s *Store) {
		s.scorer = FixedPoints{Points: points}
	}
}

func WithTxTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		if timeout > 0 {
			s.txTimeout = timeout
		}
	}
}

func WithPublisher(publisher events.Publisher) Option {
	return func(s *Store) {
		if publisher != nil {
			s.publisher = publisher
		}
	}
}

func WithCatalogSource(source catalog.Source) Option {
	return func(s *Store) {
		if source != nil {
			s.source = source
		}
	}
}

func WithLogger(log *logrus.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func New(conn *gorm.DB, opts ...Option) *Store {
	s := &Store{
		db:        conn,
		log:       logrus.StandardLogger(),
		validate:  newValidator(),
		source:    catalog.NewDBSource(conn),
		locks:     newGameLocks(),
		scorer:    FixedPoints{Points: DefaultCorrectPoints},
		publisher: events.Noop{},
		txTimeout: defaultTxTimeout,
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the reference set, loading it on first use.
func (s *Store) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	if c := s.catalog.Load(); c != nil {
		return c, nil
	}
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if c := s.catalog.Load(); c != nil {
		return c, nil
	}
	return s.loadCatalogLocked(ctx)
}

// Refresh reloads the reference set. Call it after reseeding memes or captions.
func (s *Store) Refresh(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	_, err := s.loadCatalogLocked(ctx)
	return err
}

func (s *Store) loadCatalogLocked(ctx context.Context) (*catalog.Catalog, error) {
	c, err := s.source.Load(ctx)
	if err != nil {
		return nil, &StorageError{Op: "load catalog", Err: err}
	}
	s.catalog.Store(c)
	s.log.WithFields(logrus.Fields{
		"memes":    c.MemeCount(),
		"captions": c.CaptionCount(),
	}).Debug("catalog loaded")
	return c, nil
}

// withTx runs fn in a transaction bounded by the store timeout.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()
	return translate(op, s.db.WithContext(ctx).Transaction(fn))
}

// lockGameRow reads a game for update. Postgres takes a row lock; every
// engine is additionally guarded by the version check in bumpGame.
func lockGameRow(tx *gorm.DB, gameID uint) (*db.Game, error) {
	query := tx
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var game db.Game
	if err := query.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("game %d: %w", gameID, ErrNotFound)
		}
		return nil, err
	}
	return &game, nil
}

// bumpGame applies updates only if nobody changed the game since it was read.
func bumpGame(tx *gorm.DB, game *db.Game, updates map[string]any) error {
	updates["version"] = game.Version + 1
	updates["updated_at"] = time.Now().UTC()
	result := tx.Model(&db.Game{}).
		Where("id = ? AND version = ?", game.ID, game.Version).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return &StorageError{Op: fmt.Sprintf("update game %d", game.ID), Err: ErrConflict}
	}
	game.Version++
	return nil
}

type eventPayload struct {
	Username  string     `json:"username,omitempty"`
	MemeID    uint       `json:"meme_id,omitempty"`
	Captions  []uint     `json:"captions,omitempty"`
	Answer    *uint      `json:"answer,omitempty"`
	Score     *int       `json:"score,omitempty"`
	GameScore *int       `json:"game_score,omitempty"`
	Rounds    int        `json:"rounds,omitempty"`
	Status    string     `json:"status,omitempty"`
	At        *time.Time `json:"at,omitempty"`
}

func recordEvent(tx *gorm.DB, gameID uint, roundID *uint, eventType string, payload eventPayload) (db.Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return db.Event{}, err
	}
	event := db.Event{
		GameID:  gameID,
		RoundID: roundID,
		Type:    eventType,
		Payload: datatypes.JSON(data),
	}
	if err := tx.Create(&event).Error; err != nil {
		return db.Event{}, err
	}
	return event, nil
}

// publish forwards committed events. Failures are logged, never returned:
// the mutation they describe is already durable.
func (s *Store) publish(ctx context.Context, committed ...db.Event) {
	for _, event := range committed {
		msg := events.Message{
			ID:        event.ID,
			Type:      event.Type,
			GameID:    event.GameID,
			RoundID:   event.RoundID,
			Payload:   json.RawMessage(event.Payload),
			CreatedAt: event.CreatedAt,
		}
		if err := s.publisher.Publish(ctx, msg); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"event":   event.Type,
				"game_id": event.GameID,
			}).Warn("event publish failed")
		}
	}
}

func (s *Store) intN(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.IntN(n)
}

// sample draws k distinct elements of pool uniformly at random.
func (s *Store) sample(pool []uint, k int) []uint {
	work := make([]uint, len(pool))
	copy(work, pool)
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	for i := 0; i < k; i++ {
		j := i + s.rng.IntN(len(work)-i)
		work[i], work[j] = work[j], work[i]
	}
	out := make([]uint, k)
	copy(out, work[:k])
	return out
}

func (s *Store) shuffle(ids []uint) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	s.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}

func intPtr(v int) *int {
	return &v
}
