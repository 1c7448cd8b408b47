package store

import (
	"context"
	"io"
	"strings"
	"testing"

	"what-do-you-meme/internal/config"
	"what-do-you-meme/internal/db"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const testPoints = 10

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// openTestDB returns a migrated in-memory SQLite database private to t.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := config.Default()
	cfg.DBDriver = config.DriverSQLite
	cfg.SQLitePath = "file:" + name + "?mode=memory&cache=shared"
	conn, err := db.Open(cfg, quietLogger())
	if err != nil {
		t.Skipf("skipping test; sqlite unavailable: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

// newTestStore opens a database loaded with the fixture set.
func newTestStore(t *testing.T, opts ...Option) (*Store, *gorm.DB) {
	t.Helper()
	conn := openTestDB(t)
	if _, err := db.SeedFixtures(conn); err != nil {
		t.Fatalf("seed fixtures: %v", err)
	}
	opts = append([]Option{
		WithLogger(quietLogger()),
		WithCorrectPoints(testPoints),
		WithSeed(1),
	}, opts...)
	return New(conn, opts...), conn
}

func mustCreateUser(t *testing.T, st *Store, username string) *db.User {
	t.Helper()
	user, err := st.CreateUser(context.Background(), username, []byte("verifier-"+username), []byte("salt-"+username))
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func mustCreateGame(t *testing.T, st *Store, username string) *db.Game {
	t.Helper()
	game, err := st.CreateGame(context.Background(), username)
	if err != nil {
		t.Fatalf("create game for %s: %v", username, err)
	}
	return game
}

func mustCreateRound(t *testing.T, st *Store, params RoundParams) *db.Round {
	t.Helper()
	round, err := st.CreateRound(context.Background(), params)
	if err != nil {
		t.Fatalf("create round %+v: %v", params, err)
	}
	return round
}

// memeWithCaptions returns a fixture meme with at least n valid captions.
func memeWithCaptions(t *testing.T, st *Store, n int) uint {
	t.Helper()
	cat, err := st.Catalog(context.Background())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	for _, meme := range cat.Memes() {
		if len(cat.CaptionsFor(meme.ID)) >= n {
			return meme.ID
		}
	}
	t.Fatalf("no fixture meme has %d captions", n)
	return 0
}

// requireScoreMatchesRounds checks that the game score equals the sum of its
// round scores.
func requireScoreMatchesRounds(t *testing.T, st *Store, gameID uint) *GameSummary {
	t.Helper()
	summary, err := st.GetGameSummary(context.Background(), gameID)
	if err != nil {
		t.Fatalf("summary of game %d: %v", gameID, err)
	}
	sum := 0
	for _, round := range summary.Rounds {
		sum += round.Score
	}
	if summary.Game.Score != sum {
		t.Fatalf("expected game score %d to equal round sum %d", summary.Game.Score, sum)
	}
	return summary
}

func uintPtr(v uint) *uint {
	return &v
}
