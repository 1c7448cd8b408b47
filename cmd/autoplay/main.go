// Command autoplay plays complete games with bot users against the configured
// database. Answers are picked at random from the offered captions.
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	mathrand "math/rand/v2"
	"time"

	"what-do-you-meme/internal/catalog"
	"what-do-you-meme/internal/config"
	"what-do-you-meme/internal/db"
	"what-do-you-meme/internal/events"
	"what-do-you-meme/internal/play"
	"what-do-you-meme/internal/store"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	bots := flag.Int("bots", 4, "number of bot players")
	games := flag.Int("games", 1, "games per bot")
	parallel := flag.Int("parallel", 4, "bots playing at the same time")
	prefix := flag.String("prefix", "bot", "bot username prefix")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		logrus.Warnf("failed to load .env: %v", err)
	}
	cfg := config.Load()
	log := cfg.NewLogger()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, err := db.Open(cfg, log)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	opts := []store.Option{
		store.WithLogger(log),
		store.WithCorrectPoints(cfg.CorrectPoints),
		store.WithTxTimeout(cfg.TxTimeout()),
	}
	if cfg.RedisAddr != "" {
		client, err := catalog.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Warn("catalog mirror unavailable, reading the database")
		} else {
			defer client.Close()
			opts = append(opts, store.WithCatalogSource(catalog.FirstOf(
				catalog.NewRedisMirror(client),
				catalog.NewDBSource(conn),
			)))
		}
	}
	if cfg.NATSURL != "" {
		publisher, err := events.ConnectNATS(cfg.NATSURL, cfg.NATSToken, cfg.NATSSubject)
		if err != nil {
			log.Fatalf("nats connection failed: %v", err)
		}
		defer publisher.Close()
		opts = append(opts, store.WithPublisher(publisher))
	}

	st := store.New(conn, opts...)
	svc := play.New(st, cfg, log)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*parallel)
	for i := 1; i <= *bots; i++ {
		username := fmt.Sprintf("%s%d", *prefix, i)
		g.Go(func() error {
			if err := ensureBot(gctx, st, username); err != nil {
				return err
			}
			for n := 0; n < *games; n++ {
				score, err := playGame(gctx, svc, username)
				if err != nil {
					return fmt.Errorf("%s: %w", username, err)
				}
				log.WithFields(logrus.Fields{"bot": username, "score": score}).Info("bot finished a game")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("autoplay failed: %v", err)
	}
}

func ensureBot(ctx context.Context, st *store.Store, username string) error {
	verifier := make([]byte, 16)
	salt := make([]byte, 16)
	if _, err := rand.Read(verifier); err != nil {
		return err
	}
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	_, err := st.CreateUser(ctx, username, verifier, salt)
	if errors.Is(err, store.ErrDuplicateKey) {
		return nil
	}
	return err
}

// playGame finishes any game the bot left open, then plays a new one.
func playGame(ctx context.Context, svc *play.Service, username string) (int, error) {
	game, round, err := svc.Resume(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		game, round, err = svc.StartGame(ctx, username)
	}
	if err != nil {
		return 0, err
	}
	for round != nil {
		if len(round.Captions) == 0 {
			return 0, fmt.Errorf("round %d offers no captions", round.RoundID)
		}
		choice := round.Captions[mathrand.IntN(len(round.Captions))]
		outcome, err := svc.Answer(ctx, username, game.ID, choice.ID)
		if err != nil {
			return 0, err
		}
		if outcome.Completed {
			return outcome.GameScore, nil
		}
		round = outcome.Next
	}
	return 0, fmt.Errorf("game %d ended without completing", game.ID)
}
