// Command seed drops and recreates the schema, then loads the meme and
// caption reference set. It is a bootstrap tool and refuses to touch a
// production database unless forced.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"strings"
	"time"

	"what-do-you-meme/internal/catalog"
	"what-do-you-meme/internal/config"
	"what-do-you-meme/internal/db"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/sync/errgroup"
)

const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 16
	saltLen      = 16
)

func main() {
	force := flag.Bool("force", false, "allow running with APP_ENV=production")
	demo := flag.Bool("demo", false, "also insert demo users, games and rounds")
	demoUsers := flag.String("demo-users", "alice,bob", "comma separated demo usernames")
	demoPassword := flag.String("demo-password", "memes", "password for every demo user")
	captionsPath := flag.String("captions", "", "optional captions csv (text,meme_ids)")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		logrus.Warnf("failed to load .env: %v", err)
	}
	cfg := config.Load()
	log := cfg.NewLogger()

	if cfg.IsProduction() && !*force {
		log.Fatal("refusing to reset a production database without -force")
	}

	conn, err := db.Open(cfg, log)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := db.Reset(conn); err != nil {
		log.Fatalf("schema reset failed: %v", err)
	}

	report, err := db.SeedFixtures(conn)
	if err != nil {
		log.Fatalf("fixtures failed: %v", err)
	}
	entry := log.WithFields(logrus.Fields{
		"memes":    report.Memes,
		"captions": report.Captions,
	})
	if report.DroppedRefs > 0 || report.Skipped > 0 {
		entry.WithFields(logrus.Fields{
			"dropped_refs": report.DroppedRefs,
			"skipped":      report.Skipped,
		}).Warn("fixture captions referenced unknown memes")
	} else {
		entry.Info("fixtures loaded")
	}

	if *captionsPath != "" {
		loaded, err := db.LoadCaptionsCSV(conn, *captionsPath)
		if err != nil {
			log.Fatalf("captions csv failed after %d rows: %v", loaded, err)
		}
		log.WithField("captions", loaded).Info("captions csv loaded")
	}

	if *demo {
		users, err := demoAccounts(splitNames(*demoUsers), *demoPassword)
		if err != nil {
			log.Fatalf("demo verifiers failed: %v", err)
		}
		demoReport, err := db.SeedDemo(conn, users, cfg.CorrectPoints)
		if err != nil {
			log.Fatalf("demo data failed: %v", err)
		}
		log.WithFields(logrus.Fields{
			"users":  demoReport.Users,
			"games":  demoReport.Games,
			"rounds": demoReport.Rounds,
		}).Info("demo data loaded")
	}

	if cfg.RedisAddr != "" {
		if err := warmMirror(context.Background(), cfg, catalog.NewDBSource(conn), log); err != nil {
			log.Fatalf("catalog mirror failed: %v", err)
		}
	}
}

func warmMirror(ctx context.Context, cfg config.Config, source catalog.Source, log *logrus.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cat, err := source.Load(ctx)
	if err != nil {
		return err
	}
	client, err := catalog.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer client.Close()
	if err := catalog.NewRedisMirror(client).Warm(ctx, cat); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"addr":     cfg.RedisAddr,
		"memes":    cat.MemeCount(),
		"captions": cat.CaptionCount(),
	}).Info("catalog mirror warmed")
	return nil
}

func splitNames(raw string) []string {
	var out []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// demoAccounts derives an scrypt verifier with a fresh salt per user.
func demoAccounts(names []string, password string) ([]db.User, error) {
	users := make([]db.User, len(names))
	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			salt := make([]byte, saltLen)
			if _, err := rand.Read(salt); err != nil {
				return err
			}
			key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
			if err != nil {
				return err
			}
			users[i] = db.User{Username: name, Password: key, Salt: salt}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return users, nil
}
