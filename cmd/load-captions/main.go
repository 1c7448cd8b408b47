package main

import (
	"context"
	"flag"
	"time"

	"what-do-you-meme/internal/catalog"
	"what-do-you-meme/internal/config"
	"what-do-you-meme/internal/db"

	"github.com/sirupsen/logrus"
)

func main() {
	filePath := flag.String("file", "captions.csv", "path to captions csv (text,meme_ids)")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		logrus.Warnf("failed to load .env: %v", err)
	}
	cfg := config.Load()
	log := cfg.NewLogger()

	conn, err := db.Open(cfg, log)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	loaded, err := db.LoadCaptionsCSV(conn, *filePath)
	if err != nil {
		log.Fatalf("failed to load captions after %d rows: %v", loaded, err)
	}
	log.WithFields(logrus.Fields{"file": *filePath, "captions": loaded}).Info("captions loaded")

	if cfg.RedisAddr == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cat, err := catalog.NewDBSource(conn).Load(ctx)
	if err != nil {
		log.Fatalf("reload catalog: %v", err)
	}
	client, err := catalog.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("catalog mirror: %v", err)
	}
	defer client.Close()
	if err := catalog.NewRedisMirror(client).Warm(ctx, cat); err != nil {
		log.Fatalf("catalog mirror: %v", err)
	}
	log.WithField("captions", cat.CaptionCount()).Info("catalog mirror refreshed")
}
