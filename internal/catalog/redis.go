package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"what-do-you-meme/internal/db"

	"github.com/go-redis/redis/v8"
)

const (
	MemesKey    = "catalog:memes"
	CaptionsKey = "catalog:captions"
)

type memeRecord struct {
	ID       uint   `json:"id"`
	ImageURL string `json:"image_url"`
}

type captionRecord struct {
	ID      uint   `json:"id"`
	Text    string `json:"text"`
	MemeIDs []uint `json:"meme_ids"`
}

// RedisMirror keeps a copy of the catalog in two Redis hashes keyed by id.
type RedisMirror struct {
	client *redis.Client
}

// DialRedis connects to addr and checks the server answers.
func DialRedis(ctx context.Context, addr, password string, database int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	return client, nil
}

func NewRedisMirror(client *redis.Client) *RedisMirror {
	return &RedisMirror{client: client}
}

// Warm replaces the mirrored catalog in a single pipeline.
func (m *RedisMirror) Warm(ctx context.Context, c *Catalog) error {
	memes := make([]any, 0, 2*c.MemeCount())
	for _, meme := range c.Memes() {
		data, err := json.Marshal(memeRecord{ID: meme.ID, ImageURL: meme.ImageURL})
		if err != nil {
			return err
		}
		memes = append(memes, strconv.FormatUint(uint64(meme.ID), 10), data)
	}
	captions := make([]any, 0, 2*c.CaptionCount())
	for _, id := range c.CaptionIDs() {
		caption, _ := c.Caption(id)
		data, err := json.Marshal(captionRecord{ID: caption.ID, Text: caption.Text, MemeIDs: caption.MemeIDs})
		if err != nil {
			return err
		}
		captions = append(captions, strconv.FormatUint(uint64(id), 10), data)
	}

	pipe := m.client.TxPipeline()
	pipe.Del(ctx, MemesKey, CaptionsKey)
	if len(memes) > 0 {
		pipe.HSet(ctx, MemesKey, memes...)
	}
	if len(captions) > 0 {
		pipe.HSet(ctx, CaptionsKey, captions...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("warm catalog mirror: %w", err)
	}
	return nil
}

func (m *RedisMirror) Load(ctx context.Context) (*Catalog, error) {
	rawMemes, err := m.client.HGetAll(ctx, MemesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read mirrored memes: %w", err)
	}
	if len(rawMemes) == 0 {
		return nil, ErrEmpty
	}
	rawCaptions, err := m.client.HGetAll(ctx, CaptionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read mirrored captions: %w", err)
	}

	memes := make([]db.Meme, 0, len(rawMemes))
	for field, value := range rawMemes {
		var record memeRecord
		if err := json.Unmarshal([]byte(value), &record); err != nil {
			return nil, fmt.Errorf("mirrored meme %s: %w", field, err)
		}
		memes = append(memes, db.Meme{ID: record.ID, ImageURL: record.ImageURL})
	}
	captions := make([]db.Caption, 0, len(rawCaptions))
	for field, value := range rawCaptions {
		var record captionRecord
		if err := json.Unmarshal([]byte(value), &record); err != nil {
			return nil, fmt.Errorf("mirrored caption %s: %w", field, err)
		}
		captions = append(captions, db.Caption{ID: record.ID, Text: record.Text, MemeIDs: db.IDList(record.MemeIDs)})
	}
	return Build(memes, captions)
}
