// Package catalog holds the meme and caption reference set. A Catalog is
// immutable once built and safe for concurrent readers.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"what-do-you-meme/internal/db"

	"gorm.io/gorm"
)

var ErrEmpty = errors.New("catalog is empty")

type Catalog struct {
	memes      []db.Meme
	memeByID   map[uint]db.Meme
	captions   map[uint]db.Caption
	captionIDs []uint
	byMeme     map[uint][]uint
}

// Build validates that every caption names at least one meme and that all
// named memes exist.
func Build(memes []db.Meme, captions []db.Caption) (*Catalog, error) {
	c := &Catalog{
		memes:      make([]db.Meme, 0, len(memes)),
		memeByID:   make(map[uint]db.Meme, len(memes)),
		captions:   make(map[uint]db.Caption, len(captions)),
		captionIDs: make([]uint, 0, len(captions)),
		byMeme:     make(map[uint][]uint, len(memes)),
	}
	for _, meme := range memes {
		if meme.ID == 0 {
			return nil, errors.New("catalog: meme without id")
		}
		if _, dup := c.memeByID[meme.ID]; dup {
			return nil, fmt.Errorf("catalog: meme %d repeated", meme.ID)
		}
		c.memeByID[meme.ID] = meme
		c.memes = append(c.memes, meme)
	}
	sort.Slice(c.memes, func(i, j int) bool { return c.memes[i].ID < c.memes[j].ID })

	for _, caption := range captions {
		if caption.ID == 0 {
			return nil, errors.New("catalog: caption without id")
		}
		if _, dup := c.captions[caption.ID]; dup {
			return nil, fmt.Errorf("catalog: caption %d repeated", caption.ID)
		}
		if len(caption.MemeIDs) == 0 {
			return nil, fmt.Errorf("catalog: caption %d has no memes", caption.ID)
		}
		if err := caption.MemeIDs.Validate(); err != nil {
			return nil, fmt.Errorf("catalog: caption %d: %w", caption.ID, err)
		}
		for _, memeID := range caption.MemeIDs {
			if _, ok := c.memeByID[memeID]; !ok {
				return nil, fmt.Errorf("catalog: caption %d references unknown meme %d", caption.ID, memeID)
			}
			c.byMeme[memeID] = append(c.byMeme[memeID], caption.ID)
		}
		caption.MemeIDs = caption.MemeIDs.Clone()
		c.captions[caption.ID] = caption
		c.captionIDs = append(c.captionIDs, caption.ID)
	}
	sort.Slice(c.captionIDs, func(i, j int) bool { return c.captionIDs[i] < c.captionIDs[j] })
	for memeID := range c.byMeme {
		ids := c.byMeme[memeID]
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	return c, nil
}

func (c *Catalog) Meme(id uint) (db.Meme, bool) {
	meme, ok := c.memeByID[id]
	return meme, ok
}

func (c *Catalog) Caption(id uint) (db.Caption, bool) {
	caption, ok := c.captions[id]
	if ok {
		caption.MemeIDs = caption.MemeIDs.Clone()
	}
	return caption, ok
}

// Memes returns every meme ordered by id.
func (c *Catalog) Memes() []db.Meme {
	out := make([]db.Meme, len(c.memes))
	copy(out, c.memes)
	return out
}

// CaptionIDs returns every caption id in ascending order.
func (c *Catalog) CaptionIDs() []uint {
	out := make([]uint, len(c.captionIDs))
	copy(out, c.captionIDs)
	return out
}

// CaptionsFor returns the ids of captions valid for memeID in ascending order.
func (c *Catalog) CaptionsFor(memeID uint) []uint {
	ids := c.byMeme[memeID]
	out := make([]uint, len(ids))
	copy(out, ids)
	return out
}

func (c *Catalog) CaptionValidFor(captionID, memeID uint) bool {
	caption, ok := c.captions[captionID]
	return ok && caption.ValidFor(memeID)
}

func (c *Catalog) MemeCount() int {
	return len(c.memes)
}

func (c *Catalog) CaptionCount() int {
	return len(c.captionIDs)
}

// Source loads a Catalog from some backing store.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

type DBSource struct {
	conn *gorm.DB
}

func NewDBSource(conn *gorm.DB) *DBSource {
	return &DBSource{conn: conn}
}

func (s *DBSource) Load(ctx context.Context) (*Catalog, error) {
	if s.conn == nil {
		return nil, errors.New("db connection is nil")
	}
	var memes []db.Meme
	if err := s.conn.WithContext(ctx).Order("id").Find(&memes).Error; err != nil {
		return nil, fmt.Errorf("load memes: %w", err)
	}
	var captions []db.Caption
	if err := s.conn.WithContext(ctx).Order("id").Find(&captions).Error; err != nil {
		return nil, fmt.Errorf("load captions: %w", err)
	}
	return Build(memes, captions)
}

type firstOf []Source

// FirstOf tries each source in order and returns the first non-empty catalog.
// When every source loads cleanly but empty, the last empty catalog is returned.
func FirstOf(sources ...Source) Source {
	return firstOf(sources)
}

func (f firstOf) Load(ctx context.Context) (*Catalog, error) {
	var (
		errs  []error
		empty *Catalog
	)
	for _, source := range f {
		if source == nil {
			continue
		}
		c, err := source.Load(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if c.MemeCount() > 0 {
			return c, nil
		}
		empty = c
	}
	if empty != nil {
		return empty, nil
	}
	if len(errs) == 0 {
		return nil, ErrEmpty
	}
	return nil, errors.Join(errs...)
}
