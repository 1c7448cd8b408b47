package store

import (
	"context"
	"fmt"

	"what-do-you-meme/internal/db"
)

func (s *Store) GetMeme(ctx context.Context, memeID uint) (*db.Meme, error) {
	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	meme, ok := cat.Meme(memeID)
	if !ok {
		return nil, fmt.Errorf("meme %d: %w", memeID, ErrNotFound)
	}
	return &meme, nil
}

func (s *Store) GetCaption(ctx context.Context, captionID uint) (*db.Caption, error) {
	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	caption, ok := cat.Caption(captionID)
	if !ok {
		return nil, fmt.Errorf("caption %d: %w", captionID, ErrNotFound)
	}
	return &caption, nil
}

// SelectRoundMeme draws a meme uniformly from those not in exclude.
func (s *Store) SelectRoundMeme(ctx context.Context, exclude []uint) (*db.Meme, error) {
	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	skip := make(map[uint]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}
	var pool []db.Meme
	for _, meme := range cat.Memes() {
		if _, excluded := skip[meme.ID]; !excluded {
			pool = append(pool, meme)
		}
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("no unused meme among %d: %w", cat.MemeCount(), ErrExhausted)
	}
	meme := pool[s.intN(len(pool))]
	return &meme, nil
}

// SelectCandidateCaptions returns count distinct captions valid for memeID in
// random order. A non-nil correct caption is always included and the rest are
// drawn uniformly from the remaining valid captions.
func (s *Store) SelectCandidateCaptions(ctx context.Context, memeID uint, count int, correct *uint) ([]uint, error) {
	if count <= 0 {
		return nil, fmt.Errorf("select captions: count %d: %w", count, ErrInvalidInput)
	}
	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := cat.Meme(memeID); !ok {
		return nil, fmt.Errorf("meme %d: %w", memeID, ErrNotFound)
	}
	eligible := cat.CaptionsFor(memeID)
	if len(eligible) < count {
		return nil, fmt.Errorf("meme %d has %d captions, %d requested: %w", memeID, len(eligible), count, ErrInsufficientData)
	}

	pool := eligible
	need := count
	if correct != nil {
		pool = make([]uint, 0, len(eligible))
		found := false
		for _, id := range eligible {
			if id == *correct {
				found = true
				continue
			}
			pool = append(pool, id)
		}
		if !found {
			return nil, fmt.Errorf("caption %d is not valid for meme %d: %w", *correct, memeID, ErrNotFound)
		}
		need--
	}

	picked := s.sample(pool, need)
	if correct != nil {
		picked = append(picked, *correct)
	}
	s.shuffle(picked)
	return picked, nil
}

// SelectDistractorCaptions draws up to count captions that are not valid for
// memeID, skipping exclude. Fewer are returned when the pool is smaller.
func (s *Store) SelectDistractorCaptions(ctx context.Context, memeID uint, count int, exclude []uint) ([]uint, error) {
	if count < 0 {
		return nil, fmt.Errorf("select distractors: count %d: %w", count, ErrInvalidInput)
	}
	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := cat.Meme(memeID); !ok {
		return nil, fmt.Errorf("meme %d: %w", memeID, ErrNotFound)
	}
	skip := make(map[uint]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}
	var pool []uint
	for _, id := range cat.CaptionIDs() {
		if _, excluded := skip[id]; excluded {
			continue
		}
		if cat.CaptionValidFor(id, memeID) {
			continue
		}
		pool = append(pool, id)
	}
	if count > len(pool) {
		count = len(pool)
	}
	return s.sample(pool, count), nil
}

// Shuffle reorders ids in place with the store's random source.
func (s *Store) Shuffle(ids []uint) {
	s.shuffle(ids)
}
