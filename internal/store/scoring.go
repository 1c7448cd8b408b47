package store

import (
	"what-do-you-meme/internal/catalog"
	"what-do-you-meme/internal/db"
)

const DefaultCorrectPoints = 5

// Scorer decides what a resolved round contributes to its game.
type Scorer interface {
	Score(round db.Round, chosen uint, cat *catalog.Catalog) int
}

type ScorerFunc func(round db.Round, chosen uint, cat *catalog.Catalog) int

func (f ScorerFunc) Score(round db.Round, chosen uint, cat *catalog.Catalog) int {
	return f(round, chosen, cat)
}

// FixedPoints awards Points for the round's designated correct caption or,
// when none was designated, for any caption valid for the round's meme.
type FixedPoints struct {
	Points int
}

func (f FixedPoints) Score(round db.Round, chosen uint, cat *catalog.Catalog) int {
	if round.CorrectCaptionID != nil {
		if *round.CorrectCaptionID == chosen {
			return f.Points
		}
		return 0
	}
	if cat != nil && cat.CaptionValidFor(chosen, round.MemeID) {
		return f.Points
	}
	return 0
}
