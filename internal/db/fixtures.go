package db

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

type FixtureReport struct {
	Memes       int
	Captions    int
	DroppedRefs int
	Skipped     int
}

// SeedFixtures inserts FixtureMemes and FixtureCaptions. Caption references to
// memes outside the fixture set are dropped; captions left without a meme are skipped.
func SeedFixtures(conn *gorm.DB) (FixtureReport, error) {
	var report FixtureReport
	if conn == nil {
		return report, errors.New("db connection is nil")
	}
	err := conn.Transaction(func(tx *gorm.DB) error {
		memeIDs := make(map[uint]uint, len(FixtureMemes))
		for i, image := range FixtureMemes {
			meme := Meme{ImageURL: image}
			if err := tx.Create(&meme).Error; err != nil {
				return fmt.Errorf("insert meme %s: %w", image, err)
			}
			memeIDs[uint(i+1)] = meme.ID
			report.Memes++
		}
		for _, fixture := range FixtureCaptions {
			ids := make(IDList, 0, len(fixture.MemeIDs))
			for _, position := range fixture.MemeIDs {
				id, ok := memeIDs[position]
				if !ok || ids.Contains(id) {
					report.DroppedRefs++
					continue
				}
				ids = append(ids, id)
			}
			if len(ids) == 0 {
				report.Skipped++
				continue
			}
			caption := Caption{Text: fixture.Text, MemeIDs: ids}
			if err := tx.Create(&caption).Error; err != nil {
				return fmt.Errorf("insert caption %q: %w", fixture.Text, err)
			}
			report.Captions++
		}
		return nil
	})
	if err != nil {
		return FixtureReport{}, err
	}
	return report, nil
}

type DemoReport struct {
	Users  int
	Games  int
	Rounds int
}

// SeedDemo inserts sample users, a completed game for the first user and an
// in-progress game for the second. Fixtures must already be loaded.
func SeedDemo(conn *gorm.DB, users []User, points int) (DemoReport, error) {
	var report DemoReport
	if conn == nil {
		return report, errors.New("db connection is nil")
	}
	err := conn.Transaction(func(tx *gorm.DB) error {
		for i := range users {
			if err := tx.Create(&users[i]).Error; err != nil {
				return fmt.Errorf("insert user %s: %w", users[i].Username, err)
			}
			report.Users++
		}
		var memes []Meme
		if err := tx.Order("id").Limit(2).Find(&memes).Error; err != nil {
			return err
		}
		if len(users) == 0 || len(memes) < 2 {
			return nil
		}
		var captions []Caption
		if err := tx.Order("id").Find(&captions).Error; err != nil {
			return err
		}
		for i, user := range users {
			if i > 1 {
				break
			}
			meme := memes[i]
			candidates := demoCandidates(captions, meme.ID)
			if len(candidates) == 0 {
				continue
			}
			game := Game{Username: user.Username, Status: GameInProgress, Rounds: IDList{}, Version: 1}
			if err := tx.Create(&game).Error; err != nil {
				return err
			}
			round := Round{GameID: game.ID, MemeID: meme.ID, Captions: candidates, Status: RoundPending}
			if i == 0 {
				answer := candidates[0]
				round.Status = RoundAnswered
				round.Answer = &answer
				round.Score = points
			}
			if err := tx.Create(&round).Error; err != nil {
				return err
			}
			updates := map[string]any{
				"rounds":  IDList{round.ID},
				"score":   round.Score,
				"version": game.Version + 1,
			}
			if i == 0 {
				updates["status"] = GameCompleted
			}
			if err := tx.Model(&Game{}).Where("id = ?", game.ID).Updates(updates).Error; err != nil {
				return err
			}
			report.Games++
			report.Rounds++
		}
		return nil
	})
	if err != nil {
		return DemoReport{}, err
	}
	return report, nil
}

// demoCandidates picks up to two captions valid for the meme followed by two that are not.
func demoCandidates(captions []Caption, memeID uint) IDList {
	var valid, other IDList
	for _, caption := range captions {
		if caption.ValidFor(memeID) {
			if len(valid) < 2 {
				valid = append(valid, caption.ID)
			}
		} else if len(other) < 2 {
			other = append(other, caption.ID)
		}
	}
	if len(valid) == 0 {
		return nil
	}
	out := append(valid, other...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
