package store

import (
	"context"
	"errors"
	"testing"

	"what-do-you-meme/internal/db"
	"what-do-you-meme/internal/events"
)

func TestCreateGameDefaults(t *testing.T) {
	st, _ := newTestStore(t)
	mustCreateUser(t, st, "alice")

	game := mustCreateGame(t, st, "alice")
	if game.ID == 0 {
		t.Fatalf("expected game id to be allocated")
	}
	if game.Score != 0 || game.Status != db.GameInProgress || len(game.Rounds) != 0 {
		t.Fatalf("unexpected new game: %+v", game)
	}

	stored, err := st.GetGame(context.Background(), game.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if stored.Username != "alice" || stored.Status != db.GameInProgress || stored.Rounds == nil {
		t.Fatalf("unexpected stored game: %+v", stored)
	}
}

func TestCreateGameUnknownUser(t *testing.T) {
	st, _ := newTestStore(t)
	if _, err := st.CreateGame(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompleteGameRequiresAnsweredRounds(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, st, "alice")
	game := mustCreateGame(t, st, "alice")
	round := mustCreateRound(t, st, RoundParams{GameID: game.ID, MemeID: 1, CaptionIDs: []uint{3, 7, 12}})

	if _, err := st.CompleteGame(ctx, game.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState with a pending round, got %v", err)
	}
	if _, err := st.ResolveRound(ctx, round.ID, 3); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	completed, err := st.CompleteGame(ctx, game.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != db.GameCompleted {
		t.Fatalf("expected COMPLETED, got %s", completed.Status)
	}

	if _, err := st.CompleteGame(ctx, game.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on second completion, got %v", err)
	}
	_, err = st.CreateRound(ctx, RoundParams{GameID: game.ID, MemeID: 2, CaptionIDs: []uint{3}})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState creating a round on a completed game, got %v", err)
	}
	requireScoreMatchesRounds(t, st, game.ID)
}

func TestCompleteGameWithoutRounds(t *testing.T) {
	st, _ := newTestStore(t)
	mustCreateUser(t, st, "alice")
	game := mustCreateGame(t, st, "alice")
	if _, err := st.CompleteGame(context.Background(), game.ID); err != nil {
		t.Fatalf("expected empty game to complete, got %v", err)
	}
}

func TestCompleteGameMissing(t *testing.T) {
	st, _ := newTestStore(t)
	if _, err := st.CompleteGame(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAndActiveGames(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, st, "alice")

	if _, err := st.ActiveGame(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected no active game, got %v", err)
	}
	first := mustCreateGame(t, st, "alice")
	if _, err := st.CompleteGame(ctx, first.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	second := mustCreateGame(t, st, "alice")

	games, err := st.ListGames(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(games) != 2 || games[0].ID != second.ID || games[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", games)
	}
	active, err := st.ActiveGame(ctx, "alice")
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active.ID != second.ID {
		t.Fatalf("expected active game %d, got %d", second.ID, active.ID)
	}
}

func TestGameSummaryKeepsRoundOrder(t *testing.T) {
	st, _ := newTestStore(t)
	mustCreateUser(t, st, "alice")
	game := mustCreateGame(t, st, "alice")
	var want []uint
	for _, meme := range []uint{4, 2, 9} {
		round := mustCreateRound(t, st, RoundParams{GameID: game.ID, MemeID: meme, CaptionIDs: []uint{1, 2}})
		want = append(want, round.ID)
	}

	summary := requireScoreMatchesRounds(t, st, game.ID)
	if len(summary.Rounds) != len(want) {
		t.Fatalf("expected %d rounds, got %d", len(want), len(summary.Rounds))
	}
	for i, round := range summary.Rounds {
		if round.ID != want[i] || summary.Game.Rounds[i] != want[i] {
			t.Fatalf("round %d: expected id %d, got %d", i, want[i], round.ID)
		}
	}
	if got := summary.UsedMemes(); len(got) != 3 || got[0] != 4 || got[1] != 2 || got[2] != 9 {
		t.Fatalf("unexpected used memes %v", got)
	}
	if summary.PendingRounds() != 3 {
		t.Fatalf("expected 3 pending rounds, got %d", summary.PendingRounds())
	}
}

func TestGameSummaryRejectsCorruptRoundList(t *testing.T) {
	st, conn := newTestStore(t)
	mustCreateUser(t, st, "alice")
	game := mustCreateGame(t, st, "alice")

	if err := conn.Exec("UPDATE games SET rounds = ? WHERE id = ?", "[5,5]", game.ID).Error; err != nil {
		t.Fatalf("corrupt rounds: %v", err)
	}
	if _, err := st.GetGameSummary(context.Background(), game.ID); !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage for a repeated round id, got %v", err)
	}

	if err := conn.Exec("UPDATE games SET rounds = ?, status = ? WHERE id = ?", "[]", 7, game.ID).Error; err != nil {
		t.Fatalf("corrupt status: %v", err)
	}
	if _, err := st.GetGame(context.Background(), game.ID); !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage for unknown status code, got %v", err)
	}
}

func TestGameEventsArePublishedAfterCommit(t *testing.T) {
	recorder := events.NewRecorder(16)
	st, conn := newTestStore(t, WithPublisher(recorder))
	ctx := context.Background()
	mustCreateUser(t, st, "alice")
	game := mustCreateGame(t, st, "alice")
	round := mustCreateRound(t, st, RoundParams{GameID: game.ID, MemeID: 1, CaptionIDs: []uint{3, 7, 12}, CorrectCaptionID: uintPtr(7)})
	if _, err := st.ResolveRound(ctx, round.ID, 7); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := st.ResolveRound(ctx, round.ID, 7); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected refused resolve, got %v", err)
	}
	if _, err := st.CompleteGame(ctx, game.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	want := []string{db.EventGameCreated, db.EventRoundCreated, db.EventRoundResolved, db.EventGameCompleted}
	published := recorder.Drain()
	if len(published) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(published))
	}
	for i, msg := range published {
		if msg.Type != want[i] || msg.GameID != game.ID {
			t.Fatalf("message %d: expected %s for game %d, got %s for game %d", i, want[i], game.ID, msg.Type, msg.GameID)
		}
	}

	var stored int64
	if err := conn.Model(&db.Event{}).Where("game_id = ?", game.ID).Count(&stored).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if stored != int64(len(want)) {
		t.Fatalf("expected %d stored events, got %d", len(want), stored)
	}
}
