package db

import (
	"strings"
	"testing"
)

func TestGamesReferenceUsers(t *testing.T) {
	conn := openTestDB(t)

	var ddl string
	if err := conn.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", "games").Scan(&ddl).Error; err != nil {
		t.Fatalf("read games ddl: %v", err)
	}
	unquote := strings.NewReplacer("`", "", `"`, "", " (", "(")
	if !strings.Contains(unquote.Replace(ddl), "REFERENCES users(username)") {
		t.Fatalf("expected games.username to reference users, got %s", ddl)
	}
	var usersDDL string
	if err := conn.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", "users").Scan(&usersDDL).Error; err != nil {
		t.Fatalf("read users ddl: %v", err)
	}
	if strings.Contains(usersDDL, "REFERENCES") {
		t.Fatalf("expected users to reference nothing, got %s", usersDDL)
	}
}

func TestUserWithGamesCannotBeDeleted(t *testing.T) {
	conn := openTestDB(t)

	user := User{Username: "alice", Password: []byte("v"), Salt: []byte("s")}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	game := Game{Username: "alice", Status: GameInProgress, Rounds: IDList{}, Version: 1}
	if err := conn.Create(&game).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}

	if err := conn.Exec("DELETE FROM users WHERE username = ?", "alice").Error; err == nil {
		t.Fatalf("expected the foreign key to refuse deleting a user with games")
	}
	var users int64
	if err := conn.Model(&User{}).Where("username = ?", "alice").Count(&users).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 1 {
		t.Fatalf("expected alice to remain, got %d rows", users)
	}

	orphan := Game{Username: "ghost", Status: GameInProgress, Rounds: IDList{}, Version: 1}
	if err := conn.Create(&orphan).Error; err == nil {
		t.Fatalf("expected a game for an unknown user to be refused")
	}
}

func TestRoundsAndEventsReferenceGames(t *testing.T) {
	conn := openTestDB(t)
	if _, err := SeedFixtures(conn); err != nil {
		t.Fatalf("seed: %v", err)
	}

	round := Round{GameID: 404, MemeID: 1, Captions: IDList{1}, Status: RoundPending}
	if err := conn.Create(&round).Error; err == nil {
		t.Fatalf("expected a round for an unknown game to be refused")
	}

	user := User{Username: "bob", Password: []byte("v"), Salt: []byte("s")}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	game := Game{Username: "bob", Status: GameInProgress, Rounds: IDList{}, Version: 1}
	if err := conn.Create(&game).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}
	round = Round{GameID: game.ID, MemeID: 999, Captions: IDList{1}, Status: RoundPending}
	if err := conn.Create(&round).Error; err == nil {
		t.Fatalf("expected a round for an unknown meme to be refused")
	}
	event := Event{GameID: 404, Type: EventGameCreated, Payload: []byte("{}")}
	if err := conn.Create(&event).Error; err == nil {
		t.Fatalf("expected an event for an unknown game to be refused")
	}
}
