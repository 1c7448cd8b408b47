package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"
)

func TestNATSPublisher(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("skipping test; NATS_URL not set")
	}
	publisher, err := ConnectNATS(url, os.Getenv("NATS_TOKEN"), "memegame.test")
	if err != nil {
		t.Skipf("skipping test; nats unavailable: %v", err)
	}
	defer publisher.Close()

	sub, err := publisher.conn.SubscribeSync("memegame.test.>")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Unsubscribe()
	if err := publisher.conn.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	sent := Message{ID: 4, Type: "round_resolved", GameID: 9, Payload: json.RawMessage(`{"score":10}`)}
	if err := publisher.Publish(context.Background(), sent); err != nil {
		t.Fatalf("publish: %v", err)
	}
	msg, err := sub.NextMsg(2 * time.Second)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if msg.Subject != "memegame.test.round_resolved" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	var got Message
	if err := json.Unmarshal(msg.Data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.GameID != 9 || got.Type != sent.Type {
		t.Fatalf("unexpected message %+v", got)
	}
}

func TestConnectNATSRequiresURL(t *testing.T) {
	if _, err := ConnectNATS("", "", "x"); err == nil {
		t.Fatalf("expected an error without a url")
	}
}
