// Package events forwards committed game events to subscribers outside the process.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Message is the wire form of a committed db.Event.
type Message struct {
	ID        uint            `json:"id"`
	Type      string          `json:"type"`
	GameID    uint            `json:"game_id"`
	RoundID   *uint           `json:"round_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

type Noop struct{}

func (Noop) Publish(context.Context, Message) error { return nil }

// Recorder keeps published messages in memory.
type Recorder struct {
	ch chan Message
}

func NewRecorder(buffer int) *Recorder {
	return &Recorder{ch: make(chan Message, buffer)}
}

func (r *Recorder) Publish(ctx context.Context, msg Message) error {
	select {
	case r.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain returns everything recorded so far without blocking.
func (r *Recorder) Drain() []Message {
	var out []Message
	for {
		select {
		case msg := <-r.ch:
			out = append(out, msg)
		default:
			return out
		}
	}
}
