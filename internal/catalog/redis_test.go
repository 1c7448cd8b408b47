package catalog

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestRedisMirrorRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("skipping test; REDIS_ADDR not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := DialRedis(ctx, addr, os.Getenv("REDIS_PASSWORD"), 15)
	if err != nil {
		t.Skipf("skipping test; redis unavailable: %v", err)
	}
	t.Cleanup(func() {
		client.Del(context.Background(), MemesKey, CaptionsKey)
		_ = client.Close()
	})

	mirror := NewRedisMirror(client)
	want := sampleCatalog(t)
	if err := mirror.Warm(ctx, want); err != nil {
		t.Fatalf("warm: %v", err)
	}
	got, err := mirror.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.MemeCount() != want.MemeCount() || got.CaptionCount() != want.CaptionCount() {
		t.Fatalf("expected %d/%d, got %d/%d", want.MemeCount(), want.CaptionCount(), got.MemeCount(), got.CaptionCount())
	}
	caption, ok := got.Caption(7)
	if !ok || caption.Text != "b" || !caption.ValidFor(2) {
		t.Fatalf("unexpected mirrored caption %+v", caption)
	}
}
