package db

import "testing"

func TestGameStatusScan(t *testing.T) {
	var status GameStatus
	if err := status.Scan(int64(1)); err != nil || status != GameInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s (%v)", status, err)
	}
	if err := status.Scan([]byte("0")); err != nil || status != GameCompleted {
		t.Fatalf("expected COMPLETED, got %s (%v)", status, err)
	}
	for _, bad := range []any{int64(2), "-1", nil, 1.0} {
		if err := status.Scan(bad); err == nil {
			t.Fatalf("expected %v to be rejected", bad)
		}
	}
	if _, err := GameStatus(9).Value(); err == nil {
		t.Fatalf("expected unknown status to be refused on write")
	}
}

func TestRoundStatusScan(t *testing.T) {
	var status RoundStatus
	if err := status.Scan(int64(0)); err != nil || status != RoundPending {
		t.Fatalf("expected PENDING, got %s (%v)", status, err)
	}
	if err := status.Scan("1"); err != nil || status != RoundAnswered {
		t.Fatalf("expected ANSWERED, got %s (%v)", status, err)
	}
	if err := status.Scan(int64(3)); err == nil {
		t.Fatalf("expected unknown code to be rejected")
	}
	if got := RoundStatus(3).String(); got != "RoundStatus(3)" {
		t.Fatalf("unexpected String for unknown code: %s", got)
	}
}
