package schema

import (
	"testing"
	"time"
)

func TestPending(t *testing.T) {
	all := []Migration{
		{Version: 3, Description: "third"},
		{Version: 1, Description: "first"},
		{Version: 2, Description: "second"},
	}
	applied := map[int]time.Time{2: time.Now()}

	got := Pending(all, applied)
	if len(got) != 2 {
		t.Fatalf("Pending() = %d migrations, want 2", len(got))
	}
	if got[0].Version != 1 || got[1].Version != 3 {
		t.Errorf("Pending() versions = [%d %d], want [1 3]", got[0].Version, got[1].Version)
	}
}

func TestPendingNothingLeft(t *testing.T) {
	all := []Migration{{Version: 1}}
	if got := Pending(all, map[int]time.Time{1: time.Now()}); len(got) != 0 {
		t.Errorf("Pending() = %v, want none", got)
	}
}

func TestAppliedNewestFirst(t *testing.T) {
	all := []Migration{{Version: 1}, {Version: 2}, {Version: 3}}
	applied := map[int]time.Time{1: time.Now(), 3: time.Now()}

	got := Applied(all, applied)
	if len(got) != 2 || got[0].Version != 3 || got[1].Version != 1 {
		t.Errorf("Applied() = %v, want versions [3 1]", got)
	}
}
