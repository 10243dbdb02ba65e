package store

import (
	"sort"
	"testing"
	"time"
)

func TestPushIDsOrderedAcrossMillis(t *testing.T) {
	g := &pushIDs{}
	base := time.UnixMilli(1757000000000)

	ids := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		ids = append(ids, g.next(base.Add(time.Duration(i)*time.Millisecond)))
	}

	if !sort.StringsAreSorted(ids) {
		t.Fatal("push ids must sort in generation order")
	}
}

func TestPushIDsOrderedWithinMilli(t *testing.T) {
	g := &pushIDs{}
	now := time.UnixMilli(1757000000000)

	prev := g.next(now)
	for i := 0; i < 100; i++ {
		id := g.next(now)
		if id <= prev {
			t.Fatalf("same-millisecond ids must still ascend: %q then %q", prev, id)
		}
		prev = id
	}
}

func TestPushIDShape(t *testing.T) {
	g := &pushIDs{}
	id := g.next(time.Now())
	if len(id) != 20 {
		t.Fatalf("push id length = %d, want 20", len(id))
	}
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := g.next(time.Now())
		if seen[id] {
			t.Fatalf("duplicate push id %q", id)
		}
		seen[id] = true
	}
}
