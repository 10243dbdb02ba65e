package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/opsdeck/pkg/record"
)

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	c := load(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := c.Push(record.TasksPath, record.NewTask("pre-existing")); err != nil {
		t.Fatalf("push: %v", err)
	}

	ch, err := c.Subscribe(ctx, record.TasksPath)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	select {
	case snap := <-ch:
		if snap.Len() != 1 {
			t.Fatalf("initial snapshot should carry existing records, got %d", snap.Len())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial snapshot")
	}
}

func TestSubscribeObservesWrites(t *testing.T) {
	c := load(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := c.Subscribe(ctx, record.LostFoundPath)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	// Drain the initial snapshot before writing.
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial snapshot")
	}

	key, err := c.Push(record.LostFoundPath, record.NewLostItem("water bottle", "Stage 2"))
	if err != nil {
		t.Fatalf("push: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				t.Fatal("subscription closed unexpectedly")
			}
			if snap.Has(key) {
				var item record.LostItem
				if err := snap.Decode(key, &item); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if item.Item != "water bottle" {
					t.Fatalf("decoded item %q", item.Item)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for the write to be pushed")
		}
	}
}

func TestSubscribeObservesRemoval(t *testing.T) {
	c := load(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	key, err := c.Push(record.TasksPath, record.NewTask("doomed"))
	if err != nil {
		t.Fatalf("push: %v", err)
	}

	ch, err := c.Subscribe(ctx, record.TasksPath)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial snapshot")
	}

	if err := c.Remove(record.TasksPath + "/" + key); err != nil {
		t.Fatalf("remove: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				t.Fatal("subscription closed unexpectedly")
			}
			if !snap.Has(key) {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for the removal to be pushed")
		}
	}
}

func TestSubscribeClosesOnCancel(t *testing.T) {
	c := load(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := c.Subscribe(ctx, record.TasksPath)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel should close after cancellation")
		}
	}
}

func TestSubscribeRejectsRecordPath(t *testing.T) {
	c := load(t)
	if _, err := c.Subscribe(context.Background(), "tasks/abc"); err == nil {
		t.Fatal("subscribing to a record path should fail")
	}
}
