package store

import (
	"context"
	"testing"

	"tableflip.dev/opsdeck/pkg/record"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func load(t *testing.T) Client {
	t.Helper()
	c, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load client: %v", err)
	}
	return c
}

func TestPushAssignsOrderedKeys(t *testing.T) {
	c := load(t)
	ctx := context.Background()

	k1, err := c.Push(record.TasksPath, record.NewTask("one"))
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	k2, err := c.Push(record.TasksPath, record.NewTask("two"))
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if k2 <= k1 {
		t.Fatalf("push keys must ascend: %q then %q", k1, k2)
	}

	snap, err := c.Current(ctx, record.TasksPath)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if snap.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", snap.Len())
	}
	newest := snap.KeysNewestFirst()
	if newest[0] != k2 {
		t.Fatalf("newest-first should lead with %q, got %q", k2, newest[0])
	}

	var task record.Task
	if err := snap.Decode(k1, &task); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if task.Text != "one" {
		t.Fatalf("decoded text %q", task.Text)
	}
}

func TestUpdateMergesNamedFields(t *testing.T) {
	c := load(t)
	ctx := context.Background()

	key, err := c.Push(record.TasksPath, record.NewTask("merge me"))
	if err != nil {
		t.Fatalf("push: %v", err)
	}

	if err := c.Update(record.TasksPath+"/"+key, map[string]any{
		"completed":   true,
		"completedAt": record.Now().Millis(),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	snap, err := c.Current(ctx, record.TasksPath)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	var task record.Task
	if err := snap.Decode(key, &task); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !task.Completed {
		t.Fatal("completed flag should merge in")
	}
	if task.Text != "merge me" {
		t.Fatalf("unnamed fields must survive the merge, got text %q", task.Text)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	c := load(t)
	ctx := context.Background()

	key, err := c.Push(record.ShiftsPath, record.NewShift("09:00", "12:00", "Aoi", "Gate"))
	if err != nil {
		t.Fatalf("push: %v", err)
	}

	if err := c.Remove(record.ShiftsPath + "/" + key); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	if err := c.Remove(record.ShiftsPath + "/" + key); err != nil {
		t.Fatalf("duplicate remove must be a no-op: %v", err)
	}

	snap, err := c.Current(ctx, record.ShiftsPath)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if snap.Len() != 0 {
		t.Fatalf("expected empty collection, got %d records", snap.Len())
	}
}

func TestSetChildOverwritesInPlace(t *testing.T) {
	c := load(t)
	ctx := context.Background()

	if err := c.SetChild(record.CrowdPath, "Gate A", record.NewCrowdStatus("Gate A", record.LevelModerate)); err != nil {
		t.Fatalf("set child: %v", err)
	}
	if err := c.SetChild(record.CrowdPath, "Gate A", record.NewCrowdStatus("Gate A", record.LevelSevere)); err != nil {
		t.Fatalf("overwrite child: %v", err)
	}

	snap, err := c.Current(ctx, record.CrowdPath)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if snap.Len() != 1 {
		t.Fatalf("same-location writes must collapse to one record, got %d", snap.Len())
	}
	var status record.CrowdStatus
	if err := snap.Decode("Gate A", &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.Level != record.LevelSevere {
		t.Fatalf("last writer must win: got %s", status.Level)
	}
}

func TestSingletonSetAndRemove(t *testing.T) {
	c := load(t)
	ctx := context.Background()

	snap, err := c.Current(ctx, record.EmergencyPath)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	var em record.Emergency
	if ok, _ := snap.Single(&em); ok {
		t.Fatal("no emergency should be set initially")
	}

	if err := c.Set(record.EmergencyPath, record.NewEmergency("fire", "evacuate hall B")); err != nil {
		t.Fatalf("set: %v", err)
	}
	snap, err = c.Current(ctx, record.EmergencyPath)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	ok, err := snap.Single(&em)
	if err != nil || !ok {
		t.Fatalf("single: ok=%v err=%v", ok, err)
	}
	if em.Kind != "fire" {
		t.Fatalf("decoded kind %q", em.Kind)
	}

	if err := c.Remove(record.EmergencyPath); err != nil {
		t.Fatalf("remove: %v", err)
	}
	snap, err = c.Current(ctx, record.EmergencyPath)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if ok, _ := snap.Single(&em); ok {
		t.Fatal("emergency record should be gone")
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in         string
		collection string
		key        string
		wantErr    bool
	}{
		{"tasks", "tasks", "", false},
		{"tasks/abc", "tasks", "abc", false},
		{"/tasks/", "tasks", "", false},
		{"", "", "", true},
		{"tasks/a/b", "", "", true},
	}
	for _, tt := range tests {
		collection, key, err := splitPath(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("splitPath(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil || collection != tt.collection || key != tt.key {
			t.Errorf("splitPath(%q) = %q, %q, %v", tt.in, collection, key, err)
		}
	}
}
