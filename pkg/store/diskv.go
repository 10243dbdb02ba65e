package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// Load creates a Client backed by a local diskv replica of the shared store.
// Passing a nil config resolves one via LoadConfig.
func Load(cfg Config) (Client, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &replica{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		ids:      &pushIDs{},
	}, nil
}

type replica struct {
	d        *diskv.Diskv
	basePath string
	ids      *pushIDs
}

func keyToPathTransform(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")
	last := len(parts) - 1
	return &diskv.PathKey{
		Path:     parts[:last],
		FileName: parts[last],
	}
}

func pathToKeyTransform(pk *diskv.PathKey) string {
	if len(pk.Path) == 0 {
		return pk.FileName
	}
	return strings.Join(pk.Path, "/") + "/" + pk.FileName
}

func unavailable(op string, err error) error {
	return fmt.Errorf("store: %s: %w: %v", op, ErrRemoteUnavailable, err)
}

func (r *replica) Current(ctx context.Context, path string) (Snapshot, error) {
	collection, key, err := splitPath(path)
	if err != nil {
		return Snapshot{}, err
	}
	if key != "" {
		return Snapshot{}, fmt.Errorf("store: %q is a record path, subscribe to %q", path, collection)
	}

	snap := Snapshot{Path: collection, Records: map[string]json.RawMessage{}}
	for k := range r.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(k)
		if len(pk.Path) == 0 || pk.Path[0] != collection {
			continue
		}
		val, err := r.d.Read(k)
		if err != nil {
			return Snapshot{}, unavailable("read "+k, err)
		}
		snap.Records[pk.FileName] = json.RawMessage(val)
	}
	return snap, nil
}

func (r *replica) Push(path string, value any) (string, error) {
	collection, key, err := splitPath(path)
	if err != nil {
		return "", err
	}
	if key != "" {
		return "", fmt.Errorf("store: cannot push to record path %q", path)
	}
	id := r.ids.next(time.Now())
	if err := r.write(collection, id, value); err != nil {
		return "", err
	}
	return id, nil
}

func (r *replica) Set(path string, value any) error {
	collection, key, err := splitPath(path)
	if err != nil {
		return err
	}
	if key == "" {
		key = singletonKey
	}
	return r.write(collection, key, value)
}

func (r *replica) SetChild(path, key string, value any) error {
	collection, sub, err := splitPath(path)
	if err != nil {
		return err
	}
	if sub != "" {
		return fmt.Errorf("store: cannot set child under record path %q", path)
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, "/") {
		return fmt.Errorf("store: invalid child key %q", key)
	}
	return r.write(collection, key, value)
}

func (r *replica) Update(path string, patch map[string]any) error {
	collection, key, err := splitPath(path)
	if err != nil {
		return err
	}
	if key == "" {
		key = singletonKey
	}

	merged := make(map[string]any, len(patch))
	if raw, err := r.d.Read(collection + "/" + key); err == nil {
		if err := json.Unmarshal(raw, &merged); err != nil {
			return fmt.Errorf("store: decode %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return unavailable("read "+path, err)
	}
	for field, v := range patch {
		merged[field] = v
	}
	return r.write(collection, key, merged)
}

func (r *replica) Remove(path string) error {
	collection, key, err := splitPath(path)
	if err != nil {
		return err
	}
	if key == "" {
		key = singletonKey
	}
	if err := r.d.Erase(collection + "/" + key); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Already gone; removal is idempotent.
			return nil
		}
		return unavailable("remove "+path, err)
	}
	return nil
}

func (r *replica) write(collection, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode %s/%s: %w", collection, key, err)
	}
	if err := r.d.Write(collection+"/"+key, data); err != nil {
		return unavailable("write "+collection+"/"+key, err)
	}
	return nil
}
