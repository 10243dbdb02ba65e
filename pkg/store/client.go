// Package store is the client for the shared replicated collection store.
// Collections are key-addressable maps of JSON records; every mutation under
// a path is pushed to subscribers as a fresh full snapshot of that path.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrRemoteUnavailable reports that the store could not be reached. Callers
// keep rendering their last good snapshot and surface the failure instead of
// crashing.
var ErrRemoteUnavailable = errors.New("remote store unavailable")

// singletonKey holds the record for paths that store a single overwritten
// value (the emergency node).
const singletonKey = "current"

// Snapshot is a complete, immutable point-in-time view of one collection.
type Snapshot struct {
	Path    string
	Records map[string]json.RawMessage
}

func (s Snapshot) Len() int {
	return len(s.Records)
}

func (s Snapshot) Has(key string) bool {
	_, ok := s.Records[key]
	return ok
}

// Keys returns record keys in ascending lexical order. Push keys are
// time-ordered, so this is insertion order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.Records))
	for k := range s.Records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KeysNewestFirst returns record keys in reverse insertion order, the
// default feed ordering.
func (s Snapshot) KeysNewestFirst() []string {
	keys := s.Keys()
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return keys
}

// Decode unmarshals the record at key into v.
func (s Snapshot) Decode(key string, v any) error {
	raw, ok := s.Records[key]
	if !ok {
		return fmt.Errorf("store: no record %q in %s", key, s.Path)
	}
	return json.Unmarshal(raw, v)
}

// Single decodes the snapshot of a single-record path. It reports false when
// the record is absent, which means "no value set".
func (s Snapshot) Single(v any) (bool, error) {
	raw, ok := s.Records[singletonKey]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

// Client is the contract against the remote store. Writes are never applied
// locally; their effect is observed through the next snapshot delivery.
type Client interface {
	// Subscribe delivers one initial snapshot and then a fresh full
	// snapshot after every mutation under path, until ctx is done.
	Subscribe(ctx context.Context, path string) (<-chan Snapshot, error)

	// Current reads the present snapshot of path without subscribing.
	Current(ctx context.Context, path string) (Snapshot, error)

	// Push inserts value under a generated, lexicographically time-ordered
	// key and returns that key.
	Push(path string, value any) (string, error)

	// Set overwrites the record at path wholesale (last writer wins).
	Set(path string, value any) error

	// Update merges only the named fields into the record at path.
	Update(path string, patch map[string]any) error

	// Remove deletes the record at path. Removing an absent record is a
	// no-op, not an error.
	Remove(path string) error

	// SetChild overwrites the record under a caller-supplied key, used for
	// map-like collections keyed by name.
	SetChild(path, key string, value any) error
}

// splitPath separates "collection" or "collection/key" paths.
func splitPath(path string) (collection, key string, err error) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return "", "", errors.New("store: empty path")
	}
	parts := strings.SplitN(path, "/", 2)
	if len(parts) == 1 {
		return parts[0], "", nil
	}
	if parts[0] == "" || parts[1] == "" || strings.Contains(parts[1], "/") {
		return "", "", fmt.Errorf("store: malformed path %q", path)
	}
	return parts[0], parts[1], nil
}
