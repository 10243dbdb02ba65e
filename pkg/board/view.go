// Package board turns collection snapshots into renderable views. Every
// snapshot triggers a full replace: rows and action bindings are rebuilt
// from scratch, so no binding can reference a key that left the collection
// and repeated updates never accumulate duplicate handlers.
package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"tableflip.dev/opsdeck/pkg/record"
	"tableflip.dev/opsdeck/pkg/store"
)

// errSkip drops a record from the view without logging, for records that
// are valid but not renderable (an expired shift awaiting removal).
var errSkip = errors.New("skip record")

// Action issues exactly one store write when invoked. The view never
// mutates itself optimistically; the effect shows up with the next
// snapshot.
type Action func(ctx context.Context) error

// Row is one rendered record.
type Row struct {
	Key       string
	Cells     []string
	Highlight bool
}

// buildFunc decodes one record into a row. history routes the row to the
// secondary view; changed orders the history view (most recent first).
type buildFunc func(key string, raw json.RawMessage) (row Row, history bool, changed record.Timestamp, err error)

// bindFunc produces the actions for one record, capturing its key at
// render time.
type bindFunc func(key string) map[string]Action

// View holds the reconciled state of one collection. It is mutated only by
// Apply, which the controller calls from its event loop.
type View struct {
	Title   string
	Columns []string

	// ascending switches the primary ordering from newest-first to key
	// order, used for name-keyed collections.
	ascending bool

	build buildFunc
	bind  bindFunc

	rows    []Row
	history []Row
	actions map[string]Action
}

// Apply reconciles the view against a fresh snapshot: a full replace of
// rows and a fresh rebind of every action. Records that fail to decode are
// skipped so one bad write cannot blank the panel.
func (v *View) Apply(snap store.Snapshot) {
	type historyRow struct {
		row     Row
		changed record.Timestamp
	}

	rows := make([]Row, 0, snap.Len())
	past := make([]historyRow, 0)
	actions := make(map[string]Action)

	keys := snap.KeysNewestFirst()
	if v.ascending {
		keys = snap.Keys()
	}

	for _, key := range keys {
		row, history, changed, err := v.build(key, snap.Records[key])
		if errors.Is(err, errSkip) {
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "board: %s %s: %v\n", snap.Path, key, err)
			continue
		}
		row.Key = key
		if history {
			past = append(past, historyRow{row: row, changed: changed})
		} else {
			rows = append(rows, row)
		}
		if v.bind != nil {
			for verb, action := range v.bind(key) {
				actions[verb+"/"+key] = action
			}
		}
	}

	sort.SliceStable(past, func(i, j int) bool {
		return past[i].changed.Millis() > past[j].changed.Millis()
	})
	history := make([]Row, 0, len(past))
	for _, h := range past {
		history = append(history, h.row)
	}

	v.rows = rows
	v.history = history
	v.actions = actions
}

// Rows returns the primary view rows in render order.
func (v *View) Rows() []Row {
	return v.rows
}

// History returns the secondary view rows, most recently changed first.
func (v *View) History() []Row {
	return v.history
}

// Bound reports whether an action is currently bound for the verb and key.
func (v *View) Bound(verb, key string) bool {
	_, ok := v.actions[verb+"/"+key]
	return ok
}

// Invoke runs the action bound at the last Apply. Unknown verb/key pairs
// are an error: stale keys disappear with the snapshot that removed them.
func (v *View) Invoke(ctx context.Context, verb, key string) error {
	action, ok := v.actions[verb+"/"+key]
	if !ok {
		return fmt.Errorf("board: no %q action for %q", verb, key)
	}
	return action(ctx)
}
