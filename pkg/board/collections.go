package board

import (
	"context"
	"encoding/json"
	"time"

	"tableflip.dev/opsdeck/pkg/record"
	"tableflip.dev/opsdeck/pkg/shift"
	"tableflip.dev/opsdeck/pkg/store"
)

// Tasks builds the work-item view. Completed tasks route to history; the
// "done"/"undo" actions toggle the flag and "rm" deletes outright.
func Tasks(client store.Client) *View {
	return &View{
		Title:   "Tasks",
		Columns: []string{"TASK", "ADDED"},
		build: func(key string, raw json.RawMessage) (Row, bool, record.Timestamp, error) {
			var t record.Task
			if err := json.Unmarshal(raw, &t); err != nil {
				return Row{}, false, record.Timestamp{}, err
			}
			row := Row{Cells: []string{t.Text, t.CreatedAt.String()}}
			return row, t.Completed, t.ChangedAt(), nil
		},
		bind: func(key string) map[string]Action {
			path := record.TasksPath + "/" + key
			return map[string]Action{
				"done": func(ctx context.Context) error {
					return client.Update(path, map[string]any{
						"completed":   true,
						"completedAt": record.Now().Millis(),
					})
				},
				"undo": func(ctx context.Context) error {
					return client.Update(path, map[string]any{
						"completed":   false,
						"completedAt": 0,
					})
				},
				"rm": func(ctx context.Context) error {
					return client.Remove(path)
				},
			}
		},
	}
}

// LostFound builds the lost-and-found view. Resolved reports route to
// history; "found" resolves, "reopen" undoes, "rm" deletes.
func LostFound(client store.Client) *View {
	return &View{
		Title:   "Lost & Found",
		Columns: []string{"ITEM", "LOCATION", "REPORTED"},
		build: func(key string, raw json.RawMessage) (Row, bool, record.Timestamp, error) {
			var l record.LostItem
			if err := json.Unmarshal(raw, &l); err != nil {
				return Row{}, false, record.Timestamp{}, err
			}
			row := Row{Cells: []string{l.Item, l.Location, l.ReportedAt.String()}}
			return row, l.Resolved, l.ChangedAt(), nil
		},
		bind: func(key string) map[string]Action {
			path := record.LostFoundPath + "/" + key
			return map[string]Action{
				"found": func(ctx context.Context) error {
					return client.Update(path, map[string]any{
						"resolved":   true,
						"resolvedAt": record.Now().Millis(),
					})
				},
				"reopen": func(ctx context.Context) error {
					return client.Update(path, map[string]any{
						"resolved":   false,
						"resolvedAt": 0,
					})
				},
				"rm": func(ctx context.Context) error {
					return client.Remove(path)
				},
			}
		},
	}
}

// Shifts builds the staffing view. Expired shifts never render (the
// lifecycle manager retires them); active ones are highlighted. The "end"
// action removes a shift regardless of its computed status.
func Shifts(client store.Client, now func() time.Time) *View {
	if now == nil {
		now = time.Now
	}
	return &View{
		Title:   "Shifts",
		Columns: []string{"WINDOW", "PERSON", "ROLE", "STATUS"},
		build: func(key string, raw json.RawMessage) (Row, bool, record.Timestamp, error) {
			var s record.Shift
			if err := json.Unmarshal(raw, &s); err != nil {
				return Row{}, false, record.Timestamp{}, err
			}
			status, err := shift.StatusOf(s, now())
			if err != nil {
				return Row{}, false, record.Timestamp{}, err
			}
			if status == shift.Expired {
				// The lifecycle manager is about to remove it.
				return Row{}, false, record.Timestamp{}, errSkip
			}
			row := Row{
				Cells:     []string{s.Window(), s.Person, s.Role, status.String()},
				Highlight: status == shift.Active,
			}
			return row, false, s.CreatedAt, nil
		},
		bind: func(key string) map[string]Action {
			path := record.ShiftsPath + "/" + key
			return map[string]Action{
				"end": func(ctx context.Context) error {
					return client.Remove(path)
				},
			}
		},
	}
}

// ForPath returns the view for a collection path, or nil for paths that
// render outside the board (the emergency banner).
func ForPath(client store.Client, path string) *View {
	switch path {
	case record.TasksPath:
		return Tasks(client)
	case record.LostFoundPath:
		return LostFound(client)
	case record.ShiftsPath:
		return Shifts(client, nil)
	case record.CrowdPath:
		return Crowds()
	}
	return nil
}

// Crowds builds the crowd-status view, one row per location in name order.
// There are no per-row actions; writes overwrite by location key.
func Crowds() *View {
	return &View{
		Title:     "Crowd Status",
		Columns:   []string{"LOCATION", "LEVEL", "UPDATED"},
		ascending: true,
		build: func(key string, raw json.RawMessage) (Row, bool, record.Timestamp, error) {
			var c record.CrowdStatus
			if err := json.Unmarshal(raw, &c); err != nil {
				return Row{}, false, record.Timestamp{}, err
			}
			row := Row{
				Cells:     []string{c.Location, string(c.Level), c.UpdatedAt.String()},
				Highlight: c.Level == record.LevelSevere,
			}
			return row, false, c.UpdatedAt, nil
		},
	}
}
