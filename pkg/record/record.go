// Package record defines the shapes stored in the shared collections and
// the fixed paths they live under.
package record

import (
	"fmt"
	"strings"
)

// Collection paths on the shared store.
const (
	TasksPath     = "tasks"
	LostFoundPath = "lostFound"
	ShiftsPath    = "shifts"
	CrowdPath     = "status"
	EmergencyPath = "emergency"
)

// Paths lists every collection the board subscribes to.
func Paths() []string {
	return []string{TasksPath, LostFoundPath, ShiftsPath, CrowdPath, EmergencyPath}
}

// Task is a push-keyed work item. Completed tasks stay in the collection
// and render in the history view instead of the primary list.
type Task struct {
	Text        string    `json:"text"`
	CreatedAt   Timestamp `json:"createdAt"`
	Completed   bool      `json:"completed,omitempty"`
	CompletedAt Timestamp `json:"completedAt"`
}

func NewTask(text string) *Task {
	return &Task{Text: text, CreatedAt: Now()}
}

// ChangedAt orders the task within the history view.
func (t Task) ChangedAt() Timestamp {
	if !t.CompletedAt.IsZero() {
		return t.CompletedAt
	}
	return t.CreatedAt
}

// LostItem is a lost-and-found report. Resolved reports move to history,
// mirroring the task lifecycle.
type LostItem struct {
	Item       string    `json:"item"`
	Location   string    `json:"location"`
	ReportedAt Timestamp `json:"reportedAt"`
	Resolved   bool      `json:"resolved,omitempty"`
	ResolvedAt Timestamp `json:"resolvedAt"`
}

func NewLostItem(item, location string) *LostItem {
	return &LostItem{Item: item, Location: location, ReportedAt: Now()}
}

func (l LostItem) ChangedAt() Timestamp {
	if !l.ResolvedAt.IsZero() {
		return l.ResolvedAt
	}
	return l.ReportedAt
}

// Shift assigns a person to a role for a same-day HH:MM window. Its
// pending/active/expired status is derived from the wall clock, never stored.
type Shift struct {
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Person    string    `json:"person"`
	Role      string    `json:"role"`
	CreatedAt Timestamp `json:"createdAt"`
}

func NewShift(start, end, person, role string) *Shift {
	return &Shift{StartTime: start, EndTime: end, Person: person, Role: role, CreatedAt: Now()}
}

func (s Shift) Window() string {
	return s.StartTime + "–" + s.EndTime
}

// Level grades how crowded a location is.
type Level string

const (
	LevelNormal   Level = "normal"
	LevelModerate Level = "moderate"
	LevelSevere   Level = "severe"
)

// ParseLevel maps user input onto a crowd level.
func ParseLevel(v string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(v))) {
	case LevelNormal:
		return LevelNormal, nil
	case LevelModerate:
		return LevelModerate, nil
	case LevelSevere:
		return LevelSevere, nil
	}
	return "", fmt.Errorf("unknown crowd level %q (want normal, moderate, or severe)", v)
}

// CrowdStatus is keyed by location name, one live record per location.
// Writes overwrite in place, last writer wins.
type CrowdStatus struct {
	Location  string    `json:"location"`
	Level     Level     `json:"level"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

func NewCrowdStatus(location string, level Level) *CrowdStatus {
	return &CrowdStatus{Location: location, Level: level, UpdatedAt: Now()}
}

// Emergency is the single record at EmergencyPath. Absence of the record
// means no active emergency.
type Emergency struct {
	Value     string    `json:"value"`
	Kind      string    `json:"kind,omitempty"`
	Timestamp Timestamp `json:"timestamp"`
}

func NewEmergency(kind, value string) *Emergency {
	return &Emergency{Kind: kind, Value: value, Timestamp: Now()}
}

func (e Emergency) String() string {
	if e.Kind != "" && e.Value != "" {
		return e.Kind + ": " + e.Value
	}
	if e.Value != "" {
		return e.Value
	}
	return e.Kind
}
