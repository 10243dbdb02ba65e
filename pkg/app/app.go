// Package app provides the typed operations the CLI runners and the
// dashboard share. Validation happens here, before anything touches the
// store.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/opsdeck/pkg/record"
	"tableflip.dev/opsdeck/pkg/shift"
	"tableflip.dev/opsdeck/pkg/store"
)

// ErrValidation rejects a write before it reaches the store.
var ErrValidation = errors.New("app: validation failed")

// Service wraps the store client with the board's operations.
type Service struct {
	Client store.Client
}

func (s *Service) client() (store.Client, error) {
	if s.Client == nil {
		return nil, errors.New("app: no store client configured")
	}
	return s.Client, nil
}

// AddTask creates a push-keyed task and returns its key.
func (s *Service) AddTask(ctx context.Context, text string) (string, error) {
	c, err := s.client()
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: task text is empty", ErrValidation)
	}
	return c.Push(record.TasksPath, record.NewTask(text))
}

// CompleteTask flips a task's completed flag on.
func (s *Service) CompleteTask(ctx context.Context, key string) error {
	return s.toggleTask(key, true)
}

// ReopenTask flips a task's completed flag back off.
func (s *Service) ReopenTask(ctx context.Context, key string) error {
	return s.toggleTask(key, false)
}

func (s *Service) toggleTask(key string, completed bool) error {
	c, err := s.client()
	if err != nil {
		return err
	}
	completedAt := int64(0)
	if completed {
		completedAt = record.Now().Millis()
	}
	return c.Update(record.TasksPath+"/"+key, map[string]any{
		"completed":   completed,
		"completedAt": completedAt,
	})
}

// DeleteTask removes a task outright. Removing an unknown key is a no-op.
func (s *Service) DeleteTask(ctx context.Context, key string) error {
	c, err := s.client()
	if err != nil {
		return err
	}
	return c.Remove(record.TasksPath + "/" + key)
}

// ReportLost records a lost-and-found report and returns its key.
func (s *Service) ReportLost(ctx context.Context, item, location string) (string, error) {
	c, err := s.client()
	if err != nil {
		return "", err
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return "", fmt.Errorf("%w: item description is empty", ErrValidation)
	}
	return c.Push(record.LostFoundPath, record.NewLostItem(item, strings.TrimSpace(location)))
}

// ResolveLost marks a report found.
func (s *Service) ResolveLost(ctx context.Context, key string) error {
	c, err := s.client()
	if err != nil {
		return err
	}
	return c.Update(record.LostFoundPath+"/"+key, map[string]any{
		"resolved":   true,
		"resolvedAt": record.Now().Millis(),
	})
}

// DeleteLost removes a report.
func (s *Service) DeleteLost(ctx context.Context, key string) error {
	c, err := s.client()
	if err != nil {
		return err
	}
	return c.Remove(record.LostFoundPath + "/" + key)
}

// AddShift validates the window and records the shift.
func (s *Service) AddShift(ctx context.Context, start, end, person, role string) (string, error) {
	c, err := s.client()
	if err != nil {
		return "", err
	}
	person = strings.TrimSpace(person)
	if person == "" {
		return "", fmt.Errorf("%w: shift needs a person", ErrValidation)
	}
	if err := shift.ValidateWindow(start, end); err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return c.Push(record.ShiftsPath, record.NewShift(start, end, person, strings.TrimSpace(role)))
}

// EndShift removes a shift regardless of its derived status.
func (s *Service) EndShift(ctx context.Context, key string) error {
	c, err := s.client()
	if err != nil {
		return err
	}
	return c.Remove(record.ShiftsPath + "/" + key)
}

// SweepShifts evaluates every shift once and retires the expired ones,
// returning the surviving evaluations and how many were removed.
func (s *Service) SweepShifts(ctx context.Context) ([]shift.Evaluation, int, error) {
	c, err := s.client()
	if err != nil {
		return nil, 0, err
	}
	snap, err := c.Current(ctx, record.ShiftsPath)
	if err != nil {
		return nil, 0, err
	}
	evals := shift.NewManager(c).Evaluate(ctx, snap, record.Now().Time)
	return evals, snap.Len() - len(evals), nil
}

// SetCrowd overwrites the status for a location, last writer wins.
func (s *Service) SetCrowd(ctx context.Context, location, level string) error {
	c, err := s.client()
	if err != nil {
		return err
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return fmt.Errorf("%w: location is empty", ErrValidation)
	}
	parsed, err := record.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return c.SetChild(record.CrowdPath, location, record.NewCrowdStatus(location, parsed))
}

// RaiseEmergency records the emergency as the single current record. At
// most one can be active; raising over it is rejected.
func (s *Service) RaiseEmergency(ctx context.Context, kind, value string) error {
	c, err := s.client()
	if err != nil {
		return err
	}
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return fmt.Errorf("%w: emergency type is empty", ErrValidation)
	}
	if current, ok, err := s.CurrentEmergency(ctx); err == nil && ok {
		return fmt.Errorf("%w: %q is already active; resolve it first", ErrValidation, current.Kind)
	}
	return c.Set(record.EmergencyPath, record.NewEmergency(kind, strings.TrimSpace(value)))
}

// ResolveEmergency clears the current record. Resolving with none active
// is a no-op, matching idempotent removal.
func (s *Service) ResolveEmergency(ctx context.Context) error {
	c, err := s.client()
	if err != nil {
		return err
	}
	return c.Remove(record.EmergencyPath)
}

// CurrentEmergency reads the active record, if any.
func (s *Service) CurrentEmergency(ctx context.Context) (record.Emergency, bool, error) {
	c, err := s.client()
	if err != nil {
		return record.Emergency{}, false, err
	}
	snap, err := c.Current(ctx, record.EmergencyPath)
	if err != nil {
		return record.Emergency{}, false, err
	}
	var e record.Emergency
	ok, err := snap.Single(&e)
	return e, ok, err
}

// Snapshot reads the current state of one collection.
func (s *Service) Snapshot(ctx context.Context, path string) (store.Snapshot, error) {
	c, err := s.client()
	if err != nil {
		return store.Snapshot{}, err
	}
	return c.Current(ctx, path)
}

// Subscribe streams snapshots for one collection.
func (s *Service) Subscribe(ctx context.Context, path string) (<-chan store.Snapshot, error) {
	c, err := s.client()
	if err != nil {
		return nil, err
	}
	return c.Subscribe(ctx, path)
}
