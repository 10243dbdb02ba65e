// Package timeutil holds the wall-clock helpers the board derives state
// from: HH:MM parsing, same-day window math, and the 1-second ticker.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var clockPattern = regexp.MustCompile(`^([0-2]?\d):([0-5]\d)$`)

// Clock is a time of day without a date, parsed from "HH:MM".
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" (24-hour) input such as "09:30" or "18:05".
func ParseClock(input string) (Clock, error) {
	matches := clockPattern.FindStringSubmatch(input)
	if matches == nil {
		return Clock{}, fmt.Errorf("invalid time %q (want HH:MM)", input)
	}
	h, _ := strconv.Atoi(matches[1])
	m, _ := strconv.Atoi(matches[2])
	if h > 23 {
		return Clock{}, fmt.Errorf("invalid hour in %q", input)
	}
	return Clock{Hour: h, Minute: m}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Before reports whether c is earlier in the day than other.
func (c Clock) Before(other Clock) bool {
	if c.Hour != other.Hour {
		return c.Hour < other.Hour
	}
	return c.Minute < other.Minute
}

// On pins the clock to the calendar day of the given instant, in its
// location. Windows never cross midnight; the day always comes from `day`.
func (c Clock) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// Ticker samples the wall clock once per interval. It is the single time
// source for status derivations so tests can drive evaluations directly
// with instants instead of waiting.
type Ticker struct {
	t *time.Ticker
}

func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{t: time.NewTicker(interval)}
}

func (t *Ticker) C() <-chan time.Time {
	return t.t.C
}

func (t *Ticker) Stop() {
	t.t.Stop()
}
