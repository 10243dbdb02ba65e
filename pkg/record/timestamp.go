package record

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp is the store-native time representation: integer epoch
// milliseconds, matching what the remote store assigns on write.
type Timestamp struct {
	time.Time
}

func Now() Timestamp {
	return Timestamp{Time: time.Now()}
}

func FromMillis(ms int64) Timestamp {
	if ms == 0 {
		return Timestamp{}
	}
	return Timestamp{Time: time.UnixMilli(ms)}
}

func (t Timestamp) Millis() int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%d", t.Millis())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var ms int64
	if err := json.Unmarshal(b, &ms); err != nil {
		return err
	}
	*t = FromMillis(ms)
	return nil
}

func (t Timestamp) SameDay(then time.Time) bool {
	y1, m1, d1 := t.Local().Date()
	y2, m2, d2 := then.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// String renders the timestamp the way the board displays it.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006/01/02 15:04")
}
