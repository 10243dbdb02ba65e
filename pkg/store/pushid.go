package store

import (
	"math/rand"
	"sync"
	"time"
)

// Push keys sort lexicographically in insertion order: 8 characters of epoch
// milliseconds followed by 12 random characters, over a 64-symbol alphabet
// whose ASCII order matches its numeric order. Keys generated in the same
// millisecond increment the random tail so ordering still holds.
const pushAlphabet = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

type pushIDs struct {
	mu       sync.Mutex
	lastMs   int64
	lastRand [12]int
}

func (g *pushIDs) next(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := now.UnixMilli()
	if ms == g.lastMs {
		// Same millisecond: bump the tail instead of rolling new randomness.
		for i := 11; i >= 0; i-- {
			if g.lastRand[i] < 63 {
				g.lastRand[i]++
				break
			}
			g.lastRand[i] = 0
		}
	} else {
		g.lastMs = ms
		for i := range g.lastRand {
			g.lastRand[i] = rand.Intn(64)
		}
	}

	id := make([]byte, 20)
	for i := 7; i >= 0; i-- {
		id[i] = pushAlphabet[ms%64]
		ms /= 64
	}
	for i, r := range g.lastRand {
		id[8+i] = pushAlphabet[r]
	}
	return string(id)
}
