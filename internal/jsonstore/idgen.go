package jsonstore

import (
	"sync/atomic"
	"time"
)

var lastID atomic.Int64

// NextTimestampID returns a millisecond-timestamp id, bumped past the
// previously issued value so rapid consecutive creates never collide.
func NextTimestampID() int64 {
	for {
		id := time.Now().UnixMilli()
		last := lastID.Load()
		if id <= last {
			id = last + 1
		}
		if lastID.CompareAndSwap(last, id) {
			return id
		}
	}
}
