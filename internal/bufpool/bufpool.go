// Package bufpool provides a pooled []byte scratch buffer, avoiding an
// allocation per batch read/write call whose points do not fit the
// reader's or writer's one-point scratch buffer.
package bufpool

import "sync"

var pool = sync.Pool{
	New: func() any { return make([]byte, 0, 4096) },
}

// Get returns a scratch buffer with length 0 and capacity >= 4096.
func Get() []byte {
	return pool.Get().([]byte)[:0]
}

// Put returns buf to the pool. Callers must not use buf after calling Put.
func Put(buf []byte) {
	pool.Put(buf) //nolint:staticcheck // length reset happens in Get
}
