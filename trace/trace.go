// Package trace implements the resolver's per-request diagnostic log: a
// trace entry indented proportionally to stack depth, plus a
// request-correlation id so that structured log lines emitted by the engine
// (via log/slog) during a batch of concurrent resolutions can be tied back
// to the top-level request that produced them.
//
// This sits below the engine and is consulted by it, never the other way
// around.
package trace

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
)

// entropy is a process-wide source for ULID generation. ULIDs are used
// purely for log correlation, not for anything security sensitive, so a
// single shared, mutex-guarded reader is sufficient.
var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a new correlation id for a top-level Resolve call.
func NewID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// Log accumulates trace entries for a single top-level resolution,
// including all of the forks it spawns. It is not safe for concurrent use
// by multiple top-level resolutions; callers should create one Log per
// Resolve call.
type Log struct {
	ID      string
	entries []string
}

// NewLog creates a Log tagged with a fresh correlation id.
func NewLog() *Log {
	return &Log{ID: NewID()}
}

// Add appends a trace entry indented proportionally to depth.
func (l *Log) Add(depth int, format string, args ...any) {
	if l == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	l.entries = append(l.entries, indent+fmt.Sprintf(format, args...))
}

// String renders the accumulated trace, one entry per line.
func (l *Log) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(l.entries, "\n")
}

// Len reports how many entries have been recorded so far.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}
