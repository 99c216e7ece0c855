package cookies

import (
	"net/http"
	"sort"
	"strings"
	"sync"
)

// Jar is the widget-facing view of a cookie store: read the current Cookie
// header, or apply one serialized cookie. Reads and writes are not atomic
// with respect to each other; concurrent writers race and the last write
// wins, exactly as two browser tabs sharing a cookie store would.
type Jar interface {
	Header() string
	SetCookie(serialized string)
}

// MemoryJar is an in-process Jar for tests and server-side widget runs.
type MemoryJar struct {
	mu     sync.Mutex
	values map[string]string
}

var _ Jar = (*MemoryJar)(nil)

// NewMemoryJar returns an empty jar.
func NewMemoryJar() *MemoryJar {
	return &MemoryJar{values: make(map[string]string)}
}

// Header renders the stored pairs as a Cookie request header. Order is
// normalised by name so output is deterministic.
func (j *MemoryJar) Header() string {
	j.mu.Lock()
	defer j.mu.Unlock()

	names := make([]string, 0, len(j.values))
	for name := range j.values {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+j.values[name])
	}
	return strings.Join(parts, "; ")
}

// SetCookie stores the cookie from a serialized Set-Cookie string, keeping
// only the name/value pair; attributes are accepted and discarded the way a
// browser folds them into its own bookkeeping.
func (j *MemoryJar) SetCookie(serialized string) {
	cookie, err := http.ParseSetCookie(serialized)
	if err != nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.values == nil {
		j.values = make(map[string]string)
	}
	j.values[cookie.Name] = cookie.Value
}
