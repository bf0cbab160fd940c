package registry

import (
	"runtime"
	"sync"
	"weak"

	"github.com/npillmayer/scopedreg/dom"
)

// sideTable associates values with elements without keeping the elements
// alive. Entries of collected elements are dropped by a cleanup.
// Values must not reference their element.
type sideTable[V any] struct {
	mu       sync.Mutex
	entries  map[weak.Pointer[dom.Node]]V
	cleanups map[weak.Pointer[dom.Node]]runtime.Cleanup
}

func newSideTable[V any]() *sideTable[V] {
	return &sideTable[V]{
		entries:  make(map[weak.Pointer[dom.Node]]V),
		cleanups: make(map[weak.Pointer[dom.Node]]runtime.Cleanup),
	}
}

func (t *sideTable[V]) get(n *dom.Node) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.entries[weak.Make(n)]
	return v, ok
}

func (t *sideTable[V]) set(n *dom.Node, v V) {
	key := weak.Make(n)
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.cleanups[key]; !ok {
		t.cleanups[key] = runtime.AddCleanup(n, t.drop, key)
	}
	t.entries[key] = v
}

func (t *sideTable[V]) delete(n *dom.Node) {
	key := weak.Make(n)
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.cleanups[key]; ok {
		c.Stop()
		delete(t.cleanups, key)
	}
	delete(t.entries, key)
}

// drop runs as a cleanup after the element of key has been collected.
func (t *sideTable[V]) drop(key weak.Pointer[dom.Node]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key)
	delete(t.cleanups, key)
}

func (t *sideTable[V]) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
