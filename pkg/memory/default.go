package memory

import "sync"

var (
	defaultMu    sync.RWMutex
	defaultStore Store = NewInMemoryStore()
)

// Default returns the process-wide Store used when a run doesn't wire its
// own. Safe for concurrent use.
func Default() Store {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultStore
}

// SetDefault replaces the process-wide Store, e.g. to swap in a RedisStore
// at startup. Must be called before any run begins reading memory.
func SetDefault(s Store) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultStore = s
}
