package state

import (
	"context"
	"sync"

	"github.com/vk/pmcore/internal/persistence"
)

// The package-level default instance serves the console surface and test
// harnesses that need a process-wide registry. Construction is guarded so
// concurrent first access cannot race two instances into existence; all
// later mutation is single-threaded by contract.

var (
	defaultMu    sync.Mutex
	defaultInst  *Manager
	defaultStore *persistence.Store
)

// SetDefaultStore configures the persistence store the default instance
// loads from. It must be called before the first Default access; changing it
// later only takes effect after a reset.
func SetDefaultStore(store *persistence.Store) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultStore = store
}

// Default returns the process-wide manager, constructing it on first access
// by loading persisted state. A failure to construct is a fatal startup
// condition and panics.
func Default(ctx context.Context) *Manager {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultInst == nil {
		m, err := New(ctx, defaultStore)
		if err != nil {
			panic(err)
		}
		defaultInst = m
	}
	return defaultInst
}

// ResetDefault discards the default instance so the next Default access
// reconstructs from persisted state or empty. The dropped instance takes all
// four collections and the session pointer with it; nothing survives a
// reset.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultInst = nil
}
