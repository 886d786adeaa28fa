// internal/storage/memory.go
package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory PlanStore used by tests and local development.
// Versions are a monotonically increasing counter rendered as an opaque
// token, and writes against anything but the current token conflict.
type MemoryStore struct {
	mu       sync.Mutex
	content  []byte
	revision int
	reads    int
	writes   int
}

// NewMemoryStore creates a memory store seeded with the given document.
func NewMemoryStore(content []byte) *MemoryStore {
	return &MemoryStore{content: append([]byte(nil), content...), revision: 1}
}

func (m *MemoryStore) Read(ctx context.Context) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++
	return &Snapshot{
		Content: append([]byte(nil), m.content...),
		Version: m.version(),
	}, nil
}

func (m *MemoryStore) WriteIfMatch(ctx context.Context, content []byte, version, message string) (*Commit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes++
	if version != m.version() {
		return nil, ErrVersionMismatch
	}

	m.content = append([]byte(nil), content...)
	m.revision++
	return &Commit{
		URL: fmt.Sprintf("memory://plans/%s", m.version()),
		SHA: m.version(),
	}, nil
}

// Calls reports how many reads and writes the store has served. Useful for
// asserting that a code path never touched the remote store.
func (m *MemoryStore) Calls() (reads, writes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads, m.writes
}

// Content returns a copy of the stored document.
func (m *MemoryStore) Content() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.content...)
}

func (m *MemoryStore) version() string {
	return fmt.Sprintf("rev-%d", m.revision)
}
