package highscore

import "sync"

// MemoryBackend keeps the document in memory. It backs tests and runs
// where the database cannot be opened.
type MemoryBackend struct {
	mu     sync.Mutex
	data   []byte
	writes int
}

// NewMemoryBackend creates a backend holding an optional initial document.
func NewMemoryBackend(initial []byte) *MemoryBackend {
	b := &MemoryBackend{}
	if initial != nil {
		b.data = append([]byte(nil), initial...)
	}
	return b
}

// Load returns a copy of the stored document.
func (b *MemoryBackend) Load() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.data...), nil
}

// Replace swaps the document.
func (b *MemoryBackend) Replace(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append([]byte(nil), data...)
	b.writes++
	return nil
}

// Writes returns how many times Replace was called.
func (b *MemoryBackend) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}
