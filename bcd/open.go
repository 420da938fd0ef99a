package bcd

import (
	"fmt"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
	"go.uber.org/zap"
)

// Mapping is a file mapped read-only into memory.
type Mapping struct {
	path   string
	file   *os.File
	mapped mmap.MMap

	mu     sync.Mutex
	closed bool
}

// Open maps the file at path read-only. The caller must Close the
// mapping once nothing refers to its bytes.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bcd: failed to open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("bcd: failed to stat file: %w", err)
	}
	if stat.Size() == 0 {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("bcd: failed to map file: %w", err)
	}

	Logger().Debug("mapped file", zap.String("path", path), zap.Int("bytes", len(mapped)))
	return &Mapping{path: path, file: f, mapped: mapped}, nil
}

// Path returns the path the mapping was opened from.
func (m *Mapping) Path() string { return m.path }

// Bytes returns the mapped contents. They are invalid after Close.
func (m *Mapping) Bytes() []byte { return m.mapped }

// Close unmaps the file and closes it.
func (m *Mapping) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	if err := m.mapped.Unmap(); err != nil {
		m.file.Close()
		return fmt.Errorf("bcd: failed to unmap file: %w", err)
	}
	return m.file.Close()
}
