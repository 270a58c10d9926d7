// Package locker provides keyed mutual exclusion with a bounded wait.
// Callers never queue indefinitely: if the key is not acquired within the
// wait budget, ErrLockTimeout is returned.
package locker

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrLockTimeout ключ не удалось захватить за отведенное время
	ErrLockTimeout = errors.New("locker: lock wait timeout")

	// ErrInternal ошибка хранилища блокировок
	ErrInternal = errors.New("locker: internal error")
)

// Unlock освобождает захваченный ключ. Повторный вызов безопасен.
type Unlock func()

// Memory блокировки в памяти процесса
type Memory struct {
	mu    sync.Mutex
	locks map[string]*memoryEntry
}

type memoryEntry struct {
	sem  chan struct{}
	refs int
}

// NewMemory создает локер в памяти процесса
func NewMemory() *Memory {
	return &Memory{locks: make(map[string]*memoryEntry)}
}

// Acquire захватывает key, ожидая не дольше wait
func (m *Memory) Acquire(ctx context.Context, key string, wait time.Duration) (Unlock, error) {
	entry := m.ref(key)

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case entry.sem <- struct{}{}:
	case <-timer.C:
		m.unref(key)
		return nil, ErrLockTimeout
	case <-ctx.Done():
		m.unref(key)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.sem
			m.unref(key)
		})
	}, nil
}

func (m *Memory) ref(key string) *memoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[key]
	if !ok {
		entry = &memoryEntry{sem: make(chan struct{}, 1)}
		m.locks[key] = entry
	}
	entry.refs++
	return entry
}

func (m *Memory) unref(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[key]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs == 0 {
		delete(m.locks, key)
	}
}
