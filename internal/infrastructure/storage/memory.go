package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"afisha/internal/ports/output"
)

var (
	_ output.ClientStateStorage = (*Memory)(nil)
	_ output.ChangeWatcher      = (*Memory)(nil)
)

const memoryWatchBuffer = 64

type memoryWatcher struct {
	origin string
	keys   chan string
}

type memoryState struct {
	mu         sync.Mutex
	values     map[string]string
	watchers   map[*memoryWatcher]struct{}
	failWrites error
}

// Memory is an in-process ClientStateStorage. Handles created with Fork share
// the same data and see each other's writes through Watch, like browser tabs
// of the same origin.
type Memory struct {
	state  *memoryState
	origin string
}

// NewMemory creates an empty storage handle.
func NewMemory() *Memory {
	return &Memory{
		state: &memoryState{
			values:   make(map[string]string),
			watchers: make(map[*memoryWatcher]struct{}),
		},
		origin: uuid.NewString(),
	}
}

// Fork returns another handle on the same data with its own origin.
func (m *Memory) Fork() *Memory {
	return &Memory{state: m.state, origin: uuid.NewString()}
}

// FailWrites makes every following Set/Delete return err (nil restores writes).
func (m *Memory) FailWrites(err error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	m.state.failWrites = err
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	v, ok := m.state.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if m.state.failWrites != nil {
		return m.state.failWrites
	}
	m.state.values[key] = value
	m.notifyLocked(key)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if m.state.failWrites != nil {
		return m.state.failWrites
	}
	if _, ok := m.state.values[key]; !ok {
		return nil
	}
	delete(m.state.values, key)
	m.notifyLocked(key)
	return nil
}

// notifyLocked drops the notification when a watcher lags behind.
func (m *Memory) notifyLocked(key string) {
	for w := range m.state.watchers {
		if w.origin == m.origin {
			continue
		}
		select {
		case w.keys <- key:
		default:
		}
	}
}

func (m *Memory) Watch(ctx context.Context, onChange func(key string)) error {
	w := &memoryWatcher{origin: m.origin, keys: make(chan string, memoryWatchBuffer)}

	m.state.mu.Lock()
	m.state.watchers[w] = struct{}{}
	m.state.mu.Unlock()

	defer func() {
		m.state.mu.Lock()
		delete(m.state.watchers, w)
		m.state.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case key := <-w.keys:
			onChange(key)
		}
	}
}
