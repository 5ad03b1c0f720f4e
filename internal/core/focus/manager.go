package focus

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrManagerClosed = errors.New("focus manager is closed")

// Snapshot is the read model of a session at one instant.
type Snapshot struct {
	State            State   `json:"state"`
	Task             string  `json:"task"`
	DurationSeconds  int     `json:"duration_seconds"`
	RemainingSeconds int     `json:"remaining_seconds"`
	Progress         float64 `json:"progress"`
	Clock            string  `json:"clock"`
}

func (s *Session) Snapshot() Snapshot {
	remaining := s.Remaining()
	return Snapshot{
		State:            s.State(),
		Task:             s.Task(),
		DurationSeconds:  int(s.Duration() / time.Second),
		RemainingSeconds: int(remaining / time.Second),
		Progress:         s.Progress(),
		Clock:            FormatClock(remaining),
	}
}

type managed struct {
	session *Session
	stop    context.CancelFunc
	done    <-chan struct{}
}

// running reports whether the runner goroutine is still alive.
func (m *managed) running() bool {
	if m.done == nil {
		return false
	}
	select {
	case <-m.done:
		return false
	default:
		return true
	}
}

// halt stops the runner and waits for its goroutine.
func (m *managed) halt() {
	if m.stop == nil {
		return
	}
	m.stop()
	<-m.done
	m.stop = nil
	m.done = nil
}

// Manager keeps one session per user for a long-lived process and drives
// each running session with its own Runner. Completion events go to the
// notifier shared by all sessions.
type Manager struct {
	notifier Notifier
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[string]*managed
	closed   bool
}

func NewManager(notifier Notifier, interval time.Duration) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		notifier: notifier,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*managed),
	}
}

// entry must be called with m.mu held.
func (m *Manager) entry(userID string) *managed {
	e, ok := m.sessions[userID]
	if !ok {
		e = &managed{session: NewSession(userID, m.notifier)}
		m.sessions[userID] = e
	}
	return e
}

func (m *Manager) Get(userID string) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entry(userID).session.Snapshot()
}

func (m *Manager) SetDuration(userID string, d time.Duration) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.entry(userID)
	if err := e.session.SetDuration(d); err != nil {
		return e.session.Snapshot(), err
	}
	e.halt()
	return e.session.Snapshot(), nil
}

// Start begins or resumes the user's session and its runner. Starting a
// running session changes nothing.
func (m *Manager) Start(userID, task string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Snapshot{}, ErrManagerClosed
	}

	e := m.entry(userID)
	if err := e.session.Start(task); err != nil {
		return e.session.Snapshot(), err
	}
	if !e.running() {
		e.halt()
		ctx, cancel := context.WithCancel(m.ctx)
		e.stop = cancel
		e.done = NewRunner(e.session, m.interval, nil).Start(ctx)
	}
	return e.session.Snapshot(), nil
}

func (m *Manager) Pause(userID string) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.entry(userID)
	e.halt()
	e.session.Pause()
	return e.session.Snapshot()
}

func (m *Manager) Reset(userID string) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.entry(userID)
	e.halt()
	e.session.Reset()
	return e.session.Snapshot()
}

// Close pauses every running session and waits for all runners to exit.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.cancel()
	for _, e := range m.sessions {
		e.halt()
	}
}
