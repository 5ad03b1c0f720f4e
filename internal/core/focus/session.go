package focus

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

const DefaultDuration = 25 * time.Minute

var Presets = []time.Duration{15 * time.Minute, 25 * time.Minute, 45 * time.Minute}

var ErrSessionRunning = errors.New("focus session is running")

type Notifier interface {
	Notify(event domain.Event)
}

// Session is a single countdown. Time only advances through Tick, so the
// caller decides how wall-clock seconds are fed in.
type Session struct {
	mu        sync.Mutex
	userID    string
	task      string
	duration  time.Duration
	remaining time.Duration
	state     State
	notifier  Notifier
}

func NewSession(userID string, notifier Notifier) *Session {
	return &Session{
		userID:    userID,
		duration:  DefaultDuration,
		remaining: DefaultDuration,
		state:     StateIdle,
		notifier:  notifier,
	}
}

func (s *Session) SetDuration(d time.Duration) error {
	if d <= 0 {
		return domain.ErrFocusInvalidDuration
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRunning {
		return ErrSessionRunning
	}
	s.duration = d
	s.remaining = d
	s.state = StateIdle
	return nil
}

// Start begins or resumes the countdown. A completed session restarts from
// the full duration.
func (s *Session) Start(task string) error {
	clean := strings.TrimSpace(task)
	if clean == "" {
		return domain.ErrFocusTaskEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRunning {
		return nil
	}
	if s.state == StateCompleted || s.remaining <= 0 {
		s.remaining = s.duration
	}
	s.task = clean
	s.state = StateRunning
	return nil
}

func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRunning {
		s.state = StatePaused
	}
}

func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remaining = s.duration
	s.state = StateIdle
}

// Tick advances a running session by one second and reports whether that
// second completed it.
func (s *Session) Tick() bool {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return false
	}

	s.remaining -= time.Second
	if s.remaining > 0 {
		s.mu.Unlock()
		return false
	}

	s.remaining = 0
	s.state = StateCompleted
	ev := domain.NewEvent(domain.EventFocusCompleted, s.userID, "", s.task)
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.Notify(ev)
	}
	return true
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Task() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.task
}

func (s *Session) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Progress is the elapsed share of the duration, in percent.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.duration <= 0 {
		return 0
	}
	return float64(s.duration-s.remaining) / float64(s.duration) * 100
}

func (s *Session) Format() string {
	return FormatClock(s.Remaining())
}

// FormatClock renders d as MM:SS. Minutes are not capped at 59.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
