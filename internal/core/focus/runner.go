package focus

import (
	"context"
	"time"
)

// Runner feeds one Tick per interval into a session while it is running.
type Runner struct {
	session  *Session
	interval time.Duration
	onTick   func(s *Session)
}

func NewRunner(session *Session, interval time.Duration, onTick func(s *Session)) *Runner {
	if interval <= 0 {
		interval = time.Second
	}
	return &Runner{
		session:  session,
		interval: interval,
		onTick:   onTick,
	}
}

// Run blocks until the session completes, stops running or ctx is done.
// The ticker is released on every exit path.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.session.Pause()
			return ctx.Err()
		case <-ticker.C:
			if r.session.State() != StateRunning {
				return nil
			}
			done := r.session.Tick()
			if r.onTick != nil {
				r.onTick(r.session)
			}
			if done {
				return nil
			}
		}
	}
}

// Start runs the loop in a goroutine. The returned channel is closed once
// the goroutine has exited.
func (r *Runner) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.Run(ctx)
	}()
	return done
}
