package sim

import (
	"context"
	"fmt"

	"barswing/internal/game"
)

// Config drives a headless fixed-dt run.
type Config struct {
	Dt       float64
	Duration float64
	Script   *Script
}

// Script is a deterministic input sequence: hold a directional key over a
// window, then request the release at a fixed time. Times are in session
// seconds from the start of the run.
type Script struct {
	Direction  int // +1 swings toward +X, -1 toward -X
	ForceFrom  float64
	ForceUntil float64
	ReleaseAt  float64

	holding  bool
	released bool
}

func (sc *Script) key() game.Key {
	if sc.Direction < 0 {
		return game.KeyLeft
	}
	return game.KeyRight
}

// apply delivers the key events due at time t, each edge exactly once.
func (sc *Script) apply(s *game.Session, t float64) {
	if !sc.holding && t >= sc.ForceFrom && t < sc.ForceUntil {
		sc.holding = true
		s.Press(sc.key())
	}
	if sc.holding && t >= sc.ForceUntil {
		sc.holding = false
		s.Lift(sc.key())
	}
	if !sc.released && sc.ReleaseAt > 0 && t >= sc.ReleaseAt {
		sc.released = true
		s.Press(game.KeyRelease)
	}
}

// Observer receives every frame of a run.
type Observer interface {
	OnStep(snap game.Snapshot)
}

// Result is a recorded trajectory.
type Result struct {
	Snapshots []game.Snapshot
	Times     []float64
}

// Recorder is an Observer that accumulates the full trajectory.
type Recorder struct {
	Result Result
}

func (r *Recorder) OnStep(snap game.Snapshot) {
	r.Result.Snapshots = append(r.Result.Snapshots, snap)
	r.Result.Times = append(r.Result.Times, snap.Time)
}

// Runner steps a session at a fixed dt for a fixed duration, feeding the
// scripted input and notifying observers after every frame.
type Runner struct {
	session   *game.Session
	observers []Observer
}

func NewRunner(s *game.Session) *Runner {
	return &Runner{session: s}
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}

	steps := int(cfg.Duration / cfg.Dt)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if cfg.Script != nil {
			cfg.Script.apply(r.session, float64(i)*cfg.Dt)
		}
		r.session.Advance(cfg.Dt)

		snap := r.session.Snapshot()
		for _, o := range r.observers {
			o.OnStep(snap)
		}
	}
	return nil
}
