package game

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyRelease
)

// Session owns one complete game: arena, athlete, latched input, score, the
// fire effect and the pending mat-landing reset. It is single-threaded; key
// events must be delivered between Advance calls, never during one.
type Session struct {
	Arena   Arena
	Tuning  Tuning
	Gymnast Gymnast
	Fire    *Fire
	Score   int

	input   Input
	rng     *rand.Rand
	elapsed float64
	resetAt float64 // scheduled reset deadline in session time, <0 when none
	onScore func(int)
}

func NewSession(arena Arena, tn Tuning, seed int64) *Session {
	s := &Session{
		Arena:   arena,
		Tuning:  tn,
		Fire:    NewFire(tn),
		rng:     rand.New(rand.NewSource(seed)),
		resetAt: -1,
	}
	s.Gymnast = Gymnast{
		Mode: ModeHolding,
		Bar:  0,
		Pos:  HangPos(arena.Bars[0], tn),
	}
	return s
}

// OnScore registers the score observer, called with the new total after
// every change, the reset to zero included.
func (s *Session) OnScore(fn func(int)) { s.onScore = fn }

// Press latches a key-down event. Directional keys apply swing force, the
// release key arms a one-shot. Input is ignored while airborne.
func (s *Session) Press(k Key) {
	if s.Gymnast.Mode != ModeHolding {
		return
	}
	switch k {
	case KeyLeft:
		s.input.Force = -s.Tuning.MaxSwingForce
	case KeyRight:
		s.input.Force = s.Tuning.MaxSwingForce
	case KeyRelease:
		s.input.Release = true
	}
}

// Lift latches a key-up event for the directional keys.
func (s *Session) Lift(k Key) {
	if k == KeyLeft || k == KeyRight {
		s.input.Force = 0
	}
}

// Advance runs one frame. dt is clamped to the tuning maximum so a long
// pause between frames cannot blow up the integrators.
func (s *Session) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	if dt > s.Tuning.MaxFrameDt {
		dt = s.Tuning.MaxFrameDt
	}
	s.elapsed += dt

	if s.resetAt >= 0 && s.elapsed >= s.resetAt {
		s.Reset()
	}

	switch s.Gymnast.Mode {
	case ModeHolding:
		StepPendulum(&s.Gymnast, s.Arena.Bars[s.Gymnast.Bar], s.input, s.Tuning, dt)
		if s.input.Release {
			s.input.Release = false
			s.input.Force = 0
			Release(&s.Gymnast, s.Tuning)
		}
	case ModeAirborne:
		StepFlight(&s.Gymnast, s.Tuning, dt)
		if _, ok := TryGrab(&s.Gymnast, s.Arena.Bars, s.Tuning); ok {
			s.addScore(s.Tuning.GrabBonus)
		} else if !s.Fire.Active {
			if _, ok := TryLand(&s.Gymnast, s.Arena.Mats, s.Tuning); ok {
				s.Fire.Ignite(s.Gymnast.Pos, s.rng)
				s.addScore(s.Tuning.LandBonus)
				s.resetAt = s.elapsed + s.Tuning.ResetDelay
			} else if s.Gymnast.Pos.Y() < 0 {
				s.Reset()
			}
		}
	}

	s.Fire.Step(dt)
}

// Reset restores the initial hang on bar 0 and zeroes the score. It also
// cancels any pending scheduled reset, so a ground fail arriving before a
// mat-landing deadline cannot cause a second reset.
func (s *Session) Reset() {
	s.Gymnast = Gymnast{
		Mode: ModeHolding,
		Bar:  0,
		Pos:  HangPos(s.Arena.Bars[0], s.Tuning),
	}
	s.input = Input{}
	s.Fire.Extinguish()
	s.resetAt = -1
	s.setScore(0)
}

func (s *Session) addScore(n int) { s.setScore(s.Score + n) }

func (s *Session) setScore(n int) {
	s.Score = n
	if s.onScore != nil {
		s.onScore(n)
	}
}

// Elapsed is the accumulated session time in seconds.
func (s *Session) Elapsed() float64 { return s.elapsed }

// ResetPending reports whether a mat-landing reset is scheduled.
func (s *Session) ResetPending() bool { return s.resetAt >= 0 }

// Snapshot is the read-only per-frame view handed to renderers.
type Snapshot struct {
	Time       float64
	Mode       Mode
	Pos        mgl64.Vec3
	Rot        float64
	Angle      float64
	AngVel     float64
	Vel        mgl64.Vec3
	Score      int
	FireActive bool
	Particles  []mgl64.Vec3
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Time:       s.elapsed,
		Mode:       s.Gymnast.Mode,
		Pos:        s.Gymnast.Pos,
		Rot:        s.Gymnast.Rot,
		Angle:      s.Gymnast.Angle,
		AngVel:     s.Gymnast.AngVel,
		Vel:        s.Gymnast.Vel,
		Score:      s.Score,
		FireActive: s.Fire.Active,
	}
	if s.Fire.Active {
		snap.Particles = make([]mgl64.Vec3, len(s.Fire.Particles))
		for i, p := range s.Fire.Particles {
			snap.Particles[i] = p.Pos
		}
	}
	return snap
}
