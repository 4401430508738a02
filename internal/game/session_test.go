package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestSession() *Session {
	return NewSession(DefaultArena(), DefaultTuning(), 1)
}

func TestSessionInitialState(t *testing.T) {
	s := newTestSession()

	if s.Gymnast.Mode != ModeHolding || s.Gymnast.Bar != 0 {
		t.Fatalf("initial mode/bar = %v/%d, want holding/0", s.Gymnast.Mode, s.Gymnast.Bar)
	}
	want := HangPos(s.Arena.Bars[0], s.Tuning)
	if s.Gymnast.Pos != want {
		t.Errorf("initial position = %v, want %v", s.Gymnast.Pos, want)
	}
	if s.Score != 0 {
		t.Errorf("initial score = %d, want 0", s.Score)
	}
	if len(s.Fire.Particles) != s.Tuning.FireParticles {
		t.Errorf("particle count = %d, want %d", len(s.Fire.Particles), s.Tuning.FireParticles)
	}
}

func TestSessionDtClamp(t *testing.T) {
	a := newTestSession()
	b := newTestSession()
	a.Press(KeyRight)
	b.Press(KeyRight)

	// A ten-second stall must integrate exactly like a 0.1 s frame.
	a.Advance(10)
	b.Advance(0.1)

	if a.Gymnast.Angle != b.Gymnast.Angle || a.Gymnast.AngVel != b.Gymnast.AngVel {
		t.Errorf("clamped step diverged: angle %g vs %g, angVel %g vs %g",
			a.Gymnast.Angle, b.Gymnast.Angle, a.Gymnast.AngVel, b.Gymnast.AngVel)
	}

	c := newTestSession()
	c.Advance(-1)
	if c.Gymnast.Angle != 0 || c.Gymnast.AngVel != 0 {
		t.Error("negative dt moved the gymnast")
	}
}

func TestSessionInputLatch(t *testing.T) {
	s := newTestSession()

	s.Press(KeyRight)
	s.Advance(0.016)
	if s.Gymnast.AngVel <= 0 {
		t.Fatalf("angVel = %g after right press, want positive", s.Gymnast.AngVel)
	}

	// Key-up stops the injection; damping then decays the speed.
	s.Lift(KeyRight)
	v := s.Gymnast.AngVel
	s.Advance(0.016)
	if s.Gymnast.AngVel >= v {
		t.Errorf("angVel %g did not decay after key-up (was %g)", s.Gymnast.AngVel, v)
	}
}

func TestSessionReleaseOneShot(t *testing.T) {
	s := newTestSession()
	s.Gymnast.AngVel = 4
	s.Gymnast.Angle = 0.9

	s.Press(KeyRelease)
	s.Advance(0.016)
	if s.Gymnast.Mode != ModeAirborne {
		t.Fatal("release key did not launch")
	}

	// A later grab must not immediately re-release from the stale flag.
	s.Gymnast.Mode = ModeHolding
	s.Advance(0.016)
	if s.Gymnast.Mode != ModeHolding {
		t.Error("release flag was not consumed as a one-shot")
	}
}

func TestSessionInputIgnoredWhileAirborne(t *testing.T) {
	s := newTestSession()
	s.Gymnast.Mode = ModeAirborne
	s.Gymnast.Pos = mgl64.Vec3{0, 8, 0}

	s.Press(KeyRight)
	s.Press(KeyRelease)
	s.Advance(0.016)

	if s.input.Force != 0 || s.input.Release {
		t.Error("airborne key events latched input")
	}
}

func TestSessionGrabAwardsScore(t *testing.T) {
	s := newTestSession()
	var observed []int
	s.OnScore(func(n int) { observed = append(observed, n) })

	s.Gymnast.Mode = ModeAirborne
	s.Gymnast.Bar = 0
	s.Gymnast.Pos = s.Arena.Bars[1].Pos.Add(mgl64.Vec3{0, 0.3, 0})
	s.Gymnast.Vel = mgl64.Vec3{0, -0.5, 0}

	s.Advance(0.016)

	if s.Gymnast.Mode != ModeHolding || s.Gymnast.Bar != 1 {
		t.Fatalf("mode/bar = %v/%d, want holding/1", s.Gymnast.Mode, s.Gymnast.Bar)
	}
	if s.Score != s.Tuning.GrabBonus {
		t.Errorf("score = %d, want %d", s.Score, s.Tuning.GrabBonus)
	}
	if len(observed) != 1 || observed[0] != s.Tuning.GrabBonus {
		t.Errorf("score observer saw %v, want [%d]", observed, s.Tuning.GrabBonus)
	}
}

func TestSessionMatLandingSchedulesOneReset(t *testing.T) {
	s := newTestSession()

	s.Gymnast.Mode = ModeAirborne
	s.Gymnast.Pos = mgl64.Vec3{5.5, 0.6, 0}
	s.Gymnast.Vel = mgl64.Vec3{0, -2, 0}

	s.Advance(0.016)

	if !s.Fire.Active {
		t.Fatal("mat landing did not start the fire effect")
	}
	if s.Score != s.Tuning.LandBonus {
		t.Errorf("score = %d, want %d", s.Score, s.Tuning.LandBonus)
	}
	if !s.ResetPending() {
		t.Fatal("mat landing did not schedule a reset")
	}

	// Just short of the deadline: still landed, still scored.
	for s.Elapsed() < s.Tuning.ResetDelay+0.1 {
		s.Advance(0.05)
		if s.Elapsed() < s.Tuning.ResetDelay && s.Gymnast.Mode == ModeHolding {
			t.Fatalf("reset fired early at t=%g", s.Elapsed())
		}
	}

	if s.Gymnast.Mode != ModeHolding || s.Gymnast.Bar != 0 {
		t.Fatal("scheduled reset did not restore the initial hang")
	}
	if s.Score != 0 || s.Fire.Active || s.ResetPending() {
		t.Errorf("post-reset state: score=%d fire=%v pending=%v", s.Score, s.Fire.Active, s.ResetPending())
	}

	// And it must not fire a second time.
	s.Gymnast.AngVel = 2
	s.Advance(0.05)
	if s.Gymnast.AngVel == 0 {
		t.Error("a second reset fired after the deadline was consumed")
	}
}

func TestSessionResetCancelsPendingReset(t *testing.T) {
	s := newTestSession()

	s.Gymnast.Mode = ModeAirborne
	s.Gymnast.Pos = mgl64.Vec3{5.5, 0.6, 0}
	s.Gymnast.Vel = mgl64.Vec3{0, -2, 0}
	s.Advance(0.016)
	if !s.ResetPending() {
		t.Fatal("no pending reset after mat landing")
	}

	// A reset from any other source must cancel the scheduled one.
	s.Reset()
	if s.ResetPending() {
		t.Fatal("explicit reset left the scheduled reset pending")
	}

	// Build up some state past the old deadline; it must survive.
	s.Press(KeyRight)
	for s.Elapsed() < s.Tuning.ResetDelay+1 {
		s.Advance(0.05)
	}
	if s.Gymnast.AngVel == 0 && s.Gymnast.Angle == 0 {
		t.Error("stale deadline wiped the session")
	}
}

func TestSessionGroundFailResets(t *testing.T) {
	s := newTestSession()
	var last int
	s.OnScore(func(n int) { last = n })

	s.Score = 300
	s.Gymnast.Mode = ModeAirborne
	s.Gymnast.Pos = mgl64.Vec3{0, 0.01, 0} // over no mat
	s.Gymnast.Vel = mgl64.Vec3{0, -5, 0}

	s.Advance(0.016)

	if s.Gymnast.Mode != ModeHolding || s.Gymnast.Bar != 0 {
		t.Fatal("ground fail did not reset to the initial hang")
	}
	if s.Gymnast.Angle != 0 || s.Gymnast.AngVel != 0 || s.Gymnast.Vel != (mgl64.Vec3{}) {
		t.Error("ground fail left residual motion")
	}
	if s.Score != 0 || last != 0 {
		t.Errorf("score = %d (observer %d), want 0", s.Score, last)
	}
}

func TestSessionNoGroundFailWhileFireActive(t *testing.T) {
	s := newTestSession()

	s.Gymnast.Mode = ModeAirborne
	s.Gymnast.Pos = mgl64.Vec3{5.5, 0.6, 0}
	s.Gymnast.Vel = mgl64.Vec3{0, -2, 0}
	s.Advance(0.016)
	if !s.Fire.Active {
		t.Fatal("no landing")
	}

	// The landed body sinks below zero while the fire burns; that must not
	// count as a fall.
	score := s.Score
	for i := 0; i < 10; i++ {
		s.Advance(0.05)
	}
	if s.Score != score {
		t.Errorf("score changed from %d to %d while waiting for the reset", score, s.Score)
	}
}

// TestSessionPumpAndReleaseReplay replays the documented end-to-end scenario
// step by literal step and checks the session agrees exactly.
func TestSessionPumpAndReleaseReplay(t *testing.T) {
	tn := DefaultTuning()
	s := NewSession(DefaultArena(), tn, 1)

	s.Press(KeyRight)
	for i := 0; i < 10; i++ {
		s.Advance(0.1)
	}
	s.Lift(KeyRight)
	s.Press(KeyRelease)
	s.Advance(0.1)

	// Reference replay of the same eleven frames.
	angle, angVel := 0.0, 0.0
	step := func(force float64) {
		angVel += force * 0.1
		angVel += (tn.Gravity / tn.SwingRadius) * math.Sin(angle) * 0.1
		angVel *= tn.Damping
		angle += angVel * 0.1
	}
	for i := 0; i < 10; i++ {
		step(tn.MaxSwingForce)
	}
	step(0) // release frame integrates once more before launching

	ts := angVel * tn.SwingRadius
	wantVel := mgl64.Vec3{ts*math.Cos(angle) + tn.ReleaseBoost, ts * math.Sin(angle), 0}

	if s.Gymnast.Mode != ModeAirborne {
		t.Fatal("not airborne after release")
	}
	if s.Gymnast.Angle != angle || s.Gymnast.AngVel != angVel {
		t.Errorf("swing state (%g, %g), want (%g, %g)",
			s.Gymnast.Angle, s.Gymnast.AngVel, angle, angVel)
	}
	if s.Gymnast.Vel != wantVel {
		t.Errorf("launch velocity %v, want %v", s.Gymnast.Vel, wantVel)
	}
}
