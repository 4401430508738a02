package game

import "github.com/go-gl/mathgl/mgl64"

// Axis convention: X is the swing plane, Y is height, Z runs along the bars.

type Mode int

const (
	ModeHolding Mode = iota
	ModeAirborne
)

func (m Mode) String() string {
	switch m {
	case ModeHolding:
		return "holding"
	case ModeAirborne:
		return "airborne"
	}
	return "unknown"
}

type Bar struct {
	Pos    mgl64.Vec3
	Radius float64
}

type Mat struct {
	Pos mgl64.Vec3
}

// Gymnast is the full kinematic state of the athlete. While holding, Angle
// and AngVel drive the motion and Pos is derived from the held bar; while
// airborne, Pos and Vel drive the motion and Angle is stale.
type Gymnast struct {
	Pos    mgl64.Vec3
	Rot    float64 // body rotation about the bar axis
	Mode   Mode
	Bar    int     // held bar index; after release, the bar just left
	Angle  float64 // pendulum angle from vertical, 0 at the bottom
	AngVel float64 // rad/s
	Vel    mgl64.Vec3
}

// Input is the latched control state read once per frame. Force is the
// angular acceleration currently applied by a held directional key; Release
// is a one-shot, consumed by the next holding step.
type Input struct {
	Force   float64
	Release bool
}

var mglZero mgl64.Vec3

// HangPos is the body position when hanging at rest below a bar.
func HangPos(b Bar, tn Tuning) mgl64.Vec3 {
	return mgl64.Vec3{b.Pos.X(), b.Pos.Y() - tn.SwingRadius, b.Pos.Z()}
}
