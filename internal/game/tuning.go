package game

import "github.com/go-gl/mathgl/mgl64"

// Tuning holds the physics constants for a session. The defaults were tuned
// by play-testing; damping in particular is a flat per-frame multiplier and
// must stay that way (scaling it by dt changes the feel at every frame rate).
type Tuning struct {
	Gravity       float64 // vertical acceleration, negative
	SwingRadius   float64 // bar-to-body distance while holding
	Damping       float64 // per-frame angular velocity multiplier
	MaxSwingForce float64 // angular acceleration injected by a held key
	ReleaseBoost  float64 // horizontal push toward the other bar on release
	GrabRadius    float64 // max distance to a bar for a grab
	MatHalfWidth  float64 // mat half-extent along the lateral axis
	MatHalfDepth  float64 // mat half-extent along the swing-plane axis
	MatTopOffset  float64 // mat surface height above its anchor
	LandClearance float64 // body height above the mat surface when landed
	MaxFrameDt    float64 // per-step time clamp
	GrabBonus     int
	LandBonus     int
	ResetDelay    float64 // seconds between a mat landing and the reset
	FireParticles int
	FireGravity   float64 // particle-only gravity, positive magnitude
}

func DefaultTuning() Tuning {
	return Tuning{
		Gravity:       -6.5,
		SwingRadius:   1.15,
		Damping:       0.995,
		MaxSwingForce: 12,
		ReleaseBoost:  3,
		GrabRadius:    0.5,
		MatHalfWidth:  1.5,
		MatHalfDepth:  1.0,
		MatTopOffset:  0.15,
		LandClearance: 0.5,
		MaxFrameDt:    0.1,
		GrabBonus:     100,
		LandBonus:     200,
		ResetDelay:    2.0,
		FireParticles: 40,
		FireGravity:   5,
	}
}

// Arena is the fixed layout of a session: two bars (index 0 lower, 1 higher)
// and the landing mats, checked in list order.
type Arena struct {
	Bars []Bar
	Mats []Mat
}

func DefaultArena() Arena {
	return Arena{
		Bars: []Bar{
			{Pos: mgl64.Vec3{-2, 3, 0}, Radius: 0.04},
			{Pos: mgl64.Vec3{2, 4, 0}, Radius: 0.04},
		},
		Mats: []Mat{
			{Pos: mgl64.Vec3{-5.5, 0, 0}},
			{Pos: mgl64.Vec3{5.5, 0, 0}},
		},
	}
}
