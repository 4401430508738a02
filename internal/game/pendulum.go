package game

import "math"

// StepPendulum advances one holding frame. The input force is injected as
// angular acceleration directly, gravity contributes the restoring term of a
// point pendulum, and damping multiplies the angular velocity once per frame.
// Angle is never wrapped: momentum built across full revolutions is kept.
func StepPendulum(g *Gymnast, bar Bar, in Input, tn Tuning, dt float64) {
	g.AngVel += in.Force * dt
	g.AngVel += (tn.Gravity / tn.SwingRadius) * math.Sin(g.Angle) * dt
	g.AngVel *= tn.Damping
	g.Angle += g.AngVel * dt

	g.Pos[0] = bar.Pos.X() + tn.SwingRadius*math.Sin(g.Angle)
	g.Pos[1] = bar.Pos.Y() - tn.SwingRadius*math.Cos(g.Angle)
	g.Pos[2] = bar.Pos.Z()
	g.Rot = g.Angle
}

// Release converts the angular state into a ballistic launch. The tangential
// speed is decomposed along the instantaneous arc direction, and a fixed
// horizontal boost pushes the athlete toward the opposite bar.
func Release(g *Gymnast, tn Tuning) {
	ts := g.AngVel * tn.SwingRadius
	boost := tn.ReleaseBoost
	if g.Bar == 1 {
		boost = -boost
	}
	g.Vel[0] = ts*math.Cos(g.Angle) + boost
	g.Vel[1] = ts * math.Sin(g.Angle)
	g.Vel[2] = 0
	g.Mode = ModeAirborne
}
