package game

import "math"

// StepFlight advances one airborne frame: gravity on the vertical component,
// then component-wise position integration.
func StepFlight(g *Gymnast, tn Tuning, dt float64) {
	g.Vel[1] += tn.Gravity * dt
	g.Pos = g.Pos.Add(g.Vel.Mul(dt))
}

// TryGrab checks the bars in index order and grabs the first one within
// reach. The bar just released is excluded while the athlete is still
// ascending, otherwise it would be re-caught on the very next frame.
// On a grab the angular state is recomputed from the approach geometry and
// the linear velocity is absorbed.
func TryGrab(g *Gymnast, bars []Bar, tn Tuning) (int, bool) {
	for i, b := range bars {
		if i == g.Bar && g.Vel.Y() > 0 {
			continue
		}
		if g.Pos.Sub(b.Pos).Len() >= tn.GrabRadius {
			continue
		}
		dx := g.Pos.X() - b.Pos.X()
		dy := g.Pos.Y() - b.Pos.Y()
		g.Angle = math.Atan2(dx, -dy)
		g.AngVel = (g.Vel.X() * math.Cos(g.Angle)) / tn.SwingRadius
		g.Vel = mglZero
		g.Mode = ModeHolding
		g.Bar = i
		return i, true
	}
	return 0, false
}

// TryLand checks the mats in list order. A landing snaps the body onto the
// mat surface and kills all velocity; the caller starts the fire effect and
// schedules the reset.
func TryLand(g *Gymnast, mats []Mat, tn Tuning) (int, bool) {
	for i, m := range mats {
		top := m.Pos.Y() + tn.MatTopOffset
		if g.Pos.Y() > top+tn.LandClearance {
			continue
		}
		if math.Abs(g.Pos.X()-m.Pos.X()) > tn.MatHalfDepth {
			continue
		}
		if math.Abs(g.Pos.Z()-m.Pos.Z()) > tn.MatHalfWidth {
			continue
		}
		g.Pos[1] = top + tn.LandClearance
		g.Vel = mglZero
		return i, true
	}
	return 0, false
}
