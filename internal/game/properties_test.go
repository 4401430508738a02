package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("swing and flight invariants", func() {
	var (
		tn    Tuning
		arena Arena
	)

	BeforeEach(func() {
		tn = DefaultTuning()
		arena = DefaultArena()
	})

	Describe("the pendulum", func() {
		It("stays at the stable equilibrium for any clamped dt", func() {
			for _, dt := range []float64{0, 0.001, 0.016, 0.05, 0.1} {
				g := Gymnast{Mode: ModeHolding, Pos: HangPos(arena.Bars[0], tn)}
				for i := 0; i < 500; i++ {
					StepPendulum(&g, arena.Bars[0], Input{}, tn, dt)
				}
				Expect(g.Angle).To(BeZero())
				Expect(g.AngVel).To(BeZero())
			}
		})

		It("dissipates energy through damping when unforced", func() {
			quiet := tn
			quiet.Gravity = 0
			g := Gymnast{Mode: ModeHolding, AngVel: 8}
			for i := 0; i < 300; i++ {
				prev := math.Abs(g.AngVel)
				StepPendulum(&g, arena.Bars[0], Input{}, quiet, 0.016)
				Expect(math.Abs(g.AngVel)).To(BeNumerically("<", prev))
			}
		})

		It("keeps the body on the swing circle", func() {
			g := Gymnast{Mode: ModeHolding, Angle: 0.3}
			for i := 0; i < 400; i++ {
				StepPendulum(&g, arena.Bars[0], Input{Force: tn.MaxSwingForce}, tn, 0.016)
				r := g.Pos.Sub(arena.Bars[0].Pos).Len()
				Expect(r).To(BeNumerically("~", tn.SwingRadius, 1e-9))
			}
		})
	})

	Describe("release", func() {
		It("is a pure function of angle, angular velocity and bar", func() {
			for _, bar := range []int{0, 1} {
				a := Gymnast{Mode: ModeHolding, Bar: bar, Angle: 1.3, AngVel: -2.6}
				b := a
				Release(&a, tn)
				Release(&b, tn)
				Expect(a.Vel).To(Equal(b.Vel))
			}
		})

		It("boosts toward the opposite bar", func() {
			from0 := Gymnast{Mode: ModeHolding, Bar: 0}
			from1 := Gymnast{Mode: ModeHolding, Bar: 1}
			Release(&from0, tn)
			Release(&from1, tn)
			Expect(from0.Vel.X()).To(Equal(tn.ReleaseBoost))
			Expect(from1.Vel.X()).To(Equal(-tn.ReleaseBoost))
		})
	})

	Describe("the flight phase", func() {
		It("never re-grabs the departure bar while ascending", func() {
			g := Gymnast{Mode: ModeAirborne, Bar: 0, Pos: arena.Bars[0].Pos}
			for _, vy := range []float64{5, 1, 0.001} {
				g.Vel = mgl64.Vec3{0, vy, 0}
				_, ok := TryGrab(&g, arena.Bars, tn)
				Expect(ok).To(BeFalse(), "ascending at vy=%g", vy)
			}

			g.Vel = mgl64.Vec3{0, 0, 0} // apex counts as no longer ascending
			idx, ok := TryGrab(&g, arena.Bars, tn)
			Expect(ok).To(BeTrue())
			Expect(idx).To(Equal(0))
		})

		It("snaps a mat landing onto the surface and stops the body", func() {
			g := Gymnast{Mode: ModeAirborne, Pos: mgl64.Vec3{5.5, 0.5, 0}, Vel: mgl64.Vec3{1.5, -4, 0}}
			_, ok := TryLand(&g, arena.Mats, tn)
			Expect(ok).To(BeTrue())
			Expect(g.Pos.Y()).To(Equal(arena.Mats[1].Pos.Y() + tn.MatTopOffset + tn.LandClearance))
			Expect(g.Vel).To(Equal(mgl64.Vec3{}))
		})

		It("resets everything on a ground fail", func() {
			s := NewSession(arena, tn, 1)
			s.Score = 500
			s.Gymnast.Mode = ModeAirborne
			s.Gymnast.Pos = mgl64.Vec3{0, 0.05, 0}
			s.Gymnast.Vel = mgl64.Vec3{0.5, -6, 0}
			s.Advance(0.05)

			Expect(s.Gymnast.Mode).To(Equal(ModeHolding))
			Expect(s.Gymnast.Bar).To(Equal(0))
			Expect(s.Gymnast.Pos).To(Equal(HangPos(arena.Bars[0], tn)))
			Expect(s.Gymnast.Rot).To(BeZero())
			Expect(s.Score).To(BeZero())
			Expect(s.Fire.Active).To(BeFalse())
		})
	})
})
