package sim_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/kinelab/internal/sim"
	"github.com/san-kum/kinelab/internal/telemetry"
	"github.com/san-kum/kinelab/internal/viewport"
)

func runToEnd(d sim.Driver) int {
	ticks := 0
	for d.Step() {
		ticks++
		Expect(ticks).To(BeNumerically("<", 100000), "driver never terminated")
	}
	return ticks + 1
}

var _ = Describe("FreeFallDriver", func() {
	var (
		rec *telemetry.Recorder
		d   *sim.FreeFallDriver
		vp  viewport.Viewport
	)

	BeforeEach(func() {
		rec = telemetry.NewRecorder()
		d = sim.NewFreeFallDriver(rec)
		vp = viewport.Viewport{Width: 600, Height: 420}
	})

	It("starts idle", func() {
		Expect(d.State()).To(Equal(sim.Idle))
		Expect(d.Step()).To(BeFalse())
		Expect(rec.Len()).To(BeZero())
	})

	Context("dropping from 50m at rest", func() {
		BeforeEach(func() {
			Expect(d.Start(sim.FreeFallParams{Height: 50}, vp)).To(Succeed())
		})

		It("emits an initial snapshot at t=0", func() {
			Expect(d.State()).To(Equal(sim.Running))
			Expect(rec.Len()).To(Equal(1))

			s, _ := rec.Last()
			Expect(s.Elapsed).To(BeZero())
			Expect(s.Position).To(Equal(50.0))
			Expect(s.Progress).To(BeZero())
			Expect(s.Running).To(BeTrue())
			Expect(s.TimeRemaining).To(BeNumerically("~", 3.193, 1e-2))
			Expect(s.Screen).To(BeNumerically("~", viewport.TopInset, 1e-9))
		})

		It("freezes the vertical mapping at start", func() {
			m := d.Mapping()
			Expect(m.Ground).To(Equal(300.0))
			Expect(m.Scale).To(BeNumerically("~", 4.8, 1e-12))
		})

		It("advances simulated time by a fixed step", func() {
			Expect(d.Step()).To(BeTrue())
			Expect(d.Step()).To(BeTrue())
			Expect(d.Session().Elapsed).To(BeNumerically("~", 2*sim.TimeStep, 1e-12))

			s, _ := rec.Last()
			Expect(s.Position).To(BeNumerically("~", 50-0.5*9.81*0.01, 1e-9))
			Expect(s.Displacement).To(BeNumerically("~", 0.5*9.81*0.01, 1e-9))
			Expect(s.Status).To(Equal("Height: 49.95 m"))
		})

		It("lands after the time to ground and reports a final snapshot", func() {
			ticks := runToEnd(d)
			Expect(ticks).To(Equal(64))
			Expect(d.State()).To(Equal(sim.Terminated))
			Expect(d.Session().Running).To(BeFalse())

			final, _ := rec.Last()
			Expect(final.Final).To(BeTrue())
			Expect(final.Running).To(BeFalse())
			Expect(final.Progress).To(Equal(1.0))
			Expect(final.TimeRemaining).To(BeZero())
			Expect(final.Position).To(BeZero())
			Expect(final.Displacement).To(Equal(50.0))
			Expect(final.Elapsed).To(BeNumerically("~", 3.193, 1e-2))
			Expect(final.Velocity).To(BeNumerically("~", 31.32, 1e-2))
			Expect(final.Screen).To(Equal(d.Mapping().Ground))
			Expect(final.Status).To(Equal("Impact complete."))
		})

		It("keeps progress monotonic within [0,1]", func() {
			runToEnd(d)
			prev := -1.0
			for _, s := range rec.Snapshots() {
				Expect(s.Progress).To(BeNumerically(">=", 0))
				Expect(s.Progress).To(BeNumerically("<=", 1))
				Expect(s.Progress).To(BeNumerically(">=", prev))
				prev = s.Progress
			}
		})

		It("never displays a negative height", func() {
			runToEnd(d)
			for _, s := range rec.Snapshots() {
				Expect(s.Position).To(BeNumerically(">=", 0))
				Expect(s.Screen).To(BeNumerically("<=", d.Mapping().Ground))
			}
		})

		It("hands over to the bounce after impact", func() {
			Expect(d.Bounce()).To(BeNil())
			runToEnd(d)
			b := d.Bounce()
			Expect(b).NotTo(BeNil())
			Expect(b.Y()).To(Equal(d.Mapping().Ground))
			Expect(b.Done()).To(BeFalse())
		})

		It("ignores ticks after termination", func() {
			runToEnd(d)
			n := rec.Len()
			Expect(d.Step()).To(BeFalse())
			Expect(rec.Len()).To(Equal(n))
		})

		It("stops idempotently", func() {
			d.Step()
			d.Stop()
			Expect(d.State()).To(Equal(sim.Terminated))
			Expect(d.Session().Running).To(BeFalse())

			s, _ := rec.Last()
			Expect(s.Running).To(BeFalse())
			Expect(s.Status).To(Equal("Stopped."))

			n := rec.Len()
			d.Stop()
			Expect(rec.Len()).To(Equal(n))
			Expect(d.Step()).To(BeFalse())
		})

		It("restarts from zero and cancels the previous run", func() {
			for i := 0; i < 10; i++ {
				d.Step()
			}
			Expect(d.Start(sim.FreeFallParams{Height: 20, Velocity: -5}, vp)).To(Succeed())
			Expect(d.State()).To(Equal(sim.Running))
			Expect(d.Session().Elapsed).To(BeZero())

			m, ok := d.Model()
			Expect(ok).To(BeTrue())
			Expect(m.Height()).To(Equal(20.0))
			Expect(m.Velocity()).To(Equal(-5.0))
		})

		It("rejects an invalid restart without touching the running session", func() {
			d.Step()
			d.Step()
			before := d.Session()

			err := d.Start(sim.FreeFallParams{Height: -1}, vp)
			Expect(err).To(MatchError(sim.ErrInvalidParameter))
			Expect(d.State()).To(Equal(sim.Running))
			Expect(d.Session()).To(Equal(before))

			m, _ := d.Model()
			Expect(m.Height()).To(Equal(50.0))
		})
	})

	It("rejects a negative height before any mutation", func() {
		err := d.Start(sim.FreeFallParams{Height: -3}, vp)

		var perr *sim.ParamError
		Expect(errors.As(err, &perr)).To(BeTrue())
		Expect(perr.Field).To(Equal("height"))
		Expect(err).To(MatchError(sim.ErrInvalidParameter))
		Expect(d.State()).To(Equal(sim.Idle))
		Expect(rec.Len()).To(BeZero())
	})

	It("rejects a non-finite velocity", func() {
		Expect(d.Start(sim.FreeFallParams{Height: 3, Velocity: math.Inf(1)}, vp)).
			To(MatchError(sim.ErrInvalidParameter))
	})

	It("lands immediately when starting on the ground", func() {
		Expect(d.Start(sim.FreeFallParams{}, vp)).To(Succeed())
		Expect(d.Step()).To(BeFalse())

		final, _ := rec.Last()
		Expect(final.Final).To(BeTrue())
		Expect(final.Progress).To(Equal(1.0))
		Expect(final.Displacement).To(BeZero())
	})

	It("falls back to the default viewport when unmeasured", func() {
		Expect(d.Start(sim.FreeFallParams{Height: 10}, viewport.Viewport{})).To(Succeed())
		Expect(d.Session().Viewport).To(Equal(viewport.Viewport{
			Width:  viewport.DefaultWidth,
			Height: viewport.DefaultHeight,
		}))
		Expect(d.Mapping().Ground).To(Equal(viewport.DefaultHeight - viewport.GroundInset))
	})

	It("handles an upward toss", func() {
		Expect(d.Start(sim.FreeFallParams{Height: 5, Velocity: -10}, vp)).To(Succeed())
		runToEnd(d)

		var climbed bool
		for _, s := range rec.Snapshots() {
			if s.Velocity < 0 && s.Position > 5 {
				climbed = true
			}
		}
		Expect(climbed).To(BeTrue())
		Expect(d.State()).To(Equal(sim.Terminated))
	})
})
