package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/kinelab/internal/sim"
	"github.com/san-kum/kinelab/internal/telemetry"
	"github.com/san-kum/kinelab/internal/viewport"
)

func ptr(v float64) *float64 { return &v }

var _ = Describe("UniformDriver", func() {
	var (
		rec *telemetry.Recorder
		d   *sim.UniformDriver
		vp  viewport.Viewport
	)

	BeforeEach(func() {
		rec = telemetry.NewRecorder()
		d = sim.NewUniformDriver(rec)
		vp = viewport.Viewport{Width: 600, Height: 420}
	})

	Context("walking at 5 m/s for 5 s", func() {
		BeforeEach(func() {
			Expect(d.Start(sim.UniformParams{Velocity: 5, Duration: 5}, vp)).To(Succeed())
		})

		It("emits an initial snapshot with the final position", func() {
			s, ok := rec.Last()
			Expect(ok).To(BeTrue())
			Expect(s.Elapsed).To(BeZero())
			Expect(s.FinalPosition).To(Equal(25.0))
			Expect(s.Screen).To(Equal(viewport.Margin))
			Expect(s.Running).To(BeTrue())
		})

		It("ends exactly at the duration", func() {
			runToEnd(d)
			Expect(d.State()).To(Equal(sim.Terminated))

			final, _ := rec.Last()
			Expect(final.Final).To(BeTrue())
			Expect(final.Elapsed).To(Equal(5.0))
			Expect(final.Position).To(Equal(25.0))
			Expect(final.Displacement).To(Equal(25.0))
			Expect(final.Progress).To(Equal(1.0))
			Expect(final.Status).To(Equal("Simulation complete."))
		})

		It("never overshoots the duration", func() {
			runToEnd(d)
			for _, s := range rec.Snapshots() {
				Expect(s.Elapsed).To(BeNumerically("<=", 5.0))
				Expect(s.Screen).To(BeNumerically(">=", viewport.Margin-1e-9))
				Expect(s.Screen).To(BeNumerically("<=", 600-viewport.Margin+1e-9))
			}
		})

		It("keeps progress monotonic within [0,1]", func() {
			runToEnd(d)
			prev := -1.0
			for _, s := range rec.Snapshots() {
				Expect(s.Progress).To(BeNumerically(">=", prev))
				Expect(s.Progress).To(BeNumerically("<=", 1))
				prev = s.Progress
			}
		})

		It("reports the advance in the status line", func() {
			d.Step()
			s, _ := rec.Last()
			Expect(s.Status).To(Equal("Advance: 0.25 m"))
		})

		It("can be stopped twice", func() {
			d.Stop()
			d.Stop()
			Expect(d.State()).To(Equal(sim.Terminated))
			Expect(d.Session().Running).To(BeFalse())
		})
	})

	It("derives the velocity from the target when none is given", func() {
		Expect(d.Start(sim.UniformParams{Target: ptr(10), Duration: 5}, vp)).To(Succeed())
		m, _ := d.Model()
		Expect(m.Velocity()).To(Equal(2.0))

		runToEnd(d)
		final, _ := rec.Last()
		Expect(final.Position).To(BeNumerically("~", 10, 1e-12))
		Expect(final.FinalPosition).To(Equal(10.0))
	})

	It("requires a target when the velocity is zero", func() {
		err := d.Start(sim.UniformParams{Duration: 5}, vp)
		Expect(err).To(MatchError(sim.ErrMissingData))
		Expect(d.State()).To(Equal(sim.Idle))
		Expect(rec.Len()).To(BeZero())
	})

	It("rejects a target the body moves away from", func() {
		err := d.Start(sim.UniformParams{Velocity: -2, Target: ptr(10), Duration: 5}, vp)
		Expect(err).To(MatchError(sim.ErrUnreachable))
		Expect(d.State()).To(Equal(sim.Idle))
	})

	DescribeTable("rejects invalid durations",
		func(duration float64) {
			err := d.Start(sim.UniformParams{Velocity: 1, Duration: duration}, vp)
			Expect(err).To(MatchError(sim.ErrInvalidParameter))
		},
		Entry("zero", 0.0),
		Entry("negative", -1.0),
		Entry("NaN", math.NaN()),
	)

	It("centres the sprite when start and end coincide", func() {
		Expect(d.Start(sim.UniformParams{Start: 3, Target: ptr(3), Duration: 2}, vp)).To(Succeed())
		Expect(d.Mapping().Degenerate).To(BeTrue())

		runToEnd(d)
		for _, s := range rec.Snapshots() {
			Expect(s.Screen).To(Equal(600/2 - viewport.SpriteHalfWidth))
		}
	})

	It("moves left for negative velocities", func() {
		Expect(d.Start(sim.UniformParams{Start: 10, Velocity: -2, Duration: 5}, vp)).To(Succeed())
		runToEnd(d)

		snaps := rec.Snapshots()
		Expect(snaps[len(snaps)-1].Screen).To(BeNumerically("<", snaps[0].Screen))
		Expect(snaps[len(snaps)-1].Position).To(Equal(0.0))
	})

	It("keeps a failed restart from disturbing the run in flight", func() {
		Expect(d.Start(sim.UniformParams{Velocity: 1, Duration: 3}, vp)).To(Succeed())
		d.Step()
		before := d.Session()

		Expect(d.Start(sim.UniformParams{Velocity: 1, Duration: -3}, vp)).NotTo(Succeed())
		Expect(d.Session()).To(Equal(before))
		Expect(d.State()).To(Equal(sim.Running))
	})
})
