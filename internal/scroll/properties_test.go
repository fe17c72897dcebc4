package scroll_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/kinetic/internal/scroll"
)

const dt = 1.0 / 60

func run(e *scroll.Effect, limit int) int {
	frames := 0
	for frames < limit && e.TakeTick() {
		e.Tick(dt)
		frames++
	}
	return frames
}

var _ = Describe("Effect", func() {
	Describe("rest state", func() {
		DescribeTable("repeated ticks leave a resting effect unchanged",
			func(mode scroll.Mode) {
				e, err := scroll.New(mode, scroll.DefaultParams())
				Expect(err).NotTo(HaveOccurred())
				e.SetBounds(0, 500)
				e.SetValue(120)
				e.Tick(dt)

				before := e.State()
				Expect(before.Velocity).To(BeZero())
				Expect(before.Overscroll).To(BeZero())

				for i := 0; i < 50; i++ {
					e.Tick(dt)
				}
				after := e.State()
				Expect(after.Value).To(Equal(before.Value))
				Expect(after.Scroll).To(Equal(before.Scroll))
				Expect(after.Overscroll).To(Equal(before.Overscroll))
			},
			Entry("inertial", scroll.ModeInertial),
			Entry("bounded", scroll.ModeBounded),
			Entry("damped", scroll.ModeDamped),
		)
	})

	Describe("overscroll recovery", func() {
		DescribeTable("spring pulls the value back to the edge",
			func(spring float64) {
				p := scroll.DefaultParams()
				p.SpringConstant = spring
				e, err := scroll.New(scroll.ModeDamped, p)
				Expect(err).NotTo(HaveOccurred())
				e.SetBounds(0, 100)
				e.SetValue(150)

				Expect(e.Overscroll()).To(Equal(50.0))
				Expect(e.Velocity()).To(BeZero())
				Expect(e.IsManual()).To(BeFalse())
				Expect(e.TickPending()).To(BeTrue(), "overscroll alone must arm the spring")

				prev := math.Abs(e.Overscroll())
				frames := 0
				for e.Overscroll() != 0 {
					Expect(e.TakeTick()).To(BeTrue())
					e.Tick(dt)
					cur := math.Abs(e.Overscroll())
					Expect(cur).To(BeNumerically("<", prev), "frame %d", frames)
					prev = cur
					frames++
					Expect(frames).To(BeNumerically("<", 5000))
				}

				run(e, 10000)
				Expect(e.TickPending()).To(BeFalse())
				Expect(e.Velocity()).To(BeZero())
				Expect(e.Overscroll()).To(BeZero())
				Expect(e.Value()).To(BeNumerically("<=", 100))
			},
			Entry("default spring", 2.0),
			Entry("soft spring", 0.5),
			Entry("stiff spring", 8.0),
		)

		It("recovers from the min side", func() {
			e := scroll.NewDamped(0, 100)
			e.SetValue(-40)
			Expect(e.Overscroll()).To(Equal(-40.0))

			run(e, 10000)
			Expect(e.Overscroll()).To(BeZero())
			Expect(e.Value()).To(BeNumerically(">=", 0))
			Expect(e.Velocity()).To(BeZero())
		})

		It("snaps onto the bound when a stiff spring carries it across", func() {
			p := scroll.DefaultParams()
			p.SpringConstant = 8
			e, err := scroll.New(scroll.ModeDamped, p)
			Expect(err).NotTo(HaveOccurred())
			e.SetBounds(0, 100)
			e.SetValue(150)

			run(e, 10000)
			Expect(e.Value()).To(Equal(100.0))
			Expect(e.Overscroll()).To(BeZero())
		})

		It("glides inside once the overscroll drops below the threshold", func() {
			e := scroll.NewDamped(0, 100)
			e.SetValue(140)
			e.Fling(-600)

			run(e, 10000)
			Expect(e.Value()).To(BeNumerically("<", 100))
			Expect(e.Value()).To(BeNumerically(">", 90))
			Expect(e.Value()).To(Equal(math.Round(e.Value())))
			Expect(e.Overscroll()).To(BeZero())
		})
	})

	Describe("gesture classification", func() {
		It("treats sub-threshold motion as a tap", func() {
			e := scroll.NewBounded(0, 1000)
			e.BeginAt(0, 0)
			Expect(e.ExtendAt(3, 0.01)).To(Succeed())
			Expect(e.EndAt(4, 0.02)).To(Succeed())
			Expect(e.Velocity()).To(BeZero())
		})

		It("flings once the drag threshold is crossed", func() {
			e := scroll.NewBounded(0, 1000)
			e.BeginAt(0, 0)
			Expect(e.ExtendAt(15, 0.05)).To(Succeed())
			Expect(e.EndAt(30, 0.10)).To(Succeed())
			Expect(e.Velocity()).To(BeNumerically(">", 0))
			Expect(e.Phase()).To(Equal(scroll.FreeRunning))
		})

		It("fails fast when extend precedes begin", func() {
			e := scroll.NewDamped(0, 10)
			Expect(e.Extend(4)).To(MatchError(scroll.ErrNoGesture))
		})
	})

	Describe("state machine", func() {
		It("walks idle, manual, free-running and back to idle", func() {
			e := scroll.NewInertial()
			Expect(e.Phase()).To(Equal(scroll.Idle))

			e.BeginAt(0, 0)
			Expect(e.Phase()).To(Equal(scroll.Manual))

			Expect(e.ExtendAt(40, 0.05)).To(Succeed())
			Expect(e.Phase()).To(Equal(scroll.Manual))

			Expect(e.EndAt(80, 0.10)).To(Succeed())
			Expect(e.Phase()).To(Equal(scroll.FreeRunning))

			run(e, 5000)
			Expect(e.Phase()).To(Equal(scroll.Idle))
		})

		It("keeps running without friction", func() {
			p := scroll.DefaultParams()
			p.Friction = 0
			e, err := scroll.New(scroll.ModeInertial, p)
			Expect(err).NotTo(HaveOccurred())
			e.Fling(120)

			frames := run(e, 1000)
			Expect(frames).To(Equal(1000))
			Expect(e.Velocity()).To(Equal(120.0))
			Expect(e.TickPending()).To(BeTrue())
		})
	})
})
