package input_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"doodlebox/internal/engine"
	"doodlebox/internal/engine/enginetest"
	"doodlebox/internal/input"
)

var _ = Describe("Machine", func() {
	var (
		sink *enginetest.Fake
		m    *input.Machine
		t0   time.Time
	)

	at := func(d time.Duration) time.Time { return t0.Add(d) }
	pt := func(x, y float64) engine.Point { return engine.Point{X: x, Y: y} }

	BeforeEach(func() {
		sink = enginetest.New()
		m = input.NewMachine(sink)
		t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	})

	Describe("quick taps", func() {
		It("issues no mutation when released before the hold threshold", func() {
			m.PointerDown(pt(100, 100), at(0))
			m.Tick(at(100 * time.Millisecond))
			m.PointerUp(pt(100, 100), at(150*time.Millisecond))

			Expect(sink.Calls).To(BeEmpty())
			Expect(m.Phase()).To(Equal(input.PhaseIdle))
		})
	})

	Describe("holding to grow a circle", func() {
		It("stays pending one tick before the threshold", func() {
			m.PointerDown(pt(50, 50), at(0))
			m.Tick(at(input.HoldThreshold - time.Millisecond))

			Expect(m.Phase()).To(Equal(input.PhasePending))
		})

		It("starts growing once a tick observes the deadline", func() {
			m.PointerDown(pt(50, 50), at(0))
			m.Tick(at(input.HoldThreshold))

			Expect(m.Phase()).To(Equal(input.PhaseGrowing))
		})

		It("commits one circle with radius proportional to the hold", func() {
			m.PointerDown(pt(200, 300), at(0))
			m.Tick(at(400 * time.Millisecond))
			m.PointerUp(pt(200, 300), at(600*time.Millisecond))

			circles := sink.Named("add_circle")
			Expect(circles).To(HaveLen(1))
			Expect(circles[0].Point).To(Equal(pt(200, 300)))
			Expect(circles[0].Radius).To(Equal(30.0))
			Expect(sink.Calls).To(HaveLen(1))
			Expect(m.Phase()).To(Equal(input.PhaseIdle))
		})

		It("commits even when deadline and release land on the same tick", func() {
			m.PointerDown(pt(10, 10), at(0))
			m.Tick(at(500 * time.Millisecond))
			m.PointerUp(pt(10, 10), at(500*time.Millisecond))

			Expect(sink.Named("add_circle")).To(HaveLen(1))
		})

		It("keeps the circle anchored at the press point while the pointer drifts", func() {
			m.PointerDown(pt(80, 80), at(0))
			m.Tick(at(450 * time.Millisecond))
			m.PointerMove(pt(300, 5), at(500*time.Millisecond))
			m.PointerUp(pt(300, 5), at(800*time.Millisecond))

			circles := sink.Named("add_circle")
			Expect(circles).To(HaveLen(1))
			Expect(circles[0].Point).To(Equal(pt(80, 80)))
			Expect(circles[0].Radius).To(Equal(40.0))
			Expect(sink.Named("add_polygon")).To(BeEmpty())
		})
	})

	Describe("tracing a polygon", func() {
		It("reinterprets an early move as the start of a trace", func() {
			m.PointerDown(pt(0, 0), at(0))
			m.PointerMove(pt(1, 1), at(100*time.Millisecond))

			Expect(m.Phase()).To(Equal(input.PhaseTracing))
		})

		It("never grows a circle after the pointer has moved", func() {
			m.PointerDown(pt(0, 0), at(0))
			m.PointerMove(pt(1, 1), at(100*time.Millisecond))
			m.Tick(at(time.Second))

			Expect(m.Phase()).To(Equal(input.PhaseTracing))
		})

		It("commits the recorded points in order", func() {
			m.PointerDown(pt(0, 0), at(0))
			m.PointerMove(pt(5, 0), at(50*time.Millisecond))
			m.PointerMove(pt(10, 0), at(100*time.Millisecond))
			m.PointerMove(pt(10, 10), at(150*time.Millisecond))
			m.PointerMove(pt(0, 10), at(200*time.Millisecond))
			m.PointerUp(pt(0, 10), at(250*time.Millisecond))

			polys := sink.Named("add_polygon")
			Expect(polys).To(HaveLen(1))
			Expect(polys[0].Path).To(Equal([]engine.Point{
				{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
			}))
			Expect(sink.Calls).To(HaveLen(1))
		})

		It("discards a trace shorter than four points", func() {
			m.PointerDown(pt(0, 0), at(0))
			m.PointerMove(pt(5, 0), at(50*time.Millisecond))
			m.PointerMove(pt(10, 0), at(100*time.Millisecond))
			m.PointerMove(pt(10, 5), at(150*time.Millisecond))
			m.PointerUp(pt(10, 5), at(200*time.Millisecond))

			Expect(sink.Calls).To(BeEmpty())
			Expect(m.Phase()).To(Equal(input.PhaseIdle))
		})

		It("does not leak points from a discarded trace into the next one", func() {
			m.PointerDown(pt(0, 0), at(0))
			m.PointerMove(pt(1, 0), at(10*time.Millisecond))
			m.PointerUp(pt(1, 0), at(20*time.Millisecond))

			m.PointerDown(pt(100, 100), at(time.Second))
			m.PointerMove(pt(110, 100), at(time.Second+50*time.Millisecond))
			m.PointerMove(pt(110, 110), at(time.Second+100*time.Millisecond))
			m.PointerMove(pt(100, 110), at(time.Second+150*time.Millisecond))
			m.PointerMove(pt(90, 110), at(time.Second+200*time.Millisecond))
			m.PointerUp(pt(90, 110), at(time.Second+250*time.Millisecond))

			polys := sink.Named("add_polygon")
			Expect(polys).To(HaveLen(1))
			Expect(polys[0].Path[0]).To(Equal(pt(100, 100)))
			Expect(polys[0].Path).To(HaveLen(4))
		})
	})

	Describe("tool modes", func() {
		DescribeTable("a press applies the tool immediately",
			func(tool input.Tool, call string) {
				m.KeyDown(tool)
				m.PointerDown(pt(42, 24), at(0))

				ops := sink.Named(call)
				Expect(ops).To(HaveLen(1))
				Expect(ops[0].Point).To(Equal(pt(42, 24)))
				Expect(m.Phase()).To(Equal(input.PhaseIdle))
			},
			Entry("eraser", input.ToolEraser, "erase_at"),
			Entry("rigid anchor", input.ToolRigid, "add_rigid"),
			Entry("hinge", input.ToolHinge, "add_hinge"),
		)

		It("ignores moves and release while a tool is held", func() {
			m.KeyDown(input.ToolEraser)
			m.PointerDown(pt(1, 1), at(0))
			m.PointerMove(pt(2, 2), at(50*time.Millisecond))
			m.PointerUp(pt(3, 3), at(100*time.Millisecond))

			Expect(sink.Calls).To(HaveLen(1))
		})

		It("restores gestures once the tool key is released", func() {
			m.KeyDown(input.ToolHinge)
			m.KeyUp(input.ToolHinge)
			m.PointerDown(pt(0, 0), at(0))

			Expect(m.Phase()).To(Equal(input.PhasePending))
			Expect(sink.Calls).To(BeEmpty())
		})

		It("keeps the later tool on key rollover", func() {
			m.KeyDown(input.ToolEraser)
			m.KeyDown(input.ToolRigid)
			m.KeyUp(input.ToolEraser)

			Expect(m.ActiveTool()).To(Equal(input.ToolRigid))

			m.PointerDown(pt(7, 7), at(0))
			Expect(sink.Named("add_rigid")).To(HaveLen(1))
		})

		It("clears the tool only when the matching key lifts", func() {
			m.KeyDown(input.ToolRigid)
			m.KeyUp(input.ToolHinge)

			Expect(m.ActiveTool()).To(Equal(input.ToolRigid))

			m.KeyUp(input.ToolRigid)
			Expect(m.ActiveTool()).To(Equal(input.ToolNone))
		})
	})

	Describe("stray events", func() {
		It("ignores moves and releases with no press in flight", func() {
			m.PointerMove(pt(1, 1), at(0))
			m.PointerUp(pt(1, 1), at(10*time.Millisecond))

			Expect(sink.Calls).To(BeEmpty())
			Expect(m.Phase()).To(Equal(input.PhaseIdle))
		})

		It("abandons the gesture in flight when a second press arrives", func() {
			m.PointerDown(pt(0, 0), at(0))
			m.PointerMove(pt(5, 0), at(50*time.Millisecond))
			m.PointerMove(pt(10, 0), at(100*time.Millisecond))
			m.PointerMove(pt(10, 10), at(150*time.Millisecond))
			m.PointerDown(pt(500, 500), at(200*time.Millisecond))

			Expect(sink.Named("add_polygon")).To(BeEmpty())
			Expect(m.Phase()).To(Equal(input.PhasePending))
		})

		It("does not fire a stale hold deadline after the gesture left pending", func() {
			m.PointerDown(pt(0, 0), at(0))
			m.PointerMove(pt(1, 1), at(100*time.Millisecond))
			m.Tick(at(500 * time.Millisecond))

			Expect(m.Phase()).To(Equal(input.PhaseTracing))

			m.PointerUp(pt(1, 1), at(600*time.Millisecond))
			Expect(sink.Named("add_circle")).To(BeEmpty())
		})
	})

	Describe("previews", func() {
		It("exposes nothing while idle or pending", func() {
			Expect(m.Preview(at(0)).Kind).To(Equal(input.PreviewNone))

			m.PointerDown(pt(0, 0), at(0))
			Expect(m.Preview(at(100 * time.Millisecond)).Kind).To(Equal(input.PreviewNone))
		})

		It("reflects the current radius while growing", func() {
			m.PointerDown(pt(60, 60), at(0))
			m.Tick(at(400 * time.Millisecond))

			pv := m.Preview(at(500 * time.Millisecond))
			Expect(pv.Kind).To(Equal(input.PreviewCircle))
			Expect(pv.Center).To(Equal(pt(60, 60)))
			Expect(pv.Radius).To(Equal(25.0))
		})

		It("exposes the path once a trace has at least two points", func() {
			m.PointerDown(pt(0, 0), at(0))
			m.PointerMove(pt(1, 0), at(50*time.Millisecond))

			Expect(m.Preview(at(60 * time.Millisecond)).Kind).To(Equal(input.PreviewNone))

			m.PointerMove(pt(2, 0), at(100*time.Millisecond))
			pv := m.Preview(at(110 * time.Millisecond))
			Expect(pv.Kind).To(Equal(input.PreviewPath))
			Expect(pv.Path).To(HaveLen(2))
		})
	})

	Describe("driving a dead engine handle", func() {
		It("swallows every commit without reaching the engine", func() {
			h := engine.NewHandle(sink)
			Expect(h.Destroy()).To(Succeed())

			hm := input.NewMachine(h)
			hm.PointerDown(pt(0, 0), at(0))
			hm.Tick(at(500 * time.Millisecond))
			hm.PointerUp(pt(0, 0), at(time.Second))

			hm.KeyDown(input.ToolEraser)
			hm.PointerDown(pt(1, 1), at(2*time.Second))

			Expect(sink.Calls).To(BeEmpty())
		})
	})
})
