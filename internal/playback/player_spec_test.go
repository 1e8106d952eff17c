package playback_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/trace"
)

var _ = Describe("Player", func() {
	var (
		base []int
		seq  trace.Sequence
		p    *playback.Player
	)

	BeforeEach(func() {
		base = []int{5, 3, 1}
		seq = trace.BubbleSort(base)
		p = playback.NewPlayer(seq, 10)
	})

	It("starts idle on the unsorted array", func() {
		Expect(p.State()).To(Equal(playback.Idle))
		Expect(p.Index()).To(Equal(-1))
		Expect(p.Playing()).To(BeFalse())
		Expect(p.View(base).Array).To(Equal([]int{5, 3, 1}))
	})

	Describe("Play", func() {
		It("is a no-op while already playing", func() {
			Expect(p.Play()).To(BeTrue())
			gen := p.Generation()
			Expect(p.Play()).To(BeFalse())
			Expect(p.Generation()).To(Equal(gen))
		})

		It("rewinds from Finished before playing again", func() {
			p.Seek(seq.Len() - 1)
			Expect(p.State()).To(Equal(playback.Finished))

			Expect(p.Play()).To(BeTrue())
			Expect(p.Index()).To(Equal(-1))
			Expect(p.State()).To(Equal(playback.Idle))
			Expect(p.Playing()).To(BeTrue())
		})
	})

	Describe("Tick", func() {
		It("advances one step per tick while playing", func() {
			p.Play()
			Expect(p.Tick(p.Generation())).To(BeTrue())
			Expect(p.Index()).To(Equal(0))
			Expect(p.State()).To(Equal(playback.Stepping))
		})

		It("does nothing while paused", func() {
			Expect(p.Tick(p.Generation())).To(BeFalse())
			Expect(p.Index()).To(Equal(-1))
		})

		It("stops playing on the last step", func() {
			p.Play()
			for p.Playing() {
				p.Tick(p.Generation())
			}
			Expect(p.Index()).To(Equal(seq.Len() - 1))
			Expect(p.State()).To(Equal(playback.Finished))
			Expect(p.View(base).Array).To(Equal([]int{1, 3, 5}))
			Expect(p.Tick(p.Generation())).To(BeFalse())
		})

		It("ignores a tick scheduled before a reset", func() {
			p.Play()
			stale := p.Generation()
			p.Tick(stale)

			p.Reset(trace.QuickSort([]int{9, 8, 7, 6}))
			p.Play()

			Expect(p.Tick(stale)).To(BeFalse())
			Expect(p.Index()).To(Equal(-1))
		})

		It("ignores a tick scheduled before a pause and resume", func() {
			p.Play()
			stale := p.Generation()
			p.Pause()
			p.Play()

			Expect(p.Tick(stale)).To(BeFalse())
			Expect(p.Tick(p.Generation())).To(BeTrue())
			Expect(p.Index()).To(Equal(0))
		})
	})

	Describe("Pause", func() {
		It("keeps the index", func() {
			p.Play()
			p.Tick(p.Generation())
			p.Tick(p.Generation())
			p.Pause()
			Expect(p.Playing()).To(BeFalse())
			Expect(p.Index()).To(Equal(1))
		})
	})

	Describe("manual stepping", func() {
		It("clamps to the first step going backward", func() {
			p.StepBackward()
			Expect(p.Index()).To(Equal(0))
			p.StepBackward()
			Expect(p.Index()).To(Equal(0))
		})

		It("clamps to the last step going forward", func() {
			for i := 0; i < seq.Len()+5; i++ {
				p.StepForward()
			}
			Expect(p.Index()).To(Equal(seq.Len() - 1))
		})

		It("leaves the playing flag alone mid-sequence", func() {
			p.Play()
			p.StepForward()
			Expect(p.Playing()).To(BeTrue())
			Expect(p.Index()).To(Equal(0))
		})
	})

	Describe("Reset", func() {
		It("returns to idle and stops playback", func() {
			p.Play()
			p.Tick(p.Generation())

			next := trace.QuickSort([]int{2, 1})
			p.Reset(next)

			Expect(p.Index()).To(Equal(-1))
			Expect(p.Playing()).To(BeFalse())
			Expect(p.Len()).To(Equal(next.Len()))
		})
	})
})
