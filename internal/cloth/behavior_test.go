package cloth_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tombanker/clothsim/internal/cloth"
)

func TestClothSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cloth Suite")
}

const dt = cloth.DefaultTimestep

func step(c *cloth.Cloth, n int) {
	for i := 0; i < n; i++ {
		Expect(c.Update(dt)).To(Succeed())
	}
}

func meanY(c *cloth.Cloth) float64 {
	sum := 0.0
	for _, p := range c.Particles() {
		sum += p.Position.Y()
	}
	return sum / float64(len(c.Particles()))
}

var _ = Describe("Cloth", func() {
	var c *cloth.Cloth

	BeforeEach(func() {
		var err error
		c, err = cloth.New(6, 6, 0.1)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("hanging under gravity", func() {
		It("sags below its initial pose", func() {
			before := meanY(c)
			step(c, 120)
			Expect(meanY(c)).To(BeNumerically("<", before))
		})

		It("keeps the pinned corners exactly in place", func() {
			left := c.At(0, 0).Position
			right := c.At(0, c.Cols()-1).Position
			step(c, 120)
			Expect(c.At(0, 0).Position).To(Equal(left))
			Expect(c.At(0, c.Cols()-1).Position).To(Equal(right))
		})

		It("keeps every spring inside the stretch band while settling", func() {
			step(c, 300)
			// The fixed 15-pass budget leaves a small residual after the
			// final sweep; allow 2% on top of the band.
			Expect(c.MaxStretchRatio()).To(BeNumerically("<=", c.Params.MaxStretch+0.02))
		})
	})

	Describe("wind", func() {
		It("pushes the sheet out of its plane", func() {
			c.Params.WindEnabled = true
			c.Params.WindStrength = 5
			c.Params.WindDirection = mgl64.Vec3{0, 0, 1}

			step(c, 60)

			moved := false
			for _, p := range c.Particles() {
				if p.Position.Z() != 0 {
					moved = true
					break
				}
			}
			Expect(moved).To(BeTrue())
		})

		It("leaves a disabled-wind sheet in its plane", func() {
			step(c, 60)
			for _, p := range c.Particles() {
				Expect(p.Position.Z()).To(BeZero())
			}
		})
	})

	Describe("spring network", func() {
		It("is immutable across updates", func() {
			before := append([]cloth.Spring(nil), c.Springs()...)
			step(c, 60)
			Expect(c.Springs()).To(Equal(before))
		})
	})

	Describe("unpinned free fall", func() {
		It("drops the whole sheet together", func() {
			c.UnpinAll()
			before := meanY(c)
			step(c, 60)
			// After a second of free fall the sheet is several meters down.
			Expect(meanY(c)).To(BeNumerically("<", before-1.0))
		})
	})

	Describe("sphere collision after settling", func() {
		It("leaves no particle inside the sphere", func() {
			center := mgl64.Vec3{0, 0.2, 0}
			radius := 0.15
			for i := 0; i < 200; i++ {
				Expect(c.Update(dt)).To(Succeed())
				c.CollideSphere(center, radius)
			}
			for _, p := range c.Particles() {
				Expect(p.Position.Sub(center).Len()).To(BeNumerically(">=", radius))
			}
		})
	})
})
