package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats/scalar"

	"go.viam.com/objseg/utils"
)

const angleEpsilon = 1e-6

// RotatedBox is a rectangle at an arbitrary orientation. Angle is in degrees in [0, 90)
// and gives the direction of the Width side; Height is measured perpendicular to it.
type RotatedBox struct {
	Center r2.Point
	Width  float64
	Height float64
	Angle  float64
}

// NewRotatedBox returns the box with its angle folded into [0, 90). A quarter turn swaps
// Width and Height so the same rectangle always gets the same description.
func NewRotatedBox(center r2.Point, width, height, angle float64) RotatedBox {
	angle = utils.ModAngDeg(angle, 180)
	if scalar.EqualWithinAbs(angle, 180, angleEpsilon) {
		angle = 0
	}
	if angle > 90-angleEpsilon {
		angle -= 90
		width, height = height, width
	}
	if scalar.EqualWithinAbs(angle, 0, angleEpsilon) {
		angle = 0
	}
	return RotatedBox{Center: center, Width: width, Height: height, Angle: angle}
}

// Area returns Width * Height.
func (rb RotatedBox) Area() float64 {
	return rb.Width * rb.Height
}

// Corners returns the four vertices of the box, walking around it.
func (rb RotatedBox) Corners() [4]r2.Point {
	theta := utils.DegToRad(rb.Angle)
	u := r2.Point{X: math.Cos(theta), Y: math.Sin(theta)}
	a := u.Mul(rb.Width / 2)
	b := u.Ortho().Mul(rb.Height / 2)
	return [4]r2.Point{
		rb.Center.Sub(a).Sub(b),
		rb.Center.Add(a).Sub(b),
		rb.Center.Add(a).Add(b),
		rb.Center.Sub(a).Add(b),
	}
}

func (rb RotatedBox) String() string {
	return fmt.Sprintf("%.2fx%.2f@%.2f° around (%.2f, %.2f)", rb.Width, rb.Height, rb.Angle, rb.Center.X, rb.Center.Y)
}

// Fits reports whether inner can be placed inside outer, allowing rotation.
func Fits(inner, outer RotatedBox) bool {
	w1, h1 := math.Max(inner.Width, inner.Height), math.Min(inner.Width, inner.Height)
	w2, h2 := math.Max(outer.Width, outer.Height), math.Min(outer.Width, outer.Height)
	if w1 <= w2 && h1 <= h2 {
		return true
	}
	if w1 <= w2 {
		return false
	}
	d2 := w1*w1 + h1*h1
	if d2 < w2*w2 {
		return false
	}
	return h2 >= (2*w1*h1*w2+(w1*w1-h1*h1)*math.Sqrt(d2-w2*w2))/d2
}
