package rimage

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// DrawRectangleEmpty strokes the outline of r into the context with the given line width.
func DrawRectangleEmpty(dc *gg.Context, r image.Rectangle, c color.Color, width float64) {
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	dc.Stroke()
}
