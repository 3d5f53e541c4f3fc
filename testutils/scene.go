package testutils

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"go.viam.com/objseg/rimage"
)

// Scene colours used by the segmentation tests.
var (
	Paper = color.NRGBA{R: 235, G: 232, B: 225, A: 255}
	Ink   = color.NRGBA{R: 30, G: 34, B: 52, A: 255}
)

// RectScene draws a filled rectangle of the given size, centred on a width x height canvas.
func RectScene(width, height, rectWidth, rectHeight int, fg, bg color.Color) image.Image {
	return RotatedRectScene(width, height, rectWidth, rectHeight, 0, fg, bg)
}

// RotatedRectScene is RectScene with the rectangle turned by angle degrees about the centre.
func RotatedRectScene(width, height, rectWidth, rectHeight int, angle float64, fg, bg color.Color) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()

	cx, cy := float64(width/2), float64(height/2)
	dc.RotateAbout(gg.Radians(angle), cx, cy)
	dc.DrawRectangle(cx-float64(rectWidth)/2, cy-float64(rectHeight)/2, float64(rectWidth), float64(rectHeight))
	dc.SetColor(fg)
	dc.Fill()
	return dc.Image()
}

// EllipseScene draws a filled ellipse centred on the canvas.
func EllipseScene(width, height int, rx, ry float64, fg, bg color.Color) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	dc.DrawEllipse(float64(width/2), float64(height/2), rx, ry)
	dc.SetColor(fg)
	dc.Fill()
	return dc.Image()
}

// BlankScene is a canvas filled with a single colour.
func BlankScene(width, height int, c color.Color) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetColor(c)
	dc.Clear()
	return dc.Image()
}

// FrameScene draws the outline of a centred rectangle, leaving its middle the background colour.
func FrameScene(width, height, rectWidth, rectHeight int, lineWidth float64, fg, bg color.Color) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	r := image.Rect(0, 0, rectWidth, rectHeight).Add(image.Pt((width-rectWidth)/2, (height-rectHeight)/2))
	rimage.DrawRectangleEmpty(dc, r, fg, lineWidth)
	return dc.Image()
}
