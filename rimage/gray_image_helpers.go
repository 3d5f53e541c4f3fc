package rimage

import (
	"image"

	"github.com/pkg/errors"
)

// GrayFromBytes wraps a row-major, single channel buffer as an image.Gray without copying.
func GrayFromBytes(width, height int, pix []byte) (*image.Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid gray image size %dx%d", width, height)
	}
	if len(pix) != width*height {
		return nil, errors.Errorf("gray image of %dx%d needs %d bytes but got %d", width, height, width*height, len(pix))
	}
	return &image.Gray{Pix: pix, Stride: width, Rect: image.Rect(0, 0, width, height)}, nil
}

// Center returns the pixel at the integer center of the bounds.
func Center(bounds image.Rectangle) image.Point {
	return image.Pt(bounds.Min.X+bounds.Dx()/2, bounds.Min.Y+bounds.Dy()/2)
}

// FloodFill replaces the 4-connected region of pixels holding the same value as the seed
// with newVal, and returns how many pixels changed.
func FloodFill(img *image.Gray, seed image.Point, newVal uint8) (int, error) {
	bounds := img.Bounds()
	if !seed.In(bounds) {
		return 0, errors.Errorf("flood fill seed %v is outside of %v", seed, bounds)
	}
	target := img.Pix[img.PixOffset(seed.X, seed.Y)]
	if target == newVal {
		return 0, nil
	}

	filled := 0
	stack := []image.Point{seed}
	img.Pix[img.PixOffset(seed.X, seed.Y)] = newVal
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		filled++
		for _, n := range [4]image.Point{image.Pt(p.X+1, p.Y), image.Pt(p.X-1, p.Y), image.Pt(p.X, p.Y+1), image.Pt(p.X, p.Y-1)} {
			if !n.In(bounds) {
				continue
			}
			i := img.PixOffset(n.X, n.Y)
			if img.Pix[i] != target {
				continue
			}
			img.Pix[i] = newVal
			stack = append(stack, n)
		}
	}
	return filled, nil
}
