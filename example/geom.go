//go:build example
// +build example

package main

import (
	"math"
)

type point struct {
	X float64
	Y float64
}

// interpolate returns (b*x+a*y)/(a+b), or (x+y)/2 if a==b==0. Negative
// weights are clamped to 0. The result always lies between x and y.
func interpolate(a, x, b, y float64) float64 {
	if a < 0 {
		a = 0
	}
	if b < 0 {
		b = 0
	}
	if a <= b {
		if b == 0 {
			return (x + y) / 2
		}
		return x + (y-x)*(a/(a+b))
	}
	return y + (x-y)*(b/(a+b))
}

// lerp returns the point at t along the segment u-v.
func lerp(u, v point, t float64) point {
	return point{
		X: interpolate(t, u.X, 1-t, v.X),
		Y: interpolate(t, u.Y, 1-t, v.Y),
	}
}

type rect struct {
	min point
	max point
}

func bounds(ps []point) rect {
	r := rect{
		min: point{math.Inf(1), math.Inf(1)},
		max: point{math.Inf(-1), math.Inf(-1)},
	}
	for _, p := range ps {
		r.min.X = math.Min(r.min.X, p.X)
		r.min.Y = math.Min(r.min.Y, p.Y)
		r.max.X = math.Max(r.max.X, p.X)
		r.max.Y = math.Max(r.max.Y, p.Y)
	}
	return r
}

// fit maps p from r into a width x height screen, keeping the aspect ratio
// and leaving margin pixels on each side.
func fit(p point, r rect, width, height, margin float64) point {
	w := r.max.X - r.min.X
	h := r.max.Y - r.min.Y
	if w == 0 && h == 0 {
		return point{width / 2, height / 2}
	}
	size := math.Max(w, h)
	scale := math.Min((width-2*margin)/size, (height-2*margin)/size)
	return point{
		X: margin + (p.X-r.min.X)*scale,
		Y: margin + (p.Y-r.min.Y)*scale,
	}
}
