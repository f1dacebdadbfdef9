//go:build example
// +build example

package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"

	"github.com/hajimehoshi/go-wedge"
)

const (
	screenWidth  = 320
	screenHeight = 240
	rimSize      = 8
)

type fan = wedge.Mesh[point, string, int]

// newFan builds a center vertex surrounded by a closed rim, with a spoke from
// the center to every rim vertex and a triangle face after each spoke.
func newFan() (*fan, error) {
	m := wedge.New[point, string, int]()
	center := m.AddVertex(point{0, 0})

	rim := make([]wedge.Index, rimSize)
	names := make([]string, rimSize)
	for i := range rim {
		a := 2 * math.Pi * float64(i) / rimSize
		rim[i] = m.AddVertex(point{math.Cos(a), math.Sin(a)})
		names[i] = fmt.Sprintf("rim %d", i)
	}
	if _, err := m.AddLoop(names, rim...); err != nil {
		return nil, err
	}
	for i, v := range rim {
		e, err := m.AddEdge(fmt.Sprintf("spoke %d", i), center, v)
		if err != nil {
			return nil, err
		}
		f, err := m.AddFace(i, e)
		if err != nil {
			return nil, err
		}
		if err := m.LinkFace(e, center, f); err != nil {
			return nil, err
		}
	}
	if err := m.Check(); err != nil {
		return nil, err
	}
	return m, nil
}

type viewer struct {
	mesh     *fan
	screen   map[wedge.Index]point
	selected wedge.Index
	frames   int
}

func newViewer(m *fan) *viewer {
	var ps []point
	for v := range m.Vertices() {
		p, _ := v.Data()
		ps = append(ps, p)
	}
	r := bounds(ps)

	screen := map[wedge.Index]point{}
	for v := range m.Vertices() {
		p, _ := v.Data()
		screen[v.Index()] = fit(p, r, screenWidth, screenHeight, 24)
	}
	return &viewer{
		mesh:   m,
		screen: screen,
	}
}

func (v *viewer) update(screen *ebiten.Image) error {
	v.frames++
	if v.frames%60 == 0 {
		v.selected = wedge.Index((int(v.selected) + 1) % v.mesh.NumVertices())
	}
	if ebiten.IsDrawingSkipped() {
		return nil
	}

	gray := color.RGBA{0x80, 0x80, 0x80, 0xff}
	red := color.RGBA{0xff, 0x40, 0x40, 0xff}

	for e := range v.mesh.Edges() {
		a, b, _ := e.Endpoints()
		v.drawEdge(screen, a.Index(), b.Index(), gray)
	}

	sel := v.mesh.Vertex(v.selected)
	ring := 0
	for e := range sel.Edges() {
		other, _ := e.Other(v.selected)
		v.drawEdge(screen, v.selected, other.Index(), red)

		// mark where the walk is heading
		mid := lerp(v.screen[v.selected], v.screen[other.Index()], 0.25)
		ebitenutil.DrawRect(screen, mid.X-1, mid.Y-1, 3, 3, red)
		ring++
	}
	faces := 0
	for range sel.Faces() {
		faces++
	}

	msg := fmt.Sprintf("vertex %d: %d edges, %d faces", v.selected, ring, faces)
	ebitenutil.DebugPrint(screen, msg)
	return nil
}

func (v *viewer) drawEdge(screen *ebiten.Image, a, b wedge.Index, clr color.Color) {
	p, q := v.screen[a], v.screen[b]
	ebitenutil.DrawLine(screen, p.X, p.Y, q.X, q.Y, clr)
}

func main() {
	m, err := newFan()
	if err != nil {
		panic(err)
	}
	v := newViewer(m)
	if err := ebiten.Run(v.update, screenWidth, screenHeight, 2, "go-wedge"); err != nil {
		panic(err)
	}
}
