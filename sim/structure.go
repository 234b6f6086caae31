// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/emer/emergent/v2/erand"
	"github.com/emer/hmf"
	"github.com/goki/mat32"
)

// FillOrder says how generated positions are assigned to cells.
type FillOrder int

const (
	// Sequential assigns positions in generation order.
	Sequential FillOrder = iota

	// RandomFill assigns positions in a random permutation.
	RandomFill
)

func (fo FillOrder) String() string {
	if fo == RandomFill {
		return "random"
	}
	return "sequential"
}

// Structure generates the spatial positions of the cells of a population.
type Structure interface {
	fmt.Stringer

	// Positions returns one position per cell, for n cells.
	Positions(n int, rnd erand.Rand) ([]mat32.Vec3, error)
}

// fill applies a fill order to generated positions.
func fill(ps []mat32.Vec3, fo FillOrder, rnd erand.Rand) []mat32.Vec3 {
	if fo != RandomFill {
		return ps
	}
	ord := make([]int, len(ps))
	for i := range ord {
		ord[i] = i
	}
	erand.PermuteInts(ord, randOpt(rnd)...)
	out := make([]mat32.Vec3, len(ps))
	for i, o := range ord {
		out[i] = ps[o]
	}
	return out
}

// Line places cells along the x axis, Dx apart starting at X0.
type Line struct {
	Dx   float32   `def:"1" desc:"distance between neighboring cells"`
	X0   float32   `desc:"x position of the first cell"`
	Y    float32   `desc:"y position of all cells"`
	Z    float32   `desc:"z position of all cells"`
	Fill FillOrder `desc:"how positions are assigned to cells"`
}

// NewLine returns the default Line.
func NewLine() *Line {
	return &Line{Dx: 1}
}

func (st *Line) Positions(n int, rnd erand.Rand) ([]mat32.Vec3, error) {
	ps := make([]mat32.Vec3, n)
	for i := range ps {
		ps[i] = mat32.Vec3{X: st.X0 + st.Dx*float32(i), Y: st.Y, Z: st.Z}
	}
	return fill(ps, st.Fill, rnd), nil
}

func (st *Line) String() string {
	return fmt.Sprintf("Line(dx=%g, x0=%g, y=%g, z=%g, fill_order=%s)", st.Dx, st.X0, st.Y, st.Z, st.Fill)
}

// Grid2D places cells on a regular grid in the xy plane.  The number of
// columns is sqrt(n * AspectRatio), which must divide n.  Cells fill the
// grid along y first.
type Grid2D struct {
	AspectRatio float64   `def:"1" desc:"ratio of the number of cells along x to the number along y"`
	Dx          float32   `def:"1"`
	Dy          float32   `def:"1"`
	X0          float32   `desc:"x position of the first cell"`
	Y0          float32   `desc:"y position of the first cell"`
	Z           float32   `desc:"z position of all cells"`
	Fill        FillOrder `desc:"how positions are assigned to cells"`
}

// NewGrid2D returns a Grid2D with unit spacing.
func NewGrid2D(aspectRatio float64) *Grid2D {
	return &Grid2D{AspectRatio: aspectRatio, Dx: 1, Dy: 1}
}

// Dims returns the number of cells along x and y for n cells.
func (st *Grid2D) Dims(n int) (nx, ny int, err error) {
	fx := math.Sqrt(float64(n) * st.AspectRatio)
	nx = int(math.Round(fx))
	if nx <= 0 || math.Abs(fx-float64(nx)) > 1e-9 || n%nx != 0 {
		return 0, 0, hmf.NewInvalidParameter("size", n, fmt.Sprintf("does not fit a 2D grid with aspect ratio %g", st.AspectRatio), nil)
	}
	return nx, n / nx, nil
}

func (st *Grid2D) Positions(n int, rnd erand.Rand) ([]mat32.Vec3, error) {
	nx, ny, err := st.Dims(n)
	if err != nil {
		return nil, err
	}
	ps := make([]mat32.Vec3, 0, n)
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			ps = append(ps, mat32.Vec3{X: st.X0 + st.Dx*float32(x), Y: st.Y0 + st.Dy*float32(y), Z: st.Z})
		}
	}
	return fill(ps, st.Fill, rnd), nil
}

func (st *Grid2D) String() string {
	return fmt.Sprintf("Grid2D(aspect_ratio=%g, dx=%g, dy=%g, x0=%g, y0=%g, z=%g, fill_order=%s)", st.AspectRatio, st.Dx, st.Dy, st.X0, st.Y0, st.Z, st.Fill)
}

// Grid3D places cells on a regular 3D grid.  With AspectRatioXY = nx/ny and
// AspectRatioXZ = nx/nz, nx is the cube root of n * XY * XZ.
// Cells fill along z, then y, then x.
type Grid3D struct {
	AspectRatioXY float64 `def:"1"`
	AspectRatioXZ float64 `def:"1"`
	Dx            float32 `def:"1"`
	Dy            float32 `def:"1"`
	Dz            float32 `def:"1"`
	X0            float32
	Y0            float32
	Z0            float32
	Fill          FillOrder
}

// NewGrid3D returns a Grid3D with unit spacing.
func NewGrid3D(aspectXY, aspectXZ float64) *Grid3D {
	return &Grid3D{AspectRatioXY: aspectXY, AspectRatioXZ: aspectXZ, Dx: 1, Dy: 1, Dz: 1}
}

// Dims returns the number of cells along each axis for n cells.
func (st *Grid3D) Dims(n int) (nx, ny, nz int, err error) {
	fx := math.Cbrt(float64(n) * st.AspectRatioXY * st.AspectRatioXZ)
	nx = int(math.Round(fx))
	bad := hmf.NewInvalidParameter("size", n, fmt.Sprintf("does not fit a 3D grid with aspect ratios %g, %g", st.AspectRatioXY, st.AspectRatioXZ), nil)
	if nx <= 0 || math.Abs(fx-float64(nx)) > 1e-6 {
		return 0, 0, 0, bad
	}
	ny = int(math.Round(float64(nx) / st.AspectRatioXY))
	nz = int(math.Round(float64(nx) / st.AspectRatioXZ))
	if nx*ny*nz != n {
		return 0, 0, 0, bad
	}
	return nx, ny, nz, nil
}

func (st *Grid3D) Positions(n int, rnd erand.Rand) ([]mat32.Vec3, error) {
	nx, ny, nz, err := st.Dims(n)
	if err != nil {
		return nil, err
	}
	ps := make([]mat32.Vec3, 0, n)
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				ps = append(ps, mat32.Vec3{X: st.X0 + st.Dx*float32(x), Y: st.Y0 + st.Dy*float32(y), Z: st.Z0 + st.Dz*float32(z)})
			}
		}
	}
	return fill(ps, st.Fill, rnd), nil
}

func (st *Grid3D) String() string {
	return fmt.Sprintf("Grid3D(aspect_ratios=(%g, %g), dx=%g, dy=%g, dz=%g, fill_order=%s)", st.AspectRatioXY, st.AspectRatioXZ, st.Dx, st.Dy, st.Dz, st.Fill)
}

// Shape is a volume that positions can be sampled from, centered on the origin.
type Shape interface {
	fmt.Stringer

	// Sample returns n positions uniformly distributed within the shape.
	Sample(n int, rnd erand.Rand) ([]mat32.Vec3, error)
}

// Cuboid is a box of the given width (x), height (y) and depth (z).
type Cuboid struct {
	Width  float32
	Height float32
	Depth  float32
}

func (sh *Cuboid) Sample(n int, rnd erand.Rand) ([]mat32.Vec3, error) {
	for _, d := range []float32{sh.Width, sh.Height, sh.Depth} {
		if !(d >= 0) {
			return nil, hmf.NewInvalidParameter("cuboid", sh.String(), "dimensions must not be negative", nil)
		}
	}
	ps := make([]mat32.Vec3, n)
	for i := range ps {
		ps[i] = mat32.Vec3{
			X: uniform(0.5*float64(sh.Width), rnd),
			Y: uniform(0.5*float64(sh.Height), rnd),
			Z: uniform(0.5*float64(sh.Depth), rnd),
		}
	}
	return ps, nil
}

func (sh *Cuboid) String() string {
	return fmt.Sprintf("Cuboid(width=%g, height=%g, depth=%g)", sh.Width, sh.Height, sh.Depth)
}

// uniform draws from [-half, half].
func uniform(half float64, rnd erand.Rand) float32 {
	rp := erand.RndParams{Dist: erand.Uniform, Var: half}
	return float32(rp.Gen(-1, randOpt(rnd)...))
}

// Sphere is a ball of the given radius.
type Sphere struct {
	Radius float32
}

// Sample draws from the enclosing cube and rejects points outside the ball.
// A negative or NaN radius would never accept a point and is an error.
func (sh *Sphere) Sample(n int, rnd erand.Rand) ([]mat32.Vec3, error) {
	if !(sh.Radius >= 0) {
		return nil, hmf.NewInvalidParameter("radius", sh.Radius, "must not be negative", nil)
	}
	ps := make([]mat32.Vec3, 0, n)
	r := float64(sh.Radius)
	for len(ps) < n {
		p := mat32.Vec3{
			X: uniform(r, rnd),
			Y: uniform(r, rnd),
			Z: uniform(r, rnd),
		}
		if p.Length() <= sh.Radius {
			ps = append(ps, p)
		}
	}
	return ps, nil
}

func (sh *Sphere) String() string {
	return fmt.Sprintf("Sphere(radius=%g)", sh.Radius)
}

// RandomStructure places cells at random positions within a Shape.
type RandomStructure struct {
	Boundary Shape
	Origin   mat32.Vec3
}

func (st *RandomStructure) Positions(n int, rnd erand.Rand) ([]mat32.Vec3, error) {
	if st.Boundary == nil {
		return nil, hmf.NewInvalidParameter("boundary", nil, "random structure needs a boundary shape", nil)
	}
	ps, err := st.Boundary.Sample(n, rnd)
	if err != nil {
		return nil, err
	}
	for i := range ps {
		ps[i] = ps[i].Add(st.Origin)
	}
	return ps, nil
}

func (st *RandomStructure) String() string {
	return fmt.Sprintf("RandomStructure(boundary=%v, origin=%v)", st.Boundary, st.Origin)
}

// Space computes distances between cell positions, optionally along a
// subset of axes, scaled, offset and with periodic boundaries.
type Space struct {
	Axes        string     `def:"xyz" desc:"axes used for distances, any of x, y, z"`
	ScaleFactor float32    `def:"1" desc:"distances are multiplied by this factor"`
	Offset      float32    `desc:"added to every distance"`
	Periodic    mat32.Vec3 `desc:"period along each axis, 0 for none"`
}

// NewSpace returns a Space using all three axes.
func NewSpace() *Space {
	return &Space{Axes: "xyz", ScaleFactor: 1}
}

// Distance returns the scaled distance between a and b.
func (sp *Space) Distance(a, b mat32.Vec3) float32 {
	d := a.Sub(b)
	comp := [3]*float32{&d.X, &d.Y, &d.Z}
	per := [3]float32{sp.Periodic.X, sp.Periodic.Y, sp.Periodic.Z}
	use := [3]bool{}
	for _, c := range sp.Axes {
		switch c {
		case 'x':
			use[0] = true
		case 'y':
			use[1] = true
		case 'z':
			use[2] = true
		}
	}
	var sum float32
	for i, p := range comp {
		if !use[i] {
			continue
		}
		v := math32.Abs(*p)
		if per[i] > 0 {
			v = math32.Mod(v, per[i])
			v = math32.Min(v, per[i]-v)
		}
		sum += v * v
	}
	return sp.ScaleFactor*math32.Sqrt(sum) + sp.Offset
}

// Distances returns the matrix of distances, one row per a, one column per b.
func (sp *Space) Distances(as, bs []mat32.Vec3) [][]float32 {
	ds := make([][]float32, len(as))
	for i, a := range as {
		ds[i] = make([]float32, len(bs))
		for j, b := range bs {
			ds[i][j] = sp.Distance(a, b)
		}
	}
	return ds
}
