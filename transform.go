// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package exodus

import (
	"github.com/exodus-go/exodus/internal/xform"
	"gonum.org/v1/gonum/mat"
)

// Translate shifts every node's coordinates by t (spec §4.8). Runs to
// completion or leaves the coordinate arrays untouched: the new values are
// staged in a buffer and swapped in only once every axis read succeeds.
func (f *File) Translate(t [3]float64) error {
	return f.applyPointTransform(nil, t)
}

// RotateX, RotateY, RotateZ rotate every node's coordinates about the
// named axis by theta. degrees selects the angle's unit.
func (f *File) RotateX(theta float64, degrees bool) error {
	return f.ApplyRotation(xform.RotationX(toRadians(theta, degrees)))
}

func (f *File) RotateY(theta float64, degrees bool) error {
	return f.ApplyRotation(xform.RotationY(toRadians(theta, degrees)))
}

func (f *File) RotateZ(theta float64, degrees bool) error {
	return f.ApplyRotation(xform.RotationZ(toRadians(theta, degrees)))
}

// RotateEuler composes a sequence of elementary rotations and applies the
// result to the nodal coordinates (spec §4.8). seq is 1-3 characters over
// {X,Y,Z,x,y,z}; uppercase is extrinsic, lowercase intrinsic.
func (f *File) RotateEuler(seq string, angles []float64, degrees bool) error {
	r, err := xform.Compose(seq, angles, degrees)
	if err != nil {
		return &Error{Kind: KindInvalidTopology, Message: err.Error()}
	}
	return f.ApplyRotation(r)
}

// ScaleUniform scales every node's coordinates by a single factor.
func (f *File) ScaleUniform(s float64) error {
	return f.Scale([3]float64{s, s, s})
}

// Scale scales each coordinate axis independently.
func (f *File) Scale(s [3]float64) error {
	r := mat.NewDense(3, 3, []float64{
		s[0], 0, 0,
		0, s[1], 0,
		0, 0, s[2],
	})
	return f.ApplyRotation(r)
}

// ApplyRotation is the generic hook from spec §4.8: applies an arbitrary
// 3×3 matrix to every node's coordinates, staged atomically.
func (f *File) ApplyRotation(r *mat.Dense) error {
	return f.applyPointTransform(r, [3]float64{})
}

// applyPointTransform stages x,y,z into one flat buffer, rotates/
// translates it, and writes all three axes back only if every read and the
// transform itself succeeded: an all-or-nothing swap rather than an
// in-place per-axis mutation that could leave a partial rotation on error.
func (f *File) applyPointTransform(r *mat.Dense, t [3]float64) error {
	p, err := f.requireInit()
	if err != nil {
		return err
	}
	x, y, z, err := f.GetCoords()
	if err != nil {
		return err
	}
	buf := make([]float64, p.NumNodes*3)
	for i := 0; i < p.NumNodes; i++ {
		buf[3*i] = x[i]
		buf[3*i+1] = y[i]
		if p.NumDim == 3 {
			buf[3*i+2] = z[i]
		}
	}
	xform.ApplyToPoints(r, t, buf)
	nx := make([]float64, p.NumNodes)
	ny := make([]float64, p.NumNodes)
	nz := make([]float64, p.NumNodes)
	for i := 0; i < p.NumNodes; i++ {
		nx[i] = buf[3*i]
		ny[i] = buf[3*i+1]
		nz[i] = buf[3*i+2]
	}
	switch p.NumDim {
	case 1:
		return f.PutCoords(nx, nil, nil)
	case 2:
		return f.PutCoords(nx, ny, nil)
	default:
		return f.PutCoords(nx, ny, nz)
	}
}

func toRadians(theta float64, degrees bool) float64 {
	if !degrees {
		return theta
	}
	return theta * 3.141592653589793 / 180
}

// TransformVectorField rotates an in-memory vector field (3 parallel
// components the caller has already read via Var/VarMulti) in place (spec
// §4.8). The caller writes the result back with PutVar.
func TransformVectorField(r *mat.Dense, vx, vy, vz []float64) {
	n := len(vx)
	buf := make([]float64, n*3)
	for i := 0; i < n; i++ {
		buf[3*i], buf[3*i+1], buf[3*i+2] = vx[i], vy[i], vz[i]
	}
	xform.ApplyToVectors(r, buf)
	for i := 0; i < n; i++ {
		vx[i], vy[i], vz[i] = buf[3*i], buf[3*i+1], buf[3*i+2]
	}
}

// TransformSymmetricTensorField rotates an in-memory symmetric-tensor field
// given as six parallel Voigt-order components (XX,YY,ZZ,XY,YZ,XZ), one
// time step at a time so peak memory stays O(num_entities×6) (spec §4.8).
func TransformSymmetricTensorField(r *mat.Dense, xx, yy, zz, xy, yz, xz []float64) {
	n := len(xx)
	buf := make([]float64, n*6)
	for i := 0; i < n; i++ {
		buf[6*i] = xx[i]
		buf[6*i+1] = yy[i]
		buf[6*i+2] = zz[i]
		buf[6*i+3] = xy[i]
		buf[6*i+4] = yz[i]
		buf[6*i+5] = xz[i]
	}
	xform.ApplyToSymmetricTensors(r, buf)
	for i := 0; i < n; i++ {
		xx[i] = buf[6*i]
		yy[i] = buf[6*i+1]
		zz[i] = buf[6*i+2]
		xy[i] = buf[6*i+3]
		yz[i] = buf[6*i+4]
		xz[i] = buf[6*i+5]
	}
}
