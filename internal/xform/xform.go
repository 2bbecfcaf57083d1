// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package xform builds the 3×3 rotation matrices and applies them to
// coordinate and field buffers (spec §4.8). Matrix algebra is done with
// gonum.org/v1/gonum/mat rather than hand-rolled 3×3 arithmetic, the same
// module the example pack already depends on for graph/numeric work.
package xform

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Identity returns the 3×3 identity matrix.
func Identity() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

// RotationX, RotationY, RotationZ return the elementary right-handed
// rotation matrix for an angle in radians about the named axis.
func RotationX(theta float64) *mat.Dense {
	s, c := math.Sin(theta), math.Cos(theta)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	})
}

func RotationY(theta float64) *mat.Dense {
	s, c := math.Sin(theta), math.Cos(theta)
	return mat.NewDense(3, 3, []float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	})
}

func RotationZ(theta float64) *mat.Dense {
	s, c := math.Sin(theta), math.Cos(theta)
	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

func elementary(axis byte, theta float64) (*mat.Dense, bool) {
	switch axis {
	case 'x', 'X':
		return RotationX(theta), true
	case 'y', 'Y':
		return RotationY(theta), true
	case 'z', 'Z':
		return RotationZ(theta), true
	default:
		return nil, false
	}
}

// Compose builds the composite rotation matrix for an Euler sequence (spec
// §4.8): seq is a 1–3 character string over {X,Y,Z,x,y,z}. Uppercase axes
// are extrinsic (pre-multiplied, left to right as given); lowercase axes
// are intrinsic (post-multiplied, so the last intrinsic rotation ends up
// applied first in matrix order). angles is in the same units flagged by
// degrees; angles[i] pairs with seq[i].
func Compose(seq string, angles []float64, degrees bool) (*mat.Dense, error) {
	if len(seq) != len(angles) {
		return nil, errLenMismatch()
	}
	r := Identity()
	for i := 0; i < len(seq); i++ {
		theta := angles[i]
		if degrees {
			theta = theta * math.Pi / 180
		}
		elem, ok := elementary(seq[i], theta)
		if !ok {
			return nil, errBadAxis(seq[i])
		}
		next := mat.NewDense(3, 3, nil)
		if isUpper(seq[i]) {
			// Extrinsic: pre-multiply, elem applied before the
			// accumulated rotation.
			next.Mul(elem, r)
		} else {
			// Intrinsic: post-multiply, elem applied in the
			// rotated (moving) frame established so far.
			next.Mul(r, elem)
		}
		r = next
	}
	return r, nil
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

// ApplyToPoints rotates and translates a flat [x0,y0,z0,x1,y1,z1,...] buffer
// in place: p' = R*p + t. r may be nil to skip the rotation; a zero t
// leaves the points untranslated.
func ApplyToPoints(r *mat.Dense, t [3]float64, points []float64) {
	n := len(points) / 3
	p := mat.NewVecDense(3, nil)
	out := mat.NewVecDense(3, nil)
	for i := 0; i < n; i++ {
		x, y, z := points[3*i], points[3*i+1], points[3*i+2]
		if r != nil {
			p.SetVec(0, x)
			p.SetVec(1, y)
			p.SetVec(2, z)
			out.MulVec(r, p)
			x, y, z = out.AtVec(0), out.AtVec(1), out.AtVec(2)
		}
		points[3*i] = x + t[0]
		points[3*i+1] = y + t[1]
		points[3*i+2] = z + t[2]
	}
}

// ApplyToVectors rotates a flat [vx0,vy0,vz0,vx1,...] field buffer in
// place, one 3-vector per entity: v' = R v (spec §4.8).
func ApplyToVectors(r *mat.Dense, vectors []float64) {
	n := len(vectors) / 3
	v := mat.NewVecDense(3, nil)
	out := mat.NewVecDense(3, nil)
	for i := 0; i < n; i++ {
		v.SetVec(0, vectors[3*i])
		v.SetVec(1, vectors[3*i+1])
		v.SetVec(2, vectors[3*i+2])
		out.MulVec(r, v)
		vectors[3*i] = out.AtVec(0)
		vectors[3*i+1] = out.AtVec(1)
		vectors[3*i+2] = out.AtVec(2)
	}
}

// voigtIndex maps the Voigt order XX,YY,ZZ,XY,YZ,XZ onto the symmetric 3×3
// matrix positions it expands to.
var voigtIndex = [6][2]int{
	{0, 0}, {1, 1}, {2, 2}, {0, 1}, {1, 2}, {0, 2},
}

// ApplyToSymmetricTensors rotates a flat 6-tuple-per-entity Voigt-order
// symmetric tensor field in place: T' = R T Rᵀ, expanded to full 3×3, then
// folded back to Voigt order (spec §4.8). Each entity is processed
// independently so peak memory stays O(1) per call rather than
// O(num_entities).
func ApplyToSymmetricTensors(r *mat.Dense, tensors []float64) {
	n := len(tensors) / 6
	full := mat.NewDense(3, 3, nil)
	tmp := mat.NewDense(3, 3, nil)
	rt := mat.NewDense(3, 3, nil)
	rt.CloneFrom(r.T())
	for i := 0; i < n; i++ {
		voigt := tensors[6*i : 6*i+6]
		for k, idx := range voigtIndex {
			full.Set(idx[0], idx[1], voigt[k])
			full.Set(idx[1], idx[0], voigt[k])
		}
		tmp.Mul(r, full)
		full.Mul(tmp, rt)
		for k, idx := range voigtIndex {
			voigt[k] = full.At(idx[0], idx[1])
		}
	}
}

type xformError string

func (e xformError) Error() string { return string(e) }

func errLenMismatch() error {
	return xformError("xform: sequence length and angle count differ")
}

func errBadAxis(b byte) error {
	return xformError("xform: unrecognized rotation axis")
}
