package hedgerow

import "math"

// Affine is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// IdentityAffine is the identity matrix.
var IdentityAffine = Affine{1, 0, 0, 1, 0, 0}

// Multiply returns p * c (c applied first).
func (p Affine) Multiply(c Affine) Affine {
	return Affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Translate returns m followed (in local space) by a translation.
func (m Affine) Translate(dx, dy float64) Affine {
	return m.Multiply(Affine{1, 0, 0, 1, dx, dy})
}

// Rotate returns m followed (in local space) by a rotation in radians.
func (m Affine) Rotate(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return m.Multiply(Affine{cos, sin, -sin, cos, 0, 0})
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Invert returns the inverse matrix.
// Returns the identity matrix if m is singular (determinant ~ 0).
func (m Affine) Invert() Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityAffine
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// UniformScale returns the length scale of m, sqrt(|det|). Exact for
// rotation and uniform scale.
func (m Affine) UniformScale() float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[2]*m[1]))
}
