package geometry

import "math"

// Ellipse represents an elliptical aperture around a detected source:
// center, semi-major axis length in pixels, ellipticity (1 - b/a, 0 for
// a circle) and position angle in degrees counter-clockwise from +x.
type Ellipse struct {
	Center        Point2D `json:"center"`
	SemiMajor     float64 `json:"semi_major"`
	Ellipticity   float64 `json:"ellipticity"`
	PositionAngle float64 `json:"position_angle"`
}

// SemiMinor returns the semi-minor axis length, a*(1-eps).
func (e Ellipse) SemiMinor() float64 {
	return e.SemiMajor * (1.0 - e.Ellipticity)
}

// Area returns the enclosed area, pi*a*b.
func (e Ellipse) Area() float64 {
	return math.Pi * e.SemiMajor * e.SemiMinor()
}

// PARadians returns the position angle converted to radians.
func (e Ellipse) PARadians() float64 {
	return e.PositionAngle * math.Pi / 180.0
}

// PointAt returns the point on the ellipse boundary at parametric angle
// phi (radians), accounting for the position angle rotation.
func (e Ellipse) PointAt(phi float64) Point2D {
	a := e.SemiMajor
	b := e.SemiMinor()
	pa := e.PARadians()
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)
	cosPA, sinPA := math.Cos(pa), math.Sin(pa)
	return Point2D{
		X: e.Center.X + a*cosPhi*cosPA - b*sinPhi*sinPA,
		Y: e.Center.Y + a*cosPhi*sinPA + b*sinPhi*cosPA,
	}
}

// Contains reports whether p lies inside or on the ellipse boundary.
func (e Ellipse) Contains(p Point2D) bool {
	a := e.SemiMajor
	b := e.SemiMinor()
	if a <= 0 || b <= 0 {
		return false
	}
	pa := e.PARadians()
	dx := p.X - e.Center.X
	dy := p.Y - e.Center.Y
	u := (dx*math.Cos(pa) + dy*math.Sin(pa)) / a
	v := (-dx*math.Sin(pa) + dy*math.Cos(pa)) / b
	return u*u+v*v <= 1.0
}
