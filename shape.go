package blossom

import "math"

// Shape is one draw request handed to a Canvas. Geometry is described in the
// shape's local unit space: Size scales the unit outline, ScaleX/ScaleY
// squash it, Rotation turns it and (X, Y) places its hub.
type Shape struct {
	Kind     Kind
	X, Y     float64
	Size     float64
	Rotation float64 // radians
	ScaleX   float64
	ScaleY   float64
	Color    Color
	// Alpha multiplies Color.A (the canvas "global alpha").
	Alpha float64
	// Glow is the blur radius of the soft halo drawn in Color; zero disables it.
	Glow float64
	// Gradient fades the fill from Color at the hub to a faint white rim.
	Gradient bool
}

// rimColor is the outer stop of the petal gradient.
var rimColor = Color{1, 1, 1, 0.1}

// outline is a closed polygon in unit space plus the hub vertex used for
// fan triangulation. The polygon must be star-shaped around the hub.
type outline struct {
	hub    Vec2
	points []Vec2
}

const bezierSteps = 10

var outlines [KindConfettiStar + 1]outline

func init() {
	petal := petalOutline()
	heart := heartOutline()
	circle := circleOutline(16)
	outlines[KindPetal] = petal
	outlines[KindHeart] = heart
	outlines[KindSparkle] = circle
	outlines[KindConfettiCircle] = circle
	outlines[KindConfettiSquare] = outline{points: []Vec2{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}}
	outlines[KindConfettiHeart] = heart
	outlines[KindConfettiStar] = starOutline()
}

// Outline returns the unit-space polygon and hub for a kind. The returned
// slice MUST NOT be mutated.
func Outline(k Kind) (hub Vec2, points []Vec2) {
	if int(k) >= len(outlines) {
		k = KindSparkle
	}
	o := outlines[k]
	return o.hub, o.points
}

// petalOutline traces the four-point bezier petal: two mirrored cubic
// curves from the top tip to the bottom tip and back.
func petalOutline() outline {
	var pts []Vec2
	pts = appendCubic(pts, Vec2{0, -1}, Vec2{0.8, -0.5}, Vec2{0.8, 0.5}, Vec2{0, 1})
	pts = appendCubic(pts, Vec2{0, 1}, Vec2{-0.8, 0.5}, Vec2{-0.8, -0.5}, Vec2{0, -1})
	return outline{points: dropClosing(pts)}
}

// heartOutline traces the small heart at 0.6 of the particle size.
func heartOutline() outline {
	const s = 0.6
	var pts []Vec2
	pts = appendCubic(pts, Vec2{0, 0.3 * s}, Vec2{-s, -0.5 * s}, Vec2{-0.5 * s, -s}, Vec2{0, -0.5 * s})
	pts = appendCubic(pts, Vec2{0, -0.5 * s}, Vec2{0.5 * s, -s}, Vec2{s, -0.5 * s}, Vec2{0, 0.3 * s})
	return outline{hub: Vec2{0, -0.15 * s}, points: dropClosing(pts)}
}

func circleOutline(segments int) outline {
	pts := make([]Vec2, segments)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(segments))
		pts[i] = Vec2{cos * 0.5, sin * 0.5}
	}
	return outline{points: pts}
}

// starOutline is a four-point star with a narrow waist.
func starOutline() outline {
	pts := make([]Vec2, 8)
	for i := range pts {
		r := 0.5
		if i%2 == 1 {
			r = 0.14
		}
		sin, cos := math.Sincos(math.Pi/2*float64(i)/2 - math.Pi/2)
		pts[i] = Vec2{cos * r, sin * r}
	}
	return outline{points: pts}
}

// appendCubic flattens a cubic bezier into bezierSteps segments, appending
// every point including both end points.
func appendCubic(dst []Vec2, p0, p1, p2, p3 Vec2) []Vec2 {
	start := 0
	if len(dst) > 0 && dst[len(dst)-1] == p0 {
		start = 1
	}
	for i := start; i <= bezierSteps; i++ {
		t := float64(i) / bezierSteps
		u := 1 - t
		a := u * u * u
		b := 3 * u * u * t
		c := 3 * u * t * t
		d := t * t * t
		dst = append(dst, Vec2{
			X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		})
	}
	return dst
}

// dropClosing removes a trailing point equal to the first one.
func dropClosing(pts []Vec2) []Vec2 {
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		return pts[:n-1]
	}
	return pts
}

// transform computes the shape's affine matrix. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Scale(Size*ScaleX, Size*ScaleY) -> Rotate -> Translate(X, Y)
func (s Shape) transform() [6]float64 {
	sx := s.Size * s.ScaleX
	sy := s.Size * s.ScaleY
	sin, cos := math.Sincos(s.Rotation)
	return [6]float64{cos * sx, sin * sx, -sin * sy, cos * sy, s.X, s.Y}
}

// apply maps a local point through the affine matrix m.
//
//	newX = a*x + c*y + tx, newY = b*x + d*y + ty
func apply(m [6]float64, p Vec2) Vec2 {
	return Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Bounds returns the world-space axis-aligned bounds of the shape's outline.
func (s Shape) Bounds() Rect {
	_, pts := Outline(s.Kind)
	if len(pts) == 0 {
		return Rect{X: s.X, Y: s.Y}
	}
	m := s.transform()
	p := apply(m, pts[0])
	minX, minY, maxX, maxY := p.X, p.Y, p.X, p.Y
	for _, lp := range pts[1:] {
		p = apply(m, lp)
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
