package greeting

import "github.com/phanxgames/blossom"

// Scroll-linked petal density.
const (
	// densityCutoff is the fraction of the hero that must scroll past before
	// the field thins out.
	densityCutoff = 0.5
	lowDensity    = 0.25
)

// DensityForScroll returns the petal density for a scroll position: a
// quarter of the field once the page has scrolled past half of the hero
// section, the full field otherwise.
func DensityForScroll(scrollY, heroBottom float64) float64 {
	if scrollY > heroBottom*densityCutoff {
		return lowDensity
	}
	return 1
}

// Orb is a soft background light that drifts with scroll and pointer.
type Orb struct {
	X, Y   float64 // page position of the center
	Radius float64
	Color  blossom.Color
}

// OrbOffset returns the parallax offset of orb index i. Scroll moves deeper
// orbs faster (0.05 + 0.02·i of the scroll distance); the pointer adds a
// shift of up to 1/50 of its distance from the viewport center, scaled by
// (i+1)/2.
func OrbOffset(i int, scrollY, pointerX, pointerY, viewW, viewH float64) (dx, dy float64) {
	speed := 0.05 + float64(i)*0.02
	factor := float64(i+1) * 0.5
	px := (pointerX - viewW/2) / 50
	py := (pointerY - viewH/2) / 50
	return px * factor, scrollY*speed + py*factor
}

// clampScroll keeps y within [0, limit].
func clampScroll(y, limit float64) float64 {
	if limit < 0 {
		limit = 0
	}
	return min(max(y, 0), limit)
}
