package common

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// Clamp limits v to [lo, hi]. The lower bound is checked first, so an
// inverted range yields lo for values below it and hi otherwise.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
