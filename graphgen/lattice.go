package graphgen

// direction is a 2D lattice offset in multiples of the X/Y spacing.
type direction struct{ dx, dy int }

var baseDirections = []direction{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// directionLattice returns the fan-out directions for a given
// max_step_connection. m == 1 yields the eight base neighbors; m > 1 adds
// every knight-style (j, k) pair with j, k ranging over ±1..±m and
// |j| != |k|, which by construction never duplicates a base neighbor.
func directionLattice(m int32) []direction {
	if m <= 1 {
		return append([]direction(nil), baseDirections...)
	}
	out := append([]direction(nil), baseDirections...)
	for j := -int(m); j <= int(m); j++ {
		if j == 0 {
			continue
		}
		for k := -int(m); k <= int(m); k++ {
			if k == 0 || absInt(j) == absInt(k) {
				continue
			}
			out = append(out, direction{j, k})
		}
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
