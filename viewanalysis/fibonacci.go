// Package viewanalysis casts Fibonacci-distributed direction batches from
// observer nodes and reports either raw per-ray hits or per-node
// aggregated scores.
package viewanalysis

import (
	"math"

	"github.com/cadop/dhart-sub001/spatial/r3"
)

var sqrt5 = math.Sqrt(5)

// Distribute returns a near-uniform Fibonacci spiral sampling of the unit
// sphere, trimmed to the cone between upFOV above the horizon and downFOV
// below it (both in degrees), and re-run once at an adjusted target count
// to approximate n after trimming.
func Distribute(n int, upFOV, downFOV float64) []r3.Vec {
	if n <= 0 {
		return nil
	}
	phiMax := math.Pi/2 + downFOV*math.Pi/180
	phiMin := math.Pi/2 - upFOV*math.Pi/180

	pts := fibonacciRaw(n, phiMin, phiMax)
	if len(pts) == n || len(pts) == 0 {
		return pts
	}
	keepRatio := float64(len(pts)) / float64(n)
	discardRatio := 1 - keepRatio
	if discardRatio <= 0 || discardRatio >= 1 {
		return pts
	}
	nPrime := int(math.Round(float64(n) / (1 - discardRatio)))
	if nPrime <= 0 {
		return pts
	}
	return fibonacciRaw(nPrime, phiMin, phiMax)
}

func fibonacciRaw(n int, phiMin, phiMax float64) []r3.Vec {
	offset := 2.0 / float64(n)
	var pts []r3.Vec
	for i := 5; i <= n+4; i++ {
		y := float64(i)*offset - 1 - offset/0.2
		r2 := 1 - y*y
		if r2 < 0 {
			r2 = 0
		}
		r := math.Sqrt(r2)
		phi := float64(i+1) * math.Pi * (3 - sqrt5)
		p := r3.Vec{X: math.Cos(phi) * r, Y: y, Z: math.Sin(phi) * r}
		if !r3.IsFinite(p) {
			continue
		}
		p = r3.Normalize(p)
		polar := math.Acos(clamp(p.Y, -1, 1))
		if polar >= phiMin && polar <= phiMax {
			pts = append(pts, p)
		}
	}
	return pts
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
