package octahedral

import (
	gomath "math"
	"testing"

	"github.com/tibogot/greenwood/pkg/math"
)

func TestRoundTripAllCells(t *testing.T) {
	for _, hemi := range []bool{false, true} {
		for _, n := range []int{2, 4, 8, 16} {
			for j := 0; j < n; j++ {
				for i := 0; i < n; i++ {
					dir := DirectionForCell(i, j, n, hemi)
					gi, gj := CellForDirection(dir, n, hemi)
					if gi != i || gj != j {
						t.Errorf("hemi=%v n=%d: cell (%d,%d) decoded to %v, re-encoded to (%d,%d)",
							hemi, n, i, j, dir, gi, gj)
					}
				}
			}
		}
	}
}

func TestDecodeOutputsAreUnitLength(t *testing.T) {
	const n = 16
	for _, hemi := range []bool{false, true} {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				dir := DirectionForCell(i, j, n, hemi)
				l := dir.Length()
				if l < 0.9999 || l > 1.0001 {
					t.Errorf("hemi=%v cell (%d,%d): |decode| = %v, want 1", hemi, i, j, l)
				}
			}
		}
	}
}

func TestHemiDecodeNeverBelowHorizon(t *testing.T) {
	const n = 16
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			dir := DirectionForCell(i, j, n, true)
			if dir.Y < -1e-6 {
				t.Errorf("hemi cell (%d,%d) decoded below horizon: %v", i, j, dir)
			}
		}
	}
}

func TestEncodeStaysInUnitSquare(t *testing.T) {
	// Sweep the sphere, including the lower hemisphere for the full variant.
	for _, hemi := range []bool{false, true} {
		for lat := -85.0; lat <= 85.0; lat += 10 {
			for lon := 0.0; lon < 360.0; lon += 10 {
				latR := lat * gomath.Pi / 180
				lonR := lon * gomath.Pi / 180
				dir := math.Vec3{
					X: float32(gomath.Cos(latR) * gomath.Sin(lonR)),
					Y: float32(gomath.Sin(latR)),
					Z: float32(gomath.Cos(latR) * gomath.Cos(lonR)),
				}
				uv := Encode(dir, hemi)
				if uv.X < 0 || uv.X > 1 || uv.Y < 0 || uv.Y > 1 {
					t.Fatalf("hemi=%v Encode(%v) = %v outside unit square", hemi, dir, uv)
				}
			}
		}
	}
}

func TestCoverageNoAngularGaps(t *testing.T) {
	// Every sampled upper-hemisphere direction must land within one grid cell
	// of the direction its cell decodes back to.
	const n = 8
	for _, hemi := range []bool{false, true} {
		// Worst-case angular cell size: the whole covered region spread over
		// n² cells. Allow one full cell diagonal.
		maxAngle := float32(2*gomath.Pi/n) * 1.5

		for lat := 2.0; lat <= 88.0; lat += 7 {
			for lon := 0.0; lon < 360.0; lon += 11 {
				latR := lat * gomath.Pi / 180
				lonR := lon * gomath.Pi / 180
				dir := math.Vec3{
					X: float32(gomath.Cos(latR) * gomath.Sin(lonR)),
					Y: float32(gomath.Sin(latR)),
					Z: float32(gomath.Cos(latR) * gomath.Cos(lonR)),
				}
				i, j := CellForDirection(dir, n, hemi)
				cellDir := DirectionForCell(i, j, n, hemi)
				cos := math.Clamp(dir.Dot(cellDir), -1, 1)
				angle := float32(gomath.Acos(float64(cos)))
				if angle > maxAngle {
					t.Errorf("hemi=%v dir %v -> cell (%d,%d) dir %v, angle %v exceeds %v",
						hemi, dir, i, j, cellDir, angle, maxAngle)
				}
			}
		}
	}
}

func TestFullVariantCoversLowerHemisphere(t *testing.T) {
	down := math.Vec3{Y: -1}
	uv := Encode(down, false)
	dir := Decode(uv, false)
	if dir.Y > -0.999 {
		t.Errorf("full variant round-trip of straight down = %v, want (0,-1,0)", dir)
	}
}

func TestEncodeDegenerateInput(t *testing.T) {
	for _, hemi := range []bool{false, true} {
		uv := Encode(math.Vec3{}, hemi)
		if uv.X < 0 || uv.X > 1 || uv.Y < 0 || uv.Y > 1 {
			t.Errorf("hemi=%v Encode(zero) = %v outside unit square", hemi, uv)
		}
		dir := Decode(uv, hemi)
		l := dir.Length()
		if l < 0.9999 || l > 1.0001 {
			t.Errorf("hemi=%v decode of degenerate encode not unit: %v", hemi, l)
		}
	}
}

func TestHemiDensityExceedsFull(t *testing.T) {
	// Two nearby upper-hemisphere directions that share a cell in the full
	// variant should be separable at the same resolution in hemi, somewhere
	// on the sphere. Spot-check: hemi spreads the upper hemisphere over the
	// whole square, so the straight-up cell neighborhood is finer.
	const n = 8
	up := math.Vec3{Y: 1}
	tilted := math.Vec3{X: 0.214, Y: 1, Z: 0.214}.Normalize()

	fi, fj := CellForDirection(up, n, false)
	ti, tj := CellForDirection(tilted, n, false)
	hi, hj := CellForDirection(up, n, true)
	thi, thj := CellForDirection(tilted, n, true)

	fullSame := fi == ti && fj == tj
	hemiSame := hi == thi && hj == thj
	if fullSame && hemiSame {
		t.Error("hemi variant did not separate directions the full variant merges")
	}
}
