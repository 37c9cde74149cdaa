package lod

import "testing"

func TestDitherValuesInRange(t *testing.T) {
	for _, phase := range []float32{0, 0.3, 0.618, 0.99} {
		for py := 0; py < 4; py++ {
			for px := 0; px < 4; px++ {
				v := DitherValue(px, py, phase)
				if v < 0 || v >= 1 {
					t.Fatalf("DitherValue(%d,%d,%v) = %v outside [0,1)", px, py, phase, v)
				}
			}
		}
	}
}

func TestDitherTileValuesDistinct(t *testing.T) {
	seen := map[float32]bool{}
	for py := 0; py < 4; py++ {
		for px := 0; px < 4; px++ {
			v := DitherValue(px, py, 0)
			if seen[v] {
				t.Fatalf("dither value %v repeated in tile", v)
			}
			seen[v] = true
		}
	}
}

func TestCoverageEndpoints(t *testing.T) {
	if got := Coverage(1, 0); got != 1 {
		t.Errorf("Coverage(1) = %v, want 1", got)
	}
	if got := Coverage(0, 0); got != 0 {
		t.Errorf("Coverage(0) = %v, want 0", got)
	}
	if got := Coverage(-1, 0); got != 1 {
		t.Errorf("Coverage(-1) = %v, want 1 (fully faded in)", got)
	}
}

func TestCoverageMidpointSplitsTile(t *testing.T) {
	if got := Coverage(0.5, 0); got != 0.5 {
		t.Errorf("Coverage(0.5) = %v, want 0.5", got)
	}
}

func TestComplementaryFadesPartitionEveryPhase(t *testing.T) {
	for _, phase := range []float32{0, 0.25, 0.618, 0.9} {
		for _, v := range []float32{0.1, 0.3, 0.5, 0.8} {
			out := v      // fading out at coverage v
			in := -(1 - v) // the opposing tier fading in
			for py := 0; py < 4; py++ {
				for px := 0; px < 4; px++ {
					d := DitherValue(px, py, phase)
					if Covered(d, out) == Covered(d, in) {
						t.Fatalf("phase %v fade %v: pixel (%d,%d) not covered exactly once",
							phase, v, px, py)
					}
				}
			}
		}
	}
}
