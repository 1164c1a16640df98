package fx8010

import "testing"

func TestLookupTablesAntisymmetric(t *testing.T) {
	lt := buildLookupTables()
	for e := 0; e < numExponents; e++ {
		for i := 0; i < halfTableSize; i++ {
			neg := lt.log[e][i]
			pos := lt.log[e][fullTableSize-1-i]
			if neg != -pos {
				t.Fatalf("log[%d] not antisymmetric at %d: %v vs %v", e, i, neg, pos)
			}
		}
	}
}

func TestLookupTableZeroExponentIsAllZero(t *testing.T) {
	lt := buildLookupTables()
	for i, v := range lt.log[0] {
		if v != 0 {
			t.Fatalf("log[0][%d] = %v, want 0 (documented e=0 edge case)", i, v)
		}
	}
}

func TestInterpolateStaysInRange(t *testing.T) {
	lt := buildLookupTables()
	for e := 0; e < numExponents; e++ {
		for i := 0; i <= 20; i++ {
			x := float32(i)/10 - 1 // sweeps [-1, 1]
			y := interpolate(x, &lt.log[e], -1, 1)
			if y < -1.001 || y > 1.001 {
				t.Errorf("interp(log[%d], %v) = %v, out of [-1,1]", e, x, y)
			}
			y = interpolate(x, &lt.exp[e], -1, 1)
			if y < -1.001 || y > 1.001 {
				t.Errorf("interp(exp[%d], %v) = %v, out of [-1,1]", e, x, y)
			}
		}
	}
}

func TestInterpolateClampsOutOfRangeX(t *testing.T) {
	lt := buildLookupTables()
	below := interpolate(-5, &lt.exp[4], -1, 1)
	atMin := interpolate(-1, &lt.exp[4], -1, 1)
	if below != atMin {
		t.Fatalf("interp below range = %v, want clamp to %v", below, atMin)
	}
}

func TestCurveIndexClamped(t *testing.T) {
	if got := curveIndex(-3); got != 0 {
		t.Errorf("curveIndex(-3) = %d, want 0", got)
	}
	if got := curveIndex(100); got != numExponents-1 {
		t.Errorf("curveIndex(100) = %d, want %d", got, numExponents-1)
	}
	if got := curveIndex(5); got != 5 {
		t.Errorf("curveIndex(5) = %d, want 5", got)
	}
}
