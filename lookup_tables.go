// lookup_tables.go - LOG/EXP curve construction and interpolated lookup

/*
(c) 2026 klangraum-labs
https://github.com/klangraum-labs/fx8010dsp

License: GPLv3 or later
*/

package fx8010

import "math"

// Lookup table geometry: 32 exponents, each curve built from a 32-sample
// positive half mirrored and negated into a 64-sample table spanning
// x in [-1, 1]. Grounded on the teacher's init()-time LUT construction in
// audio_lut.go (sinLUT/tanhLUT), adapted from a single precomputed curve
// to a family of 32 curves built from the original document's
// mirror/negate/concatenate recipe.
const (
	numExponents  = 32
	halfTableSize = 32
	fullTableSize = halfTableSize * 2
)

// lookupTables holds the 32 LOG curves and 32 EXP curves, each fullTableSize
// entries long, built once at VM construction time. There is no live
// reconfiguration - see spec.md design notes on fixed tables.
type lookupTables struct {
	log [numExponents][fullTableSize]float32
	exp [numExponents][fullTableSize]float32
}

// buildLookupTables constructs both families of curves.
func buildLookupTables() *lookupTables {
	lt := &lookupTables{}
	for e := 0; e < numExponents; e++ {
		lt.log[e] = buildCurve(e, logPositiveHalf)
		lt.exp[e] = buildCurve(e, expPositiveHalf)
	}
	return lt
}

// buildCurve assembles one antisymmetric 64-sample curve for exponent e
// from a function computing its positive half: mirror the positive half
// around x=0, negate the mirrored copy, then concatenate negative-half
// followed by positive-half.
func buildCurve(e int, positiveHalf func(e int) [halfTableSize]float32) [fullTableSize]float32 {
	pos := positiveHalf(e)

	var curve [fullTableSize]float32
	for i := 0; i < halfTableSize; i++ {
		// Negative half: mirror pos around x=0, then negate y.
		curve[i] = -pos[halfTableSize-1-i]
	}
	copy(curve[halfTableSize:], pos[:])
	return curve
}

// logPositiveHalf computes y_i = x_i^(1/e) for x_i = i/31, i in [0, 31].
// e = 0 would make 1/e divide by zero and rely on implementation-defined
// pow() behavior in the reference document; this module defines that case
// explicitly as the all-zero curve (spec.md §9.2).
func logPositiveHalf(e int) [halfTableSize]float32 {
	var half [halfTableSize]float32
	if e == 0 {
		return half
	}
	invExp := 1.0 / float64(e)
	for i := 0; i < halfTableSize; i++ {
		x := float64(i) / float64(halfTableSize-1)
		half[i] = float32(math.Pow(x, invExp))
	}
	return half
}

// expPositiveHalf computes y_i = x_i^e for x_i = i/31, i in [0, 31].
// e = 0 makes every x^0 == 1, including x = 0 (math.Pow(0, 0) == 1, matching
// the reference document's pow(0, 0) under its pow()); no special-casing is
// needed here since EXP has no division-by-zero to resolve.
func expPositiveHalf(e int) [halfTableSize]float32 {
	var half [halfTableSize]float32
	for i := 0; i < halfTableSize; i++ {
		x := float64(i) / float64(halfTableSize-1)
		half[i] = float32(math.Pow(x, float64(e)))
	}
	return half
}

// curveIndex clamps a raw exponent-selector value into a valid curve index,
// keeping LOG/EXP total the same way clampOffset keeps TRAM access total.
func curveIndex(v float32) int {
	i := int32(v)
	if i < 0 {
		return 0
	}
	if i >= numExponents {
		return numExponents - 1
	}
	return int(i)
}

// interpolate performs linear interpolation of x (clamped to [xMin, xMax])
// against table, whose entries are assumed evenly spaced over [xMin, xMax].
func interpolate(x float32, table *[fullTableSize]float32, xMin, xMax float32) float32 {
	step := (xMax - xMin) / float32(len(table)-1)

	if x < xMin {
		x = xMin
	}
	if x > xMax {
		x = xMax
	}

	i := int((x - xMin) / step)
	if i < 0 {
		i = 0
	}
	if i > len(table)-2 {
		i = len(table) - 2
	}

	x0 := xMin + float32(i)*step
	y0 := table[i]
	y1 := table[i+1]
	return y0 + (y1-y0)*((x-x0)/step)
}
