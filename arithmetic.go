// arithmetic.go - saturation, wraparound, bitwise ops and noise for the FX8010 DSP

/*
(c) 2026 klangraum-labs
https://github.com/klangraum-labs/fx8010dsp

License: GPLv3 or later
*/

package fx8010

import "math"

// int32Max is the fixed scale the reference implementation uses to convert
// between a normalized [-1, 1] sample and a 32-bit integer representation,
// e.g. for TSTNEG's bitwise complement. It is deliberately not used for the
// CCR register - see register.go's setBorrow for why.
const int32Max = float32(math.MaxInt32)

// floatToInt converts a normalized sample to its 32-bit integer representation.
func floatToInt(v float32) int32 {
	return int32(v * int32Max)
}

// intToFloat converts a 32-bit integer representation back to a normalized sample.
func intToFloat(v int32) float32 {
	return float32(v) / int32Max
}

// saturate clamps x to [-t, t].
func saturate(x, t float32) float32 {
	if x >= t {
		return t
	}
	if x <= -t {
		return -t
	}
	return x
}

// wrapAround folds x into [-1, 1) by subtracting/adding 2, setting the CCR
// borrow bit whenever a fold happened and clearing it otherwise.
func (vm *VM) wrapAround(x float32) float32 {
	switch {
	case x >= 1:
		vm.regs.setBorrow(true)
		return x - 2
	case x < -1:
		vm.regs.setBorrow(true)
		return x + 2
	default:
		vm.regs.setBorrow(false)
		return x
	}
}

// logicOps implements ANDXOR's pattern-matched bitwise behavior. Operands
// are truncated to int32 first. The reference document gives the "not A"
// case a wider mask (0xFFFFFFF, 28 one-bits) than every other case's
// native 24-bit word width (0xFFFFFF); collapsing them to one mask would
// make the "not A" pattern unreachable (it is strictly more specific than
// the "A xor Y" pattern it would then tie with), so both masks are kept
// distinct rather than standardized to one, per spec's documented option
// to expose both. Operands arrive as float32, which cannot hold 0xFFFFFFF
// exactly (it rounds to 0x10000000), so the wide mask is compared in that
// rounded form.
func logicOps(a, x, y float32) int32 {
	const mask24 = 0xFFFFFF
	const mask28 = int32(float32(0xFFFFFFF))

	A := int32(a)
	X := int32(x)
	Y := int32(y)

	switch {
	case Y == 0:
		return A & X
	case X == mask24:
		return A ^ Y
	case X == mask28 && Y == mask24:
		return ^A
	case Y == ^X:
		return A | Y
	case Y == mask24:
		return ^A & X
	default:
		return (A & X) ^ Y
	}
}

// whitenoise is a two-word LFSR pseudo-random generator producing samples
// uniformly distributed over roughly [-1, 1].
type whitenoiseState struct {
	x1, x2 int32
}

const whitenoiseScale = float32(2.0 / 4294967295.0) // 2 / 0xFFFFFFFF

func newWhitenoiseState() whitenoiseState {
	x2 := uint32(0xE1E9F0A7)
	return whitenoiseState{x1: 0x70F4F854, x2: int32(x2)}
}

func (s *whitenoiseState) next() float32 {
	s.x1 ^= s.x2
	noise := float32(s.x2) * whitenoiseScale
	s.x2 += s.x1
	return noise
}
