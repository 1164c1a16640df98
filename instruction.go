// instruction.go - opcodes and the compiled instruction stream

/*
(c) 2026 klangraum-labs
https://github.com/klangraum-labs/fx8010dsp

License: GPLv3 or later
*/

package fx8010

// Opcode enumerates the FX8010 instruction set (spec.md §3).
type Opcode int

const (
	OpMACS Opcode = iota
	OpMACSN
	OpMACW
	OpMACWN
	OpMACINTS
	OpMACINTW
	OpACC3
	OpMACMV
	OpANDXOR
	OpTSTNEG
	OpLIMIT
	OpLIMITN
	OpLOG
	OpEXP
	OpINTERP
	OpSKIP
	OpIDELAY
	OpXDELAY
	OpEND
)

// opcodeNames maps the source language's lowercase mnemonics to Opcode
// values; used by the parser's instruction-line dispatch.
var opcodeNames = map[string]Opcode{
	"macs":    OpMACS,
	"macsn":   OpMACSN,
	"macw":    OpMACW,
	"macwn":   OpMACWN,
	"macints": OpMACINTS,
	"macintw": OpMACINTW,
	"acc3":    OpACC3,
	"macmv":   OpMACMV,
	"andxor":  OpANDXOR,
	"tstneg":  OpTSTNEG,
	"limit":   OpLIMIT,
	"limitn":  OpLIMITN,
	"log":     OpLOG,
	"exp":     OpEXP,
	"interp":  OpINTERP,
	"skip":    OpSKIP,
	"idelay":  OpIDELAY,
	"xdelay":  OpXDELAY,
	"end":     OpEND,
}

// instruction is one decoded step of the compiled program: an opcode and
// four register-file indices (R, A, X, Y), plus three flags precomputed at
// parse time so the interpreter never has to re-inspect operand types on
// the hot path.
type instruction struct {
	opcode Opcode
	r, a, x, y int

	hasInput  bool
	hasOutput bool
	hasNoise  bool
}
