// parser.go - line-oriented parser/validator for FX8010 source programs

/*
(c) 2026 klangraum-labs
https://github.com/klangraum-labs/fx8010dsp

License: GPLv3 or later
*/

package fx8010

import (
	"strconv"
	"strings"
)

// declarationTypes maps the source language's declaration keywords to the
// RegisterType they create.
var declarationTypes = map[string]RegisterType{
	"static":  Static,
	"temp":    Temp,
	"control": Control,
	"input":   Input,
	"output":  Output,
	"const":   Const,
}

// metadataKeys is the fixed set of metadata keys the source language
// recognizes (spec.md §3).
var metadataKeys = map[string]bool{
	"name":      true,
	"copyright": true,
	"created":   true,
	"engine":    true,
	"comment":   true,
	"guid":      true,
}

// parser holds all state accumulated while compiling one source program.
// It is discarded once Load() has copied its results into the VM.
type parser struct {
	channelCount int

	regs         *RegisterFile
	instructions []instruction
	iTRAMSize    int
	xTRAMSize    int
	metadata     map[string]string
	errs         ErrorList
}

func newParser(channelCount int) *parser {
	return &parser{
		channelCount: channelCount,
		regs:         newRegisterFile(),
		metadata:     make(map[string]string),
		errs:         newErrorList(),
	}
}

// stripComment removes everything from the first ';' onward. The line itself
// stays in place (possibly empty), so line-number accounting is unaffected.
func stripComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		return line[:i]
	}
	return line
}

// parse compiles source into the parser's accumulated state. Errors are
// recorded with their line number and parsing continues - the caller sees
// every error in one pass, matching spec.md §4.5/§7's propagation policy.
func (p *parser) parse(source string) {
	lines := strings.Split(source, "\n")

	lastNonBlank := ""
	lastLineNum := 1
	for i, raw := range lines {
		line := strings.ToLower(strings.TrimSpace(stripComment(raw)))
		lineNum := i + 1
		if line == "" {
			continue
		}
		lastNonBlank = line
		lastLineNum = lineNum
		p.parseLine(line, lineNum)
	}

	if lastNonBlank != "end" {
		p.errs.add(ErrNoEndFound, lastLineNum)
	}
}

// parseLine dispatches one non-blank, already-lowercased, comment-stripped
// line to the matching pattern, in the order spec.md §4.5 lists them.
func (p *parser) parseLine(line string, lineNum int) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	keyword := fields[0]

	switch {
	case keyword == "end":
		p.instructions = append(p.instructions, instruction{opcode: OpEND})

	default:
		if _, ok := declarationTypes[keyword]; ok {
			p.parseDeclaration(keyword, line, lineNum)
			return
		}
		if keyword == "itramsize" || keyword == "xtramsize" {
			p.parseTRAMSize(keyword, fields, lineNum)
			return
		}
		if metadataKeys[keyword] {
			p.parseMetadata(keyword, line, lineNum)
			return
		}
		if _, ok := opcodeNames[keyword]; ok {
			p.parseInstruction(keyword, line, lineNum)
			return
		}
		p.errs.add(ErrSyntaxNotValid, lineNum)
	}
}

// parseDeclaration handles `<type> <name> [= <num>]`.
func (p *parser) parseDeclaration(keyword, line string, lineNum int) {
	rest := strings.TrimSpace(line[len(keyword):])
	rest = strings.Map(func(r rune) rune {
		if r == '=' || r == ',' {
			return ' '
		}
		return r
	}, rest)
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		p.errs.add(ErrSyntaxNotValid, lineNum)
		return
	}
	name := fields[0]
	var valueText string
	if len(fields) > 1 {
		valueText = fields[1]
	}

	if p.regs.indexOf(name) != -1 {
		p.errs.add(ErrMultipleVarDeclare, lineNum)
		return
	}

	regType := declarationTypes[keyword]
	reg := GPR{Type: regType, Name: name}

	if valueText != "" {
		switch regType {
		case Input, Output:
			n, err := strconv.Atoi(valueText)
			if err != nil {
				p.errs.add(ErrSyntaxNotValid, lineNum)
				return
			}
			if n < 0 || n >= p.channelCount {
				p.errs.add(ErrIoIndexOutOfRange, lineNum)
				return
			}
			reg.IOIndex = uint32(n)
		default:
			v, err := strconv.ParseFloat(valueText, 32)
			if err != nil {
				p.errs.add(ErrSyntaxNotValid, lineNum)
				return
			}
			reg.Value = float32(v)
		}
	}

	p.regs.append(reg)
}

// parseTRAMSize handles `itramsize <n>` / `xtramsize <n>`.
func (p *parser) parseTRAMSize(keyword string, fields []string, lineNum int) {
	if len(fields) < 2 {
		p.errs.add(ErrSyntaxNotValid, lineNum)
		return
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		p.errs.add(ErrSyntaxNotValid, lineNum)
		return
	}
	switch keyword {
	case "itramsize":
		if n > maxIDelaySize {
			p.errs.add(ErrITramSizeTooLarge, lineNum)
			return
		}
		p.iTRAMSize = n
	case "xtramsize":
		if n > maxXDelaySize {
			p.errs.add(ErrXTramSizeTooLarge, lineNum)
			return
		}
		p.xTRAMSize = n
	}
}

// parseInstruction handles `<opcode> R, A, X, Y`.
func (p *parser) parseInstruction(keyword, line string, lineNum int) {
	rest := strings.TrimSpace(line[len(keyword):])
	rest = strings.ReplaceAll(rest, ",", " ")
	operands := strings.Fields(rest)
	if len(operands) != 4 {
		p.errs.add(ErrSyntaxNotValid, lineNum)
		return
	}

	inst := instruction{opcode: opcodeNames[keyword]}

	indices := make([]int, 4)
	for i, operand := range operands {
		idx := p.mapOperand(operand)
		if idx == -1 {
			p.errs.add(ErrVarNotDeclared, lineNum)
			return
		}
		indices[i] = idx
	}
	inst.r, inst.a, inst.x, inst.y = indices[0], indices[1], indices[2], indices[3]

	if p.regs.get(inst.r).Type == Input {
		p.errs.add(ErrInputForRNotAllowed, lineNum)
		return
	}
	if p.regs.get(inst.r).Type == Output {
		inst.hasOutput = true
	}

	for _, idx := range []int{inst.a, inst.x, inst.y} {
		reg := p.regs.get(idx)
		if reg.Type == Input {
			inst.hasInput = true
		}
		if reg.Name == "noise" {
			inst.hasNoise = true
		}
	}

	p.instructions = append(p.instructions, inst)
}

// mapOperand resolves one instruction operand to a register-file index,
// materializing an anonymous STATIC register for numeric literals
// (deduplicated by their literal text, matching original_source's
// findRegisterIndexByName reuse). Returns -1 if the operand is neither a
// known register name nor a valid number.
func (p *parser) mapOperand(operand string) int {
	if idx := p.regs.indexOf(operand); idx != -1 {
		return idx
	}
	v, err := strconv.ParseFloat(operand, 32)
	if err != nil {
		return -1
	}
	return p.regs.append(GPR{Type: Static, Name: operand, Value: float32(v)})
}

// parseMetadata handles `(name|copyright|created|engine|comment|guid) "<string>"`.
func (p *parser) parseMetadata(keyword, line string, lineNum int) {
	rest := strings.TrimSpace(line[len(keyword):])
	start := strings.IndexByte(rest, '"')
	end := strings.LastIndexByte(rest, '"')
	if start == -1 || end <= start {
		p.errs.add(ErrSyntaxNotValid, lineNum)
		return
	}
	p.metadata[keyword] = rest[start+1 : end]
}
