// interpreter.go - per-sample instruction execution

/*
(c) 2026 klangraum-labs
https://github.com/klangraum-labs/fx8010dsp

License: GPLv3 or later
*/

package fx8010

import "log"

// step executes one instruction against the VM's current state, updating
// R's register, the accumulator and the CCR as the opcode dictates. It
// returns the number of subsequent instructions to skip (nonzero only for
// SKIP) and whether END was reached.
func (vm *VM) step(inst *instruction, inputFrame []float32) (skip int, isEnd bool) {
	r := vm.regs.get(inst.r)
	a := vm.regs.get(inst.a)
	x := vm.regs.get(inst.x)
	y := vm.regs.get(inst.y)

	if inst.hasInput {
		// Both X and Y read A's IOIndex rather than their own, reproducing
		// original_source/source/FX8010.cpp's input-substitution quirk
		// (SPEC_FULL.md §4.8.1) unless the VM was configured to correct it.
		if vm.Options.FixInputAliasing {
			if a.Type == Input {
				a.Value = inputFrame[a.IOIndex]
			}
			if x.Type == Input {
				x.Value = inputFrame[x.IOIndex]
			}
			if y.Type == Input {
				y.Value = inputFrame[y.IOIndex]
			}
		} else {
			if a.Type == Input {
				a.Value = inputFrame[a.IOIndex]
			}
			if x.Type == Input {
				x.Value = inputFrame[a.IOIndex]
			}
			if y.Type == Input {
				y.Value = inputFrame[a.IOIndex]
			}
		}
	}

	if inst.hasNoise {
		switch {
		case a.Name == "noise":
			a.Value = vm.noise.next()
		case x.Name == "noise":
			x.Value = vm.noise.next()
		case y.Name == "noise":
			y.Value = vm.noise.next()
		}
	}

	switch inst.opcode {
	case OpMACS, OpMACINTS:
		r.Value = a.Value + x.Value*y.Value
		vm.accumulator = float64(r.Value)
		r.Value = saturate(r.Value, 1)
		vm.regs.setCCR(r.Value)

	case OpMACSN:
		r.Value = a.Value - x.Value*y.Value
		vm.accumulator = float64(r.Value)
		r.Value = saturate(r.Value, 1)
		vm.regs.setCCR(r.Value)

	case OpACC3:
		r.Value = a.Value + x.Value + y.Value
		vm.accumulator = float64(r.Value)
		r.Value = saturate(r.Value, 1)
		vm.regs.setCCR(r.Value)

	case OpLOG:
		r.Value = interpolate(a.Value, &vm.tables.log[curveIndex(x.Value)], -1, 1)
		vm.accumulator = float64(r.Value)
		vm.regs.setCCR(r.Value)

	case OpEXP:
		r.Value = interpolate(a.Value, &vm.tables.exp[curveIndex(x.Value)], -1, 1)
		vm.accumulator = float64(r.Value)
		vm.regs.setCCR(r.Value)

	case OpMACW:
		r.Value = a.Value + vm.wrapAround(x.Value*y.Value)
		vm.accumulator = float64(r.Value)
		vm.regs.setCCR(r.Value)

	case OpMACWN:
		r.Value = a.Value - vm.wrapAround(x.Value*y.Value)
		vm.accumulator = float64(r.Value)
		vm.regs.setCCR(r.Value)

	case OpMACINTW:
		r.Value = vm.wrapAround(a.Value + x.Value*y.Value)
		vm.accumulator = float64(r.Value)
		vm.regs.setCCR(r.Value)

	case OpMACMV:
		vm.accumulator += float64(x.Value * y.Value)
		r.Value = a.Value
		vm.regs.setCCR(r.Value)

	case OpANDXOR:
		r.Value = float32(logicOps(a.Value, x.Value, y.Value))
		vm.regs.setCCR(r.Value)

	case OpTSTNEG:
		if a.Value >= y.Value {
			r.Value = x.Value
		} else {
			r.Value = intToFloat(^floatToInt(x.Value))
		}
		vm.accumulator = float64(r.Value)
		vm.regs.setCCR(r.Value)

	case OpLIMIT:
		if a.Value >= y.Value {
			r.Value = x.Value
		} else {
			r.Value = y.Value
		}
		vm.accumulator = float64(r.Value)
		vm.regs.setCCR(r.Value)

	case OpLIMITN:
		if a.Value < y.Value {
			r.Value = x.Value
		} else {
			r.Value = y.Value
		}
		vm.accumulator = float64(r.Value)
		vm.regs.setCCR(r.Value)

	case OpINTERP:
		r.Value = (1-x.Value)*a.Value + x.Value*y.Value
		vm.accumulator = float64(r.Value)
		r.Value = saturate(r.Value, 1)
		vm.regs.setCCR(r.Value)

	case OpSKIP:
		if int32(x.Value) == int32(vm.regs.get(regCCR).Value) {
			skip = int(y.Value)
		}

	case OpIDELAY:
		switch r.Type {
		case Read:
			a.Value = vm.iTRAM.read(int(y.Value))
		case Write:
			vm.iTRAM.write(a.Value, int(y.Value))
		}

	case OpXDELAY:
		switch r.Type {
		case Read:
			a.Value = vm.xTRAM.read(int(y.Value))
		case Write:
			vm.xTRAM.write(a.Value, int(y.Value))
		}

	case OpEND:
		isEnd = true

	default:
		if !vm.loggedUnknown[inst.opcode] {
			vm.loggedUnknown[inst.opcode] = true
			log.Printf("fx8010: unimplemented opcode %d, treating as no-op", inst.opcode)
		}
	}

	if r.Type == Output {
		vm.outputFrame[r.IOIndex] = r.Value
	}

	return skip, isEnd
}

// process runs the compiled instruction list once against inputFrame,
// writing into vm.outputFrame and advancing vm.instructionCounter. Matches
// spec.md §4.6: a nonzero skip counter consumes instructions without
// executing them; END breaks out of the loop.
func (vm *VM) process(inputFrame []float32) {
	skipCounter := 0

	for i := range vm.instructions {
		inst := &vm.instructions[i]

		if skipCounter > 0 {
			skipCounter--
			continue
		}

		skip, isEnd := vm.step(inst, inputFrame)
		skipCounter = skip
		vm.instructionCounter++

		if isEnd {
			break
		}
	}
}
