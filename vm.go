// vm.go - public facade: the embeddable FX8010 sample processor

/*
(c) 2026 klangraum-labs
https://github.com/klangraum-labs/fx8010dsp

License: GPLv3 or later
*/

package fx8010

import "sync"

// Options holds the behavioral switches a host can set on a VM. There is
// currently exactly one: whether to reproduce the reference
// implementation's input-operand aliasing quirk (SPEC_FULL.md §4.8.1).
type Options struct {
	// FixInputAliasing, when true, makes each of an instruction's A/X/Y
	// operands read its own IOIndex from the input frame. When false
	// (the default), X and Y both read A's IOIndex, reproducing
	// original_source/source/FX8010.cpp's behavior bit-for-bit.
	FixInputAliasing bool
}

// VM is the embeddable FX8010 DSP sample processor: load a program once,
// then call Process once per audio frame. Every exported method takes the
// RWMutex below, so concurrent Process/Load calls and register get/set are
// serialized; grounded on audio_chip.go's SoundChip.mutex convention for
// any type exposing concurrent getter/setter pairs.
type VM struct {
	Options Options

	mu sync.RWMutex

	channels int
	ready    bool
	errs     ErrorList

	regs         *RegisterFile
	instructions []instruction
	metadata     map[string]string

	iTRAM *tram
	xTRAM *tram

	tables *lookupTables
	noise  whitenoiseState

	accumulator       float64
	instructionCounter uint64
	outputFrame       []float32

	loggedUnknown map[Opcode]bool
}

// NewVM creates a VM configured for channels audio channels. It has no
// loaded program and is not ready until Load succeeds.
func NewVM(channels int) *VM {
	return &VM{
		channels:      channels,
		errs:          newErrorList(),
		regs:          newRegisterFile(),
		tables:        buildLookupTables(),
		noise:         newWhitenoiseState(),
		iTRAM:         newTRAM(1),
		xTRAM:         newTRAM(1),
		outputFrame:   make([]float32, channels),
		loggedUnknown: make(map[Opcode]bool),
	}
}

// Load parses and validates source, replacing any previously loaded
// program. It returns true if the program is ready to run; on failure the
// VM's error list (see Errors) explains why, and the VM is no longer ready:
// a prior program's registers and instructions are kept, but Process
// returns zeroed frames until a Load succeeds.
func (vm *VM) Load(source string) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	p := newParser(vm.channels)
	p.parse(source)

	if p.errs.HasErrors() {
		vm.errs = p.errs
		vm.ready = false
		return false
	}

	vm.regs = p.regs
	vm.instructions = p.instructions
	vm.metadata = p.metadata
	vm.errs = p.errs
	vm.iTRAM = newTRAM(max(p.iTRAMSize, 1))
	vm.xTRAM = newTRAM(max(p.xTRAMSize, 1))
	vm.accumulator = 0
	vm.instructionCounter = 0
	vm.outputFrame = make([]float32, vm.channels)
	vm.loggedUnknown = make(map[Opcode]bool)
	vm.ready = true
	return true
}

// Process runs the loaded program once against inputFrame (len ==
// Channels()) and returns a freshly allocated output frame. Calling
// Process on a VM that is not ready returns a zeroed frame.
func (vm *VM) Process(inputFrame []float32) []float32 {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if !vm.ready {
		return make([]float32, vm.channels)
	}

	vm.process(inputFrame)

	out := make([]float32, len(vm.outputFrame))
	copy(out, vm.outputFrame)
	return out
}

// SetRegister sets the named register's value. It reports false if no
// register with that name exists.
func (vm *VM) SetRegister(name string, value float32) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	idx := vm.regs.indexOf(name)
	if idx == -1 {
		return false
	}
	vm.regs.get(idx).Value = value
	return true
}

// GetRegister returns the named register's value, or 0 if it does not
// exist.
func (vm *VM) GetRegister(name string) float32 {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	idx := vm.regs.indexOf(name)
	if idx == -1 {
		return 0
	}
	return vm.regs.get(idx).Value
}

// SetChannels changes the channel count for subsequent Load calls. It does
// not affect an already-loaded program's I/O indices.
func (vm *VM) SetChannels(n int) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.channels = n
}

// Channels returns the current channel count.
func (vm *VM) Channels() int {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.channels
}

// IsReady reports whether a program was loaded successfully and Process
// can be called.
func (vm *VM) IsReady() bool {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.ready
}

// InstructionCounter returns the number of instructions executed across
// every Process call since the program was loaded.
func (vm *VM) InstructionCounter() uint64 {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.instructionCounter
}

// Errors returns the error list from the most recent Load call. Its first
// entry is always the "no error" sentinel.
func (vm *VM) Errors() ErrorList {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.errs
}
