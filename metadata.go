// metadata.go - control-register enumeration and metadata access

/*
(c) 2026 klangraum-labs
https://github.com/klangraum-labs/fx8010dsp

License: GPLv3 or later
*/

package fx8010

// ControlRegisters returns the names of every CONTROL-typed register, in
// declaration order, as a fresh copy so callers can't mutate VM state
// through the returned slice. Grounded on original_source's
// getControlRegisters(), which returns a copy rather than the live vector
// for the same reason (SPEC_FULL.md §7).
func (vm *VM) ControlRegisters() []string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	out := make([]string, len(vm.regs.controlReg))
	copy(out, vm.regs.controlReg)
	return out
}

// Metadata returns a fresh copy of the loaded program's metadata map
// (keys: name, copyright, created, engine, comment, guid).
func (vm *VM) Metadata() map[string]string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	out := make(map[string]string, len(vm.metadata))
	for k, v := range vm.metadata {
		out[k] = v
	}
	return out
}
