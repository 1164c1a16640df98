package fx8010

import "testing"

func TestSaturate(t *testing.T) {
	cases := []struct {
		x, t, want float32
	}{
		{0.5, 1, 0.5},
		{1.5, 1, 1},
		{-1.5, 1, -1},
		{1, 1, 1},
		{-1, 1, -1},
	}
	for _, c := range cases {
		if got := saturate(c.x, c.t); got != c.want {
			t.Errorf("saturate(%v, %v) = %v, want %v", c.x, c.t, got, c.want)
		}
	}
}

func TestWrapAroundIdempotent(t *testing.T) {
	vm := NewVM(1)
	vm.regs = newRegisterFile()

	cases := []struct {
		x, want float32
	}{
		{0.5, 0.5},
		{1.5, -0.5},
		{-1.5, 0.5},
		{1.999, -0.001},
		{-2, 0},
	}
	for _, c := range cases {
		got := vm.wrapAround(c.x)
		if got < -1 || got >= 1 {
			t.Errorf("wrapAround(%v) = %v, not in [-1, 1)", c.x, got)
		}
		diff := got - c.want
		if diff < 0 {
			diff = -diff
		}
		if diff > 1e-4 {
			t.Errorf("wrapAround(%v) = %v, want %v", c.x, got, c.want)
		}
	}
}

func TestWrapAroundSetsBorrow(t *testing.T) {
	vm := NewVM(1)
	vm.regs = newRegisterFile()

	vm.wrapAround(1.5)
	ccr := vm.regs.get(regCCR)
	if int32(ccr.Value)&ccrBorrow == 0 {
		t.Fatalf("expected borrow bit set after folding wrap, ccr = %v", ccr.Value)
	}

	vm.wrapAround(0.2)
	ccr = vm.regs.get(regCCR)
	if int32(ccr.Value)&ccrBorrow != 0 {
		t.Fatalf("expected borrow bit cleared after non-folding wrap, ccr = %v", ccr.Value)
	}
}

func TestLogicOps(t *testing.T) {
	const mask24 = 0xFFFFFF
	const mask28 = 0xFFFFFFF

	cases := []struct {
		name       string
		a, x, y    int32
		want       int32
	}{
		{"y zero ANDs a,x", 0b1100, 0b1010, 0, 0b1100 & 0b1010},
		{"x mask24 XORs a,y", 0b1010, mask24, 0b0110, 0b1010 ^ 0b0110},
		{"not a", 0b1010, mask28, mask24, ^int32(0b1010)},
		{"y equals not x ORs a,y", 5, 3, ^int32(3), 5 | ^int32(3)},
		{"y mask24 ANDs not a with x", 0b1010, 0b0110, mask24, ^int32(0b1010) & 0b0110},
		{"default xor-and", 3, 5, 9, (3 & 5) ^ 9},
	}
	for _, c := range cases {
		got := logicOps(float32(c.a), float32(c.x), float32(c.y))
		if got != c.want {
			t.Errorf("%s: logicOps(%d,%d,%d) = %d, want %d", c.name, c.a, c.x, c.y, got, c.want)
		}
	}
}

func TestWhitenoiseRange(t *testing.T) {
	s := newWhitenoiseState()
	for i := 0; i < 10000; i++ {
		v := s.next()
		if v < -1.01 || v > 1.01 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
	}
}

func TestFloatIntRoundTrip(t *testing.T) {
	for _, v := range []float32{0, 0.25, -0.25, 0.999, -0.999} {
		got := intToFloat(floatToInt(v))
		diff := got - v
		if diff < 0 {
			diff = -diff
		}
		if diff > 1e-6 {
			t.Errorf("round trip %v -> %v, diff %v", v, got, diff)
		}
	}
}
