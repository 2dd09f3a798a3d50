package jpeg

import "testing"

func TestIDCTDCOnlyFastPath(t *testing.T) {
	// S1: a block with DC difference 1 and all AC zero. Row pass broadcasts
	// DC<<3 across the row, column pass reduces to saturate(((DC<<3+32)>>6)+128).
	var coeffs [64]int32
	coeffs[0] = 1
	var out [64]byte
	idct8x8(&coeffs, &out)
	for i, p := range out {
		if p != 128 {
			t.Fatalf("pixel %d = %d, want 128", i, p)
		}
	}
}

func TestIDCTAllZero(t *testing.T) {
	var coeffs [64]int32
	var out [64]byte
	idct8x8(&coeffs, &out)
	for i, p := range out {
		if p != 128 {
			t.Fatalf("pixel %d = %d, want 128", i, p)
		}
	}
}

func TestIDCTDCSaturatesAtExtremes(t *testing.T) {
	var coeffs [64]int32
	coeffs[0] = 10000 // large positive DC, should saturate output to 255
	var out [64]byte
	idct8x8(&coeffs, &out)
	for i, p := range out {
		if p != 255 {
			t.Fatalf("pixel %d = %d, want 255 (saturated)", i, p)
		}
	}

	// idct8x8 transforms coeffs in place, so start again from a DC-only block.
	coeffs = [64]int32{}
	coeffs[0] = -10000
	idct8x8(&coeffs, &out)
	for i, p := range out {
		if p != 0 {
			t.Fatalf("pixel %d = %d, want 0 (saturated)", i, p)
		}
	}
}

func TestZigzagRoundTrip(t *testing.T) {
	seen := make(map[int]bool)
	for _, pos := range izigzag {
		if pos < 0 || pos > 63 {
			t.Fatalf("izigzag entry %d out of range", pos)
		}
		if seen[pos] {
			t.Fatalf("izigzag entry %d repeated", pos)
		}
		seen[pos] = true
	}
	if len(seen) != 64 {
		t.Fatalf("izigzag covers %d positions, want 64", len(seen))
	}
	// Position 0 (DC) must map to natural position 0 under any valid
	// zig-zag ordering.
	if izigzag[0] != 0 {
		t.Fatalf("izigzag[0] = %d, want 0", izigzag[0])
	}
}

func TestClampToByte(t *testing.T) {
	cases := []struct {
		in   int32
		want byte
	}{
		{-1, 0},
		{0, 0},
		{128, 128},
		{255, 255},
		{256, 255},
		{-1000, 0},
		{1000, 255},
	}
	for _, c := range cases {
		if got := clampToByte(c.in); got != c.want {
			t.Errorf("clampToByte(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
