package core

import "testing"

func TestZero(t *testing.T) {
	buf := []float32{1, -2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
	Zero[float64](nil)
}
