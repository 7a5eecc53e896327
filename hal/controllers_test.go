package hal

import (
	"math"
	"testing"
)

func TestAxisToInt16(t *testing.T) {
	cases := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, math.MaxInt16},
		{1.5, math.MaxInt16},
		{-1, math.MinInt16},
		{-2, math.MinInt16},
		{0.5, 16383},
		{-0.5, -16384},
	}
	for _, tc := range cases {
		if got := axisToInt16(tc.in); got != tc.want {
			t.Fatalf("axisToInt16(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
