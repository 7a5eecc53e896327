package hal

import "math"

// axisToInt16 maps [-1, 1] onto the signed 16-bit stick range.
func axisToInt16(v float64) int16 {
	if v >= 1 {
		return math.MaxInt16
	}
	if v <= -1 {
		return math.MinInt16
	}
	if v < 0 {
		return int16(v * 32768)
	}
	return int16(v * 32767)
}
