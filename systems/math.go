package systems

import "math"

// satAdd32 adds without wrapping, clamping at the int32 limits.
func satAdd32(a, b int32) int32 {
	return clampInt64(int64(a) + int64(b))
}

// satSub32 subtracts without wrapping, clamping at the int32 limits.
func satSub32(a, b int32) int32 {
	return clampInt64(int64(a) - int64(b))
}

func clampInt64(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

// toInt32Sat truncates toward zero, saturating out-of-range values and
// mapping NaN to zero.
func toInt32Sat(f float32) int32 {
	switch {
	case f != f:
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}

// isFinite reports whether f is neither NaN nor infinite.
func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

// magnitude returns |(x, y)| computed in float64.
func magnitude(x, y float32) float32 {
	return float32(math.Sqrt(float64(x)*float64(x) + float64(y)*float64(y)))
}
