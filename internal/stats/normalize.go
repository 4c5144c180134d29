package stats

import "math"

// NormalizeMode selects the scaling applied by Normalize.
type NormalizeMode string

const (
	MinMax       NormalizeMode = "min_max"
	DecimalScale NormalizeMode = "decimal"
)

// Normalize rescales a series for charting. Min-max maps onto [0,1]; decimal
// scaling divides by the smallest power of ten that bounds the series by 1.
// Degenerate input (single value, or all values equal) maps every value to 1
// so chart consumers never see a divide-by-zero artifact.
func Normalize(values []float64, mode NormalizeMode) []float64 {
	if len(values) == 0 {
		return nil
	}

	out := make([]float64, len(values))
	if degenerate(values) {
		for i := range out {
			out[i] = 1
		}
		return out
	}

	switch mode {
	case DecimalScale:
		maxAbs := 0.0
		for _, v := range values {
			maxAbs = math.Max(maxAbs, math.Abs(v))
		}
		scale := math.Pow(10, math.Ceil(math.Log10(maxAbs)))
		for i, v := range values {
			out[i] = v / scale
		}
	default:
		lo, hi := values[0], values[0]
		for _, v := range values[1:] {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		for i, v := range values {
			out[i] = (v - lo) / (hi - lo)
		}
	}
	return out
}

// NormalizeMap applies Normalize to a keyed series, preserving keys.
func NormalizeMap(values map[string]float64, mode NormalizeMode) map[string]float64 {
	if len(values) == 0 {
		return map[string]float64{}
	}
	keys := make([]string, 0, len(values))
	series := make([]float64, 0, len(values))
	for k, v := range values {
		keys = append(keys, k)
		series = append(series, v)
	}
	scaled := Normalize(series, mode)
	out := make(map[string]float64, len(values))
	for i, k := range keys {
		out[k] = scaled[i]
	}
	return out
}

func degenerate(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
