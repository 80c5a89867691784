package app

// NormalizedDifference считает индекс (a - b) / (a + b + eps) попиксельно.
// eps убирает деление на ноль на пустых и насыщенных пикселях.
func NormalizedDifference(a, b []float32, eps float32) []float32 {
	out := make([]float32, len(a))
	for i := range out {
		out[i] = (a[i] - b[i]) / (a[i] + b[i] + eps)
	}
	return out
}

// AutomatedWaterExtraction считает AWEI без деления:
// 4*(green - swir1) - (0.25*nir + 2.75*swir1).
func AutomatedWaterExtraction(green, nir, swir1 []float32) []float32 {
	out := make([]float32, len(green))
	for i := range out {
		diff := float32(4) * (green[i] - swir1[i])
		penalty := float32(0.25)*nir[i] + float32(2.75)*swir1[i]
		out[i] = diff - penalty
	}
	return out
}
