package entity

import "image"

// PredictionMask бинарная маска воды в разрешении модели.
type PredictionMask struct {
	Width  int
	Height int
	Pixels []bool // построчно, true означает воду
}

// NewPredictionMask бинаризует карту вероятностей по порогу (строго больше).
func NewPredictionMask(width, height int, probs []float32, threshold float32) *PredictionMask {
	m := &PredictionMask{Width: width, Height: height, Pixels: make([]bool, width*height)}
	for i, p := range probs[:width*height] {
		m.Pixels[i] = p > threshold
	}
	return m
}

// At возвращает значение пикселя.
func (m *PredictionMask) At(x, y int) bool {
	return m.Pixels[y*m.Width+x]
}

// Count возвращает число пикселей воды.
func (m *PredictionMask) Count() int {
	n := 0
	for _, v := range m.Pixels {
		if v {
			n++
		}
	}
	return n
}

// Fraction доля пикселей воды в маске.
func (m *PredictionMask) Fraction() float64 {
	if len(m.Pixels) == 0 {
		return 0
	}
	return float64(m.Count()) / float64(len(m.Pixels))
}

// Gray рисует маску в оттенках серого: вода белая, фон чёрный.
func (m *PredictionMask) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Pixels {
		if v {
			img.Pix[i] = 255
		}
	}
	return img
}

// MaskMetrics метрики совпадения предсказания с разметкой.
type MaskMetrics struct {
	IoU       float64
	F1        float64
	Precision float64
	Recall    float64
}

// Compare считает метрики предсказания относительно эталонной маски.
// Пустые маски с обеих сторон считаются полным совпадением.
func (m *PredictionMask) Compare(truth *PredictionMask) MaskMetrics {
	var tp, fp, fn int
	for i, pred := range m.Pixels {
		actual := truth.Pixels[i]
		switch {
		case pred && actual:
			tp++
		case pred && !actual:
			fp++
		case !pred && actual:
			fn++
		}
	}
	if tp+fp+fn == 0 {
		return MaskMetrics{IoU: 1, F1: 1, Precision: 1, Recall: 1}
	}

	metrics := MaskMetrics{
		IoU: float64(tp) / float64(tp+fp+fn),
		F1:  2 * float64(tp) / float64(2*tp+fp+fn),
	}
	if tp+fp > 0 {
		metrics.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		metrics.Recall = float64(tp) / float64(tp+fn)
	}
	return metrics
}

// GroundTruthMask разметка в оттенках серого, уже приведённая к размеру модели.
type GroundTruthMask struct {
	Width  int
	Height int
	Pixels []uint8
}

// Binary переводит разметку в маску: пиксель ярче порога считается водой.
func (g *GroundTruthMask) Binary(threshold uint8) *PredictionMask {
	m := &PredictionMask{Width: g.Width, Height: g.Height, Pixels: make([]bool, len(g.Pixels))}
	for i, v := range g.Pixels {
		m.Pixels[i] = v > threshold
	}
	return m
}

// Gray растягивает разметку на полный диапазон яркости для показа.
// Постоянная разметка (например, вся нулевая) остаётся чёрной.
func (g *GroundTruthMask) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	lo, hi := uint8(255), uint8(0)
	for _, v := range g.Pixels {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi <= lo {
		return img
	}
	span := float64(hi - lo)
	for i, v := range g.Pixels {
		img.Pix[i] = uint8(float64(v-lo)*255/span + 0.5)
	}
	return img
}
