package entity

import "fmt"

// Tensor плотный float32 тензор в раскладке NCHW.
// После создания не изменяется: модули только читают Data.
type Tensor struct {
	Shape []int64
	Data  []float32
}

// NewTensor создаёт тензор и проверяет, что размер данных совпадает с формой.
func NewTensor(shape []int64, data []float32) (*Tensor, error) {
	t := &Tensor{Shape: append([]int64(nil), shape...), Data: data}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate сверяет длину данных с произведением размерностей.
func (t *Tensor) Validate() error {
	n := int64(1)
	for _, d := range t.Shape {
		if d <= 0 {
			return fmt.Errorf("invalid tensor shape %v", t.Shape)
		}
		n *= d
	}
	if int64(len(t.Data)) != n {
		return fmt.Errorf("tensor shape %v needs %d values, got %d", t.Shape, n, len(t.Data))
	}
	return nil
}

// Spatial возвращает высоту и ширину (две последние размерности) 4D тензора.
func (t *Tensor) Spatial() (h, w int, ok bool) {
	if len(t.Shape) != 4 {
		return 0, 0, false
	}
	return int(t.Shape[2]), int(t.Shape[3]), true
}

// Channel возвращает срез канала c элемента батча n. Срез только для чтения.
func (t *Tensor) Channel(n, c int) []float32 {
	h, w, ok := t.Spatial()
	if !ok || n < 0 || int64(n) >= t.Shape[0] || c < 0 || int64(c) >= t.Shape[1] {
		return nil
	}
	plane := h * w
	start := (n*int(t.Shape[1]) + c) * plane
	return t.Data[start : start+plane : start+plane]
}
