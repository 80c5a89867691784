package entity

import (
	"image"
	"image/color"
)

// Panel одна подписанная картинка итоговой композиции.
type Panel struct {
	Title      string
	TitleColor color.Color
	Image      image.Image
}

// Composite результат визуализации одного снимка.
type Composite struct {
	EncodedImage string          // data:image/png;base64,...
	PNG          []byte          // та же картинка без кодирования
	Mask         *PredictionMask // бинарная маска для метрик
	Panels       []Panel
	Metrics      *MaskMetrics // nil, если разметки нет
}

// HasGroundTruth сообщает, была ли найдена разметка.
func (c *Composite) HasGroundTruth() bool {
	return c.Metrics != nil
}
