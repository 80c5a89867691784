package entity

import (
	"errors"
	"fmt"
)

// FeatureChannels число каналов входа модели.
const FeatureChannels = 9

// BandSelection номера каналов снимка (с 1) в раскладке Sentinel-2.
type BandSelection struct {
	Blue  int
	Green int
	Red   int
	NIR   int // B8
	SWIR1 int // B11
	SWIR2 int // B12
}

// Max возвращает наибольший номер канала, то есть минимально нужное число каналов.
func (b BandSelection) Max() int {
	return max(b.Blue, b.Green, b.Red, b.NIR, b.SWIR1, b.SWIR2)
}

func (b BandSelection) list() []int {
	return []int{b.Blue, b.Green, b.Red, b.NIR, b.SWIR1, b.SWIR2}
}

// PipelineConfig параметры подготовки признаков и визуализации.
type PipelineConfig struct {
	Bands         BandSelection
	TargetWidth   int
	TargetHeight  int
	Epsilon       float64
	MaskThreshold float64

	LabelsDir string
	LabelExt  string

	// Веса смешивания исходного RGB и подсветки.
	BlendBase      float64
	BlendHighlight float64
	// Каналы тензора, которые идут в R, G, B картинки.
	DisplayChannels [3]int

	FigureWidth  float64 // дюймы
	FigureHeight float64 // дюймы
	FigureDPI    int
}

// DefaultPipelineConfig возвращает параметры, на которых обучалась модель.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Bands: BandSelection{
			Blue:  2,
			Green: 3,
			Red:   4,
			NIR:   8,
			SWIR1: 11,
			SWIR2: 12,
		},
		TargetWidth:     128,
		TargetHeight:    128,
		Epsilon:         1e-7,
		MaskThreshold:   0.5,
		LabelsDir:       "data/labels",
		LabelExt:        ".png",
		BlendBase:       0.6,
		BlendHighlight:  0.4,
		DisplayChannels: [3]int{0, 1, 2},
		FigureWidth:     24,
		FigureHeight:    8,
		FigureDPI:       150,
	}
}

// InputShape форма входного тензора модели.
func (c PipelineConfig) InputShape() []int64 {
	return []int64{1, FeatureChannels, int64(c.TargetHeight), int64(c.TargetWidth)}
}

// OutputShape ожидаемая форма выхода модели.
func (c PipelineConfig) OutputShape() []int64 {
	return []int64{1, 1, int64(c.TargetHeight), int64(c.TargetWidth)}
}

// Validate проверяет согласованность параметров.
func (c PipelineConfig) Validate() error {
	for _, n := range c.Bands.list() {
		if n < 1 {
			return fmt.Errorf("band numbers are 1-based, got %d", n)
		}
	}
	if c.TargetWidth <= 0 || c.TargetHeight <= 0 {
		return fmt.Errorf("invalid target size %dx%d", c.TargetWidth, c.TargetHeight)
	}
	if c.Epsilon <= 0 {
		return errors.New("epsilon must be positive")
	}
	if c.BlendBase < 0 || c.BlendHighlight < 0 {
		return errors.New("blend weights must not be negative")
	}
	for _, ch := range c.DisplayChannels {
		if ch < 0 || ch >= FeatureChannels {
			return fmt.Errorf("display channel %d out of range", ch)
		}
	}
	if c.FigureWidth <= 0 || c.FigureHeight <= 0 || c.FigureDPI <= 0 {
		return errors.New("invalid figure size")
	}
	return nil
}
