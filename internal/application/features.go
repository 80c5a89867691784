package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"waterseg-bot/internal/domain/entity"
	"waterseg-bot/internal/domain/port"
)

// FeatureBuilder готовит девятиканальный тензор для модели из снимка.
type FeatureBuilder struct {
	cfg     entity.PipelineConfig
	reader  port.RasterReader
	resizer port.ChannelResizer
	log     zerolog.Logger
}

// NewFeatureBuilder создаёт построитель признаков.
func NewFeatureBuilder(cfg entity.PipelineConfig, reader port.RasterReader, resizer port.ChannelResizer, log zerolog.Logger) *FeatureBuilder {
	return &FeatureBuilder{
		cfg:     cfg,
		reader:  reader,
		resizer: resizer,
		log:     log.With().Str("component", "features").Logger(),
	}
}

// Build читает снимок и возвращает тензор формы (1, 9, H, W).
// Порядок каналов: blue, green, red, nir, swir1, swir2, ndwi, mndwi, awei.
func (b *FeatureBuilder) Build(ctx context.Context, rasterPath string) (*entity.Tensor, error) {
	start := time.Now()

	stack, err := b.reader.Read(ctx, rasterPath)
	if err != nil {
		var readErr *entity.RasterReadError
		if errors.As(err, &readErr) {
			return nil, err
		}
		return nil, &entity.RasterReadError{Path: rasterPath, Err: err}
	}
	if err := stack.Validate(); err != nil {
		return nil, &entity.RasterReadError{Path: rasterPath, Err: err}
	}

	tensor, err := b.FromStack(ctx, rasterPath, stack)
	if err != nil {
		return nil, err
	}

	b.log.Debug().
		Str("raster", rasterPath).
		Int("width", stack.Width).
		Int("height", stack.Height).
		Int("bands", stack.BandCount()).
		Dur("elapsed", time.Since(start)).
		Msg("features built")
	return tensor, nil
}

// FromStack строит тензор из уже прочитанного снимка.
func (b *FeatureBuilder) FromStack(ctx context.Context, rasterPath string, stack *entity.RasterStack) (*entity.Tensor, error) {
	if required := b.cfg.Bands.Max(); stack.BandCount() < required {
		return nil, &entity.BandIndexError{Path: rasterPath, Required: required, Available: stack.BandCount()}
	}

	sel := b.cfg.Bands
	blue, _ := stack.Band(sel.Blue)
	green, _ := stack.Band(sel.Green)
	red, _ := stack.Band(sel.Red)
	nir, _ := stack.Band(sel.NIR)
	swir1, _ := stack.Band(sel.SWIR1)
	swir2, _ := stack.Band(sel.SWIR2)

	eps := float32(b.cfg.Epsilon)
	channels := [entity.FeatureChannels][]float32{
		blue, green, red, nir, swir1, swir2,
		NormalizedDifference(green, nir, eps),
		NormalizedDifference(green, swir1, eps),
		AutomatedWaterExtraction(green, nir, swir1),
	}

	w, h := b.cfg.TargetWidth, b.cfg.TargetHeight
	plane := w * h
	data := make([]float32, entity.FeatureChannels*plane)
	for c, ch := range channels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		resized, err := b.resizer.Resize(Standardize(ch, b.cfg.Epsilon), stack.Width, stack.Height, w, h)
		if err != nil {
			return nil, fmt.Errorf("resize channel %d: %w", c, err)
		}
		copy(data[c*plane:(c+1)*plane], resized)
	}

	return entity.NewTensor(b.cfg.InputShape(), data)
}

// Standardize приводит канал к нулевому среднему и единичному отклонению
// по генеральной совокупности: (x - mean) / (std + eps).
// Постоянный канал даёт значения около нуля, а не NaN.
func Standardize(ch []float32, eps float64) []float32 {
	xs := make([]float64, len(ch))
	for i, v := range ch {
		xs[i] = float64(v)
	}
	mean, std := stat.PopMeanStdDev(xs, nil)

	out := make([]float32, len(ch))
	denom := std + eps
	for i, v := range xs {
		out[i] = float32((v - mean) / denom)
	}
	return out
}
