package app

import (
	"context"

	"waterseg-bot/internal/domain/entity"
)

type fakeReader struct {
	stack *entity.RasterStack
	err   error
	calls int
}

func (r *fakeReader) Read(ctx context.Context, path string) (*entity.RasterStack, error) {
	r.calls++
	return r.stack, r.err
}

type fakeSegmenter struct {
	output *entity.Tensor
	err    error
	input  *entity.Tensor
}

func (s *fakeSegmenter) Infer(ctx context.Context, input *entity.Tensor) (*entity.Tensor, error) {
	s.input = input
	return s.output, s.err
}

type fakeLabels struct {
	mask *entity.GroundTruthMask
	err  error
	path string
}

func (l *fakeLabels) Load(ctx context.Context, path string) (*entity.GroundTruthMask, bool, error) {
	l.path = path
	return l.mask, l.mask != nil, l.err
}

type fakeRenderer struct {
	panels []entity.Panel
	err    error
}

func (r *fakeRenderer) Render(ctx context.Context, panels []entity.Panel) ([]byte, error) {
	r.panels = panels
	if r.err != nil {
		return nil, r.err
	}
	return []byte("\x89PNG fake"), nil
}

// constantStack снимок из bands каналов, канал n заполнен значением fill(n).
func constantStack(w, h, bands int, fill func(n int) float32) *entity.RasterStack {
	stack := &entity.RasterStack{Width: w, Height: h}
	for n := 1; n <= bands; n++ {
		band := make([]float32, w*h)
		for i := range band {
			band[i] = fill(n)
		}
		stack.Bands = append(stack.Bands, band)
	}
	return stack
}

// patternStack снимок с разными неоднородными узорами в каждом канале.
func patternStack(w, h, bands int) *entity.RasterStack {
	stack := &entity.RasterStack{Width: w, Height: h}
	for n := 1; n <= bands; n++ {
		band := make([]float32, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				band[y*w+x] = float32(n*10+(x*(n+1)+y*(13-n)+x*y)%97) + 1
			}
		}
		stack.Bands = append(stack.Bands, band)
	}
	return stack
}

func testConfig(size int) entity.PipelineConfig {
	cfg := entity.DefaultPipelineConfig()
	cfg.TargetWidth = size
	cfg.TargetHeight = size
	return cfg
}

// probTensor выход модели (1, 1, h, w) с вероятностями из fill.
func probTensor(h, w int, fill func(x, y int) float32) *entity.Tensor {
	data := make([]float32, h*w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			data[y*w+x] = fill(x, y)
		}
	}
	return &entity.Tensor{Shape: []int64{1, 1, int64(h), int64(w)}, Data: data}
}
