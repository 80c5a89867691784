package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTensor_ValidatesLength(t *testing.T) {
	_, err := NewTensor([]int64{1, 2, 2, 2}, make([]float32, 7))
	require.Error(t, err)

	_, err = NewTensor([]int64{1, 0, 2, 2}, nil)
	require.Error(t, err)
}

func TestTensor_Channel(t *testing.T) {
	data := make([]float32, 2*3*2*2)
	for i := range data {
		data[i] = float32(i)
	}
	tensor, err := NewTensor([]int64{2, 3, 2, 2}, data)
	require.NoError(t, err)

	require.Equal(t, []float32{0, 1, 2, 3}, tensor.Channel(0, 0))
	require.Equal(t, []float32{20, 21, 22, 23}, tensor.Channel(1, 2))
	require.Nil(t, tensor.Channel(2, 0))
	require.Nil(t, tensor.Channel(0, 3))

	h, w, ok := tensor.Spatial()
	require.True(t, ok)
	require.Equal(t, 2, h)
	require.Equal(t, 2, w)
}

func TestRasterStack_BandAndValidate(t *testing.T) {
	r := &RasterStack{Width: 2, Height: 1, Bands: [][]float32{{1, 2}, {3, 4}}}
	require.NoError(t, r.Validate())
	require.Equal(t, 2, r.BandCount())

	b, ok := r.Band(2)
	require.True(t, ok)
	require.Equal(t, []float32{3, 4}, b)

	_, ok = r.Band(0)
	require.False(t, ok)
	_, ok = r.Band(3)
	require.False(t, ok)

	r.Bands = append(r.Bands, []float32{1})
	require.Error(t, r.Validate())
}

func TestErrors_As(t *testing.T) {
	base := errors.New("no such file")
	var err error = &RasterReadError{Path: "a.tif", Err: base}
	wrapped := errors.Join(errors.New("context"), err)

	var readErr *RasterReadError
	require.True(t, errors.As(wrapped, &readErr))
	require.Equal(t, "a.tif", readErr.Path)
	require.ErrorIs(t, err, base)

	err = &BandIndexError{Path: "a.tif", Required: 12, Available: 4}
	require.Contains(t, err.Error(), "need at least 12")

	err = &ShapeMismatchError{Expected: []int64{1, 1, 128, 128}, Actual: []int64{1, 1, 64, 64}}
	require.Contains(t, err.Error(), "[1 1 64 64]")
}

func TestPipelineConfig_Defaults(t *testing.T) {
	cfg := DefaultPipelineConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 12, cfg.Bands.Max())
	require.Equal(t, []int64{1, 9, 128, 128}, cfg.InputShape())
	require.Equal(t, []int64{1, 1, 128, 128}, cfg.OutputShape())
}

func TestPipelineConfig_Validate(t *testing.T) {
	cfg := DefaultPipelineConfig()
	cfg.Bands.NIR = 0
	require.Error(t, cfg.Validate())

	cfg = DefaultPipelineConfig()
	cfg.TargetWidth = 0
	require.Error(t, cfg.Validate())

	cfg = DefaultPipelineConfig()
	cfg.DisplayChannels = [3]int{0, 1, 9}
	require.Error(t, cfg.Validate())

	cfg = DefaultPipelineConfig()
	cfg.BlendHighlight = -1
	require.Error(t, cfg.Validate())
}
