//go:build !gocv
// +build !gocv

package vision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResize_SameSizeCopies(t *testing.T) {
	src := []float32{1, 2, 3, 4}
	out, err := NewResizer().Resize(src, 2, 2, 2, 2)
	require.NoError(t, err)
	require.Equal(t, src, out)

	out[0] = 42
	require.Equal(t, float32(1), src[0])
}

func TestResize_Constant(t *testing.T) {
	src := make([]float32, 7*5)
	for i := range src {
		src[i] = 3.5
	}
	out, err := NewResizer().Resize(src, 7, 5, 16, 16)
	require.NoError(t, err)
	require.Len(t, out, 256)
	for _, v := range out {
		require.InDelta(t, 3.5, v, 1e-6)
	}
}

func TestResize_DownscaleByTwoAveragesPairs(t *testing.T) {
	// 4x1 -> 2x1: центры 0.5 и 2.5, то есть среднее соседних пар
	src := []float32{0, 2, 4, 6}
	out, err := NewResizer().Resize(src, 4, 1, 2, 1)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float32{1, 5}, out, 1e-6)
}

func TestResize_UpscaleClampsEdges(t *testing.T) {
	src := []float32{0, 4}
	out, err := NewResizer().Resize(src, 2, 1, 4, 1)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float32{0, 1, 3, 4}, out, 1e-6)
}

func TestResize_InvalidInput(t *testing.T) {
	_, err := NewResizer().Resize([]float32{1, 2, 3}, 2, 2, 4, 4)
	require.Error(t, err)

	_, err = NewResizer().Resize([]float32{1}, 1, 1, 0, 4)
	require.Error(t, err)
}
