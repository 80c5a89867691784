package entity

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNewPredictionMask_StrictThreshold(t *testing.T) {
	m := NewPredictionMask(2, 2, []float32{0.1, 0.5, 0.51, 0.9}, 0.5)
	want := []bool{false, false, true, true}
	if diff := cmp.Diff(want, m.Pixels); diff != "" {
		t.Fatalf("mask mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 2, m.Count())
	require.InDelta(t, 0.5, m.Fraction(), 1e-12)
	require.True(t, m.At(0, 1))
	require.False(t, m.At(1, 0))
}

func TestPredictionMask_Gray(t *testing.T) {
	m := NewPredictionMask(2, 1, []float32{1, 0}, 0.5)
	img := m.Gray()
	require.Equal(t, []uint8{255, 0}, img.Pix)
}

func TestPredictionMask_Compare(t *testing.T) {
	pred := &PredictionMask{Width: 4, Height: 1, Pixels: []bool{true, true, false, false}}
	truth := &PredictionMask{Width: 4, Height: 1, Pixels: []bool{true, false, true, false}}

	got := pred.Compare(truth)
	require.InDelta(t, 1.0/3.0, got.IoU, 1e-12)
	require.InDelta(t, 0.5, got.F1, 1e-12)
	require.InDelta(t, 0.5, got.Precision, 1e-12)
	require.InDelta(t, 0.5, got.Recall, 1e-12)
}

func TestPredictionMask_CompareEmpty(t *testing.T) {
	pred := &PredictionMask{Width: 2, Height: 1, Pixels: []bool{false, false}}
	got := pred.Compare(pred)
	require.Equal(t, MaskMetrics{IoU: 1, F1: 1, Precision: 1, Recall: 1}, got)
}

func TestGroundTruthMask_BinaryAndGray(t *testing.T) {
	gt := &GroundTruthMask{Width: 3, Height: 1, Pixels: []uint8{0, 100, 200}}
	require.Equal(t, []bool{false, false, true}, gt.Binary(127).Pixels)
	require.Equal(t, []uint8{0, 128, 255}, gt.Gray().Pix)

	zero := &GroundTruthMask{Width: 2, Height: 1, Pixels: []uint8{0, 0}}
	require.Equal(t, []uint8{0, 0}, zero.Gray().Pix)
}
