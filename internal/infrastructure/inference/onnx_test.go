package inference

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompatible(t *testing.T) {
	require.True(t, compatible([]int64{1, 1, 128, 128}, []int64{1, 1, 128, 128}))
	require.True(t, compatible([]int64{-1, 1, 128, 128}, []int64{1, 1, 128, 128}))
	require.False(t, compatible([]int64{1, 1, 64, 64}, []int64{1, 1, 128, 128}))
	require.False(t, compatible([]int64{1, 128, 128}, []int64{1, 1, 128, 128}))
}
