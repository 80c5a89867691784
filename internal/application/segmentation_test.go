package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"waterseg-bot/internal/domain/entity"
	"waterseg-bot/internal/infrastructure/storage"
	"waterseg-bot/internal/infrastructure/vision"
)

type pipeline struct {
	reader    *fakeReader
	segmenter *fakeSegmenter
	labels    *fakeLabels
	renderer  *fakeRenderer
	users     *UserService
	service   *SegmentationService
}

func newPipeline(size int) *pipeline {
	cfg := testConfig(size)
	p := &pipeline{
		reader:    &fakeReader{stack: patternStack(40, 30, 12)},
		segmenter: &fakeSegmenter{output: probTensor(size, size, leftHalf(size))},
		labels:    &fakeLabels{},
		renderer:  &fakeRenderer{},
		users:     NewUserService(storage.NewMemoryUserRepository()),
	}
	features := NewFeatureBuilder(cfg, p.reader, vision.NewResizer(), zerolog.Nop())
	compositor := NewResultCompositor(cfg, p.labels, p.renderer, zerolog.Nop())
	p.service = NewSegmentationService(p.users, features, p.segmenter, compositor, zerolog.Nop())
	return p
}

func TestSegmentationService_Process(t *testing.T) {
	p := newPipeline(16)

	result, err := p.service.Process(context.Background(), "/tmp/scene.tif")
	require.NoError(t, err)

	require.Equal(t, []int64{1, 9, 16, 16}, p.segmenter.input.Shape)
	require.Equal(t, 1, p.reader.calls)
	require.Len(t, p.renderer.panels, 3)
	require.True(t, strings.HasPrefix(result.EncodedImage, "data:image/png;base64,"))
	require.InDelta(t, 0.5, result.Mask.Fraction(), 1e-12)
}

func TestSegmentationService_WrongOutputShape(t *testing.T) {
	p := newPipeline(16)
	p.segmenter.output = probTensor(8, 8, leftHalf(8))

	result, err := p.service.Process(context.Background(), "scene.tif")
	require.Nil(t, result)
	var shapeErr *entity.ShapeMismatchError
	require.True(t, errors.As(err, &shapeErr))
	require.Nil(t, p.renderer.panels)
}

func TestSegmentationService_Failures(t *testing.T) {
	p := newPipeline(16)
	p.reader.stack = patternStack(40, 30, 8)
	_, err := p.service.Process(context.Background(), "scene.tif")
	var bandErr *entity.BandIndexError
	require.True(t, errors.As(err, &bandErr))
	require.Nil(t, p.segmenter.input)

	p = newPipeline(16)
	inferErr := errors.New("session closed")
	p.segmenter.err = inferErr
	_, err = p.service.Process(context.Background(), "scene.tif")
	require.ErrorIs(t, err, inferErr)

	p = newPipeline(16)
	p.service.segmenter = nil
	_, err = p.service.Process(context.Background(), "scene.tif")
	require.Error(t, err)
	require.Zero(t, p.reader.calls)
}

func TestSegmentationService_ProcessForUserResetsState(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(16)

	_, err := p.users.BeginUpload(ctx, 7, 70)
	require.NoError(t, err)
	_, err = p.service.ProcessForUser(ctx, 7, 70, "scene.tif")
	require.NoError(t, err)

	user, err := p.users.Get(ctx, 7, 70)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)

	p.reader.err = errors.New("truncated file")
	_, err = p.users.BeginUpload(ctx, 7, 70)
	require.NoError(t, err)
	_, err = p.service.ProcessForUser(ctx, 7, 70, "scene.tif")
	var readErr *entity.RasterReadError
	require.True(t, errors.As(err, &readErr))

	user, err = p.users.Get(ctx, 7, 70)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}
