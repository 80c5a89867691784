package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"waterseg-bot/internal/domain/entity"
	"waterseg-bot/internal/domain/port"
)

// SegmentationService прогоняет снимок через весь конвейер:
// признаки -> модель -> визуализация.
type SegmentationService struct {
	users      *UserService
	features   *FeatureBuilder
	segmenter  port.Segmenter
	compositor *ResultCompositor
	log        zerolog.Logger
}

// NewSegmentationService создаёт сервис сегментации.
func NewSegmentationService(users *UserService, features *FeatureBuilder, segmenter port.Segmenter, compositor *ResultCompositor, log zerolog.Logger) *SegmentationService {
	return &SegmentationService{
		users:      users,
		features:   features,
		segmenter:  segmenter,
		compositor: compositor,
		log:        log.With().Str("component", "segmentation").Logger(),
	}
}

// Process строит тензор, вызывает модель и собирает картинку.
// При любой ошибке частичный результат не возвращается.
func (s *SegmentationService) Process(ctx context.Context, rasterPath string) (*entity.Composite, error) {
	if s.segmenter == nil {
		return nil, errors.New("segmenter is not configured")
	}
	start := time.Now()

	input, err := s.features.Build(ctx, rasterPath)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	output, err := s.segmenter.Infer(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("inference: %w", err)
	}

	result, err := s.compositor.Compose(ctx, input, output, rasterPath)
	if err != nil {
		return nil, err
	}

	event := s.log.Info().
		Str("raster", rasterPath).
		Float64("water_fraction", result.Mask.Fraction()).
		Dur("elapsed", time.Since(start))
	if result.Metrics != nil {
		event = event.Float64("iou", result.Metrics.IoU).Float64("f1", result.Metrics.F1)
	}
	event.Msg("raster segmented")
	return result, nil
}

// ProcessForUser обрабатывает снимок пользователя и возвращает его в главное меню
// независимо от исхода.
func (s *SegmentationService) ProcessForUser(ctx context.Context, userID, chatID int64, rasterPath string) (*entity.Composite, error) {
	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		return nil, err
	}
	defer func() {
		if _, err := s.users.SetState(ctx, userID, chatID, entity.StateMainMenu); err != nil {
			s.log.Error().Err(err).Int64("user_id", userID).Msg("failed to reset user state")
		}
	}()
	return s.Process(ctx, rasterPath)
}
