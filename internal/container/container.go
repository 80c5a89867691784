package container

import (
	"github.com/rs/zerolog"

	app "waterseg-bot/internal/application"
	"waterseg-bot/internal/domain/entity"
	"waterseg-bot/internal/domain/port"
	"waterseg-bot/internal/infrastructure/render"
	"waterseg-bot/internal/infrastructure/vision"
)

type Container struct {
	UserService         *app.UserService
	SegmentationService *app.SegmentationService
}

// Deps внешние адаптеры, которые собираются в main.
type Deps struct {
	Users     port.UserRepository
	Reader    port.RasterReader
	Segmenter port.Segmenter
}

func New(cfg entity.PipelineConfig, deps Deps, log zerolog.Logger) *Container {
	userService := app.NewUserService(deps.Users)

	features := app.NewFeatureBuilder(cfg, deps.Reader, vision.NewResizer(), log)
	compositor := app.NewResultCompositor(cfg,
		vision.NewLabelLoader(cfg.TargetWidth, cfg.TargetHeight, log),
		render.NewPlotRenderer(cfg.FigureWidth, cfg.FigureHeight, cfg.FigureDPI),
		log)
	segmentation := app.NewSegmentationService(userService, features, deps.Segmenter, compositor, log)

	return &Container{
		UserService:         userService,
		SegmentationService: segmentation,
	}
}
