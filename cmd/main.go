package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"waterseg-bot/config"
	telegram "waterseg-bot/internal/api"
	"waterseg-bot/internal/container"
	"waterseg-bot/internal/infrastructure/inference"
	"waterseg-bot/internal/infrastructure/raster"
	"waterseg-bot/internal/infrastructure/storage"
	"waterseg-bot/internal/logger"
)

func main() {
	rasterPath := flag.String("raster", "", "process a single raster and print the data URI instead of running the bot")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	// Модель сегментации
	session, err := inference.NewSession(inference.SessionConfig{
		ModelPath:   cfg.ModelPath,
		LibraryPath: cfg.OrtLibraryPath,
		InputName:   cfg.ModelInputName,
		OutputName:  cfg.ModelOutputName,
		InputShape:  cfg.Pipeline.InputShape(),
		OutputShape: cfg.Pipeline.OutputShape(),
	})
	if err != nil {
		logg.Fatal().Err(err).Str("model", cfg.ModelPath).Msg("failed to load model")
	}
	defer session.Close()

	// Собираем сервисы приложения
	appContainer := container.New(cfg.Pipeline, container.Deps{
		Users:     storage.NewMemoryUserRepository(),
		Reader:    raster.NewReader(),
		Segmenter: session,
	}, logg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *rasterPath != "" {
		if err := processOnce(ctx, appContainer, *rasterPath); err != nil {
			logg.Error().Err(err).Str("raster", *rasterPath).Msg("segmentation failed")
			stop()
			session.Close()
			os.Exit(1)
		}
		return
	}

	if cfg.TelegramToken == "" {
		logg.Fatal().Msg("TELEGRAM_TOKEN is required")
	}

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer.UserService, appContainer.SegmentationService, logg)
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to create bot")
	}

	logg.Info().Str("model", cfg.ModelPath).Str("labels", cfg.Pipeline.LabelsDir).Msg("bot is running")
	if err := bot.Run(ctx); err != nil {
		logg.Error().Err(err).Msg("bot error")
	}
}

// processOnce обрабатывает один снимок и печатает data URI в stdout
func processOnce(ctx context.Context, c *container.Container, rasterPath string) error {
	result, err := c.SegmentationService.Process(ctx, rasterPath)
	if err != nil {
		return err
	}
	_, err = fmt.Println(result.EncodedImage)
	return err
}
