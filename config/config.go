package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"waterseg-bot/internal/domain/entity"
)

type Config struct {
	TelegramToken string

	ModelPath       string
	OrtLibraryPath  string
	ModelInputName  string
	ModelOutputName string

	LogLevel  string
	LogFormat string

	Pipeline entity.PipelineConfig
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		ModelPath:       getEnv("MODEL_PATH", "models/water_seg.onnx"),
		OrtLibraryPath:  os.Getenv("ONNXRUNTIME_LIB"),
		ModelInputName:  os.Getenv("MODEL_INPUT_NAME"),
		ModelOutputName: os.Getenv("MODEL_OUTPUT_NAME"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "console"),
		Pipeline:        entity.DefaultPipelineConfig(),
	}

	p := &cfg.Pipeline
	p.LabelsDir = getEnv("LABELS_DIR", p.LabelsDir)

	size, err := getInt("TARGET_SIZE", p.TargetWidth)
	if err != nil {
		return nil, err
	}
	p.TargetWidth, p.TargetHeight = size, size

	if p.FigureDPI, err = getInt("FIGURE_DPI", p.FigureDPI); err != nil {
		return nil, err
	}
	if p.MaskThreshold, err = getFloat("MASK_THRESHOLD", p.MaskThreshold); err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
