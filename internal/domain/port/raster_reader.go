package port

import (
	"context"

	"waterseg-bot/internal/domain/entity"
)

// RasterReader интерфейс чтения многоканального снимка
type RasterReader interface {
	// Read читает все каналы снимка в float32.
	// Ошибки открытия и декодирования возвращаются как *entity.RasterReadError.
	Read(ctx context.Context, path string) (*entity.RasterStack, error)
}
