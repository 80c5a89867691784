package port

import (
	"context"

	"waterseg-bot/internal/domain/entity"
)

// Segmenter интерфейс модели сегментации воды
type Segmenter interface {
	// Infer прогоняет входной тензор через модель и возвращает её выход
	Infer(ctx context.Context, input *entity.Tensor) (*entity.Tensor, error)
}
