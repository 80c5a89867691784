package port

import (
	"context"

	"waterseg-bot/internal/domain/entity"
)

// GroundTruthLoader интерфейс загрузки эталонной разметки
type GroundTruthLoader interface {
	// Load читает разметку и приводит её к размеру модели.
	// Если файла нет, возвращает ok == false без ошибки.
	Load(ctx context.Context, path string) (mask *entity.GroundTruthMask, ok bool, err error)
}
