package port

import (
	"context"

	"waterseg-bot/internal/domain/entity"
)

// CompositeRenderer интерфейс отрисовки панелей в одну картинку
type CompositeRenderer interface {
	// Render раскладывает панели в ряд и возвращает PNG
	Render(ctx context.Context, panels []entity.Panel) ([]byte, error)
}
