package port

import (
	"context"

	"snapvision/internal/domain/entity"
)

// Camera — интерфейс устройства съёмки.
type Camera interface {
	// Capture делает снимок. Ошибка устройства не фатальна:
	// кадр отбрасывается, сессия возвращается в Ready.
	Capture(ctx context.Context) (*entity.CapturedImage, error)
}
