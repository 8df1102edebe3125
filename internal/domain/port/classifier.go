package port

import (
	"context"

	"snapvision/internal/domain/entity"
)

// Classifier — интерфейс обученной модели классификации изображений.
type Classifier interface {
	// Load загружает модель. Вызывается ровно один раз при старте процесса.
	Load(ctx context.Context) error

	// Ready сообщает, завершилась ли загрузка. Меняется один раз: false → true.
	Ready() bool

	// Classify прогоняет тензор через модель и возвращает неупорядоченный
	// набор меток с вероятностями. Требует Ready() == true.
	Classify(ctx context.Context, tensor *entity.Tensor) ([]entity.Prediction, error)
}
