package port

import (
	"snapvision/internal/domain/entity"
)

// Normalizer — интерфейс приведения снимка к входному тензору модели.
type Normalizer interface {
	// Normalize приводит снимок произвольного разрешения к тензору 224×224×3.
	// Операция чистая, для разных снимков безопасна к параллельному вызову.
	Normalize(img *entity.CapturedImage) (*entity.Tensor, error)
}
