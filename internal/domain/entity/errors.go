package entity

import "errors"

// Ошибки доменного уровня. Пайплайн и сессия различают их через errors.Is.
var (
	// ErrModelLoad — модель не удалось загрузить; классификация недоступна до конца работы процесса.
	ErrModelLoad = errors.New("model load failed")

	// ErrModelNotReady — попытка классификации до завершения загрузки модели.
	ErrModelNotReady = errors.New("model is not ready")

	// ErrNormalization — изображение не удалось привести к входному тензору.
	ErrNormalization = errors.New("image normalization failed")

	// ErrInference — модель не смогла обработать тензор.
	ErrInference = errors.New("inference failed")

	// ErrPermissionDenied — доступ к камере не разрешён.
	ErrPermissionDenied = errors.New("camera permission denied")

	// ErrInvalidTransition — действие недопустимо в текущем состоянии сессии.
	ErrInvalidTransition = errors.New("invalid session transition")
)
