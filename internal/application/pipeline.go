package app

import (
	"context"

	"go.uber.org/zap"

	"snapvision/internal/domain/entity"
	"snapvision/internal/domain/port"
)

// FailureMessage — текст заглушки, которую пайплайн возвращает вместо
// ранжированных меток при любой восстановимой ошибке.
const FailureMessage = "Error classifying image"

// Pipeline прогоняет снимок через нормализацию, инференс и ранжирование.
type Pipeline struct {
	normalizer port.Normalizer
	classifier port.Classifier
	logger     *zap.Logger
}

// NewPipeline создаёт пайплайн классификации.
func NewPipeline(normalizer port.Normalizer, classifier port.Classifier, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		normalizer: normalizer,
		classifier: classifier,
		logger:     logger.Named("pipeline"),
	}
}

// Run выполняет normalize → classify → rank → format. Ошибки любой стадии
// не выходят наружу: вместо падения возвращается одноэлементная заглушка,
// и сессия остаётся пригодной для нового снимка. Тензор освобождается на
// каждом пути выхода.
func (p *Pipeline) Run(ctx context.Context, img *entity.CapturedImage) entity.RankedResult {
	tensor, err := p.normalizer.Normalize(img)
	if err != nil {
		p.logger.Warn("normalization failed", zap.Error(err))
		return entity.Failure(FailureMessage)
	}
	defer tensor.Release()

	preds, err := p.classifier.Classify(ctx, tensor)
	if err != nil {
		p.logger.Warn("inference failed", zap.Error(err))
		return entity.Failure(FailureMessage)
	}

	return entity.Rank(preds, entity.MaxPredictions)
}
