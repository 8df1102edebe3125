package app

import (
	"context"
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"snapvision/internal/domain/entity"
)

type fakeNormalizer struct {
	err  error
	last *entity.Tensor
}

func (n *fakeNormalizer) Normalize(img *entity.CapturedImage) (*entity.Tensor, error) {
	if n.err != nil {
		return nil, n.err
	}
	tensor, err := entity.NewTensor(make([]float32, entity.TensorLen))
	if err != nil {
		return nil, err
	}
	n.last = tensor
	return tensor, nil
}

type fakeClassifier struct {
	preds   []entity.Prediction
	err     error
	ready   bool
	loadErr error
	block   chan struct{} // если задан, Classify ждёт закрытия канала
	calls   int
}

func (c *fakeClassifier) Load(ctx context.Context) error {
	if c.loadErr != nil {
		return c.loadErr
	}
	c.ready = true
	return nil
}

func (c *fakeClassifier) Ready() bool { return c.ready }

func (c *fakeClassifier) Classify(ctx context.Context, tensor *entity.Tensor) ([]entity.Prediction, error) {
	c.calls++
	if c.block != nil {
		<-c.block
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.preds, nil
}

func testImage() *entity.CapturedImage {
	return entity.NewCapturedImage(image.NewRGBA(image.Rect(0, 0, 1080, 1920)), "test")
}

func TestPipeline_RanksAndFormats(t *testing.T) {
	normalizer := &fakeNormalizer{}
	classifier := &fakeClassifier{
		ready: true,
		preds: []entity.Prediction{
			{Label: "dog", Probability: 0.05},
			{Label: "cat", Probability: 0.91},
			{Label: "fox", Probability: 0.02},
		},
	}
	p := NewPipeline(normalizer, classifier, zap.NewNop())

	result := p.Run(context.Background(), testImage())

	require.False(t, result.Failed)
	require.Equal(t, []string{"cat (91.00%)", "dog (5.00%)", "fox (2.00%)"}, result.Lines())
}

func TestPipeline_NormalizationFailurePlaceholder(t *testing.T) {
	normalizer := &fakeNormalizer{err: fmt.Errorf("%w: broken", entity.ErrNormalization)}
	classifier := &fakeClassifier{ready: true}
	p := NewPipeline(normalizer, classifier, zap.NewNop())

	result := p.Run(context.Background(), testImage())

	require.True(t, result.Failed)
	require.Equal(t, []string{"Error classifying image"}, result.Lines())
	require.Zero(t, classifier.calls)
}

func TestPipeline_InferenceFailurePlaceholder(t *testing.T) {
	normalizer := &fakeNormalizer{}
	classifier := &fakeClassifier{ready: true, err: fmt.Errorf("%w: bad tensor", entity.ErrInference)}
	p := NewPipeline(normalizer, classifier, zap.NewNop())

	result := p.Run(context.Background(), testImage())

	require.True(t, result.Failed)
	require.Equal(t, []string{"Error classifying image"}, result.Lines())
	// тензор освобождён несмотря на ошибку инференса
	require.True(t, normalizer.last.Released())
}

func TestPipeline_ReleasesTensorOnSuccess(t *testing.T) {
	normalizer := &fakeNormalizer{}
	classifier := &fakeClassifier{ready: true, preds: []entity.Prediction{{Label: "cat", Probability: 1}}}
	p := NewPipeline(normalizer, classifier, zap.NewNop())

	p.Run(context.Background(), testImage())
	require.True(t, normalizer.last.Released())
}
