package onnx

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"snapvision/internal/domain/entity"
)

func TestClassify_RejectedBeforeLoad(t *testing.T) {
	c := NewClassifier("missing.onnx", "missing.txt", zap.NewNop())
	require.False(t, c.Ready())

	tensor, err := entity.NewTensor(make([]float32, entity.TensorLen))
	require.NoError(t, err)

	_, err = c.Classify(context.Background(), tensor)
	require.ErrorIs(t, err, entity.ErrModelNotReady)
}

func TestLoad_MissingLabelsFile(t *testing.T) {
	c := NewClassifier("missing.onnx", filepath.Join(t.TempDir(), "nope.txt"), zap.NewNop())

	err := c.Load(context.Background())
	require.ErrorIs(t, err, entity.ErrModelLoad)
	require.False(t, c.Ready())

	// повторный вызов возвращает исход первого, загрузка не повторяется
	require.ErrorIs(t, c.Load(context.Background()), entity.ErrModelLoad)
}

func TestReadLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, os.WriteFile(path, []byte("cat\n\ndog\n  fox  \n"), 0o644))

	labels, err := readLabels(path)
	require.NoError(t, err)
	require.Equal(t, []string{"cat", "dog", "fox"}, labels)
}

func TestReadLabels_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0o644))

	_, err := readLabels(path)
	require.Error(t, err)
}

func TestSoftmax(t *testing.T) {
	probs := softmax([]float32{1, 2, 3})
	require.Len(t, probs, 3)

	var sum float32
	for _, p := range probs {
		sum += p
	}
	require.InDelta(t, 1.0, float64(sum), 1e-5)
	require.Greater(t, probs[2], probs[1])
	require.Greater(t, probs[1], probs[0])

	require.Nil(t, softmax(nil))
}
