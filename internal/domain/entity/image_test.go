package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTensor_RejectsWrongShape(t *testing.T) {
	_, err := NewTensor(make([]float32, 100))
	require.ErrorIs(t, err, ErrNormalization)

	_, err = NewTensor(nil)
	require.ErrorIs(t, err, ErrNormalization)
}

func TestTensor_Release(t *testing.T) {
	tensor, err := NewTensor(make([]float32, TensorLen))
	require.NoError(t, err)
	require.False(t, tensor.Released())
	require.Len(t, tensor.Data(), TensorLen)

	tensor.Release()
	require.True(t, tensor.Released())
	require.Nil(t, tensor.Data())

	// повторный Release безопасен
	tensor.Release()
	require.True(t, tensor.Released())
}

func TestNewCapturedImage_RecordsDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1080, 1920))
	captured := NewCapturedImage(img, "test")

	require.Equal(t, 1080, captured.Width)
	require.Equal(t, 1920, captured.Height)
	require.Equal(t, "test", captured.Source)
}
