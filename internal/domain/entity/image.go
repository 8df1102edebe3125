package entity

import (
	"fmt"
	"image"
)

// Параметры входного тензора модели: 224×224, три канала (RGB), порядок CHW.
const (
	TensorSize     = 224
	TensorChannels = 3
	TensorLen      = TensorChannels * TensorSize * TensorSize
)

// CapturedImage — снимок с камеры в исходном разрешении.
type CapturedImage struct {
	Image  image.Image // декодированные пиксели
	Source string      // откуда получен снимок (устройство, файл)
	Width  int
	Height int
}

// NewCapturedImage создаёт снимок и фиксирует его размеры.
func NewCapturedImage(img image.Image, source string) *CapturedImage {
	c := &CapturedImage{Image: img, Source: source}
	if img != nil {
		b := img.Bounds()
		c.Width = b.Dx()
		c.Height = b.Dy()
	}
	return c
}

// Tensor — плотный буфер пикселей фиксированной формы 224×224×3.
// Живёт только внутри одного прогона пайплайна и освобождается после инференса.
type Tensor struct {
	data []float32
}

// NewTensor оборачивает буфер, проверяя форму.
func NewTensor(data []float32) (*Tensor, error) {
	if len(data) != TensorLen {
		return nil, fmt.Errorf("%w: tensor has %d values, want %d", ErrNormalization, len(data), TensorLen)
	}
	return &Tensor{data: data}, nil
}

// Data возвращает буфер тензора. После Release возвращает nil.
func (t *Tensor) Data() []float32 {
	return t.data
}

// Release отпускает буфер. Повторный вызов безопасен.
func (t *Tensor) Release() {
	t.data = nil
}

// Released сообщает, был ли буфер отпущен.
func (t *Tensor) Released() bool {
	return t.data == nil
}
