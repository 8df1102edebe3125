package vision

import (
	"fmt"

	"github.com/disintegration/imaging"

	"snapvision/internal/domain/entity"
	"snapvision/internal/domain/port"
)

// ImagingNormalizer приводит снимок к входному тензору модели.
type ImagingNormalizer struct{}

// NewNormalizer создаёт нормализатор.
func NewNormalizer() *ImagingNormalizer {
	return &ImagingNormalizer{}
}

// Normalize растягивает снимок ровно до 224×224 без сохранения пропорций —
// модель обучалась на сжатых входах, поэтому искажение здесь корректно.
// Результат — float32-буфер CHW (RGB) со значениями в [0,1].
func (n *ImagingNormalizer) Normalize(img *entity.CapturedImage) (*entity.Tensor, error) {
	if img == nil || img.Image == nil {
		return nil, fmt.Errorf("%w: no image data", entity.ErrNormalization)
	}
	b := img.Image.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("%w: zero-sized image %dx%d", entity.ErrNormalization, b.Dx(), b.Dy())
	}

	resized := imaging.Resize(img.Image, entity.TensorSize, entity.TensorSize, imaging.Lanczos)

	out := make([]float32, entity.TensorLen)
	rBase := 0
	gBase := entity.TensorSize * entity.TensorSize
	bBase := 2 * entity.TensorSize * entity.TensorSize

	for y := 0; y < entity.TensorSize; y++ {
		for x := 0; x < entity.TensorSize; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			out[rBase] = float32(r) / 65535.0
			out[gBase] = float32(g) / 65535.0
			out[bBase] = float32(b) / 65535.0
			rBase++
			gBase++
			bBase++
		}
	}

	return entity.NewTensor(out)
}

var _ port.Normalizer = (*ImagingNormalizer)(nil)
