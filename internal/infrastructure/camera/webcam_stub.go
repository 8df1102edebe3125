//go:build !gocv
// +build !gocv

package camera

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"snapvision/internal/domain/entity"
	"snapvision/internal/domain/port"
)

// Webcam — заглушка для сборки без OpenCV.
type Webcam struct {
	deviceID int
	logger   *zap.Logger
}

// NewWebcam создаёт камеру-заглушку (без OpenCV).
func NewWebcam(deviceID int, logger *zap.Logger) *Webcam {
	return &Webcam{deviceID: deviceID, logger: logger.Named("webcam")}
}

// Capture возвращает ошибку, если сборка без тега gocv.
func (c *Webcam) Capture(ctx context.Context) (*entity.CapturedImage, error) {
	_ = ctx
	return nil, errors.New("gocv build tag is not enabled")
}

var _ port.Camera = (*Webcam)(nil)
