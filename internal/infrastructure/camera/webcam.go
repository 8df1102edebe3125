//go:build gocv
// +build gocv

package camera

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"snapvision/internal/domain/entity"
	"snapvision/internal/domain/port"
)

// Webcam снимает кадры с физической камеры через OpenCV.
type Webcam struct {
	deviceID int
	logger   *zap.Logger
}

// NewWebcam создаёт камеру для указанного устройства.
func NewWebcam(deviceID int, logger *zap.Logger) *Webcam {
	return &Webcam{deviceID: deviceID, logger: logger.Named("webcam")}
}

// Capture открывает устройство, читает один кадр и декодирует его.
func (c *Webcam) Capture(ctx context.Context) (*entity.CapturedImage, error) {
	device, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", c.deviceID, err)
	}
	defer device.Close()

	mat := gocv.NewMat()
	defer mat.Close()

	if ok := device.Read(&mat); !ok || mat.Empty() {
		return nil, errors.New("camera returned an empty frame")
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("decode camera frame: %w", err)
	}
	c.logger.Info("captured from webcam", zap.Int("device", c.deviceID))

	return entity.NewCapturedImage(img, fmt.Sprintf("webcam:%d", c.deviceID)), nil
}

var _ port.Camera = (*Webcam)(nil)
