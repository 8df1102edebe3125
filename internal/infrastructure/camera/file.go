package camera

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/gen2brain/avif"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"snapvision/internal/domain/entity"
	"snapvision/internal/domain/port"
)

// FileCamera эмулирует камеру каталогом снимков: Capture берёт самый свежий
// файл изображения. Удобна для работы без OpenCV и в тестах.
type FileCamera struct {
	dir    string
	logger *zap.Logger
}

// NewFileCamera создаёт камеру над каталогом со снимками.
func NewFileCamera(dir string, logger *zap.Logger) *FileCamera {
	return &FileCamera{dir: dir, logger: logger.Named("file_camera")}
}

// Capture декодирует самый свежий по времени изменения файл каталога.
func (c *FileCamera) Capture(ctx context.Context) (*entity.CapturedImage, error) {
	path, err := c.newestImage()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode capture %s: %w", path, err)
	}
	c.logger.Info("captured from file",
		zap.String("path", path),
		zap.String("format", format))

	return entity.NewCapturedImage(img, path), nil
}

func (c *FileCamera) newestImage() (string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return "", fmt.Errorf("read capture dir %s: %w", c.dir, err)
	}

	var newest string
	var newestTime time.Time
	for _, e := range entries {
		if e.IsDir() || !isImageFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = filepath.Join(c.dir, e.Name())
			newestTime = info.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no image files in %s", c.dir)
	}
	return newest, nil
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".webp", ".avif":
		return true
	}
	return false
}

var _ port.Camera = (*FileCamera)(nil)
