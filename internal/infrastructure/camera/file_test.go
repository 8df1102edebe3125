package camera

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
}

func TestFileCamera_CapturesNewestImage(t *testing.T) {
	dir := t.TempDir()

	old := filepath.Join(dir, "old.png")
	writePNG(t, old, 10, 10)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	writePNG(t, filepath.Join(dir, "fresh.png"), 1080, 1920)

	cam := NewFileCamera(dir, zap.NewNop())
	img, err := cam.Capture(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1080, img.Width)
	require.Equal(t, 1920, img.Height)
}

func TestFileCamera_EmptyDir(t *testing.T) {
	cam := NewFileCamera(t.TempDir(), zap.NewNop())
	_, err := cam.Capture(context.Background())
	require.Error(t, err)
}

func TestFileCamera_MissingDir(t *testing.T) {
	cam := NewFileCamera(filepath.Join(t.TempDir(), "nope"), zap.NewNop())
	_, err := cam.Capture(context.Background())
	require.Error(t, err)
}

func TestFileCamera_SkipsNonImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	cam := NewFileCamera(dir, zap.NewNop())
	_, err := cam.Capture(context.Background())
	require.Error(t, err)

	writePNG(t, filepath.Join(dir, "shot.png"), 4, 4)
	img, err := cam.Capture(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, img.Width)
}

func TestFileCamera_CorruptImage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not a png"), 0o644))

	cam := NewFileCamera(dir, zap.NewNop())
	_, err := cam.Capture(context.Background())
	require.Error(t, err)
}
