package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string
	ModelPath      string
	LabelsPath     string
	OnnxLibPath    string
	CameraDevice   int  // номер устройства для сборки с gocv; -1 — каталог файлов
	CameraDir      string
	PermissionDeny bool // эмуляция отказа в доступе к камере
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		ModelPath:      getEnv("MODEL_PATH", "models/model.onnx"),
		LabelsPath:     getEnv("LABELS_PATH", "models/labels.txt"),
		OnnxLibPath:    os.Getenv("ONNX_LIB_PATH"),
		CameraDevice:   getEnvInt("CAMERA_DEVICE", -1),
		CameraDir:      getEnv("CAMERA_DIR", "captures"),
		PermissionDeny: getEnvBool("PERMISSION_DENY", false),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
