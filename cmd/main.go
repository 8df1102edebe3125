package main

import (
	"context"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"snapvision/config"
	telegram "snapvision/internal/api"
	"snapvision/internal/container"
	"snapvision/internal/domain/port"
	"snapvision/internal/infrastructure/camera"
	"snapvision/internal/infrastructure/onnx"
	"snapvision/internal/infrastructure/permission"
	"snapvision/internal/infrastructure/vision"
	"snapvision/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if cfg.TelegramToken == "" {
		logger.Fatal("TELEGRAM_TOKEN is required")
	}

	if err := onnx.InitEnvironment(cfg.OnnxLibPath); err != nil {
		logger.Fatal("failed to initialize ONNX Runtime environment", zap.Error(err))
	}
	defer onnx.DestroyEnvironment()

	classifier := onnx.NewClassifier(cfg.ModelPath, cfg.LabelsPath, logger)
	defer classifier.Close()

	var cam port.Camera
	if cfg.CameraDevice >= 0 {
		cam = camera.NewWebcam(cfg.CameraDevice, logger)
	} else {
		cam = camera.NewFileCamera(cfg.CameraDir, logger)
	}
	perms := permission.New(cfg.PermissionDeny)
	normalizer := vision.NewNormalizer()

	appContainer := container.New(classifier, normalizer, cam, perms, logger)

	// Модель грузится асинхронно: сессия остаётся в Loading, пока загрузка
	// не завершится, а при ошибке съёмка не включится никогда.
	go appContainer.SessionService.LoadModel(ctx)

	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer.SessionService, logger)
	if err != nil {
		logger.Fatal("failed to create bot", zap.Error(err))
	}

	logger.Info("bot is running")
	if err := bot.Run(ctx); err != nil {
		logger.Fatal("bot error", zap.Error(err))
	}
	logger.Info("shutting down")
}
