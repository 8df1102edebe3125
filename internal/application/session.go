package app

import (
	"context"

	"go.uber.org/zap"

	"snapvision/internal/domain/entity"
	"snapvision/internal/domain/port"
)

// SessionService управляет жизненным циклом сессии: загрузкой модели,
// разрешением на камеру, съёмкой и запуском пайплайна.
type SessionService struct {
	session    *entity.Session
	pipeline   *Pipeline
	classifier port.Classifier
	camera     port.Camera
	perms      port.PermissionProvider
	logger     *zap.Logger
}

// NewSessionService создаёт сервис с сессией в состоянии Loading.
func NewSessionService(pipeline *Pipeline, classifier port.Classifier, camera port.Camera, perms port.PermissionProvider, logger *zap.Logger) *SessionService {
	return &SessionService{
		session:    entity.NewSession(),
		pipeline:   pipeline,
		classifier: classifier,
		camera:     camera,
		perms:      perms,
		logger:     logger.Named("session"),
	}
}

// Subscribe подписывает получателя на срезы сессии.
func (s *SessionService) Subscribe(fn func(entity.Snapshot)) {
	s.session.Subscribe(fn)
}

// Snapshot возвращает текущий срез сессии.
func (s *SessionService) Snapshot() entity.Snapshot {
	return s.session.Snapshot()
}

// LoadModel загружает модель и отмечает сессию готовой. При ошибке загрузки
// сессия навсегда остаётся в Loading: съёмка будет отклоняться до конца
// работы процесса. Предназначен для запуска в отдельной горутине из main.
func (s *SessionService) LoadModel(ctx context.Context) {
	if err := s.classifier.Load(ctx); err != nil {
		s.logger.Error("model load failed, capture stays disabled", zap.Error(err))
		return
	}
	s.logger.Info("model loaded")
	s.session.SetModelReady()
}

// RequestPermission запрашивает разрешение на камеру и при успехе
// открывает сессии путь в Ready.
func (s *SessionService) RequestPermission(ctx context.Context) error {
	if !s.perms.Request(ctx) {
		s.logger.Warn("camera permission denied")
		return entity.ErrPermissionDenied
	}
	s.session.GrantPermission()
	return nil
}

// Capture выполняет полный цикл: Ready → Capturing → Classifying →
// ResultsShown. Повторный вызов во время незавершённого цикла отклоняется
// конечным автоматом — одновременно выполняется не более одного прогона.
// Ошибка камеры отбрасывает кадр и возвращает сессию в Ready.
func (s *SessionService) Capture(ctx context.Context) error {
	if err := s.session.BeginCapture(); err != nil {
		s.logger.Warn("capture rejected",
			zap.String("state", string(s.session.State())),
			zap.Error(err))
		return err
	}

	img, err := s.camera.Capture(ctx)
	if err != nil {
		s.logger.Warn("camera capture failed", zap.Error(err))
		s.session.CaptureFailed()
		return err
	}
	s.logger.Info("image captured",
		zap.String("source", img.Source),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height))

	if err := s.session.BeginClassify(); err != nil {
		return err
	}
	result := s.pipeline.Run(ctx, img)
	return s.session.ShowResults(result)
}

// Reset очищает показанный результат и возвращает сессию в Ready.
// Во время классификации сброс отклоняется.
func (s *SessionService) Reset() error {
	if err := s.session.Reset(); err != nil {
		s.logger.Warn("reset rejected",
			zap.String("state", string(s.session.State())),
			zap.Error(err))
		return err
	}
	return nil
}
