package container

import (
	"go.uber.org/zap"

	app "snapvision/internal/application"
	"snapvision/internal/domain/port"
)

type Container struct {
	Pipeline       *app.Pipeline
	SessionService *app.SessionService
}

func New(classifier port.Classifier, normalizer port.Normalizer, camera port.Camera, perms port.PermissionProvider, logger *zap.Logger) *Container {
	pipeline := app.NewPipeline(normalizer, classifier, logger)
	sessionService := app.NewSessionService(pipeline, classifier, camera, perms, logger)

	return &Container{
		Pipeline:       pipeline,
		SessionService: sessionService,
	}
}
