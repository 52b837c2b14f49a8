package container

import (
	app "pomelo-bot/internal/application"
	"pomelo-bot/internal/domain/entity"
	"pomelo-bot/internal/domain/port"
)

// Container wires the application services together.
type Container struct {
	Analysis *app.AnalysisService
	Router   *app.Router
}

// New builds the container. detector may be nil when the model failed to
// load; the services then run in degraded mode.
func New(detector port.DiseaseDetector, messenger port.Messenger, content port.ContentProvider, classes entity.ClassTable, welcomeImageURL string) *Container {
	analysis := app.NewAnalysisService(detector, classes)
	router := app.NewRouter(messenger, content, analysis, welcomeImageURL)

	return &Container{
		Analysis: analysis,
		Router:   router,
	}
}
