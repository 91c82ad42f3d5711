package handlers

import (
	"blogpost-generator/domain/services"
	"blogpost-generator/pkg/config"
	"blogpost-generator/pkg/scheduler"
)

// Services contains all the services needed for handlers
type Services struct {
	GenerationService services.GenerationService
	SessionService    services.SessionService
}

// Infrastructure is what the health endpoint reports on. Redis is nil when not configured.
type Infrastructure struct {
	Redis     Pinger
	Scheduler scheduler.EventScheduler
	Provider  string
}

// Handlers contains all HTTP handlers
type Handlers struct {
	OptionsHandler *OptionsHandler
	ArticleHandler *ArticleHandler
	SessionHandler *SessionHandler
	HealthHandler  *HealthHandler
	LogHandler     *LogHandler

	// Short accessors for routes
	Options *OptionsHandler
	Article *ArticleHandler
	Session *SessionHandler
	Health  *HealthHandler
	Log     *LogHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services, infra *Infrastructure, cfg *config.Config) *Handlers {
	optionsHandler := NewOptionsHandler()
	articleHandler := NewArticleHandler(services.GenerationService)
	sessionHandler := NewSessionHandler(services.SessionService)
	healthHandler := NewHealthHandler(services.SessionService, infra)
	logHandler := NewLogHandler(cfg)

	return &Handlers{
		OptionsHandler: optionsHandler,
		ArticleHandler: articleHandler,
		SessionHandler: sessionHandler,
		HealthHandler:  healthHandler,
		LogHandler:     logHandler,

		Options: optionsHandler,
		Article: articleHandler,
		Session: sessionHandler,
		Health:  healthHandler,
		Log:     logHandler,
	}
}
