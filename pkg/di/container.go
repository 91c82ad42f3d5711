package di

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"blogpost-generator/application/generation"
	"blogpost-generator/application/serviceimpl"
	"blogpost-generator/domain/models"
	"blogpost-generator/domain/repositories"
	"blogpost-generator/domain/services"
	"blogpost-generator/infrastructure/cache"
	"blogpost-generator/infrastructure/gemini"
	"blogpost-generator/infrastructure/openai"
	"blogpost-generator/infrastructure/redis"
	websocketManager "blogpost-generator/infrastructure/websocket"
	"blogpost-generator/interfaces/api/handlers"
	"blogpost-generator/pkg/config"
	"blogpost-generator/pkg/logger"
	"blogpost-generator/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	Provider       services.AIProvider
	RedisStorage   *redis.Storage
	EventScheduler scheduler.EventScheduler

	// Repositories
	SessionRepository repositories.SessionRepository

	// Services
	Generator         *generation.Generator
	GenerationService services.GenerationService
	SessionService    services.SessionService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Startup("config_loaded", "Configuration loaded", map[string]interface{}{
		"provider": cfg.LLM.Provider,
		"env":      cfg.App.Env,
	})
	return nil
}

// initLogger moves logging to the configured directory.
func (c *Container) initLogger() error {
	if c.Config.Log.Dir == logger.Default().Dir() {
		return nil
	}
	if err := logger.Init(c.Config.Log.Dir, c.Config.Log.Console); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Startup("logger_init", "Logger initialized", map[string]interface{}{"dir": c.Config.Log.Dir})
	return nil
}

func (c *Container) initInfrastructure() error {
	switch c.Config.LLM.Provider {
	case config.ProviderOpenAI:
		client, err := openai.NewClient(c.Config.OpenAI.APIKey, c.Config.OpenAI.BaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		c.Provider = client
	default:
		client, err := gemini.NewGeminiClient(context.Background(), c.Config.Gemini.APIKey)
		if err != nil {
			return fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		c.Provider = client
	}
	logger.Startup("provider_initialized", "AI provider initialized", map[string]interface{}{"provider": c.Provider.Name()})

	// Redis only backs the rate limiter, so a failed connection is not fatal
	if c.Config.Redis.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		storage, err := redis.Connect(ctx, c.Config.Redis)
		if err != nil {
			logger.StartupWarn("redis_connection_failed", "Redis connection failed, rate limits stay in memory", map[string]interface{}{"error": err.Error()})
		} else {
			c.RedisStorage = storage
			logger.Startup("redis_connected", "Redis connected", map[string]interface{}{"addr": c.Config.Redis.Addr()})
		}
	}

	return nil
}

func (c *Container) initRepositories() error {
	c.SessionRepository = cache.NewSessionRepository(c.Config.Session.TTL)
	logger.Startup("repositories_initialized", "Repositories initialized", map[string]interface{}{"session_ttl": c.Config.Session.TTL.String()})
	return nil
}

func (c *Container) modelNames() (text, image string) {
	if c.Config.LLM.Provider == config.ProviderOpenAI {
		return c.Config.OpenAI.Model, c.Config.OpenAI.ImageModel
	}
	return c.Config.Gemini.Model, c.Config.Gemini.ImageModel
}

func (c *Container) initServices() error {
	textModel, imageModel := c.modelNames()
	c.Generator = generation.NewGenerator(c.Provider, generation.Options{
		TextModel:       textModel,
		ImageModel:      imageModel,
		ImageRatePerSec: c.Config.LLM.ImageRatePerSec,
		ImageBurst:      c.Config.LLM.ImageRequestBurst,
	})

	c.GenerationService = serviceimpl.NewGenerationService(c.Generator)
	c.SessionService = serviceimpl.NewSessionService(c.SessionRepository, c.Generator)

	// Every session change is pushed to the websocket room of that session
	c.SessionService.Subscribe(func(sessionID uuid.UUID, view *models.DisplayView) {
		websocketManager.Manager.BroadcastToRoom(sessionID.String(), websocketManager.MessageTypeState, view)
	})

	logger.Startup("services_initialized", "Services initialized", map[string]interface{}{
		"text_model":  textModel,
		"image_model": imageModel,
	})
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	err := c.EventScheduler.AddJob(scheduler.JobSessionSweep, c.Config.Session.SweepCron, func() {
		removed := c.SessionService.SweepExpired()
		if removed > 0 {
			logger.Scheduler("session_sweep_done", "Expired sessions removed", map[string]interface{}{
				"removed":   removed,
				"remaining": c.SessionService.Count(),
			})
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}

	if c.Config.Log.RetentionDays > 0 {
		err := c.EventScheduler.AddJob(scheduler.JobLogRetention, c.Config.Log.RetentionCron, func() {
			removed, err := logger.Default().PruneOlderThan(c.Config.Log.RetentionDays)
			if err != nil {
				logger.SchedulerError("log_retention_failed", "Log retention job failed", err, nil)
				return
			}
			if removed > 0 {
				logger.Scheduler("log_retention_done", "Old log files removed", map[string]interface{}{"removed": removed})
			}
		})
		if err != nil {
			logger.StartupWarn("log_retention_schedule_failed", "Failed to schedule log retention job", map[string]interface{}{"error": err.Error()})
		}
	}

	c.EventScheduler.Start()
	logger.Startup("scheduler_started", "Event scheduler started", nil)
	return nil
}

func (c *Container) Cleanup() error {
	logger.Startup("cleanup_started", "Starting cleanup", nil)

	if c.EventScheduler != nil {
		c.EventScheduler.Stop()
	}

	// Attempts still running write their result and log it
	if c.SessionService != nil {
		c.SessionService.Wait()
		logger.Startup("attempts_drained", "In-flight generation attempts finished", nil)
	}

	if c.RedisStorage != nil {
		if err := c.RedisStorage.Close(); err != nil {
			logger.StartupWarn("redis_close_failed", "Failed to close Redis connection", map[string]interface{}{"error": err.Error()})
		} else {
			logger.Startup("redis_closed", "Redis connection closed", nil)
		}
	}

	logger.Startup("cleanup_completed", "Cleanup completed", nil)
	logger.Default().Close()
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		GenerationService: c.GenerationService,
		SessionService:    c.SessionService,
	}
}

func (c *Container) GetHandlerInfrastructure() *handlers.Infrastructure {
	infra := &handlers.Infrastructure{
		Scheduler: c.EventScheduler,
		Provider:  c.Provider.Name(),
	}
	if c.RedisStorage != nil {
		infra.Redis = c.RedisStorage
	}
	return infra
}

// GetLimiterStorage returns nil when Redis is not in use so the limiter falls
// back to memory.
func (c *Container) GetLimiterStorage() fiber.Storage {
	if c.RedisStorage == nil {
		return nil
	}
	return c.RedisStorage
}
