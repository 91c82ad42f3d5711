package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"blogpost-generator/domain/services"
	wsmanager "blogpost-generator/infrastructure/websocket"
	"blogpost-generator/pkg/scheduler"
)

// Pinger is satisfied by the redis limiter storage.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	sessionService services.SessionService
	redis          Pinger
	scheduler      scheduler.EventScheduler
	provider       string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(sessionService services.SessionService, infra *Infrastructure) *HealthHandler {
	h := &HealthHandler{sessionService: sessionService}
	if infra != nil {
		h.redis = infra.Redis
		h.scheduler = infra.Scheduler
		h.provider = infra.Provider
	}
	return h
}

// ComponentHealth represents health status of a component
type ComponentHealth struct {
	Status  string `json:"status"` // "ok", "error", "unavailable"
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// DetailedHealthResponse represents detailed health check response
type DetailedHealthResponse struct {
	Status     string                     `json:"status"` // "healthy", "degraded"
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
	Metrics    *HealthMetrics             `json:"metrics"`
}

// HealthMetrics contains runtime counters
type HealthMetrics struct {
	Sessions         int                           `json:"sessions"`
	WebSocketClients int                           `json:"websocket_clients"`
	WebSocketRooms   int                           `json:"websocket_rooms"`
	Jobs             map[string]*scheduler.JobInfo `json:"jobs,omitempty"`
}

// Health is the liveness probe
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Server is running",
		"service": "Affiliate Blog Post Generator API",
	})
}

// DetailedHealth godoc
// @Summary Get detailed system health
// @Description Returns health of the AI provider, redis and the scheduler plus runtime counters
// @Tags Health
// @Produce json
// @Success 200 {object} DetailedHealthResponse
// @Router /health/detailed [get]
func (h *HealthHandler) DetailedHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	response := DetailedHealthResponse{
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentHealth),
		Metrics: &HealthMetrics{
			WebSocketClients: wsmanager.Manager.ClientCount(),
			WebSocketRooms:   wsmanager.Manager.RoomCount(),
		},
	}

	allHealthy := true

	response.Components["ai_provider"] = ComponentHealth{Status: "ok", Message: h.provider}

	redisHealth := h.checkRedis(ctx)
	response.Components["redis"] = redisHealth
	if redisHealth.Status == "error" {
		allHealthy = false
	}

	schedulerHealth := h.checkScheduler()
	response.Components["scheduler"] = schedulerHealth
	if schedulerHealth.Status == "error" {
		allHealthy = false
	}

	if h.sessionService != nil {
		response.Metrics.Sessions = h.sessionService.Count()
	}
	if h.scheduler != nil {
		response.Metrics.Jobs = h.scheduler.ListJobs()
	}

	response.Status = "healthy"
	if !allHealthy {
		response.Status = "degraded"
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *HealthHandler) checkRedis(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.redis == nil {
		return ComponentHealth{
			Status:  "unavailable",
			Message: "Redis not configured, rate limits are kept in memory",
		}
	}

	if err := h.redis.Ping(ctx); err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Redis ping failed: " + err.Error(),
		}
	}

	return ComponentHealth{
		Status:  "ok",
		Message: "Connected",
		Latency: time.Since(start).String(),
	}
}

func (h *HealthHandler) checkScheduler() ComponentHealth {
	if h.scheduler == nil {
		return ComponentHealth{Status: "unavailable", Message: "Scheduler not configured"}
	}
	if !h.scheduler.IsRunning() {
		return ComponentHealth{Status: "error", Message: "Scheduler stopped"}
	}
	return ComponentHealth{Status: "ok", Message: "Running"}
}
