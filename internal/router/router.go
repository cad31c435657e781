package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/aitimer/backend/api/handler"
)

type Handlers struct {
	Stats    *apiHandler.StatsHandler
	Schedule *apiHandler.ScheduleHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Statistics read surface
	r.GET("/api/v1/stats/weekly-overview", authMiddleware(handlers.Stats.WeeklyOverview))
	r.GET("/api/v1/stats/weekly-chart", authMiddleware(handlers.Stats.WeeklyChart))
	r.GET("/api/v1/stats/task-hours", authMiddleware(handlers.Stats.TaskHours))
	r.GET("/api/v1/stats/category-hours", authMiddleware(handlers.Stats.CategoryHours))
	r.GET("/api/v1/stats/efficiency", authMiddleware(handlers.Stats.Efficiency))
	r.GET("/api/v1/stats/mood", authMiddleware(handlers.Stats.Mood))
	r.GET("/api/v1/stats/comparison", authMiddleware(handlers.Stats.Comparison))
	r.GET("/api/v1/stats/dashboard", authMiddleware(handlers.Stats.Dashboard))

	// Slot write surface (status transitions and mood logging)
	r.PATCH("/api/v1/slots/{id}/status", authMiddleware(handlers.Schedule.UpdateStatus))
	r.PUT("/api/v1/slots/{id}/mood", authMiddleware(handlers.Schedule.LogMood))

	return r
}
