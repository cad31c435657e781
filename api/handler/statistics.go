package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/aitimer/backend/pkg/httpcontext"
	statsUC "github.com/aitimer/backend/usecase/statistics"
)

type StatsHandler struct {
	baseHandler
	uc         *statsUC.Service
	windowDays int
}

func NewStatsHandler(uc *statsUC.Service, windowDays int, adapter *httpcontext.Adapter, logger *zap.Logger) *StatsHandler {
	if windowDays <= 0 {
		windowDays = 7
	}
	return &StatsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		windowDays:  windowDays,
	}
}

// @Summary Weekly overview
// @Tags stats
// @Router /api/v1/stats/weekly-overview [get]
func (h *StatsHandler) WeeklyOverview(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	overview, err := h.uc.GetWeeklyOverview(stdCtx, userID, h.yearWeek(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, overview)
}

// @Summary Weekly chart
// @Tags stats
// @Router /api/v1/stats/weekly-chart [get]
func (h *StatsHandler) WeeklyChart(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	chart, err := h.uc.GetWeeklyChart(stdCtx, userID, h.yearWeek(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, chart)
}

// @Summary Completed hours by task
// @Tags stats
// @Router /api/v1/stats/task-hours [get]
func (h *StatsHandler) TaskHours(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	hours, err := h.uc.GetTaskHours(stdCtx, userID, h.yearWeek(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, hours)
}

// @Summary Completed hours by category
// @Tags stats
// @Router /api/v1/stats/category-hours [get]
func (h *StatsHandler) CategoryHours(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	hours, err := h.uc.GetCategoryHours(stdCtx, userID, h.yearWeek(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, hours)
}

// @Summary Efficiency analysis
// @Tags stats
// @Router /api/v1/stats/efficiency [get]
func (h *StatsHandler) Efficiency(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	days := parseInt(string(ctx.QueryArgs().Peek("days")), h.windowDays)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	analysis, err := h.uc.GetEfficiencyAnalysis(stdCtx, userID, days)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, analysis)
}

// @Summary Mood trend
// @Tags stats
// @Router /api/v1/stats/mood [get]
func (h *StatsHandler) Mood(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	days := parseInt(string(ctx.QueryArgs().Peek("days")), h.windowDays)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	trend, err := h.uc.GetMoodTrend(stdCtx, userID, days)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, trend)
}

// @Summary Period comparison
// @Tags stats
// @Router /api/v1/stats/comparison [get]
func (h *StatsHandler) Comparison(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	current := string(ctx.QueryArgs().Peek("current_week"))
	previous := string(ctx.QueryArgs().Peek("previous_week"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	cmp, err := h.uc.GetComparison(stdCtx, userID, current, previous)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, cmp)
}

// @Summary Combined dashboard
// @Tags stats
// @Router /api/v1/stats/dashboard [get]
func (h *StatsHandler) Dashboard(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	dashboard, err := h.uc.GetDashboard(stdCtx, userID, h.yearWeek(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, dashboard)
}

func (h *StatsHandler) yearWeek(ctx *fasthttp.RequestCtx) string {
	return string(ctx.QueryArgs().Peek("year_week"))
}
