package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/aitimer/backend/api/transport"
	"github.com/aitimer/backend/domain"
	"github.com/aitimer/backend/pkg/httpcontext"
	scheduleUC "github.com/aitimer/backend/usecase/schedule"
)

type ScheduleHandler struct {
	baseHandler
	uc *scheduleUC.UseCase
}

func NewScheduleHandler(uc *scheduleUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Update slot status
// @Tags schedule
// @Router /api/v1/slots/{id}/status [patch]
func (h *ScheduleHandler) UpdateStatus(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	slotID, _ := ctx.UserValue("id").(string)
	if slotID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing slot id", nil))
		return
	}

	var req transport.SlotStatusRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	slot, err := h.uc.UpdateSlotStatus(stdCtx, userID, slotID, domain.SlotStatus(req.Status))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, slot)
}

// @Summary Log slot mood
// @Tags schedule
// @Router /api/v1/slots/{id}/mood [put]
func (h *ScheduleHandler) LogMood(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	slotID, _ := ctx.UserValue("id").(string)
	if slotID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing slot id", nil))
		return
	}

	var req transport.MoodRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	record, err := h.uc.LogMood(stdCtx, userID, slotID, domain.Mood(req.Mood))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, record)
}
