package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/josephcavalcante/projeto-todolist/api/transport"
	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/pkg/httpcontext"
	subtaskUC "github.com/josephcavalcante/projeto-todolist/usecase/subtask"
)

type SubtaskHandler struct {
	baseHandler
	uc *subtaskUC.Service
}

func NewSubtaskHandler(uc *subtaskUC.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *SubtaskHandler {
	return &SubtaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List a task's subtasks
// @Tags subtasks
// @Router /api/v1/tasks/{title}/subtasks [get]
func (h *SubtaskHandler) GetSubtasks(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}
	taskTitle := pathTitle(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	subtasks := h.uc.List(stdCtx, taskTitle, ownerID)
	if subtasks == nil {
		subtasks = []domain.Subtask{}
	}
	h.respondSuccess(ctx, http.StatusOK, subtasks)
}

// @Summary Add a subtask to a task
// @Tags subtasks
// @Router /api/v1/tasks/{title}/subtasks [post]
func (h *SubtaskHandler) CreateSubtask(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}
	taskTitle := pathTitle(ctx)

	var req transport.SubtaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if !h.uc.Add(stdCtx, taskTitle, req.Title, req.Description, req.Percent, ownerID) {
		h.respondJSON(ctx, http.StatusUnprocessableEntity, transport.NewError(string(domain.ErrCodeInvalid), "subtask not created", nil))
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, nil)
}

// @Summary Remove a subtask by title
// @Tags subtasks
// @Router /api/v1/tasks/{title}/subtasks/{subtitle} [delete]
func (h *SubtaskHandler) DeleteSubtask(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}
	taskTitle := pathTitle(ctx)

	raw, _ := ctx.UserValue("subtitle").(string)
	subtitle, err := url.PathUnescape(raw)
	if err != nil {
		subtitle = raw
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if !h.uc.Remove(stdCtx, taskTitle, subtitle, ownerID) {
		h.respondJSON(ctx, http.StatusNotFound, transport.NewError(string(domain.ErrCodeNotFound), "subtask not found", nil))
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
