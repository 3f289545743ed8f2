package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/josephcavalcante/projeto-todolist/api/transport"
	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/pkg/httpcontext"
	taskUC "github.com/josephcavalcante/projeto-todolist/usecase/task"
)

// Dates on the task API use the civil-date layout; tasks carry no
// time-of-day component.
const dateLayout = "2006-01-02"

type TaskHandler struct {
	baseHandler
	uc *taskUC.Service
}

func NewTaskHandler(uc *taskUC.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks, optionally filtered or sorted
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	args := ctx.QueryArgs()
	var tasks []domain.Task
	switch {
	case string(args.Peek("filter")) == "critical":
		tasks = h.uc.ListFiltered(stdCtx, taskUC.FilterCritical(time.Now()), ownerID)
	case len(args.Peek("deadline")) > 0:
		date, err := time.Parse(dateLayout, string(args.Peek("deadline")))
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid deadline date", nil))
			return
		}
		tasks = h.uc.ListFiltered(stdCtx, taskUC.FilterByDeadline(date), ownerID)
	case string(args.Peek("sort")) == "deadline":
		tasks = h.uc.ListSorted(stdCtx, taskUC.SortByDeadline(), ownerID)
	case string(args.Peek("sort")) == "priority":
		tasks = h.uc.ListSorted(stdCtx, taskUC.SortByPriority(), ownerID)
	default:
		tasks = h.uc.List(stdCtx, ownerID)
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Get one task by title
// @Tags tasks
// @Router /api/v1/tasks/{title} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}
	title := pathTitle(ctx)
	if title == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task title", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.FindByTitle(stdCtx, title, ownerID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	req, deadline, ok := h.parseTask(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if !h.uc.Create(stdCtx, req.Title, req.Description, deadline, req.Priority, ownerID) {
		h.respondJSON(ctx, http.StatusUnprocessableEntity, transport.NewError(string(domain.ErrCodeInvalid), "task not created", nil))
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, nil)
}

// @Summary Edit a task identified by its current title
// @Tags tasks
// @Router /api/v1/tasks/{title} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}
	oldTitle := pathTitle(ctx)
	if oldTitle == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task title", nil))
		return
	}

	req, deadline, ok := h.parseTask(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if !h.uc.Edit(stdCtx, oldTitle, req.Title, req.Description, deadline, req.Priority, req.Percent, ownerID) {
		h.respondJSON(ctx, http.StatusUnprocessableEntity, transport.NewError(string(domain.ErrCodeInvalid), "task not updated", nil))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{title} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}
	title := pathTitle(ctx)
	if title == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task title", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if !h.uc.Delete(stdCtx, title, ownerID) {
		h.respondJSON(ctx, http.StatusNotFound, transport.NewError(string(domain.ErrCodeNotFound), "task not found", nil))
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *TaskHandler) parseTask(ctx *fasthttp.RequestCtx) (transport.TaskRequest, time.Time, bool) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return req, time.Time{}, false
	}
	deadline, err := time.Parse(dateLayout, req.Deadline)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid deadline date", nil))
		return req, time.Time{}, false
	}
	return req, deadline, true
}

func (h baseHandler) ownerID(ctx *fasthttp.RequestCtx) string {
	ownerID := string(ctx.Request.Header.Peek("X-User-ID"))
	if ownerID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing user id", nil))
	}
	return ownerID
}

func pathTitle(ctx *fasthttp.RequestCtx) string {
	raw, _ := ctx.UserValue("title").(string)
	if title, err := url.PathUnescape(raw); err == nil {
		return title
	}
	return raw
}
