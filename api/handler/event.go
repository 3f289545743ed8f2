package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/josephcavalcante/projeto-todolist/api/transport"
	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/pkg/httpcontext"
	eventUC "github.com/josephcavalcante/projeto-todolist/usecase/event"
)

type EventHandler struct {
	baseHandler
	uc *eventUC.Service
}

func NewEventHandler(uc *eventUC.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List events, optionally by date or month
// @Tags events
// @Router /api/v1/events [get]
func (h *EventHandler) GetEvents(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	args := ctx.QueryArgs()
	var events []domain.Event
	switch {
	case len(args.Peek("date")) > 0:
		date, err := time.Parse(dateLayout, string(args.Peek("date")))
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid date", nil))
			return
		}
		events = h.uc.ListByDate(stdCtx, date)
	case len(args.Peek("month")) > 0:
		year, errY := strconv.Atoi(string(args.Peek("year")))
		month, errM := strconv.Atoi(string(args.Peek("month")))
		if errY != nil || errM != nil || month < 1 || month > 12 {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid year or month", nil))
			return
		}
		events = h.uc.ListByMonth(stdCtx, year, time.Month(month))
	default:
		events = h.uc.List(stdCtx)
	}

	if events == nil {
		events = []domain.Event{}
	}
	h.respondSuccess(ctx, http.StatusOK, events)
}

// @Summary Get one event by title and date
// @Tags events
// @Router /api/v1/events/{title} [get]
func (h *EventHandler) GetEvent(ctx *fasthttp.RequestCtx) {
	title := pathTitle(ctx)
	date, err := time.Parse(dateLayout, string(ctx.QueryArgs().Peek("date")))
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid date", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	event, err := h.uc.Find(stdCtx, title, date)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, event)
}

// @Summary Create event
// @Tags events
// @Router /api/v1/events [post]
func (h *EventHandler) CreateEvent(ctx *fasthttp.RequestCtx) {
	var req transport.EventRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid date", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if !h.uc.Create(stdCtx, req.Title, req.Description, date, req.Location) {
		h.respondJSON(ctx, http.StatusUnprocessableEntity, transport.NewError(string(domain.ErrCodeInvalid), "event not created", nil))
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, nil)
}

// @Summary Edit an event identified by its current title and date
// @Tags events
// @Router /api/v1/events [put]
func (h *EventHandler) UpdateEvent(ctx *fasthttp.RequestCtx) {
	var req transport.EventUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}
	oldDate, errOld := time.Parse(dateLayout, req.OldDate)
	newDate, errNew := time.Parse(dateLayout, req.Date)
	if errOld != nil || errNew != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid date", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if !h.uc.Edit(stdCtx, req.OldTitle, oldDate, req.Title, req.Description, newDate, req.Location) {
		h.respondJSON(ctx, http.StatusUnprocessableEntity, transport.NewError(string(domain.ErrCodeInvalid), "event not updated", nil))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Delete event by title and date
// @Tags events
// @Router /api/v1/events/{title} [delete]
func (h *EventHandler) DeleteEvent(ctx *fasthttp.RequestCtx) {
	title := pathTitle(ctx)
	date, err := time.Parse(dateLayout, string(ctx.QueryArgs().Peek("date")))
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid date", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if !h.uc.Delete(stdCtx, title, date) {
		h.respondJSON(ctx, http.StatusNotFound, transport.NewError(string(domain.ErrCodeNotFound), "event not found", nil))
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
