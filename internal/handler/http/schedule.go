package http

import (
	"encoding/json"
	"net/http"

	"github.com/escuela-horarios/attendance-backend/internal/domain/schedule"
	"github.com/escuela-horarios/attendance-backend/internal/handler/http/response"
)

type ScheduleHandler interface {
	ListSlots(w http.ResponseWriter, r *http.Request)
	GetSlot(w http.ResponseWriter, r *http.Request)
	CreateSlot(w http.ResponseWriter, r *http.Request)
	UpdateSlot(w http.ResponseWriter, r *http.Request)
	DeleteSlot(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// ListSlots handles GET /schedule/slots
func (h *scheduleHandlerImpl) ListSlots(w http.ResponseWriter, r *http.Request) {
	var filter schedule.SlotFilter
	var ok bool

	if filter.TeacherID, ok = queryID(w, r, "teacher_id"); !ok {
		return
	}
	if filter.GroupID, ok = queryID(w, r, "group_id"); !ok {
		return
	}
	if raw := r.URL.Query().Get("day"); raw != "" {
		day, valid := schedule.ParseDay(raw)
		if !valid {
			response.BadRequest(w, "invalid day parameter", nil)
			return
		}
		filter.Day = &day
	}

	result, err := h.scheduleService.ListSlots(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result))})
}

func (h *scheduleHandlerImpl) GetSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.scheduleService.GetSlot(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *scheduleHandlerImpl) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req schedule.SlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.CreateSlot(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule slot created successfully", result)
}

func (h *scheduleHandlerImpl) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	var req schedule.SlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.UpdateSlot(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule slot updated successfully", result)
}

func (h *scheduleHandlerImpl) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	if err := h.scheduleService.DeleteSlot(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule slot deleted successfully", nil)
}
