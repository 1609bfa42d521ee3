package event

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arenahub/event-dashboard-backend/internal/apperrors"
	"github.com/arenahub/event-dashboard-backend/internal/response"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📌 Shared Helpers

func eventID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, response.Error("VALIDATION_ERROR", "Invalid event ID"))
		return 0, false
	}
	return uint(id), true
}

func respondError(c *gin.Context, err error) {
	if ve, ok := apperrors.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, response.ValidationFailed(ve.Fields))
		return
	}
	c.JSON(apperrors.HTTPStatus(err), response.Error(apperrors.Code(err), err.Error()))
}

func bindError(c *gin.Context, err error) {
	if fields, ok := validationFields(err); ok {
		c.JSON(http.StatusBadRequest, response.ValidationFailed(fields))
		return
	}
	c.JSON(http.StatusBadRequest, response.Error("VALIDATION_ERROR", "invalid request body: "+err.Error()))
}

// parseFilters reads the list filter query parameters. Unparseable date
// bounds are rejected rather than silently matched against nothing.
func parseFilters(c *gin.Context) (Filters, bool) {
	f := Filters{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	if raw := c.Query("startDate"); raw != "" {
		t, err := ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ValidationFailed(map[string]string{"startDate": "must be a parseable date"}))
			return f, false
		}
		f.StartDate = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ValidationFailed(map[string]string{"endDate": "must be a parseable date"}))
			return f, false
		}
		f.EndDate = &t
	}
	return f, true
}

// ===========================
// 🎯 Create Event - POST /events
func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	created, err := h.Service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(created))
}

// ===========================
// 🔍 Get Event - GET /events/:id
func (h *Handler) GetEventByID(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	e, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(e))
}

// ===========================
// 📄 List Events - GET /events?status=&search=&startDate=&endDate=&page=&limit=
func (h *Handler) ListEvents(c *gin.Context) {
	filters, ok := parseFilters(c)
	if !ok {
		return
	}

	// malformed page/limit fall back to the defaults, matching the dashboard
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.Service.List(c.Request.Context(), filters, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// ===========================
// 🛠 Update Event - PUT /events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	updated, err := h.Service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(updated))
}

// ===========================
// ❌ Delete Event - DELETE /events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Event deleted successfully"}))
}

// ===========================
// 📤 Export Events - GET /events/export?format=csv|excel|pdf
func (h *Handler) ExportEvents(c *gin.Context) {
	filters, ok := parseFilters(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", FormatCSV)

	payload, filename, contentType, err := h.Service.Export(c.Request.Context(), filters, format)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}
