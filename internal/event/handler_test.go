package event

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, ordered bool) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, mock := newMockService(t, ordered)
	h := NewHandler(svc)

	r := gin.New()
	r.POST("/events", h.CreateEvent)
	r.GET("/events", h.ListEvents)
	r.GET("/events/export", h.ExportEvents)
	r.GET("/events/:id", h.GetEventByID)
	r.PUT("/events/:id", h.UpdateEvent)
	r.DELETE("/events/:id", h.DeleteEvent)
	return r, mock
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestCreateEvent_Returns201WithDefaults(t *testing.T) {
	r, mock := newTestRouter(t, true)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	rec := doJSON(r, http.MethodPost, "/events", gin.H{
		"name":      "Finals",
		"startDate": "2025-06-01T00:00:00Z",
		"endDate":   "2025-06-01T03:00:00Z",
		"location":  "Arena",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var created Event
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, uint(1), created.ID)
	assert.Equal(t, StatusDraft, created.Status)
	assert.Zero(t, created.TicketsSold)
}

func TestCreateEvent_ValidationFailureListsEveryField(t *testing.T) {
	r, _ := newTestRouter(t, true)

	rec := doJSON(r, http.MethodPost, "/events", gin.H{
		"name":        "",
		"ticketsSold": -1,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)
	for _, f := range []string{"name", "startDate", "endDate", "location", "ticketsSold"} {
		assert.Contains(t, env.Fields, f)
	}
}

func TestCreateEvent_MalformedJSON(t *testing.T) {
	r, _ := newTestRouter(t, true)

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(`{"name": `))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)
}

func TestGetEvent_InvalidIDSyntax(t *testing.T) {
	r, _ := newTestRouter(t, true)

	for _, path := range []string{"/events/abc", "/events/0", "/events/-3"} {
		rec := doJSON(r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code, path)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "VALIDATION_ERROR", env.Error)
		assert.Equal(t, "Invalid event ID", env.Message)
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	r, mock := newTestRouter(t, true)

	mock.ExpectQuery(`SELECT \* FROM "events" WHERE`).
		WillReturnRows(sqlmock.NewRows(eventColumns()))

	rec := doJSON(r, http.MethodGet, "/events/99", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "NOT_FOUND", env.Error)
}

func TestListEvents_PaginationMath(t *testing.T) {
	r, mock := newTestRouter(t, false)

	rows := sqlmock.NewRows(eventColumns())
	for i := 5; i > 0; i-- {
		rows.AddRow(int64(i), "Event", "Arena", StatusUpcoming, 0, time.Now(), time.Now(), time.Now(), time.Now())
	}
	mock.ExpectQuery(`SELECT \* FROM "events" WHERE status = .+ ORDER BY created_at DESC`).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "events" WHERE status = `).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(25)))

	rec := doJSON(r, http.MethodGet, "/events?status=upcoming&page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var list ListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list.Events, 5)
	assert.Equal(t, 1, list.Pagination.Page)
	assert.Equal(t, 10, list.Pagination.Limit)
	assert.Equal(t, int64(25), list.Pagination.Total)
	assert.Equal(t, int64(3), list.Pagination.TotalPages) // ceil(25/10)
}

func TestListEvents_RejectsUnparseableDateBound(t *testing.T) {
	r, _ := newTestRouter(t, true)

	rec := doJSON(r, http.MethodGet, "/events?startDate=whenever", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Fields, "startDate")
}

func TestUpdateEvent_PartialUpdate(t *testing.T) {
	r, mock := newTestRouter(t, true)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "events" SET .*"status"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	rows := sqlmock.NewRows(eventColumns()).
		AddRow(int64(1), "Finals", "Arena", StatusUpcoming, 0, time.Now(), time.Now(), time.Now(), time.Now())
	mock.ExpectQuery(`SELECT \* FROM "events" WHERE`).WillReturnRows(rows)

	rec := doJSON(r, http.MethodPut, "/events/1", gin.H{"status": "upcoming"})
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var updated Event
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, StatusUpcoming, updated.Status)
	assert.Equal(t, "Finals", updated.Name) // untouched field survives
}

func TestUpdateEvent_UnknownID(t *testing.T) {
	r, mock := newTestRouter(t, true)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "events" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	rec := doJSON(r, http.MethodPut, "/events/404", gin.H{"status": "upcoming"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateEvent_RejectsInvalidStatus(t *testing.T) {
	r, _ := newTestRouter(t, true)

	rec := doJSON(r, http.MethodPut, "/events/1", gin.H{"status": "archived"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Fields, "status")
}

func TestDeleteEvent_Success(t *testing.T) {
	r, mock := newTestRouter(t, true)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "events"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "events" WHERE`).
		WillReturnRows(sqlmock.NewRows(eventColumns()))

	rec := doJSON(r, http.MethodDelete, "/events/7", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), "deleted")
}

func TestDeleteEvent_UnknownID(t *testing.T) {
	r, mock := newTestRouter(t, true)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "events"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	rows := sqlmock.NewRows(eventColumns()).
		AddRow(int64(404), "Still here", "Arena", StatusDraft, 0, time.Now(), time.Now(), time.Now(), time.Now())
	mock.ExpectQuery(`SELECT \* FROM "events" WHERE`).WillReturnRows(rows)

	rec := doJSON(r, http.MethodDelete, "/events/404", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
