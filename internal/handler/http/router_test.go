package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/domain/auth"
	"github.com/escuela-horarios/attendance-backend/internal/domain/report"
	"github.com/escuela-horarios/attendance-backend/internal/domain/schedule"
	"github.com/escuela-horarios/attendance-backend/internal/handler/http/response"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/export"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/jwt"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/storage"
	"github.com/escuela-horarios/attendance-backend/internal/repository/memory"
	attendanceService "github.com/escuela-horarios/attendance-backend/internal/service/attendance"
	authService "github.com/escuela-horarios/attendance-backend/internal/service/auth"
	reportService "github.com/escuela-horarios/attendance-backend/internal/service/report"
	scheduleService "github.com/escuela-horarios/attendance-backend/internal/service/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	handlerTestSecret   = "test-secret-key-for-jwt"
	handlerTestPassword = "password123"
)

// Demo data ids, in the order SeedDemo creates them.
const (
	groupID  = 1
	anaID    = 4
	juanID   = 5
	anaMonID = 1
)

type envelope[T any] struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    T                     `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
	Meta    *response.Meta        `json:"meta"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(handlerTestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	store := memory.NewStore()
	memory.SeedDemo(store, string(hash))

	slotRepo := memory.NewSlotRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)
	catalogRepo := memory.NewCatalogRepository(store)
	files, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/files")
	require.NoError(t, err)

	JWTService := jwt.NewJWTService(handlerTestSecret, "1h")
	authSvc := authService.NewAuthService(memory.NewUserRepository(store), JWTService)
	scheduleSvc := scheduleService.NewScheduleService(slotRepo, catalogRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, slotRepo)
	reportSvc := reportService.NewReportService(slotRepo, attendanceRepo, catalogRepo, files, export.NewPDFExporter(), export.NewXLSXExporter())

	return NewRouter(
		RouterOptions{Env: "test", FrontendURL: "http://localhost:3000", LogLevel: slog.LevelError, FilesDir: files.BasePath()},
		JWTService,
		NewAuthHandler(authSvc),
		NewScheduleHandler(scheduleSvc),
		NewAttendanceHandler(attendanceSvc),
		NewReportHandler(reportSvc),
	)
}

func do(t *testing.T, router http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

func login(t *testing.T, router http.Handler, email string) string {
	t.Helper()
	rr := do(t, router, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: email, Password: handlerTestPassword})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[auth.TokenResponse](t, rr).Data.AccessToken
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "leader@escuela.edu", Password: handlerTestPassword})
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[auth.TokenResponse](t, rr)
	assert.True(t, body.Success)
	assert.Equal(t, "group_leader", body.Data.Role)
	require.NotNil(t, body.Data.GroupID)
	assert.Equal(t, int64(groupID), *body.Data.GroupID)

	rr = do(t, router, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "ana@escuela.edu", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, router, http.MethodPost, "/api/v1/auth/login", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, router, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "nope"})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodGet, "/api/v1/schedule/slots", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, router, http.MethodGet, "/api/v1/schedule/slots", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestScheduleRoutes(t *testing.T) {
	router := newTestRouter(t)
	admin := login(t, router, "admin@escuela.edu")
	checker := login(t, router, "checker@escuela.edu")

	rr := do(t, router, http.MethodGet, "/api/v1/schedule/slots?teacher_id=4", checker, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	slots := decode[[]schedule.SlotResponse](t, rr)
	assert.Len(t, slots.Data, 2)
	require.NotNil(t, slots.Meta)
	assert.Equal(t, int64(2), slots.Meta.TotalItems)

	newSlot := schedule.SlotRequest{TeacherID: anaID, GroupID: groupID, SubjectID: 1, Day: "viernes", Hour: "11:00"}
	rr = do(t, router, http.MethodPost, "/api/v1/schedule/slots", checker, newSlot)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, router, http.MethodPost, "/api/v1/schedule/slots", admin, newSlot)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[schedule.SlotResponse](t, rr).Data
	assert.Equal(t, "friday", created.Day)

	rr = do(t, router, http.MethodPost, "/api/v1/schedule/slots", admin, newSlot)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, router, http.MethodGet, "/api/v1/schedule/slots/999", admin, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, router, http.MethodGet, "/api/v1/schedule/slots/abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRecordAttendanceRoute(t *testing.T) {
	router := newTestRouter(t)
	ana := login(t, router, "ana@escuela.edu")
	juan := login(t, router, "juan@escuela.edu")
	leader := login(t, router, "leader@escuela.edu")

	body := attendance.RecordAttendanceRequest{SlotID: anaMonID, Date: "2024-01-08", Status: "present"}

	rr := do(t, router, http.MethodPut, "/api/v1/attendance/teacher", ana, body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "present", decode[attendance.EventResponse](t, rr).Data.Status)

	rr = do(t, router, http.MethodPut, "/api/v1/attendance/checker", ana, body)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, router, http.MethodPut, "/api/v1/attendance/teacher", juan, body)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, router, http.MethodPut, "/api/v1/attendance/jefe", leader, body)
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, router, http.MethodPut, "/api/v1/attendance/janitor", leader, body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTeacherAttendanceReport(t *testing.T) {
	router := newTestRouter(t)
	ana := login(t, router, "ana@escuela.edu")
	juan := login(t, router, "juan@escuela.edu")

	for _, rec := range []attendance.RecordAttendanceRequest{
		{SlotID: anaMonID, Date: "2024-01-15", Status: "absent"},
		{SlotID: anaMonID, Date: "2024-01-08", Status: "present"},
		{SlotID: 2, Date: "2024-01-10", Status: "present"},
	} {
		rr := do(t, router, http.MethodPut, "/api/v1/attendance/teacher", ana, rec)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	rr := do(t, router, http.MethodGet, "/api/v1/reports/teachers/4/attendance?start=2024-01-01&end=2024-01-31&role=maestro", ana, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	data := decode[report.TeacherAttendanceResponse](t, rr).Data
	assert.Equal(t, "teacher", data.Role)
	assert.Equal(t, int64(anaID), data.TeacherID)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, "2024-01-08", data.Rows[0].Date)
	assert.Equal(t, "2024-01-10", data.Rows[1].Date)
	assert.Equal(t, "2024-01-15", data.Rows[2].Date)
	assert.Equal(t, report.Stats{Total: 3, Present: 2, Absent: 1, Percentage: 67}, data.Stats)

	rr = do(t, router, http.MethodGet, "/api/v1/reports/teachers/4/attendance?start=2024-01-01&end=2024-01-31&role=teacher", juan, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, router, http.MethodGet, "/api/v1/reports/teachers/4/attendance?start=2024-01-31&end=2024-01-01&role=teacher", ana, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, decode[any](t, rr).Error.Details, "end")
}

func TestGroupAndRankingReports(t *testing.T) {
	router := newTestRouter(t)
	checker := login(t, router, "checker@escuela.edu")
	leader := login(t, router, "leader@escuela.edu")
	ana := login(t, router, "ana@escuela.edu")

	rr := do(t, router, http.MethodPut, "/api/v1/attendance/checker", checker, attendance.RecordAttendanceRequest{SlotID: anaMonID, Date: "2024-01-08", Status: "present"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, router, http.MethodGet, "/api/v1/reports/groups/1/attendance?start=2024-01-01&end=2024-01-31", leader, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	group := decode[report.GroupAttendanceResponse](t, rr).Data
	require.Len(t, group.Teachers, 1)
	assert.Equal(t, "Ana López", group.Teachers[0].TeacherName)
	assert.Equal(t, attendance.RoleChecker, group.Teachers[0].Role)

	rr = do(t, router, http.MethodGet, "/api/v1/reports/groups/2/attendance?start=2024-01-01&end=2024-01-31", leader, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, router, http.MethodGet, "/api/v1/reports/teachers/ranking?start=2024-01-01&end=2024-01-31&role=checker", checker, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	ranking := decode[[]report.RoleStatistics](t, rr).Data
	require.Len(t, ranking, 2)
	assert.Equal(t, int64(anaID), ranking[0].TeacherID)
	assert.Equal(t, 100, ranking[0].Percentage)
	assert.Equal(t, int64(juanID), ranking[1].TeacherID)

	rr = do(t, router, http.MethodGet, "/api/v1/reports/teachers/ranking?start=2024-01-01&end=2024-01-31&role=checker", ana, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRowReports(t *testing.T) {
	router := newTestRouter(t)
	checker := login(t, router, "checker@escuela.edu")
	leader := login(t, router, "leader@escuela.edu")
	ana := login(t, router, "ana@escuela.edu")

	for _, rec := range []struct {
		role, token string
		body        attendance.RecordAttendanceRequest
	}{
		{"jefe", leader, attendance.RecordAttendanceRequest{SlotID: 3, Date: "2024-01-09", Status: "present"}},
		{"jefe", leader, attendance.RecordAttendanceRequest{SlotID: anaMonID, Date: "2024-01-08", Status: "ausente"}},
		{"checker", checker, attendance.RecordAttendanceRequest{SlotID: anaMonID, Date: "2024-01-08", Status: "present"}},
	} {
		rr := do(t, router, http.MethodPut, "/api/v1/attendance/"+rec.role, rec.token, rec.body)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	rr := do(t, router, http.MethodGet, "/api/v1/reports/groups/1/rows?start=2024-01-01&end=2024-01-31&role=jefe", leader, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	group := decode[report.RowsResponse](t, rr)
	assert.Equal(t, "group_leader", group.Data.Role)
	require.Len(t, group.Data.Rows, 2)
	assert.Equal(t, "Ana López", group.Data.Rows[0].Teacher)
	assert.Equal(t, "absent", group.Data.Rows[0].Status)
	assert.Equal(t, "Juan Pérez", group.Data.Rows[1].Teacher)
	assert.Equal(t, report.Stats{Total: 2, Present: 1, Absent: 1, Percentage: 50}, group.Data.Stats)
	require.NotNil(t, group.Meta)
	assert.Equal(t, int64(2), group.Meta.TotalItems)

	rr = do(t, router, http.MethodGet, "/api/v1/reports/groups/2/rows?start=2024-01-01&end=2024-01-31&role=jefe", leader, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, router, http.MethodGet, "/api/v1/reports/checker/rows?start=2024-01-01&end=2024-01-31", checker, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	checked := decode[report.RowsResponse](t, rr).Data
	assert.Equal(t, "checker", checked.Role)
	require.Len(t, checked.Rows, 1)
	assert.Equal(t, "present", checked.Rows[0].Status)

	rr = do(t, router, http.MethodGet, "/api/v1/reports/checker/rows?start=2024-01-01&end=2024-01-31", ana, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestDocumentAndExport(t *testing.T) {
	router := newTestRouter(t)
	admin := login(t, router, "admin@escuela.edu")

	rr := do(t, router, http.MethodPut, "/api/v1/attendance/teacher", admin, attendance.RecordAttendanceRequest{SlotID: anaMonID, Date: "2024-01-08", Status: "present"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, router, http.MethodGet, "/api/v1/reports/teachers/4/document?start=2024-01-01&end=2024-01-31", admin, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	doc := decode[report.Document](t, rr).Data
	require.Len(t, doc.Pages, 3)
	assert.False(t, doc.Pages[0].Empty)
	assert.True(t, doc.Pages[1].Empty)
	assert.Equal(t, report.EmptyPlaceholder, doc.Pages[1].Placeholder)

	rr = do(t, router, http.MethodGet, "/api/v1/reports/teachers/4/export?start=2024-01-01&end=2024-01-31&format=xlsx", admin, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Disposition"), `attachment; filename="Report_Ana_López_`))
	assert.NotZero(t, rr.Body.Len())

	rr = do(t, router, http.MethodGet, "/api/v1/reports/teachers/4/export?start=2024-01-01&end=2024-01-31&format=docx", admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = do(t, router, http.MethodGet, "/api/v1/reports/teachers/4/export?start=2024-01-01&end=2024-01-31&archive=true", admin, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	archived := decode[report.ExportResult](t, rr).Data
	assert.Equal(t, "application/pdf", archived.ContentType)
	require.NotEmpty(t, archived.URL)

	u, err := url.Parse(archived.URL)
	require.NoError(t, err)
	rr = do(t, router, http.MethodGet, u.RequestURI(), "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))
}
