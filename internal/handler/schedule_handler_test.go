package handler

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/uniplan/uniplan-api/internal/middleware"
	"github.com/uniplan/uniplan-api/internal/models"
	"github.com/uniplan/uniplan-api/internal/repository"
	"github.com/uniplan/uniplan-api/internal/service"
)

type stubScheduleRepo struct {
	schedules map[string]models.Schedule
	exists    bool
}

func (s *stubScheduleRepo) List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, int, error) {
	out := make([]models.Schedule, 0, len(s.schedules))
	for _, sched := range s.schedules {
		out = append(out, sched)
	}
	return out, len(out), nil
}

func (s *stubScheduleRepo) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	sched, ok := s.schedules[id]
	if !ok {
		return nil, fmt.Errorf("find schedule: %w", sql.ErrNoRows)
	}
	return &sched, nil
}

func (s *stubScheduleRepo) ExistsByTermAndDepartment(ctx context.Context, termID, departmentID string) (bool, error) {
	return s.exists, nil
}

func (s *stubScheduleRepo) Create(ctx context.Context, schedule *models.Schedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	schedule.Status = models.ScheduleStatusDraft
	schedule.CreatedAt = time.Now().UTC()
	s.schedules[schedule.ID] = *schedule
	return nil
}

func (s *stubScheduleRepo) MarkSubmitted(ctx context.Context, id, submittedBy string, at time.Time) (bool, error) {
	sched, ok := s.schedules[id]
	if !ok || sched.Status != models.ScheduleStatusDraft {
		return false, nil
	}
	sched.Status = models.ScheduleStatusPending
	sched.SubmittedBy = submittedBy
	sched.SubmittedAt = &at
	s.schedules[id] = sched
	return true, nil
}

func (s *stubScheduleRepo) MarkEvaluated(ctx context.Context, id string, status models.ScheduleStatus, evaluatedBy string, at time.Time) (bool, error) {
	sched, ok := s.schedules[id]
	if !ok || sched.Status != models.ScheduleStatusPending {
		return false, nil
	}
	sched.Status = status
	sched.EvaluatedBy = &evaluatedBy
	sched.EvaluatedAt = &at
	s.schedules[id] = sched
	return true, nil
}

type stubAssignmentReader struct{}

func (stubAssignmentReader) ListBySchedule(ctx context.Context, scheduleID string) ([]models.ScheduleAssignmentDetail, error) {
	return nil, nil
}

func (stubAssignmentReader) HasInstructorConflict(ctx context.Context, scheduleID, instructorID, timeSlotID, excludeAssignmentID string) (bool, error) {
	return false, nil
}

func (stubAssignmentReader) HasClassroomConflict(ctx context.Context, scheduleID, classroomID, timeSlotID, excludeAssignmentID string) (bool, error) {
	return false, nil
}

type stubNoteReader struct{}

func (stubNoteReader) ListBySchedule(ctx context.Context, scheduleID string) ([]models.ReviewNote, error) {
	return nil, nil
}

type stubOfferingReader struct{}

func (stubOfferingReader) FindByID(ctx context.Context, id string) (*models.CourseOffering, error) {
	return nil, fmt.Errorf("find offering: %w", sql.ErrNoRows)
}

type stubSlotReader struct{}

func (stubSlotReader) FindByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	return nil, fmt.Errorf("find time slot: %w", sql.ErrNoRows)
}

type stubAuditRecorder struct{}

func (stubAuditRecorder) CreateAuditLog(ctx context.Context, log *models.AuditLog) error { return nil }

type stubTxManager struct{ repo *stubScheduleRepo }

func (m stubTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	return fn(ctx, repository.TxRepositories{Schedules: m.repo})
}

func buildScheduleRouter(repo *stubScheduleRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewScheduleService(
		repo,
		stubAssignmentReader{},
		stubNoteReader{},
		stubOfferingReader{},
		stubSlotReader{},
		stubAuditRecorder{},
		stubTxManager{repo: repo},
		nil,
		nil,
		nil,
		0,
	)
	h := NewScheduleHandler(svc, nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		role := c.GetHeader("X-Test-Role")
		if role == "" {
			c.Next()
			return
		}
		c.Set(middleware.ContextUserKey, &models.JWTClaims{
			UserID: uuid.NewString(),
			Role:   models.UserRole(role),
			Email:  "test@uniplan.edu",
		})
		c.Next()
	})

	schedules := router.Group("/schedules")
	schedules.GET("", h.List)
	schedules.GET("/:id", h.Get)
	schedules.POST("", middleware.RBAC(string(models.RoleDepartmentRep), string(models.RoleAdmin)), h.Create)
	return router
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestScheduleHandlerCreate(t *testing.T) {
	repo := &stubScheduleRepo{schedules: map[string]models.Schedule{}}
	router := buildScheduleRouter(repo)

	payload := fmt.Sprintf(`{"term_id":%q,"department_id":%q}`, uuid.NewString(), uuid.NewString())
	req, _ := http.NewRequest(http.MethodPost, "/schedules", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-Role", string(models.RoleDepartmentRep))

	resp := performRequest(router, req)
	require.Equal(t, http.StatusCreated, resp.Code)
	require.Contains(t, resp.Body.String(), `"status":"draft"`)
	require.Len(t, repo.schedules, 1)
}

func TestScheduleHandlerCreateUnauthorized(t *testing.T) {
	router := buildScheduleRouter(&stubScheduleRepo{schedules: map[string]models.Schedule{}})

	payload := fmt.Sprintf(`{"term_id":%q,"department_id":%q}`, uuid.NewString(), uuid.NewString())
	req, _ := http.NewRequest(http.MethodPost, "/schedules", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp := performRequest(router, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestScheduleHandlerCreateForbiddenForDean(t *testing.T) {
	router := buildScheduleRouter(&stubScheduleRepo{schedules: map[string]models.Schedule{}})

	payload := fmt.Sprintf(`{"term_id":%q,"department_id":%q}`, uuid.NewString(), uuid.NewString())
	req, _ := http.NewRequest(http.MethodPost, "/schedules", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-Role", string(models.RoleDean))

	resp := performRequest(router, req)
	require.Equal(t, http.StatusForbidden, resp.Code)
}

func TestScheduleHandlerCreateRejectsBadPayload(t *testing.T) {
	router := buildScheduleRouter(&stubScheduleRepo{schedules: map[string]models.Schedule{}})

	req, _ := http.NewRequest(http.MethodPost, "/schedules", bytes.NewBufferString(`{"term_id":"not-a-uuid"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-Role", string(models.RoleAdmin))

	resp := performRequest(router, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestScheduleHandlerCreateConflictsOnDuplicate(t *testing.T) {
	router := buildScheduleRouter(&stubScheduleRepo{schedules: map[string]models.Schedule{}, exists: true})

	payload := fmt.Sprintf(`{"term_id":%q,"department_id":%q}`, uuid.NewString(), uuid.NewString())
	req, _ := http.NewRequest(http.MethodPost, "/schedules", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-Role", string(models.RoleAdmin))

	resp := performRequest(router, req)
	require.Equal(t, http.StatusConflict, resp.Code)
}

func TestScheduleHandlerGet(t *testing.T) {
	id := uuid.NewString()
	repo := &stubScheduleRepo{schedules: map[string]models.Schedule{
		id: {ID: id, TermID: uuid.NewString(), DepartmentID: uuid.NewString(), Status: models.ScheduleStatusDraft},
	}}
	router := buildScheduleRouter(repo)

	req, _ := http.NewRequest(http.MethodGet, "/schedules/"+id, nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), id)
	require.Contains(t, resp.Body.String(), `"assignments"`)
}

func TestScheduleHandlerGetNotFound(t *testing.T) {
	router := buildScheduleRouter(&stubScheduleRepo{schedules: map[string]models.Schedule{}})

	req, _ := http.NewRequest(http.MethodGet, "/schedules/"+uuid.NewString(), nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusNotFound, resp.Code)
}
