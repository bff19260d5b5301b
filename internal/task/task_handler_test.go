package task_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skillboard/internal/identity"
	"skillboard/internal/task"
	taskerrors "skillboard/internal/task/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeTaskService struct {
	createFn    func(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error)
	getAllFn    func(ctx context.Context, viewer task.Viewer) ([]task.TaskResponse, error)
	getByIDFn   func(ctx context.Context, id string, viewer task.Viewer) (task.TaskResponse, error)
	updateFn    func(ctx context.Context, id string, req task.UpdateTaskRequest) (task.TaskResponse, error)
	acceptFn    func(ctx context.Context, id string, viewer task.Viewer) (task.TaskResponse, error)
	completeFn  func(ctx context.Context, id string, viewer task.Viewer, notes string) (task.TaskResponse, error)
	setStatusFn func(ctx context.Context, id, status, actorEmail string) (task.TaskResponse, error)
	deleteFn    func(ctx context.Context, id string) error
}

func (f *fakeTaskService) Create(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeTaskService) GetAll(ctx context.Context, viewer task.Viewer) ([]task.TaskResponse, error) {
	return f.getAllFn(ctx, viewer)
}
func (f *fakeTaskService) GetByID(ctx context.Context, id string, viewer task.Viewer) (task.TaskResponse, error) {
	return f.getByIDFn(ctx, id, viewer)
}
func (f *fakeTaskService) Update(ctx context.Context, id string, req task.UpdateTaskRequest) (task.TaskResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeTaskService) Accept(ctx context.Context, id string, viewer task.Viewer) (task.TaskResponse, error) {
	return f.acceptFn(ctx, id, viewer)
}
func (f *fakeTaskService) Complete(ctx context.Context, id string, viewer task.Viewer, notes string) (task.TaskResponse, error) {
	return f.completeFn(ctx, id, viewer, notes)
}
func (f *fakeTaskService) SetStatus(ctx context.Context, id, status, actorEmail string) (task.TaskResponse, error) {
	return f.setStatusFn(ctx, id, status, actorEmail)
}
func (f *fakeTaskService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func newTaskTestContext(t *testing.T, method, path, body, email, department string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set("user_email", email)
	c.Set("user_department", department)
	return c, w
}

func TestTaskHandler_Create(t *testing.T) {
	provider := identity.NewProvider("admin@company.com")

	t.Run("success", func(t *testing.T) {
		svc := &fakeTaskService{
			createFn: func(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error) {
				assert.Equal(t, "Check dye lot 42", req.Title)
				return task.TaskResponse{
					ID:     uuid.NewString(),
					Title:  req.Title,
					Status: task.StatusPending,
				}, nil
			},
		}

		h := task.NewHandler(svc, provider)
		body := `{"title":"Check dye lot 42","priority":"high","due_date":"2026-03-10","assignment_type":"all"}`
		c, w := newTaskTestContext(t, http.MethodPost, "/tasks", body, "admin@company.com", "")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Check dye lot 42")
	})

	t.Run("validation error", func(t *testing.T) {
		h := task.NewHandler(&fakeTaskService{}, provider)
		c, w := newTaskTestContext(t, http.MethodPost, "/tasks", `{}`, "admin@company.com", "")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_GetAll(t *testing.T) {
	provider := identity.NewProvider("admin@company.com")

	t.Run("viewer built from auth claims", func(t *testing.T) {
		svc := &fakeTaskService{
			getAllFn: func(ctx context.Context, viewer task.Viewer) ([]task.TaskResponse, error) {
				assert.Equal(t, "somchai@company.com", viewer.Email)
				assert.Equal(t, "Dyeing", viewer.Department)
				assert.False(t, viewer.Admin)
				return []task.TaskResponse{{ID: uuid.NewString(), Status: task.StatusPending}}, nil
			},
		}

		h := task.NewHandler(svc, provider)
		c, w := newTaskTestContext(t, http.MethodGet, "/tasks", "", "somchai@company.com", "Dyeing")

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("status query filters the list", func(t *testing.T) {
		svc := &fakeTaskService{
			getAllFn: func(ctx context.Context, viewer task.Viewer) ([]task.TaskResponse, error) {
				return []task.TaskResponse{
					{ID: uuid.NewString(), Status: task.StatusPending},
					{ID: uuid.NewString(), Status: task.StatusCompleted},
				}, nil
			},
		}

		h := task.NewHandler(svc, provider)
		c, w := newTaskTestContext(t, http.MethodGet, "/tasks?status=completed", "", "somchai@company.com", "Dyeing")

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var envelope struct {
			Data []task.TaskResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.Len(t, envelope.Data, 1)
		assert.Equal(t, task.StatusCompleted, envelope.Data[0].Status)
	})
}

func TestTaskHandler_Complete(t *testing.T) {
	provider := identity.NewProvider("admin@company.com")

	t.Run("empty body is allowed", func(t *testing.T) {
		svc := &fakeTaskService{
			completeFn: func(ctx context.Context, id string, viewer task.Viewer, notes string) (task.TaskResponse, error) {
				assert.Empty(t, notes)
				return task.TaskResponse{ID: id, Status: task.StatusCompleted}, nil
			},
		}

		h := task.NewHandler(svc, provider)
		c, w := newTaskTestContext(t, http.MethodPost, "/tasks/x/complete", "", "somchai@company.com", "Dyeing")
		c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

		h.Complete(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("already completed maps to conflict", func(t *testing.T) {
		svc := &fakeTaskService{
			completeFn: func(ctx context.Context, id string, viewer task.Viewer, notes string) (task.TaskResponse, error) {
				return task.TaskResponse{}, taskerrors.ErrAlreadyCompleted
			},
		}

		h := task.NewHandler(svc, provider)
		c, w := newTaskTestContext(t, http.MethodPost, "/tasks/x/complete", `{"notes":"done"}`, "somchai@company.com", "Dyeing")
		c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

		h.Complete(c)

		assert.Equal(t, taskerrors.ErrAlreadyCompleted.HTTPStatus, w.Code)
	})
}

func TestTaskHandler_GetById_NotFound(t *testing.T) {
	provider := identity.NewProvider("admin@company.com")

	svc := &fakeTaskService{
		getByIDFn: func(ctx context.Context, id string, viewer task.Viewer) (task.TaskResponse, error) {
			return task.TaskResponse{}, taskerrors.ErrTaskNotFound
		},
	}

	h := task.NewHandler(svc, provider)
	c, w := newTaskTestContext(t, http.MethodGet, "/tasks/x", "", "somchai@company.com", "Dyeing")
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

	h.GetById(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
