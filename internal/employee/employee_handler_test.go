package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skillboard/internal/employee"
	employeeerrors "skillboard/internal/employee/errors"
	"skillboard/internal/identity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	createFn          func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	getAllFn          func(ctx context.Context) ([]employee.EmployeeResponse, error)
	getByIDFn         func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	getByEmailFn      func(ctx context.Context, email string) (employee.EmployeeResponse, error)
	updateFn          func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	updateSkillsFn    func(ctx context.Context, id string, req employee.UpdateSkillsRequest) (employee.EmployeeResponse, error)
	deleteFn          func(ctx context.Context, id string) error
	statsFn           func(ctx context.Context) (employee.CompanyStatsResponse, error)
	upsertFn          func(ctx context.Context, empl employee.Employee) (employee.EmployeeResponse, error)
	incrementTasksFn  func(ctx context.Context, email string) error
	incrementEventsFn func(ctx context.Context, email string, delta int) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeEmployeeService) GetByEmail(ctx context.Context, email string) (employee.EmployeeResponse, error) {
	return f.getByEmailFn(ctx, email)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeEmployeeService) UpdateSkills(ctx context.Context, id string, req employee.UpdateSkillsRequest) (employee.EmployeeResponse, error) {
	return f.updateSkillsFn(ctx, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}
func (f *fakeEmployeeService) Stats(ctx context.Context) (employee.CompanyStatsResponse, error) {
	return f.statsFn(ctx)
}
func (f *fakeEmployeeService) Upsert(ctx context.Context, empl employee.Employee) (employee.EmployeeResponse, error) {
	return f.upsertFn(ctx, empl)
}
func (f *fakeEmployeeService) IncrementTasksCompleted(ctx context.Context, email string) error {
	return f.incrementTasksFn(ctx, email)
}
func (f *fakeEmployeeService) IncrementEventsJoined(ctx context.Context, email string, delta int) error {
	return f.incrementEventsFn(ctx, email, delta)
}

func newEmployeeTestContext(t *testing.T, method, path, body, email string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set("user_email", email)
	return c, w
}

func TestEmployeeHandler_Create(t *testing.T) {
	provider := identity.NewProvider("admin@company.com")

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "somchai@company.com", req.Email)
				return employee.EmployeeResponse{
					ID:         uuid.NewString(),
					EmployeeID: "EMP001",
					Name:       req.Name,
					Email:      req.Email,
				}, nil
			},
		}

		h := employee.NewHandler(svc, provider)
		body := `{"name":"Somchai J.","email":"somchai@company.com","department":"Dyeing","start_date":"2024-06-01"}`
		c, w := newEmployeeTestContext(t, http.MethodPost, "/employees", body, "admin@company.com")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "EMP001")
	})

	t.Run("missing required fields", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{}, provider)
		c, w := newEmployeeTestContext(t, http.MethodPost, "/employees", `{"name":"X"}`, "admin@company.com")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email surfaces as conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmailTaken
			},
		}

		h := employee.NewHandler(svc, provider)
		body := `{"name":"Somchai J.","email":"somchai@company.com","department":"Dyeing","start_date":"2024-06-01"}`
		c, w := newEmployeeTestContext(t, http.MethodPost, "/employees", body, "admin@company.com")

		h.Create(c)

		assert.Equal(t, employeeerrors.ErrEmailTaken.HTTPStatus, w.Code)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	provider := identity.NewProvider("admin@company.com")

	roster := []employee.EmployeeResponse{
		{EmployeeID: "EMP001", Name: "Somchai J.", Email: "somchai@company.com", Department: "Dyeing", TotalScore: 420},
		{EmployeeID: "EMP002", Name: "Suda K.", Email: "suda@company.com", Department: "QC", TotalScore: 610},
		{EmployeeID: "EMP003", Name: "Anan P.", Email: "anan@company.com", Department: "Dyeing", TotalScore: 280},
	}

	svc := &fakeEmployeeService{
		getAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
			return roster, nil
		},
	}

	decode := func(t *testing.T, w *httptest.ResponseRecorder) []employee.EmployeeResponse {
		t.Helper()
		var envelope struct {
			Data []employee.EmployeeResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		return envelope.Data
	}

	t.Run("search filters by name email and department", func(t *testing.T) {
		h := employee.NewHandler(svc, provider)
		c, w := newEmployeeTestContext(t, http.MethodGet, "/employees?q=dyeing", "", "admin@company.com")

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)
		assert.Len(t, data, 2)
	})

	t.Run("sort by total score descending", func(t *testing.T) {
		h := employee.NewHandler(svc, provider)
		c, w := newEmployeeTestContext(t, http.MethodGet, "/employees?sort_by=total_score&sort_dir=desc", "", "admin@company.com")

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)
		assert.Equal(t, "EMP002", data[0].EmployeeID)
		assert.Equal(t, "EMP003", data[2].EmployeeID)
	})

	t.Run("pagination slices the list", func(t *testing.T) {
		h := employee.NewHandler(svc, provider)
		c, w := newEmployeeTestContext(t, http.MethodGet, "/employees?page=2&page_size=2", "", "admin@company.com")

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)
		assert.Len(t, data, 1)
	})
}

func TestEmployeeHandler_Me(t *testing.T) {
	provider := identity.NewProvider("admin@company.com")

	svc := &fakeEmployeeService{
		getByEmailFn: func(ctx context.Context, email string) (employee.EmployeeResponse, error) {
			assert.Equal(t, "somchai@company.com", email)
			return employee.EmployeeResponse{EmployeeID: "EMP001", Email: email}, nil
		},
	}

	h := employee.NewHandler(svc, provider)
	c, w := newEmployeeTestContext(t, http.MethodGet, "/employees/me", "", "somchai@company.com")

	h.Me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "EMP001")
}

func TestEmployeeHandler_Stats(t *testing.T) {
	provider := identity.NewProvider("admin@company.com")

	svc := &fakeEmployeeService{
		statsFn: func(ctx context.Context) (employee.CompanyStatsResponse, error) {
			return employee.CompanyStatsResponse{TotalEmployees: 12, AverageAttendance: 96}, nil
		},
	}

	h := employee.NewHandler(svc, provider)
	c, w := newEmployeeTestContext(t, http.MethodGet, "/employees/stats", "", "somchai@company.com")

	h.Stats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "total_employees")
}
