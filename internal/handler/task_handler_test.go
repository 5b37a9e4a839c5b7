package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"todolist/internal/auth"
	apperrors "todolist/internal/errors"
	"todolist/internal/model"
)

// MockTaskService is a mock implementation of service.TaskService.
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, ownerID string, task *model.Task) (*model.Task, error) {
	args := m.Called(ctx, ownerID, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) ListForOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, ownerID string, taskID uint, patch *model.Task) error {
	args := m.Called(ctx, ownerID, taskID, patch)
	return args.Error(0)
}

func (m *MockTaskService) Delete(ctx context.Context, ownerID string, taskID uint) error {
	args := m.Called(ctx, ownerID, taskID)
	return args.Error(0)
}

func newTaskContext(method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(auth.ContextKey, &auth.Claims{
			UserID:           userID,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
		})
	}
	return c, rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	return httpErr.Code
}

func TestTaskHandler_CreateStatusCodes(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("Create", mock.Anything, "user-1", mock.AnythingOfType("*model.Task")).
			Return(&model.Task{ID: 1, Title: "A", Priority: "Low", UserID: "user-1"}, nil)

		h := NewTaskHandler(mockSvc)
		c, rec := newTaskContext(http.MethodPost, "/api/tasks", `{"title":"A","priority":"Low"}`, "user-1")

		assert.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"title":"A"`)
	})

	t.Run("validation failure", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("Create", mock.Anything, "user-1", mock.AnythingOfType("*model.Task")).
			Return(nil, apperrors.ErrTitleRequired)

		h := NewTaskHandler(mockSvc)
		c, _ := newTaskContext(http.MethodPost, "/api/tasks", `{"priority":"Low"}`, "user-1")

		assert.Equal(t, http.StatusBadRequest, httpStatus(t, h.Create(c)))
	})

	t.Run("unauthenticated", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		h := NewTaskHandler(mockSvc)
		c, _ := newTaskContext(http.MethodPost, "/api/tasks", `{"title":"A","priority":"Low"}`, "")

		assert.Equal(t, http.StatusUnauthorized, httpStatus(t, h.Create(c)))
		mockSvc.AssertNotCalled(t, "Create")
	})
}

func TestTaskHandler_ListStatusCodes(t *testing.T) {
	t.Run("ok with tasks", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("ListForOwner", mock.Anything, "user-1").
			Return([]model.Task{{ID: 1, Title: "A", Priority: "Low", UserID: "user-1"}}, nil)

		h := NewTaskHandler(mockSvc)
		c, rec := newTaskContext(http.MethodGet, "/api/tasks", "", "user-1")

		assert.NoError(t, h.List(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("zero tasks surfaces not found", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("ListForOwner", mock.Anything, "user-1").Return([]model.Task{}, nil)

		h := NewTaskHandler(mockSvc)
		c, _ := newTaskContext(http.MethodGet, "/api/tasks", "", "user-1")

		err := h.List(c)
		assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
	})

	t.Run("unauthenticated", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		h := NewTaskHandler(mockSvc)
		c, _ := newTaskContext(http.MethodGet, "/api/tasks", "", "")

		assert.Equal(t, http.StatusUnauthorized, httpStatus(t, h.List(c)))
		mockSvc.AssertNotCalled(t, "ListForOwner")
	})
}

func TestTaskHandler_UpdateStatusCodes(t *testing.T) {
	t.Run("no content on success", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("Update", mock.Anything, "user-1", uint(7), mock.AnythingOfType("*model.Task")).Return(nil)

		h := NewTaskHandler(mockSvc)
		c, rec := newTaskContext(http.MethodPut, "/api/tasks/7", `{"title":"B","priority":"High","is_completed":true}`, "user-1")
		c.SetParamNames("id")
		c.SetParamValues("7")

		assert.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("not found or not owned", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("Update", mock.Anything, "user-1", uint(7), mock.AnythingOfType("*model.Task")).
			Return(apperrors.ErrTaskNotFound)

		h := NewTaskHandler(mockSvc)
		c, _ := newTaskContext(http.MethodPut, "/api/tasks/7", `{"title":"B"}`, "user-1")
		c.SetParamNames("id")
		c.SetParamValues("7")

		assert.Equal(t, http.StatusNotFound, httpStatus(t, h.Update(c)))
	})

	t.Run("invalid id", func(t *testing.T) {
		h := NewTaskHandler(new(MockTaskService))
		c, _ := newTaskContext(http.MethodPut, "/api/tasks/abc", `{"title":"B"}`, "user-1")
		c.SetParamNames("id")
		c.SetParamValues("abc")

		assert.Equal(t, http.StatusBadRequest, httpStatus(t, h.Update(c)))
	})
}

func TestTaskHandler_DeleteStatusCodes(t *testing.T) {
	t.Run("no content on success", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("Delete", mock.Anything, "user-1", uint(3)).Return(nil)

		h := NewTaskHandler(mockSvc)
		c, rec := newTaskContext(http.MethodDelete, "/api/tasks/3", "", "user-1")
		c.SetParamNames("id")
		c.SetParamValues("3")

		assert.NoError(t, h.Delete(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("repeat delete reports not found", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("Delete", mock.Anything, "user-1", uint(3)).Return(apperrors.ErrTaskNotFound)

		h := NewTaskHandler(mockSvc)
		c, _ := newTaskContext(http.MethodDelete, "/api/tasks/3", "", "user-1")
		c.SetParamNames("id")
		c.SetParamValues("3")

		assert.Equal(t, http.StatusNotFound, httpStatus(t, h.Delete(c)))
	})

	t.Run("unauthenticated", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		h := NewTaskHandler(mockSvc)
		c, _ := newTaskContext(http.MethodDelete, "/api/tasks/3", "", "")
		c.SetParamNames("id")
		c.SetParamValues("3")

		assert.Equal(t, http.StatusUnauthorized, httpStatus(t, h.Delete(c)))
		mockSvc.AssertNotCalled(t, "Delete")
	})
}
