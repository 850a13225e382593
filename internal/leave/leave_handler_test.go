package leave_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Anuradha654321/faculty-leave-system/internal/domain"
	"github.com/Anuradha654321/faculty-leave-system/internal/leave"
	leaveerrors "github.com/Anuradha654321/faculty-leave-system/internal/leave/errors"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	applyFn           func(ctx context.Context, actor domain.Actor, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error)
	applyPermissionFn func(ctx context.Context, actor domain.Actor, req leave.PermissionLeaveRequest) (leave.LeaveResponse, error)
	listMineFn        func(ctx context.Context, actor domain.Actor) ([]leave.LeaveResponse, error)
	cancelFn          func(ctx context.Context, actor domain.Actor, id string) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Apply(ctx context.Context, actor domain.Actor, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	return f.applyFn(ctx, actor, req)
}

func (f *fakeLeaveService) ApplyPermission(ctx context.Context, actor domain.Actor, req leave.PermissionLeaveRequest) (leave.LeaveResponse, error) {
	return f.applyPermissionFn(ctx, actor, req)
}

func (f *fakeLeaveService) ListMine(ctx context.Context, actor domain.Actor) ([]leave.LeaveResponse, error) {
	return f.listMineFn(ctx, actor)
}

func (f *fakeLeaveService) Cancel(ctx context.Context, actor domain.Actor, id string) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, actor, id)
}

func authedContext(t *testing.T, w *httptest.ResponseRecorder, method, path, body string) (*gin.Context, string) {
	t.Helper()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	userID := uuid.New().String()
	c.Set("user_id", userID)
	c.Set("dept_id", uuid.New().String())
	c.Set("role", domain.RoleFaculty)
	c.Set("name", "Asha Verma")
	return c, userID
}

func TestLeaveHandler_Apply(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		typeID := uuid.New().String()
		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, actor domain.Actor, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, typeID, req.LeaveTypeID)
				assert.Equal(t, domain.RoleFaculty, actor.Role)
				return leave.LeaveResponse{
					ID:          uuid.New().String(),
					LeaveTypeID: req.LeaveTypeID,
					StartDate:   "2025-01-10",
					EndDate:     "2025-01-12",
					TotalDays:   3,
					Status:      leave.StatusPending,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		body := `{"leave_type_id":"` + typeID + `","date_range":"2025-01-10 to 2025-01-12","reason":"Vacation"}`
		c, _ := authedContext(t, w, http.MethodPost, "/leaves", body)

		h.Apply(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, typeID, got.LeaveTypeID)
		assert.Equal(t, 3.0, got.TotalDays)
		assert.Equal(t, leave.StatusPending, got.Status)
	})

	t.Run("negative missing body fields", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := authedContext(t, w, http.MethodPost, "/leaves", `{}`)

		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
	})

	t.Run("negative overlap returns conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, actor domain.Actor, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrOverlappingApplication
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		body := `{"leave_type_id":"` + uuid.New().String() + `","date_range":"2025-01-11","reason":"Personal"}`
		c, _ := authedContext(t, w, http.MethodPost, "/leaves", body)

		h.Apply(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "OVERLAPPING_APPLICATION", env.Error.Code)
	})

	t.Run("negative unexpected error is masked", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, actor domain.Actor, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, errors.New("pq: connection refused")
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		body := `{"leave_type_id":"` + uuid.New().String() + `","date_range":"2025-01-11","reason":"Personal"}`
		c, _ := authedContext(t, w, http.MethodPost, "/leaves", body)

		h.Apply(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
		assert.NotContains(t, env.Error.Message, "pq:")
	})
}

func TestLeaveHandler_ApplyPermission(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyPermissionFn: func(ctx context.Context, actor domain.Actor, req leave.PermissionLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, "morning", req.Slot)
				slot := req.Slot
				return leave.LeaveResponse{
					ID:             uuid.New().String(),
					StartDate:      req.Date,
					EndDate:        req.Date,
					TotalDays:      0.5,
					IsPermission:   true,
					PermissionSlot: &slot,
					Status:         leave.StatusPending,
				}, nil
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		body := `{"date":"2025-03-10","slot":"morning","reason":"Bank work"}`
		c, _ := authedContext(t, w, http.MethodPost, "/leaves/permission", body)

		h.ApplyPermission(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.True(t, got.IsPermission)
		assert.Equal(t, 0.5, got.TotalDays)
		assert.Equal(t, got.StartDate, got.EndDate)
	})

	t.Run("negative invalid slot", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyPermissionFn: func(ctx context.Context, actor domain.Actor, req leave.PermissionLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidPermissionSlot
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		body := `{"date":"2025-03-10","slot":"afternoon","reason":"Bank work"}`
		c, _ := authedContext(t, w, http.MethodPost, "/leaves/permission", body)

		h.ApplyPermission(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestLeaveHandler_Cancel(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		appID := uuid.New().String()
		svc := &fakeLeaveService{
			cancelFn: func(ctx context.Context, actor domain.Actor, id string) (leave.LeaveResponse, error) {
				assert.Equal(t, appID, id)
				return leave.LeaveResponse{ID: id, Status: leave.StatusCancelled}, nil
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := authedContext(t, w, http.MethodPost, "/leaves/"+appID+"/cancel", "")
		c.Params = gin.Params{{Key: "id", Value: appID}}

		h.Cancel(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative not cancellable", func(t *testing.T) {
		svc := &fakeLeaveService{
			cancelFn: func(ctx context.Context, actor domain.Actor, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrNotCancellable
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := authedContext(t, w, http.MethodPost, "/leaves/"+uuid.New().String()+"/cancel", "")

		h.Cancel(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}

func TestLeaveHandler_ListMine(t *testing.T) {
	svc := &fakeLeaveService{
		listMineFn: func(ctx context.Context, actor domain.Actor) ([]leave.LeaveResponse, error) {
			return []leave.LeaveResponse{
				{ID: uuid.New().String(), Status: leave.StatusPending},
			}, nil
		},
	}
	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := authedContext(t, w, http.MethodGet, "/leaves", "")

	h.ListMine(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}
