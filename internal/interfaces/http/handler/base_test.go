package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finbooks/backend/internal/domain/accounting"
	"github.com/finbooks/backend/internal/domain/shared"
	"github.com/finbooks/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_HandleError(t *testing.T) {
	var h BaseHandler

	t.Run("classification error maps to 422 data integrity", func(t *testing.T) {
		c, w := newTestContext(t)

		h.HandleError(c, &accounting.ClassificationError{
			AccountID: uuid.New(),
			RawType:   "GOODWILL",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeDataIntegrity, resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "GOODWILL")
	})

	t.Run("domain error maps through the code table", func(t *testing.T) {
		tests := []struct {
			domainCode string
			status     int
			transport  string
		}{
			{"DUPLICATE_CODE", http.StatusConflict, dto.ErrCodeAlreadyExists},
			{"ACCOUNT_IN_USE", http.StatusUnprocessableEntity, dto.ErrCodeAccountInUse},
			{"UNKNOWN_ACCOUNT", http.StatusUnprocessableEntity, dto.ErrCodeUnknownAccount},
			{"VERSION_CONFLICT", http.StatusConflict, dto.ErrCodeConcurrencyConflict},
			{"INVALID_CREDENTIALS", http.StatusUnauthorized, dto.ErrCodeInvalidCredentials},
			{"ACCOUNT_LOCKED", http.StatusForbidden, dto.ErrCodeAccountLocked},
			{"NOT_FOUND", http.StatusNotFound, dto.ErrCodeNotFound},
		}

		for _, tt := range tests {
			t.Run(tt.domainCode, func(t *testing.T) {
				c, w := newTestContext(t)

				h.HandleError(c, shared.NewDomainError(tt.domainCode, "boom"))

				assert.Equal(t, tt.status, w.Code)
				resp := decodeResponse(t, w)
				assert.Equal(t, tt.transport, resp.Error.Code)
			})
		}
	})

	t.Run("bare not-found maps to 404", func(t *testing.T) {
		c, w := newTestContext(t)

		h.HandleError(c, shared.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown error maps to 500", func(t *testing.T) {
		c, w := newTestContext(t)

		h.HandleError(c, errors.New("disk on fire"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, "disk on fire")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext(t)

		h.HandleError(c, nil)

		assert.Empty(t, w.Body.String())
	})
}

func TestBaseHandler_Responses(t *testing.T) {
	var h BaseHandler

	t.Run("success with meta computes total pages", func(t *testing.T) {
		c, w := newTestContext(t)

		h.SuccessWithMeta(c, []string{"a", "b"}, 42, 2, 20)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(42), resp.Meta.Total)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})

	t.Run("error carries the request id", func(t *testing.T) {
		c, w := newTestContext(t)
		c.Set("request_id", "req-123")

		h.BadRequest(c, "nope")

		resp := decodeResponse(t, w)
		assert.Equal(t, "req-123", resp.Error.RequestID)
	})
}
