package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/levelpath-backend/internal/http/response"
	"github.com/yungbote/levelpath-backend/internal/pkg/errors"
	"github.com/yungbote/levelpath-backend/internal/platform/apierr"
)

func serveError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) { respondServiceError(c, err) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	return w
}

func TestRespondServiceErrorUsesTaggedStatusAndCode(t *testing.T) {
	err := apierr.Conflict("username_or_email_taken",
		fmt.Errorf("username or email already in use: %w", errors.ErrConflict))

	w := serveError(t, err)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", w.Code, w.Body.String())
	}
	var env response.ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error.Code != "username_or_email_taken" {
		t.Errorf("code = %q, want username_or_email_taken", env.Error.Code)
	}
}

func TestRespondServiceErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{errors.ErrNotFound, http.StatusNotFound},
		{errors.ErrUnauthorized, http.StatusUnauthorized},
		{errors.ErrForbidden, http.StatusForbidden},
		{errors.ErrConflict, http.StatusConflict},
		{errors.ErrInvalidArgument, http.StatusBadRequest},
		{errors.ErrRequirementsNotMet, http.StatusBadRequest},
		{fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if w := serveError(t, tc.err); w.Code != tc.status {
			t.Errorf("%v: status = %d, want %d", tc.err, w.Code, tc.status)
		}
	}
}

func TestRespondServiceErrorHidesInternals(t *testing.T) {
	w := serveError(t, fmt.Errorf("dsn=postgres://user:secret@db"))

	var env response.ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error.Message != "internal server error" {
		t.Errorf("message = %q, want generic internal error", env.Error.Message)
	}
}
