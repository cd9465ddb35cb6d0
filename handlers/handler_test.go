package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/4GeeksAcademy/Place-Between-Daniel/middleware"
	"github.com/4GeeksAcademy/Place-Between-Daniel/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.RegisterValidators()
}

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", &services.Error{Kind: services.ErrValidation, Message: "intensity must be between 1 and 10"}, http.StatusBadRequest, `{"error":"intensity must be between 1 and 10"}`},
		{"not found", &services.Error{Kind: services.ErrNotFound, Message: "activity not found"}, http.StatusNotFound, `{"error":"activity not found"}`},
		{"conflict", &services.Error{Kind: services.ErrConflict, Message: "email already registered"}, http.StatusConflict, `{"error":"email already registered"}`},
		{"unauthorized", &services.Error{Kind: services.ErrUnauthorized, Message: "invalid credentials"}, http.StatusUnauthorized, `{"error":"invalid credentials"}`},
		{"wrapped", fmt.Errorf("outer: %w", &services.Error{Kind: services.ErrNotFound, Message: "user not found"}), http.StatusNotFound, `{"error":"user not found"}`},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			respondError(c, "test", tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestParamID(t *testing.T) {
	for _, raw := range []string{"0", "abc", "-3"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/reminders/"+raw, nil)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		_, ok := paramID(c, "id")
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, ok := paramID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(12), id)
}

func TestCompleteActivityRejectsBadBody(t *testing.T) {
	h := &Handler{}
	r := gin.New()
	r.POST("/complete", h.CompleteActivity)

	for _, body := range []string{
		`{}`,
		`{"external_id":"x","source":"feed"}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/complete", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestCheckinRejectsOutOfRangeIntensity(t *testing.T) {
	h := &Handler{}
	r := gin.New()
	r.POST("/checkin", h.Checkin)

	req := httptest.NewRequest(http.MethodPost, "/checkin", strings.NewReader(`{"emotion_id":1,"intensity":11}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPasswordNeedsBearer(t *testing.T) {
	h := &Handler{}
	r := gin.New()
	r.POST("/reset", h.ResetPassword)

	req := httptest.NewRequest(http.MethodPost, "/reset", strings.NewReader(`{"email":"a@b.co","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
