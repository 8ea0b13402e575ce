package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"not assigned is forbidden", ErrNotAssigned, http.StatusForbidden},
		{"conflict", ErrConflict, http.StatusConflict},
		{"revision repeat conflicts", ErrAlreadyRequested, http.StatusConflict},
		{"expired", ErrExpired, http.StatusBadRequest},
		{"not eligible", ErrNotEligible, http.StatusBadRequest},
		{"validation", ErrValidation, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleServiceError(c, tc.err)

			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}
