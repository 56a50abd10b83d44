package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "invalid credentials", err: ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantCode: "INVALID_CREDENTIALS"},
		{name: "unauthenticated", err: ErrUnauthenticated, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHENTICATED"},
		{name: "forbidden", err: ErrForbidden, wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "location missing", err: ErrLocationNotFound, wantStatus: http.StatusNotFound, wantCode: "LOCATION_NOT_FOUND"},
		{name: "record missing", err: ErrRecordNotFound, wantStatus: http.StatusNotFound, wantCode: "RECORD_NOT_FOUND"},
		{name: "email taken", err: ErrEmailTaken, wantStatus: http.StatusConflict, wantCode: "EMAIL_TAKEN"},
		{name: "invalid upload", err: ErrInvalidUpload, wantStatus: http.StatusUnprocessableEntity, wantCode: "INVALID_UPLOAD"},
		{name: "storage failure", err: ErrStorageFailure, wantStatus: http.StatusInternalServerError, wantCode: "STORAGE_FAILURE"},
		{name: "wrapped error still maps", err: fmt.Errorf("%w: disk full", ErrStorageFailure), wantStatus: http.StatusInternalServerError, wantCode: "STORAGE_FAILURE"},
		{name: "unknown error", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.ToErrorResponse().Code)
		})
	}
}
