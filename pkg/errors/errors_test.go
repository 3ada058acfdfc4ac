package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorsCarryCodeAndStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Booking"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("Tutor", "t1"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad input", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad id"), CodeInvalidInput, http.StatusBadRequest},
		{"state conflict", StateConflict("not pending"), CodeStateConflict, http.StatusConflict},
		{"unauthorized", Unauthorized("no token"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("not yours"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("duplicate"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
		{"unavailable", Unavailable("bookings"), CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", tt.err.Code, tt.wantCode)
			}
			if tt.err.HTTPStatus != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.HTTPStatus, tt.wantStatus)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("Failed to create booking", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
}

func TestIsCode(t *testing.T) {
	err := StateConflict("Booking is no longer pending")

	if !IsCode(err, CodeStateConflict) {
		t.Error("IsCode failed on direct AppError")
	}

	wrapped := fmt.Errorf("command failed: %w", err)
	if !IsCode(wrapped, CodeStateConflict) {
		t.Error("IsCode failed on wrapped AppError")
	}

	if IsCode(errors.New("plain"), CodeStateConflict) {
		t.Error("IsCode matched a non-AppError")
	}
	if IsCode(err, CodeNotFound) {
		t.Error("IsCode matched the wrong code")
	}
}

func TestAsAppError(t *testing.T) {
	direct := Validation("bad", nil)
	if got := AsAppError(direct); got != direct {
		t.Error("direct AppError should round-trip unchanged")
	}

	wrapped := fmt.Errorf("outer: %w", direct)
	if got := AsAppError(wrapped); got != direct {
		t.Error("wrapped AppError not unwrapped")
	}

	plain := AsAppError(errors.New("something broke"))
	if plain.Code != CodeInternal || plain.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("plain error should become internal, got %q / %d", plain.Code, plain.HTTPStatus)
	}
}
