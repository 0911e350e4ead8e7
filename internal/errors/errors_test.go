package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"api detail", NewAPIError(http.StatusBadRequest, "Minimum reservation time is 2 hours"), "Minimum reservation time is 2 hours"},
		{"wrapped api detail", fmt.Errorf("create reservation: %w", NewAPIError(400, "Court is already reserved for this time")), "Court is already reserved for this time"},
		{"api without detail", NewAPIError(http.StatusInternalServerError, ""), "fallback"},
		{"network", &NetworkError{Op: "login", Err: stderrors.New("connection refused")}, "fallback"},
		{"decode", &DecodeError{Op: "courts", Err: stderrors.New("unexpected EOF")}, "fallback"},
		{"validation", NewValidationError("message", "Message is required"), "Message is required"},
		{"unauthenticated", ErrUnauthenticated, "Please log in again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err, "fallback"); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsUnauthorized(t *testing.T) {
	if !IsUnauthorized(fmt.Errorf("probe: %w", NewAPIError(http.StatusUnauthorized, "Invalid token"))) {
		t.Error("expected wrapped 401 to be unauthorized")
	}
	if IsUnauthorized(NewAPIError(http.StatusForbidden, "Staff access required")) {
		t.Error("403 is not unauthorized")
	}
	if IsUnauthorized(&NetworkError{Op: "probe", Err: stderrors.New("timeout")}) {
		t.Error("network error is not unauthorized")
	}
}
