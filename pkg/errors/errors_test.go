package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidCoordinate, "start %d > end %d", 50, 10)

	if err.Code != ErrCodeInvalidCoordinate {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidCoordinate)
	}
	if err.Message != "start 50 > end 10" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidWindow, "start must precede end"),
			want: "INVALID_VIEW_WINDOW: start must precede end",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeNetwork, stderrors.New("connection refused"), "fetch failed"),
			want: "NETWORK_ERROR: fetch failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Wrap(ErrCodeMalformedRecord, cause, "bad chopping string")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidCoordinate, "out of range")

	if !Is(err, ErrCodeInvalidCoordinate) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNetwork) {
		t.Error("Is() should not match a plain error")
	}
}

func TestIsWrappedChain(t *testing.T) {
	inner := New(ErrCodeProteinNotFound, "no entry for P69905")
	outer := fmt.Errorf("fetch: %w", inner)

	if !Is(outer, ErrCodeProteinNotFound) {
		t.Error("Is() should unwrap fmt.Errorf chains")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeTimeout, "deadline")); got != ErrCodeTimeout {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeTimeout)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidMode, "unknown mode %q", "half")); got != `unknown mode "half"` {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(stderrors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestRateLimitedError(t *testing.T) {
	err := &RateLimitedError{RetryAfter: 30}
	if got := err.Error(); got != "rate limited: retry after 30 seconds" {
		t.Errorf("Error() = %q", got)
	}
	if err.Code() != ErrCodeRateLimited {
		t.Errorf("Code() = %q", err.Code())
	}

	bare := &RateLimitedError{}
	if got := bare.Error(); got != "rate limited" {
		t.Errorf("Error() = %q", got)
	}
}
