package exchange

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		et   ErrorType
		want string
	}{
		{ErrTypeNetwork, "Network Error"},
		{ErrTypeAuth, "Authentication Error"},
		{ErrTypeNotFound, "Not Found"},
		{ErrTypeAlreadyExists, "Already Exists"},
		{ErrTypeDNS, "DNS Error"},
		{ErrorType(99), "ErrorType(99)"},
	}
	for _, tt := range tests {
		if got := tt.et.String(); got != tt.want {
			t.Errorf("ErrorType(%d).String() = %q, want %q", tt.et, got, tt.want)
		}
	}
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Type: ErrTypeCommand, Message: "bad parameter", Cmdlet: "Set-MailboxFolderPermission"}
	if got := err.Error(); got != "Set-MailboxFolderPermission: Command Error: bad parameter" {
		t.Errorf("Error() = %q", got)
	}

	cause := errors.New("boom")
	err = &APIError{Type: ErrTypeNetwork, Message: "request failed", Err: cause}
	if !strings.Contains(err.Error(), "caused by: boom") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestAPIError_IsSentinels(t *testing.T) {
	wrapped := fmt.Errorf("resolving: %w", NewNotFoundError("gone"))
	if !errors.Is(wrapped, ErrNotFound) || errors.Is(wrapped, ErrAlreadyExists) {
		t.Error("not found error matched the wrong sentinel")
	}
	if !IsAlreadyExists(NewAlreadyExistsError("dup")) {
		t.Error("IsAlreadyExists should match")
	}
}

func TestClassifyNetworkError(t *testing.T) {
	if ClassifyNetworkError(nil) != nil {
		t.Error("nil error should classify as nil")
	}

	tests := []struct {
		name      string
		err       error
		wantType  ErrorType
		retryable bool
	}{
		{"dns", &net.DNSError{Name: "outlook.invalid", Err: "no such host"}, ErrTypeDNS, false},
		{"refused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, ErrTypeConnectionRefused, true},
		{"unreachable", &net.OpError{Op: "dial", Err: syscall.EHOSTUNREACH}, ErrTypeNetwork, true},
		{"other", errors.New("reset"), ErrTypeNetwork, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNetworkError(tt.err)
			if got.Type != tt.wantType || got.Retryable != tt.retryable {
				t.Errorf("got %v retryable=%v, want %v retryable=%v", got.Type, got.Retryable, tt.wantType, tt.retryable)
			}
			if !IsNetworkError(got) {
				t.Error("IsNetworkError should be true")
			}
		})
	}
}

func TestNewHTTPError_Retryable(t *testing.T) {
	tests := map[int]bool{
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: true,
		http.StatusServiceUnavailable:  true,
		http.StatusConflict:            false,
	}
	for status, want := range tests {
		if got := NewHTTPError(status, "x").Retryable; got != want {
			t.Errorf("status %d retryable = %v, want %v", status, got, want)
		}
	}
}

func TestClassifyServiceError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		code    string
		message string
		want    ErrorType
	}{
		{"duplicate entry", 400, "", "An existing permission entry was found for user: Bob.", ErrTypeAlreadyExists},
		{"duplicate by code", 500, "UserAlreadyExistsInPermissionEntryException", "", ErrTypeAlreadyExists},
		{"missing mailbox", 400, "ManagementObjectNotFoundException", "The operation couldn't be performed.", ErrTypeNotFound},
		{"missing entry", 400, "", "There is no existing permission entry found for user: Bob.", ErrTypeNotFound},
		{"plain 404", 404, "", "nope", ErrTypeNotFound},
		{"unauthorized", 401, "", "expired", ErrTypeAuth},
		{"forbidden", 403, "", "denied", ErrTypeAuth},
		{"bad request", 400, "ParameterBindingException", "bad value", ErrTypeCommand},
		{"server", 502, "", "gateway", ErrTypeHTTP},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyServiceError(tt.status, tt.code, tt.message)
			if got.Type != tt.want {
				t.Errorf("type = %v, want %v", got.Type, tt.want)
			}
			if got.StatusCode != tt.status || got.Code != tt.code {
				t.Errorf("status/code not preserved: %d %q", got.StatusCode, got.Code)
			}
		})
	}
}

func TestTroubleshootingHint(t *testing.T) {
	if hints := TroubleshootingHint(ErrNotConnected); len(hints) != 1 {
		t.Errorf("hints = %v", hints)
	}
	if hints := TroubleshootingHint(errors.New("plain")); hints != nil {
		t.Errorf("plain errors have no hints, got %v", hints)
	}
	if hints := TroubleshootingHint(NewHTTPError(429, "slow")); len(hints) != 1 || !strings.Contains(hints[0], "throttling") {
		t.Errorf("hints = %v", hints)
	}
	auth := TroubleshootingHint(NewAuthError("x"))
	if !strings.Contains(strings.Join(auth, "\n"), TokenEnvVar) {
		t.Errorf("auth hints should mention %s: %v", TokenEnvVar, auth)
	}
}

func TestShortMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrNotConnected, "Not connected"},
		{errors.New("plain"), "plain"},
		{&APIError{Type: ErrTypeTimeout}, "Admin endpoint not responding (timeout)"},
		{NewAuthError("x"), "Authentication failed - check token"},
		{NewHTTPError(503, "x"), "Service error (HTTP 503)"},
		{NewNotFoundError("mailbox ghost couldn't be found"), "mailbox ghost couldn't be found"},
	}
	for _, tt := range tests {
		if got := ShortMessage(tt.err); got != tt.want {
			t.Errorf("ShortMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
