package exchange

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"

	"github.com/calperm/calperm/internal/urls"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error (connection reset, unreachable, etc.)
	ErrTypeNetwork ErrorType = iota
	// ErrTypeAuth indicates a missing, expired or insufficient token
	ErrTypeAuth
	// ErrTypeHTTP indicates an unexpected HTTP status
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed response body
	ErrTypeParse
	// ErrTypeNotFound indicates the mailbox, folder or user does not exist
	ErrTypeNotFound
	// ErrTypeAlreadyExists indicates the user already has a permission entry
	ErrTypeAlreadyExists
	// ErrTypeCommand indicates the cmdlet ran and reported an error
	ErrTypeCommand
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the endpoint refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeAuth:
		return "Authentication Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeNotFound:
		return "Not Found"
	case ErrTypeAlreadyExists:
		return "Already Exists"
	case ErrTypeCommand:
		return "Command Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Sentinels matched by errors.Is against an *APIError of the same type.
var (
	ErrNotFound      = errors.New("object not found")
	ErrAlreadyExists = errors.New("permission entry already exists")
	ErrNotConnected  = errors.New("no session: connect first")
)

// APIError is an error returned by the admin API or while talking to it.
type APIError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Code       string    // Error code reported by the service (if any)
	Cmdlet     string    // Cmdlet that failed
	Err        error     // Underlying error (if any)
	Retryable  bool      // Whether the call may be repeated
}

// Error implements the error interface
func (e *APIError) Error() string {
	prefix := e.Type.String()
	if e.Cmdlet != "" {
		prefix = e.Cmdlet + ": " + prefix
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Type == ErrTypeNotFound
	case ErrAlreadyExists:
		return e.Type == ErrTypeAlreadyExists
	}
	return false
}

// ClassifyNetworkError analyzes a transport error and returns a typed error
func ClassifyNetworkError(err error) *APIError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &APIError{Type: ErrTypeTimeout, Message: "Request timed out", Err: err, Retryable: true}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &APIError{
			Type:    ErrTypeDNS,
			Message: fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:     err,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &APIError{Type: ErrTypeConnectionRefused, Message: "Endpoint refused connection", Err: err, Retryable: true}
		}
		if errors.Is(opErr.Err, syscall.EHOSTUNREACH) || errors.Is(opErr.Err, syscall.ENETUNREACH) {
			return &APIError{Type: ErrTypeNetwork, Message: "Endpoint unreachable", Err: err, Retryable: true}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != err {
		return ClassifyNetworkError(urlErr.Err)
	}

	return &APIError{Type: ErrTypeNetwork, Message: "Network error occurred", Err: err, Retryable: true}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error) *APIError {
	if classified := ClassifyNetworkError(err); classified != nil {
		classified.Message = message + ": " + strings.ToLower(classified.Message)
		return classified
	}
	return &APIError{Type: ErrTypeNetwork, Message: message, Retryable: true}
}

// NewAuthError creates an authentication error
func NewAuthError(message string) *APIError {
	return &APIError{Type: ErrTypeAuth, Message: message, StatusCode: http.StatusUnauthorized}
}

// NewHTTPError creates an HTTP-level error. Throttling and server errors are retryable.
func NewHTTPError(statusCode int, message string) *APIError {
	return &APIError{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  statusCode == http.StatusTooManyRequests || statusCode >= 500,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *APIError {
	return &APIError{Type: ErrTypeParse, Message: message, Err: err}
}

// NewNotFoundError reports a missing object.
func NewNotFoundError(message string) *APIError {
	return &APIError{Type: ErrTypeNotFound, Message: message, StatusCode: http.StatusNotFound}
}

// NewAlreadyExistsError reports a duplicate permission entry.
func NewAlreadyExistsError(message string) *APIError {
	return &APIError{Type: ErrTypeAlreadyExists, Message: message}
}

// Substrings of service error messages and codes that identify specific failures.
var (
	notFoundMarkers = []string{
		"couldn't be found", "could not be found", "ManagementObjectNotFoundException",
		"no existing permission entry", "UserNotFoundInPermissionEntryException",
	}
	alreadyExistsMarkers = []string{
		"existing permission entry was found", "UserAlreadyExistsInPermissionEntryException",
	}
)

// classifyServiceError maps a non-success response to a typed error.
func classifyServiceError(statusCode int, code, message string) *APIError {
	text := code + " " + message
	contains := func(markers []string) bool {
		for _, m := range markers {
			if strings.Contains(strings.ToLower(text), strings.ToLower(m)) {
				return true
			}
		}
		return false
	}

	var e *APIError
	switch {
	case contains(alreadyExistsMarkers):
		e = NewAlreadyExistsError(message)
	case statusCode == http.StatusNotFound || contains(notFoundMarkers):
		e = NewNotFoundError(message)
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		e = NewAuthError(message)
	case statusCode == http.StatusBadRequest:
		e = &APIError{Type: ErrTypeCommand, Message: message}
	default:
		e = NewHTTPError(statusCode, message)
	}
	e.StatusCode = statusCode
	e.Code = code
	return e
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

func isType(err error, types ...ErrorType) bool {
	apiErr, ok := asAPIError(err)
	if !ok {
		return false
	}
	for _, t := range types {
		if apiErr.Type == t {
			return true
		}
	}
	return false
}

// IsNetworkError checks if an error is a network error (including timeout, connection refused, DNS, etc.)
func IsNetworkError(err error) bool {
	return isType(err, ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS)
}

// IsAuthError checks if an error is an authentication error
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotConnected) || isType(err, ErrTypeAuth)
}

// IsNotFound checks if an error reports a missing object
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error reports a duplicate permission entry
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Retryable
}

// TroubleshootingHint returns user-facing advice for an error, one tip per entry.
func TroubleshootingHint(err error) []string {
	if errors.Is(err, ErrNotConnected) {
		return []string{"Restart calperm to open a new session"}
	}
	apiErr, ok := asAPIError(err)
	if !ok {
		return nil
	}

	switch apiErr.Type {
	case ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeNetwork:
		return []string{
			"Check your network connection",
			"Verify the exchange.endpoint setting",
			"Try again in a few minutes",
			"See " + urls.TroubleshootingGuide,
		}
	case ErrTypeDNS:
		return []string{
			"Could not resolve the admin endpoint host name",
			"Check the exchange.endpoint setting and your DNS configuration",
		}
	case ErrTypeAuth:
		return []string{
			"The access token is missing, expired or lacks admin rights",
			"Store a fresh token with: calperm token set --admin <upn>",
			"Or export " + TokenEnvVar + " for this shell",
			"See " + urls.AccessTokens,
		}
	case ErrTypeNotFound:
		return []string{
			"Check the spelling of the address",
			"The recipient may not have a mailbox in this tenant",
		}
	case ErrTypeAlreadyExists:
		return []string{"Use Modify to change the existing permission"}
	case ErrTypeHTTP:
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return []string{"The service is throttling requests; wait a minute and retry"}
		}
		if apiErr.StatusCode >= 500 {
			return []string{"The service reported an internal error; retry later"}
		}
	case ErrTypeParse:
		return []string{"The service returned an unexpected response; run with --log-level debug for details"}
	}
	return nil
}

// ShortMessage returns a concise, user-friendly error message
func ShortMessage(err error) string {
	if errors.Is(err, ErrNotConnected) {
		return "Not connected"
	}
	apiErr, ok := asAPIError(err)
	if !ok {
		return err.Error()
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return "Admin endpoint not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Admin endpoint refused connection"
	case ErrTypeDNS:
		return "Cannot resolve admin endpoint"
	case ErrTypeNetwork:
		return "Network error - check connection"
	case ErrTypeAuth:
		return "Authentication failed - check token"
	case ErrTypeHTTP:
		return fmt.Sprintf("Service error (HTTP %d)", apiErr.StatusCode)
	case ErrTypeParse:
		return "Failed to parse service response"
	default:
		return apiErr.Message
	}
}
