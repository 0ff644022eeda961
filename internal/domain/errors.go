package domain

import (
	"fmt"
	"strconv"
	"time"
)

// ErrorKind is the closed set of failure categories that can reach the
// MCP boundary. Every error returned to the host carries exactly one kind.
type ErrorKind string

const (
	KindConfig      ErrorKind = "config_error"
	KindValidation  ErrorKind = "validation_error"
	KindNetwork     ErrorKind = "network_error"
	KindAPI         ErrorKind = "api_error"
	KindRateLimit   ErrorKind = "rate_limit"
	KindUnsupported ErrorKind = "unsupported"
)

// ToolError is a classified failure. Status is the upstream HTTP status
// code and is zero unless the error was derived from a remote response.
// Action is imperative guidance telling the caller what to do next; it is
// always set and never the same text as Message.
type ToolError struct {
	Kind    ErrorKind
	Message string
	Status  int
	Action  string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewConfigError reports missing or invalid process configuration.
func NewConfigError(message, action string) *ToolError {
	return &ToolError{Kind: KindConfig, Message: message, Action: action}
}

// NewValidationError reports malformed tool input.
func NewValidationError(message, action string) *ToolError {
	return &ToolError{Kind: KindValidation, Message: message, Action: action}
}

// NewNetworkError reports a request that failed before any response arrived.
func NewNetworkError(message string) *ToolError {
	return &ToolError{
		Kind:    KindNetwork,
		Message: message,
		Action:  "Check network connectivity to the Capacities API and try again.",
	}
}

// NewEmptyBodyError reports a 2xx response with no body from an endpoint
// that is documented to return one.
func NewEmptyBodyError(method, endpoint string) *ToolError {
	return &ToolError{
		Kind:    KindAPI,
		Message: fmt.Sprintf("empty response body from %s %s", method, endpoint),
		Action:  "Retry the request; if the problem persists the Capacities API may be degraded.",
	}
}

// NewDecodeError reports a 2xx response whose body is not valid JSON.
func NewDecodeError(method, endpoint string, cause error) *ToolError {
	return &ToolError{
		Kind:    KindAPI,
		Message: fmt.Sprintf("unparseable response body from %s %s: %v", method, endpoint, cause),
		Action:  "Retry the request; if the problem persists the Capacities API may be degraded.",
	}
}

// Classify normalizes any error into a ToolError. Errors that are already
// classified are returned unchanged, so classification is applied at most
// once per failure. Anything unrecognized becomes a network_error: raw
// failures never cross the MCP boundary.
func Classify(err error) *ToolError {
	if err == nil {
		return nil
	}
	if te, ok := err.(*ToolError); ok {
		return te
	}
	return NewNetworkError(err.Error())
}

// RetryHints carries the rate-limit headers of a remote response, when present.
type RetryHints struct {
	// RetryAfter is the raw Retry-After header value (seconds).
	RetryAfter string
	// RateLimitReset is the raw X-RateLimit-Reset header value (unix seconds).
	RateLimitReset string
}

// FromResponse classifies a non-success HTTP status from the Capacities API.
// The response body, if non-empty, is appended verbatim to the message for
// diagnostics.
func FromResponse(method, endpoint string, status int, body string, hints RetryHints) *ToolError {
	message := fmt.Sprintf("HTTP %d from %s %s", status, method, endpoint)
	if body != "" {
		message += ": " + body
	}

	var kind ErrorKind
	var action string
	switch {
	case status == 401:
		kind = KindAPI
		action = "Verify your Capacities API token (CAPACITIES_API_TOKEN) is valid and has not been revoked."
	case status == 404:
		kind = KindAPI
		action = "Verify the space and entity identifiers; the resource does not exist or is outside the token's scope."
	case status == 429:
		kind = KindRateLimit
		action = rateLimitAction(hints)
	case status >= 500:
		// Capacities uses 555 for internal endpoint failures; treat it like
		// any other server error.
		kind = KindAPI
		action = "The Capacities API failed upstream. Wait a few seconds and retry with backoff."
	default:
		kind = KindAPI
		action = "Check the request shape against the Capacities API documentation and adjust the input."
	}

	return &ToolError{Kind: kind, Message: message, Status: status, Action: action}
}

// rateLimitAction derives guidance from retry-hint headers: Retry-After in
// seconds takes precedence, then a reset timestamp, then generic advice.
func rateLimitAction(hints RetryHints) string {
	if secs, err := strconv.Atoi(hints.RetryAfter); err == nil && secs >= 0 {
		return fmt.Sprintf("Rate limited. Wait %d seconds before retrying.", secs)
	}
	if unix, err := strconv.ParseInt(hints.RateLimitReset, 10, 64); err == nil && unix > 0 {
		reset := time.Unix(unix, 0).UTC().Format(time.RFC3339)
		return fmt.Sprintf("Rate limited. The limit resets at %s; retry after that.", reset)
	}
	return "Rate limited. Reduce request frequency and retry shortly."
}
