package api

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ApiError describes a request that reached Nova and was rejected, or whose
// response could not be decoded. Code is the HTTP status code as a string.
type ApiError struct {
	Message string
	Code    string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("nova api error [%s]: %s", e.Code, e.Message)
}

// response is the raw transport outcome consumed by unfold. Message carries a
// transport-level status message when the server sent no body; it is empty
// for the common case.
type response struct {
	StatusCode int
	Message    string
	Body       []byte
}

// successful reports whether the status code is in the 2xx range.
func (r *response) successful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Result holds the outcome of unfolding a response: exactly one of value or
// error is ever set.
type Result[T any] struct {
	value T
	err   *ApiError
}

func success[T any](v T) Result[T] {
	return Result[T]{value: v}
}

func failure[T any](message, code string) Result[T] {
	return Result[T]{err: &ApiError{Message: message, Code: code}}
}

// OK reports whether the result carries a value.
func (r Result[T]) OK() bool {
	return r.err == nil
}

// Value returns the success value. Only meaningful when OK.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the error description, or nil on success.
func (r Result[T]) Err() *ApiError {
	return r.err
}

// statusMessage synthesizes an error message for responses that arrive with
// no body and no message of their own.
func statusMessage(statusCode int) string {
	switch {
	case statusCode >= 400 && statusCode < 500:
		return "Request error"
	case statusCode >= 500 && statusCode < 600:
		return "Server error"
	default:
		return "Unknown error"
	}
}

// unfold normalizes a raw response into a Result. The branches are evaluated
// in order:
//
//  1. no body, no message: synthesize an error from the status code band
//  2. no body, message present: surface the message
//  3. body on a 2xx response: decode into T; a decode failure becomes an error
//  4. body on a non-2xx response: surface the raw body text verbatim
//
// Error bodies are deliberately not parsed as structured shapes; Nova error
// payloads vary per endpoint, so the raw text is the only stable surface.
func unfold[T any](resp *response) Result[T] {
	code := strconv.Itoa(resp.StatusCode)

	if len(resp.Body) == 0 {
		if resp.Message == "" {
			return failure[T](statusMessage(resp.StatusCode), code)
		}
		return failure[T](resp.Message, code)
	}

	if resp.successful() {
		var value T
		if err := json.Unmarshal(resp.Body, &value); err != nil {
			return failure[T](fmt.Sprintf("failed to decode response body: %v", err), code)
		}
		return success(value)
	}

	return failure[T](string(resp.Body), code)
}
