package marketapi

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates the three shapes a failed backend call can take.
// The backend's error payloads have optional nested fields; rather than
// probing for them at every call site, the client classifies the failure
// once and callers branch on the kind.
type ErrorKind int

const (
	// KindNoResponse means the request never produced an HTTP response
	// (connection refused, DNS failure, timeout).
	KindNoResponse ErrorKind = iota
	// KindStatusOnly means the backend answered with an error status but
	// no usable message payload.
	KindStatusOnly
	// KindMessage means the backend answered with an error status and a
	// message (optionally a resultCode for finer branching).
	KindMessage
)

// Backend result codes used to discriminate account states that share an
// HTTP status. These round-trip exactly as the backend emits them.
const (
	ResultMemberDeactivated = "MEMBER_DEACTIVATED"
	ResultMemberSuspended   = "MEMBER_SUSPENDED"
)

// APIError is the discriminated error returned for every failed backend
// call. StatusCode is zero for KindNoResponse; Message and ResultCode are
// empty unless Kind is KindMessage.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	ResultCode string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	switch e.Kind {
	case KindNoResponse:
		return fmt.Sprintf("market API unreachable: %v", e.Err)
	case KindMessage:
		if e.ResultCode != "" {
			return fmt.Sprintf("market API error: status %d, code %s: %s", e.StatusCode, e.ResultCode, e.Message)
		}
		return fmt.Sprintf("market API error: status %d: %s", e.StatusCode, e.Message)
	default:
		if e.Err != nil {
			return fmt.Sprintf("market API error: status %d: %v", e.StatusCode, e.Err)
		}
		return fmt.Sprintf("market API error: status %d", e.StatusCode)
	}
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Err
}

// AsAPIError extracts an APIError from an error chain
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
