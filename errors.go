package elastickit

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

var (
	// ErrNoResponse is returned when the cluster answered an administrative call without a body
	ErrNoResponse = errors.New("no response from cluster")
	// ErrIndexNotFound is returned when waiting on an index that does not exist
	ErrIndexNotFound = errors.New("index does not exist")
	// ErrIndexClosed is returned when waiting on a closed index
	ErrIndexClosed = errors.New("index is closed")
	// ErrStatusMismatch is returned when the health wait ended without reaching the requested status
	ErrStatusMismatch = errors.New("index did not reach requested status")
	// ErrMissingClusterConfig is returned when the config names neither elasticsearch nor opensearch
	ErrMissingClusterConfig = errors.New("no cluster configured")
)

// indexClosedMarkers are the error kinds the cluster uses for closed indices, old and new naming
var indexClosedMarkers = []string{"IndexClosedException", "index_closed_exception"}

// RemoteError is an error response returned by the cluster
type RemoteError struct {
	StatusCode int    // StatusCode is the HTTP status of the response
	Kind       string // Kind is the error type, e.g. index_not_found_exception
	Reason     string
}

func (e *RemoteError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("[%d] %s", e.StatusCode, e.Kind)
	}
	return fmt.Sprintf("[%d] %s: %s", e.StatusCode, e.Kind, e.Reason)
}

// IsIndexClosed reports whether the cluster refused the request with 403 because the index is closed
func (e *RemoteError) IsIndexClosed() bool {
	if e.StatusCode != http.StatusForbidden {
		return false
	}

	for _, marker := range indexClosedMarkers {
		if strings.Contains(e.Kind, marker) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether the cluster answered 404
func (e *RemoteError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// newRemoteError decodes an error body. The "error" field is either an object
// carrying type and reason or, on older clusters, a plain string.
func newRemoteError(statusCode int, body []byte) *RemoteError {
	remoteErr := &RemoteError{
		StatusCode: statusCode,
		Kind:       http.StatusText(statusCode),
	}

	value, dataType, _, err := jsonparser.Get(body, "error")
	if err != nil {
		remoteErr.Reason = string(bytes.TrimSpace(body))
		return remoteErr
	}

	switch dataType {
	case jsonparser.String:
		if kind, err := jsonparser.ParseString(value); err == nil {
			remoteErr.Kind = kind
		}
	case jsonparser.Object:
		if kind, err := jsonparser.GetString(value, "type"); err == nil {
			remoteErr.Kind = kind
		}
		if reason, err := jsonparser.GetString(value, "reason"); err == nil {
			remoteErr.Reason = reason
		}
	}
	return remoteErr
}
