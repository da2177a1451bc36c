package gateway

import (
	"errors"

	"github.com/WriteMind/blog-service/internal/docstore"
)

var (
	ErrAuthenticationRequired = errors.New("user authentication required")
	ErrMissingParameters      = errors.New("missing required parameters")
)

// UserMessage converts a propagated write error to the short text shown in a
// transient notification.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuthenticationRequired):
		return "Please log in to continue."
	case errors.Is(err, ErrMissingParameters):
		return "Some required fields are missing."
	}

	switch docstore.ErrCode(err) {
	case docstore.CodePermissionDenied:
		return "Permission denied. Please check your access."
	case docstore.CodeNotFound:
		return "The requested content was not found."
	case docstore.CodeUnavailable:
		return "The service is currently unavailable. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}
