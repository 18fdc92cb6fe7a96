// Package services contains the application services of the feedback board
// client. Each service pairs the remote API with the local session: it checks
// what the signed-in principal may do before calling out, keeps the latest
// collections it fetched, and applies reactions optimistically.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/feedbackboard/internal/client/client"
	"github.com/dmitrijs2005/feedbackboard/internal/client/session"
	"github.com/dmitrijs2005/feedbackboard/internal/logging"
)

var (
	// ErrPermissionDenied is matched by every local permission rejection.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotSignedIn is returned by operations that need a principal.
	ErrNotSignedIn = session.ErrNotAuthenticated
)

// PermissionError is a local rejection made before any network call.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string { return e.Message }

func (e *PermissionError) Is(target error) bool { return target == ErrPermissionDenied }

func denied(msg string) error {
	return &PermissionError{Message: msg}
}

// logFailure records a failed remote call. API errors add the status code and
// the request ID the server saw.
func logFailure(ctx context.Context, log logging.Logger, op string, err error) {
	if errors.Is(err, context.Canceled) {
		log.Debug(ctx, "remote call cancelled", "op", op)
		return
	}
	args := []any{"op", op, "error", err}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		args = append(args, "status", apiErr.Status, "request_id", apiErr.RequestID)
	}
	log.Error(ctx, "remote call failed", args...)
}
