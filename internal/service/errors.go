package service

import (
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/serrors"
)

// connectCode maps a semantic error kind to the Connect code clients see.
func connectCode(err error) connect.Code {
	switch serrors.KindOf(err) {
	case serrors.ErrInvalidInput:
		return connect.CodeInvalidArgument
	case serrors.ErrNotFound:
		return connect.CodeNotFound
	case serrors.ErrConflict:
		return connect.CodeAlreadyExists
	case serrors.ErrStorage:
		return connect.CodeUnavailable
	case serrors.ErrUnauthorized:
		return connect.CodeUnauthenticated
	case serrors.ErrForbidden:
		return connect.CodePermissionDenied
	default:
		return connect.CodeInternal
	}
}

// toConnectError wraps err with the Connect code for its kind. Errors that
// already carry a Connect code pass through.
func toConnectError(err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}
	return connect.NewError(connectCode(err), err)
}

// httpStatus maps a semantic error kind to an HTTP status for plain routes.
func httpStatus(err error) int {
	switch serrors.KindOf(err) {
	case serrors.ErrInvalidInput:
		return http.StatusBadRequest
	case serrors.ErrNotFound:
		return http.StatusNotFound
	case serrors.ErrConflict:
		return http.StatusConflict
	case serrors.ErrStorage:
		return http.StatusServiceUnavailable
	case serrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case serrors.ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

var errNotOwner = serrors.With(serrors.ErrForbidden, "you can only access your own records")

// requireSelf checks that the authenticated user is userID.
func requireSelf(authUserID, userID string) error {
	if authUserID == "" {
		return serrors.With(serrors.ErrUnauthorized, "authentication required")
	}
	if authUserID != userID {
		return errNotOwner
	}
	return nil
}
