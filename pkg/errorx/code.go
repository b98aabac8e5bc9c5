package errorx

import "net/http"

type Code int

var Unknown = Error{Code: Internal, Message: "Request failed"}

const (
	BadRequest Code = iota + 1
	Unauthenticated
	PermissionDenied
	NotFound
	Unavailable
	Timeout
	Internal
)

// HTTPStatus maps an error to the status written at the HTTP boundary. An
// explicit Status set with WithStatus wins over the per-code default.
func (e Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}

	switch e.Code {
	case BadRequest:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case PermissionDenied:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Unavailable:
		return http.StatusBadGateway
	case Timeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
