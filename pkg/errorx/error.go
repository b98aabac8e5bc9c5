package errorx

import "fmt"

type Error struct {
	Code    Code
	Status  int
	Message string
	Detail  string
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}

// WithStatus overrides the default HTTP status of the error code. It is used
// to pass an upstream status code through to the caller verbatim.
func (e Error) WithStatus(status int) Error {
	e.Status = status
	return e
}

func (e Error) WithDetail(detail string) Error {
	e.Detail = detail
	return e
}
