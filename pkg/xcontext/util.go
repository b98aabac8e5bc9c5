package xcontext

import "context"

type errorBox struct {
	err error
}

// WithErrorBox installs a slot the router fills when a request fails, so that
// closers running after the response can observe the outcome.
func WithErrorBox(ctx context.Context) context.Context {
	return context.WithValue(ctx, errorKey{}, &errorBox{})
}

func SetError(ctx context.Context, err error) {
	if box, ok := ctx.Value(errorKey{}).(*errorBox); ok {
		box.err = err
	}
}

func Error(ctx context.Context) error {
	box, ok := ctx.Value(errorKey{}).(*errorBox)
	if !ok {
		return nil
	}

	return box.err
}
