package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harmonix-bot/backend/pkg/errorx"
	"github.com/harmonix-bot/backend/pkg/xcontext"
)

// statusCoder lets a response type override the default 200.
type statusCoder interface {
	StatusCode() int
}

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		ctx := newRequestContext(router, gctx)
		defer func() {
			for _, closer := range router.closers {
				closer(ctx)
			}
		}()

		for _, before := range router.befores {
			next, err := before(ctx)
			if err != nil {
				writeError(gctx, ctx, err)
				return
			}

			ctx = next
		}

		req, err := bindRequest[Request](gctx, method)
		if err != nil {
			writeError(gctx, ctx, err)
			return
		}

		resp, err := handler(ctx, req)
		if err != nil {
			writeError(gctx, ctx, err)
			return
		}

		writeResponse(gctx, resp)
	}
}

func newRequestContext(router *Router, gctx *gin.Context) context.Context {
	ctx := gctx.Request.Context()
	ctx = xcontext.WithDB(ctx, router.db)
	ctx = xcontext.WithConfigs(ctx, router.cfg)
	ctx = xcontext.WithLogger(ctx, router.log)
	ctx = xcontext.WithSessionStore(ctx, router.sessionStore)
	ctx = xcontext.WithHTTPRequest(ctx, gctx.Request)
	ctx = xcontext.WithHTTPWriter(ctx, gctx.Writer)
	ctx = xcontext.WithErrorBox(ctx)
	return ctx
}

// bindRequest fills the request struct from uri parameters, then from the
// query string for body-less methods, then from a JSON body when one is
// present. An empty body on POST is legal; a malformed one is not.
func bindRequest[Request any](gctx *gin.Context, method string) (*Request, error) {
	req := new(Request)

	if len(gctx.Params) > 0 {
		if err := gctx.ShouldBindUri(req); err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid request").WithDetail(err.Error())
		}
	}

	switch method {
	case http.MethodGet, http.MethodDelete:
		if err := gctx.ShouldBindQuery(req); err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid request").WithDetail(err.Error())
		}

	default:
		if gctx.Request.ContentLength > 0 {
			if err := gctx.ShouldBindJSON(req); err != nil {
				return nil, errorx.New(errorx.BadRequest, "Invalid request").WithDetail(err.Error())
			}
		}
	}

	return req, nil
}

func writeError(gctx *gin.Context, ctx context.Context, err error) {
	xcontext.SetError(ctx, err)

	var errx errorx.Error
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	body := gin.H{"error": errx.Message}
	if errx.Detail != "" {
		body["detail"] = errx.Detail
	}

	gctx.JSON(errx.HTTPStatus(), body)
}

func writeResponse(gctx *gin.Context, resp any) {
	status := http.StatusOK
	if coder, ok := resp.(statusCoder); ok {
		status = coder.StatusCode()
	}

	if status == http.StatusNoContent {
		gctx.Status(status)
		return
	}

	gctx.JSON(status, resp)
}
