package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/harmonix-bot/backend/config"
	"github.com/harmonix-bot/backend/pkg/logger"
	"gorm.io/gorm"
)

// HandlerFunc is the shape of every operation the panel exposes. The request
// is bound from uri, query and body parameters before the handler runs.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (Response, error)

// MiddlewareFunc runs before the handler. Returning an error stops the chain
// and renders the error; the returned context replaces the request context.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, in registration order.
type CloserFunc func(ctx context.Context)

type Router struct {
	Inner gin.IRouter

	db           *gorm.DB
	cfg          config.Configs
	log          logger.Logger
	sessionStore sessions.Store

	befores []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, log logger.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{
		Inner:        gin.New(),
		db:           db,
		cfg:          cfg,
		log:          log,
		sessionStore: sessions.NewCookieStore([]byte(cfg.Session.Secret)),
	}
}

// Branch derives a router sharing the same gin engine. Middlewares and
// closers added to the branch do not affect the parent.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = make([]MiddlewareFunc, len(r.befores))
	copy(clone.befores, r.befores)
	clone.closers = make([]CloserFunc, len(r.closers))
	copy(clone.closers, r.closers)
	return &clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handler() http.Handler {
	return r.Inner.(*gin.Engine)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func PUT[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.PUT(pattern, wrapHandler(r, http.MethodPut, handler))
}

func PATCH[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.PATCH(pattern, wrapHandler(r, http.MethodPatch, handler))
}

func DELETE[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.DELETE(pattern, wrapHandler(r, http.MethodDelete, handler))
}
