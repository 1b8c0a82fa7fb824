package middleware

import (
	"errors"
	"net/http"

	"movies-api/pkg/apperr"
	"movies-api/pkg/utils"

	"go.uber.org/zap"
)

// HandlerFunc is a handler that returns its failure instead of writing it.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorPipeline is the single place that turns errors into HTTP responses:
// log, then wrap, then respond.
type ErrorPipeline struct {
	log   *zap.Logger
	debug bool
}

func NewErrorPipeline(logger *zap.Logger, debug bool) *ErrorPipeline {
	return &ErrorPipeline{
		log:   logger.With(zap.String("component", "errors")),
		debug: debug,
	}
}

// Handle adapts h to net/http, forwarding any returned error to Fail.
func (p *ErrorPipeline) Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			p.Fail(w, r, err)
		}
	}
}

// Fail runs err through every stage and writes the error envelope.
func (p *ErrorPipeline) Fail(w http.ResponseWriter, r *http.Request, err error) {
	err = p.logErrors(r, err)
	appErr := p.wrapErrors(err)
	p.respond(w, appErr)
}

// NotFound answers requests that matched no route.
func (p *ErrorPipeline) NotFound(w http.ResponseWriter, r *http.Request) {
	p.Fail(w, r, apperr.NotFound("route not found"))
}

// MethodNotAllowed answers requests whose path exists under another method.
func (p *ErrorPipeline) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	p.Fail(w, r, apperr.MethodNotAllowed("method not allowed"))
}

func (p *ErrorPipeline) logErrors(r *http.Request, err error) error {
	status := apperr.Status(err)
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}

	if status >= http.StatusInternalServerError {
		p.log.Error("Request failed", append(fields, zap.Strings("chain", errorChain(err)))...)
	} else {
		p.log.Warn("Request rejected", fields...)
	}

	return err
}

func (p *ErrorPipeline) wrapErrors(err error) *apperr.Error {
	if appErr, ok := apperr.As(err); ok {
		return appErr
	}
	return apperr.Internal(err)
}

func (p *ErrorPipeline) respond(w http.ResponseWriter, appErr *apperr.Error) {
	payload := utils.ErrorResponse{
		StatusCode: appErr.Status,
		Error:      appErr.Kind(),
		Message:    appErr.Message,
		Details:    appErr.Details,
	}
	if p.debug {
		payload.Stack = errorChain(appErr)
	}

	if err := utils.WriteJSON(w, appErr.Status, payload); err != nil {
		p.log.Error("Failed to write error response", zap.Error(err))
	}
}

// errorChain lists err and each error it wraps, outermost first.
func errorChain(err error) []string {
	var chain []string
	for err != nil {
		chain = append(chain, err.Error())
		err = errors.Unwrap(err)
	}
	return chain
}
