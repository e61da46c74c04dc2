package http

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/stigmergic-org/simplepage-stats/internal/shared/svcerrors"
)

// appResponseWriter records the status and the service error of a response so the
// metrics and logging middlewares can report them after the handler returns.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError == nil {
		return ""
	}
	return w.svcError.Code
}

// StatusOrOK returns the written status, or 200 when the handler wrote a body
// without calling WriteHeader (or wrote nothing).
func (w *appResponseWriter) StatusOrOK() int {
	if status := w.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}
