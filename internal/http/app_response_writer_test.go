package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stigmergic-org/simplepage-stats/internal/shared/svcerrors"
)

func TestAppResponseWriter_ErrorCode(t *testing.T) {
	t.Parallel()

	appWriter := newAppResponseWriter(httptest.NewRecorder(), 1)
	assert.Equal(t, "", appWriter.ErrorCode())

	appWriter.SetServiceError(errUnknownPeriod("1d"))
	assert.Equal(t, codeUnknownPeriod, appWriter.ErrorCode())

	appWriter.SetServiceError(svcerrors.NewInternalError("TEST_9000", nil))
	assert.Equal(t, "TEST_9000", appWriter.ErrorCode())

	appWriter.SetServiceError(nil)
	assert.Equal(t, "", appWriter.ErrorCode())
}

func TestAppResponseWriter_StatusOrOK(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		write func(w *appResponseWriter)
		want  int
	}{
		{name: "nothing written", write: func(w *appResponseWriter) {}, want: http.StatusOK},
		{name: "implicit header", write: func(w *appResponseWriter) { _, _ = w.Write([]byte("body")) }, want: http.StatusOK},
		{name: "explicit header", write: func(w *appResponseWriter) { w.WriteHeader(http.StatusNotFound) }, want: http.StatusNotFound},
		{
			name: "status kept after write",
			write: func(w *appResponseWriter) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("upstream"))
			},
			want: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			appWriter := newAppResponseWriter(rr, 1)
			tt.write(appWriter)

			assert.Equal(t, tt.want, appWriter.StatusOrOK())
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}
