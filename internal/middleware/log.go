package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// тела login/register содержат пароль в открытом виде
func sensitiveBody(path string) bool {
	return strings.HasSuffix(path, "/login") || strings.HasSuffix(path, "/register")
}

type statusResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func LogMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			var bodyCopy bytes.Buffer
			if r.Body != nil {
				tee := io.TeeReader(r.Body, &bodyCopy)
				r.Body = io.NopCloser(tee)
			}

			srw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(srw, r)

			body := bodyCopy.String()
			if sensitiveBody(r.URL.Path) {
				body = "<redacted>"
			}

			logger.Infof("method=%s path=%s status=%d duration=%s body=%s outputheaders=%v",
				r.Method, r.URL.Path, srw.status, time.Since(start), body, w.Header())
		})
	}
}
