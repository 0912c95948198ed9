package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type HTTPRecorder interface {
	RequestStarted(method string)
	RequestFinished(route, method string, status, size int, duration time.Duration)
}

// Metrics records request metrics labelled by the matched chi route pattern.
// Requests slower than slowThreshold are logged as warnings.
func Metrics(recorder HTTPRecorder, slowThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method := r.Method
			recorder.RequestStarted(method)
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routeLabel(r)
			duration := time.Since(start)
			recorder.RequestFinished(route, method, status, ww.BytesWritten(), duration)

			logger := zerolog.Ctx(r.Context())
			if status >= http.StatusInternalServerError {
				logger.Error().
					Str("route", route).
					Int("status", status).
					Dur("duration", duration).
					Msg("http request failed")
				return
			}
			if slowThreshold > 0 && duration >= slowThreshold {
				logger.Warn().
					Str("route", route).
					Int("status", status).
					Dur("duration", duration).
					Msg("http request slow")
			}
		})
	}
}

func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
