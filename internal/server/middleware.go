package server

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	accessKeyHeader = "X-Access-Key"
	accessKeyParam  = "key"
)

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID returns the request id stored by the requestID middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		zap.L().Info("http request",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// gate checks the shared access key. Wrong keys are answered with 401 until
// the failure budget is spent, then with 429.
func (s *Server) gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.AccessKey == "" || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(accessKeyHeader)
		if key == "" {
			key = r.URL.Query().Get(accessKeyParam)
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.opts.AccessKey)) == 1 {
			next.ServeHTTP(w, r)
			return
		}

		if !s.failures.Allow() {
			zap.L().Warn("access key rejected, rate limited",
				zap.String("request_id", RequestID(r.Context())),
				zap.String("remote", r.RemoteAddr),
			)
			writeError(w, http.StatusTooManyRequests, "too many failed attempts")
			return
		}
		zap.L().Warn("access key rejected",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("remote", r.RemoteAddr),
		)
		writeError(w, http.StatusUnauthorized, "unauthorized")
	})
}
