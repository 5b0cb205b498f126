package apitest

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/iurnickita/shortlink/internal/shortlink/logger"
)

// requestLog middleware-логгер для входящих HTTP-запросов
func requestLog(zaplog *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(logger.RequestIDHeader)
			zaplog.Info("got incoming HTTP request",
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method),
				zap.String("request_id", requestID),
			)

			wl := newResponseWriterLogger(w)

			handlerStart := time.Now()
			next.ServeHTTP(wl, r)
			handlerDuration := time.Since(handlerStart)

			zaplog.Info("send HTTP response",
				zap.String("code", strconv.Itoa(wl.statusCode)),
				zap.String("length", strconv.Itoa(wl.length)),
				zap.String("duration", handlerDuration.String()),
				zap.String("request_id", requestID),
			)
		})
	}
}

// responseWriterLogger запоминает код и размер ответа
type responseWriterLogger struct {
	http.ResponseWriter
	statusCode int
	length     int
}

func newResponseWriterLogger(w http.ResponseWriter) *responseWriterLogger {
	return &responseWriterLogger{w, http.StatusOK, 0}
}

func (wl *responseWriterLogger) WriteHeader(code int) {
	wl.statusCode = code
	wl.ResponseWriter.WriteHeader(code)
}

func (wl *responseWriterLogger) Write(b []byte) (n int, err error) {
	n, err = wl.ResponseWriter.Write(b)
	wl.length += n
	return
}
