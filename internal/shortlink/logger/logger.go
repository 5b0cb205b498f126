// Пакет logger. Журнал
package logger

import (
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/iurnickita/shortlink/internal/shortlink/logger/config"
)

// RequestIDHeader заголовок для сквозной идентификации запроса
const RequestIDHeader = "X-Request-ID"

// NewZapLog создает объект zap-логгера
func NewZapLog(cfg config.Config) (*zap.Logger, error) {
	level := cfg.LogLevel
	if level == "" {
		level = config.DefaultLogLevel
	}
	// преобразуем текстовый уровень логирования в zap.AtomicLevel
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	// создаём новую конфигурацию логгера
	zapcfg := zap.NewProductionConfig()
	// устанавливаем уровень
	zapcfg.Level = lvl
	// создаём логгер на основе конфигурации
	zl, err := zapcfg.Build()
	if err != nil {
		return nil, err
	}
	return zl, nil
}

// RequestLogHooks журналирует исходящие HTTP-запросы resty-клиента
func RequestLogHooks(client *resty.Client, zaplog *zap.Logger) {
	// внутренние предупреждения resty тоже идут в zap
	client.SetLogger(zaplog.Sugar())

	client.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		zaplog.Info("send outgoing HTTP request",
			zap.String("url", r.URL),
			zap.String("method", r.Method),
			zap.String("request_id", r.Header.Get(RequestIDHeader)),
		)
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		zaplog.Info("got HTTP response",
			zap.String("code", strconv.Itoa(resp.StatusCode())),
			zap.String("length", strconv.FormatInt(resp.Size(), 10)),
			zap.String("duration", resp.Time().String()),
			zap.String("request_id", resp.Request.Header.Get(RequestIDHeader)),
		)
		return nil
	})

	client.OnError(func(r *resty.Request, err error) {
		zaplog.Warn("HTTP request failed",
			zap.String("url", r.URL),
			zap.String("method", r.Method),
			zap.Error(err),
		)
	})
}
