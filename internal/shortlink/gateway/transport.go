// Пакет gateway. Запросы к сервису аутентификации и сокращения ссылок.
// Шлюзы только выполняют запросы и возвращают результат, уведомлениями не занимаются
package gateway

import (
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iurnickita/shortlink/internal/shortlink/gateway/config"
	"github.com/iurnickita/shortlink/internal/shortlink/logger"
)

// NewClient создает HTTP-клиент с общим ограничением времени на все запросы
func NewClient(cfg config.Config, zaplog *zap.Logger) *resty.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	// у каждого запроса свой идентификатор
	client.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if r.Header.Get(logger.RequestIDHeader) == "" {
			r.SetHeader(logger.RequestIDHeader, uuid.NewString())
		}
		return nil
	})

	logger.RequestLogHooks(client, zaplog)

	return client
}
