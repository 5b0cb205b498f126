package logger

import (
	"github.com/go-resty/resty/v2"

	"github.com/iurnickita/shortlink/internal/shortlink/logger/config"
)

func ExampleRequestLogHooks() {
	var cfg config.Config
	cfg.LogLevel = "info"

	zaplog, err := NewZapLog(cfg)
	if err != nil {
		return
	}

	client := resty.New()
	RequestLogHooks(client, zaplog)
}
