package config

import "time"

const (
	DefaultAuthBaseURL      = "http://localhost:8000/api"
	DefaultShortenerBaseURL = "http://localhost:8000"
	DefaultTimeout          = 10 * time.Second
)

type Config struct {
	AuthBaseURL      string        `mapstructure:"auth_base_url"`
	ShortenerBaseURL string        `mapstructure:"shortener_base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
}
