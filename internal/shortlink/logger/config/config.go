package config

const DefaultLogLevel = "warn"

type Config struct {
	LogLevel string `mapstructure:"log_level"`
}
