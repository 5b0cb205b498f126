// Пакет config. Настройки клиента: значения по умолчанию, файл shortlink.yaml,
// переменные окружения и флаги командной строки (в порядке возрастания приоритета)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	controllerConfig "github.com/iurnickita/shortlink/internal/shortlink/controller/config"
	gatewayConfig "github.com/iurnickita/shortlink/internal/shortlink/gateway/config"
	loggerConfig "github.com/iurnickita/shortlink/internal/shortlink/logger/config"
	storeConfig "github.com/iurnickita/shortlink/internal/shortlink/store/config"
)

type Config struct {
	Gateway    gatewayConfig.Config    `mapstructure:"gateway"`
	Store      storeConfig.Config      `mapstructure:"store"`
	Logger     loggerConfig.Config     `mapstructure:"logger"`
	Controller controllerConfig.Config `mapstructure:"controller"`
}

// ConfigName имя необязательного файла настроек в рабочем каталоге
const ConfigName = "shortlink"

// binding - ключ настройки, его переменная окружения и флаг
type binding struct {
	key  string
	env  string
	flag string
}

var bindings = []binding{
	{key: "gateway.auth_base_url", env: "API_BASE_URL", flag: "auth-url"},
	{key: "gateway.shortener_base_url", env: "API_URL", flag: "api-url"},
	{key: "gateway.timeout", env: "API_TIMEOUT", flag: "timeout"},
	{key: "store.store_type", env: "SESSION_STORE_TYPE", flag: "store"},
	{key: "store.filename", env: "SESSION_FILE", flag: "session-file"},
	{key: "store.db_dsn", env: "SESSION_DB_DSN", flag: "session-dsn"},
	{key: "store.scope", env: "SESSION_SCOPE"},
	{key: "logger.log_level", env: "LOG_LEVEL", flag: "log-level"},
	{key: "controller.navigation_delay", env: "NAVIGATION_DELAY"},
}

// DefaultSessionFile ~/.shortlink/session.json, либо session.json в рабочем каталоге
func DefaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return storeConfig.DefaultFilename
	}
	return filepath.Join(home, "."+ConfigName, storeConfig.DefaultFilename)
}

// RegisterFlags объявляет флаги командной строки
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("auth-url", gatewayConfig.DefaultAuthBaseURL, "base URL of the authentication API")
	fs.String("api-url", gatewayConfig.DefaultShortenerBaseURL, "base URL of the shortening API")
	fs.Duration("timeout", gatewayConfig.DefaultTimeout, "timeout of every remote call")
	fs.String("store", storeConfig.StoreTypeFile, "session store type: 0 - memory, 1 - file, 2 - database")
	fs.String("session-file", DefaultSessionFile(), "session file for the file store")
	fs.String("session-dsn", "", "DSN for the database store (postgres URL or SQLite file)")
	fs.String("log-level", loggerConfig.DefaultLogLevel, "log level")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("gateway.auth_base_url", gatewayConfig.DefaultAuthBaseURL)
	v.SetDefault("gateway.shortener_base_url", gatewayConfig.DefaultShortenerBaseURL)
	v.SetDefault("gateway.timeout", gatewayConfig.DefaultTimeout)
	v.SetDefault("store.store_type", storeConfig.StoreTypeFile)
	v.SetDefault("store.filename", DefaultSessionFile())
	v.SetDefault("store.db_dsn", "")
	v.SetDefault("store.scope", storeConfig.DefaultScope)
	v.SetDefault("logger.log_level", loggerConfig.DefaultLogLevel)
	v.SetDefault("controller.navigation_delay", controllerConfig.DefaultNavigationDelay)
	return v
}

// GetConfig собирает настройки. flags может быть nil
func GetConfig(flags *pflag.FlagSet) (Config, error) {
	v := newViper()

	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	for _, b := range bindings {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", b.env, err)
		}
		if flags == nil || b.flag == "" {
			continue
		}
		// флаг перекрывает остальные источники только если задан явно
		if f := flags.Lookup(b.flag); f != nil {
			if err := v.BindPFlag(b.key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", b.flag, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
