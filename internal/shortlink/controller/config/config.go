package config

import "time"

const DefaultNavigationDelay = time.Second

type Config struct {
	NavigationDelay time.Duration `mapstructure:"navigation_delay"`
}
