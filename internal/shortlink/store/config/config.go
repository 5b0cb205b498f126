package config

const (
	StoreTypeVar    string = "0"
	StoreTypeFile   string = "1"
	StoreTypeDB     string = "2"
	DefaultFilename string = "session.json"
	DefaultScope    string = "shortlink"
)

type Config struct {
	StoreType string `mapstructure:"store_type"`
	Filename  string `mapstructure:"filename"`
	DBDsn     string `mapstructure:"db_dsn"`
	Scope     string `mapstructure:"scope"`
}
