package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Feed      FeedConfig      `mapstructure:"feed"`
	API       APIConfig       `mapstructure:"api"`
	Database  DatabaseConfig  `mapstructure:"database"`
	MQTT      MQTTConfig      `mapstructure:"mqtt"`
	GeoIP     GeoIPConfig     `mapstructure:"geoip"`
	OpenUV    OpenUVConfig    `mapstructure:"openuv"`
	Incidence IncidenceConfig `mapstructure:"incidence"`
	Log       LogConfig       `mapstructure:"log"`
}

type FeedConfig struct {
	URL      string        `mapstructure:"url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type APIConfig struct {
	Port    int  `mapstructure:"port"`
	Enabled bool `mapstructure:"enabled"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type MQTTConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Broker      string `mapstructure:"broker"`
	TopicPrefix string `mapstructure:"topic_prefix"`
	ClientID    string `mapstructure:"client_id"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
}

type GeoIPConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type OpenUVConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type IncidenceConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func Load(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/uv-monitor")
	}

	// Set defaults
	viper.SetDefault("feed.url", "https://uvdata.arpansa.gov.au/xml/uvvalues.xml")
	viper.SetDefault("feed.cache_ttl", "300s")
	viper.SetDefault("feed.timeout", "10s")
	viper.SetDefault("api.port", 8046)
	viper.SetDefault("api.enabled", true)
	viper.SetDefault("database.path", "./uvmonitor.db")
	viper.SetDefault("mqtt.enabled", false)
	viper.SetDefault("mqtt.broker", "tcp://localhost:1883")
	viper.SetDefault("mqtt.topic_prefix", "uvmonitor")
	viper.SetDefault("mqtt.client_id", "uv-monitor")
	viper.SetDefault("geoip.url", "https://ipinfo.io/json")
	viper.SetDefault("geoip.timeout", "10s")
	viper.SetDefault("openuv.url", "https://api.openuv.io")
	viper.SetDefault("openuv.api_key", "")
	viper.SetDefault("openuv.timeout", "10s")
	viper.SetDefault("incidence.csv_path", "./cancer_incidence_mortality.csv")
	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
