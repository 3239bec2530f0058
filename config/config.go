package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Geocoding GeocodingConfig `mapstructure:"geocoding"`
	Weather   WeatherConfig   `mapstructure:"weather"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type GeocodingConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type WeatherConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	DefaultUnit string        `mapstructure:"default_unit"`
}

func Load(configPath string) (*Config, error) {
	// A .env file is optional; process env always wins.
	_ = godotenv.Load()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/weatherapp")
	}

	// Set defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.path", "./weatherapp.db")
	viper.SetDefault("geocoding.api_key", "")
	viper.SetDefault("geocoding.base_url", "https://api.geocodify.com/v2")
	viper.SetDefault("geocoding.timeout", "10s")
	viper.SetDefault("weather.base_url", "https://api.open-meteo.com/v1/forecast")
	viper.SetDefault("weather.timeout", "15s")
	viper.SetDefault("weather.default_unit", "fahrenheit")

	viper.BindEnv("geocoding.api_key", "GEOCODIFY_API_KEY")
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("database.path", "DATABASE_PATH")

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
