package config

import (
	"os"
	"strconv"
)

// Environment variables that override scenario values.
const (
	EnvSeed          = "TRADESIM_SEED"
	EnvDays          = "TRADESIM_DAYS"
	EnvDB            = "TRADESIM_DB"
	EnvLogLevel      = "TRADESIM_LOG_LEVEL"
	EnvPricePolicy   = "TRADESIM_PRICE_POLICY"
	EnvWeatherPolicy = "TRADESIM_WEATHER_POLICY"
	EnvCurrency      = "TRADESIM_CURRENCY_SUPPLY"
)

// FromEnv loads the default scenario with environment overrides applied.
func FromEnv() Config {
	cfg := Default()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides fields from environment variables. Unset or malformed
// numeric variables leave the field unchanged.
func (c *Config) ApplyEnv() {
	if val, ok := getEnvInt(EnvSeed); ok {
		c.Seed = int64(val)
	}
	if val, ok := getEnvInt(EnvDays); ok && val >= 0 {
		c.Days = val
	}
	if val := os.Getenv(EnvDB); val != "" {
		c.DBPath = val
	}
	if val := os.Getenv(EnvLogLevel); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv(EnvPricePolicy); val != "" {
		c.PricePolicy = val
	}
	if val := os.Getenv(EnvWeatherPolicy); val != "" {
		c.WeatherPolicy = val
	}
	if val, ok := getEnvFloat(EnvCurrency); ok && val > 0 {
		c.CurrencySupply = val
	}
}

func getEnvInt(key string) (int, bool) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return num, true
}

func getEnvFloat(key string) (float64, bool) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}
