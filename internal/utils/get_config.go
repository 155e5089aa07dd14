package utils

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	Port        string `yaml:"PORT"`
	CORSOrigins string `yaml:"CORS_ORIGINS"`
	ClientURL   string `yaml:"CLIENT_URL"`
	RateLimit   string `yaml:"RATE_LIMIT"`
	LogFile     string `yaml:"LOG_FILE"`
	LogLevel    string `yaml:"LOG_LEVEL"`

	// Database configuration
	MongoURI  string `yaml:"MONGODB_URI"`
	DBUser    string `yaml:"DB_USER"`
	DBPass    string `yaml:"DB_PASS"`
	DBHost    string `yaml:"DB_HOST"`
	DBAppName string `yaml:"DB_APP_NAME"`
	DBName    string `yaml:"DB_NAME"`
	DBTimeout string `yaml:"DB_TIMEOUT"`

	// Session and access control
	JWTSecret    string `yaml:"JWT_SECRET"`
	CookieSecure string `yaml:"COOKIE_SECURE"`
	AuthEnforce  string `yaml:"AUTH_ENFORCE"`
}

var defaults = Config{
	Port:         "3000",
	CORSOrigins:  "*",
	ClientURL:    "http://localhost:5173/",
	RateLimit:    "50",
	LogLevel:     "info",
	DBName:       "Grocery_Shop",
	DBAppName:    "ExpiryFoodTrack",
	DBTimeout:    "10s",
	CookieSecure: "true",
	AuthEnforce:  "false",
}

var (
	config Config
	mu     sync.RWMutex
)

// LoadConfig reads config.yaml (when present), then .env, then lets the
// process environment override any key.
func LoadConfig() {
	LoadConfigFrom("config.yaml")
}

func LoadConfigFrom(path string) {
	cfg := defaults

	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("error parsing YAML file")
		}
	} else if !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", path).Msg("error reading YAML file")
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("error loading .env file")
	}
	overrideFromEnv(&cfg)

	mu.Lock()
	config = cfg
	mu.Unlock()
}

func overrideFromEnv(cfg *Config) {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("yaml")
		if val, ok := os.LookupEnv(key); ok {
			v.Field(i).SetString(val)
		}
	}
}

// GetConfig returns the value stored under the YAML/env key, or "" when unknown.
func GetConfig(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	v := reflect.ValueOf(config)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("yaml") == key {
			return v.Field(i).String()
		}
	}
	return ""
}

func GetConfigBool(key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(GetConfig(key)))
	return b
}

func GetConfigInt(key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(GetConfig(key)))
	if err != nil {
		return fallback
	}
	return n
}

func GetConfigDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(GetConfig(key)))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
