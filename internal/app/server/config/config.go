package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultEnvPath = ".env"
	// SecretKey signs tokens when SECRET_KEY is unset. Never rely on it outside local runs.
	SecretKey = "carnet-dev-secret-change-me"
	EnvLocal  = "local"
	EnvDev    = "dev"
	EnvProd   = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env    string
	DB     DB
	Server Server
	Auth   Auth
	Logger Logger
}

type DB struct {
	Driver      string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURI string `env:"DATABASE_URI"`
}

type Server struct {
	RunAddress      string        `env:"RUN_ADDRESS" envDefault:":8001"`
	PathPrefix      string        `env:"API_PREFIX" envDefault:"/api"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envDefault:"*"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Auth struct {
	Secret   string        `env:"SECRET_KEY"`
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	// DefaultSecret is true when Secret fell back to SecretKey.
	DefaultSecret bool
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":8001")
	v.SetDefault("api_prefix", "/api")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("database_driver", DriverPostgres)
	v.SetDefault("token_ttl", 7*24*time.Hour)
}

// MustLoad reads the .env file at envPath (if any) and the process
// environment into a Config.
func MustLoad(v *viper.Viper, envPath string) *Config {
	if envPath == "" {
		envPath = DefaultEnvPath
	}
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	SetDefaults(v)
	v.AutomaticEnv()

	return Load(v)
}

// Load builds a Config from whatever v already holds.
func Load(v *viper.Viper) *Config {
	cfg := Config{
		Env: strings.ToLower(v.GetString("app_env")),
		DB: DB{
			Driver:      strings.ToLower(v.GetString("database_driver")),
			DatabaseURI: v.GetString("database_uri"),
		},
		Server: Server{
			RunAddress:      v.GetString("run_address"),
			PathPrefix:      normalizePrefix(v.GetString("api_prefix")),
			CORSOrigins:     splitList(v.GetString("cors_origins")),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Auth: Auth{
			Secret:   v.GetString("secret_key"),
			TokenTTL: v.GetDuration("token_ttl"),
		},
		Logger: Logger{LogLevel: v.GetString("log_level")},
	}

	if cfg.Auth.Secret == "" {
		cfg.Auth.Secret = SecretKey
		cfg.Auth.DefaultSecret = true
	}

	return &cfg
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	prefix = strings.TrimRight(prefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
