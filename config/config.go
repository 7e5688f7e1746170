package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"8081"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBUsername  string `env:"DB_USERNAME"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBName      string `env:"DB_NAME"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"blog.db"`
	MongoURI    string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDBName string `env:"MONGO_DATABASE" envDefault:"blog"`

	SecretKey      string        `env:"SECRET_KEY,required,notEmpty"`
	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"memory"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionCookie  string        `env:"SESSION_COOKIE" envDefault:"session"`
	CookieSecure   bool          `env:"COOKIE_SECURE" envDefault:"false"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	AerospikeHost      string `env:"AEROSPIKE_HOST" envDefault:"localhost"`
	AerospikePort      int    `env:"AEROSPIKE_PORT" envDefault:"3000"`
	AerospikeNamespace string `env:"AEROSPIKE_NAMESPACE" envDefault:"test"`

	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	TrustProxy     bool          `env:"TRUST_PROXY" envDefault:"false"`
}

// Load читает конфигурацию из переменных окружения.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL должен быть положительным: %s", cfg.SessionTTL)
	}
	return &cfg, nil
}

// Addr возвращает адрес для http.Server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// PostgresDSN возвращает DATABASE_URL либо собирает строку из DB_* переменных.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme: "postgresql",
		Host:   c.DBHost,
		Path:   "/" + c.DBName,
	}
	if c.DBUsername != "" {
		u.User = url.UserPassword(c.DBUsername, c.DBPassword)
	}
	return u.String()
}
