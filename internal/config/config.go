package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kirinyoku/gigledger/internal/domain"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	Store    string
	Postgres PostgresConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Engine   EngineConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// RedisConfig with an empty Addr disables redis: no cache, no pubsub, no
// rate limiting and no idempotency keys.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Name, p.SSLMode,
	)
}

type AuthConfig struct {
	JWTSecret string
}

type EngineConfig struct {
	Identity      domain.Identity
	Operators     domain.IdentitySet
	PayoutPolicy  string
	BuyRateLimit  int
	BuyRateWindow time.Duration
}

// New reads the configuration from the environment. Variables from
// envFiles (or ./.env when none are given) are loaded first without
// overriding what is already set.
func New(envFiles ...string) (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load(envFiles...)

	serverPort, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	serverCfg := ServerConfig{
		Host: strEnv("SERVER_HOST", "localhost"),
		Port: serverPort,
	}

	driver := strEnv("STORE_DRIVER", DriverPostgres)
	if driver != DriverPostgres && driver != DriverMemory {
		return nil, fmt.Errorf("%s: invalid STORE_DRIVER %q", op, driver)
	}

	var postgresCfg PostgresConfig
	if driver == DriverPostgres {
		postgresPort, err := intEnv("POSTGRES_PORT", 5432)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		postgresUser := os.Getenv("POSTGRES_USER")
		if postgresUser == "" {
			return nil, fmt.Errorf("%s: missing POSTGRES_USER", op)
		}

		postgresPassword := os.Getenv("POSTGRES_PASSWORD")
		if postgresPassword == "" {
			return nil, fmt.Errorf("%s: missing POSTGRES_PASSWORD", op)
		}

		postgresDB := os.Getenv("POSTGRES_DB")
		if postgresDB == "" {
			return nil, fmt.Errorf("%s: missing POSTGRES_DB", op)
		}

		postgresCfg = PostgresConfig{
			User:     postgresUser,
			Password: postgresPassword,
			Name:     postgresDB,
			Host:     strEnv("POSTGRES_HOST", "localhost"),
			Port:     postgresPort,
			SSLMode:  strEnv("POSTGRES_SSLMODE", "disable"),
		}
	}

	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	redisCfg := RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("%s: missing JWT_SECRET", op)
	}

	engineID, err := domain.ParseIdentity(os.Getenv("ENGINE_IDENTITY"))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid ENGINE_IDENTITY: %w", op, err)
	}

	operators, err := ParseIdentities(os.Getenv("OPERATORS"))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid OPERATORS: %w", op, err)
	}

	buyLimit, err := intEnv("BUY_RATE_LIMIT", 10)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	buyWindow := time.Minute
	if s := os.Getenv("BUY_RATE_WINDOW"); s != "" {
		if buyWindow, err = time.ParseDuration(s); err != nil {
			return nil, fmt.Errorf("%s: invalid BUY_RATE_WINDOW: %w", op, err)
		}
	}

	return &Config{
		Server:   serverCfg,
		Store:    driver,
		Postgres: postgresCfg,
		Redis:    redisCfg,
		Auth:     AuthConfig{JWTSecret: jwtSecret},
		Engine: EngineConfig{
			Identity:      engineID,
			Operators:     operators,
			PayoutPolicy:  os.Getenv("PAYOUT_POLICY"),
			BuyRateLimit:  buyLimit,
			BuyRateWindow: buyWindow,
		},
	}, nil
}

// ParseIdentities splits a comma separated identity list. Blank items are
// skipped.
func ParseIdentities(s string) (domain.IdentitySet, error) {
	var ids []domain.Identity
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		id, err := domain.ParseIdentity(part)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return domain.NewIdentitySet(ids...), nil
}

func strEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return v, nil
}
