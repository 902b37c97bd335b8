package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	// RefreshStoreUser keeps the refresh session on the user record itself.
	RefreshStoreUser  = "user"
	RefreshStoreRedis = "redis"

	EnvProd = "prod"

	defaultSessionSecret = "change-me"
)

type Config struct {
	Env          string             `yaml:"env" env:"ENV" env-default:"local"`
	Storage      StorageConfig      `yaml:"storage"`
	HTTP         HTTPConfig         `yaml:"http"`
	JWT          JWTConfig          `yaml:"jwt"`
	RefreshToken RefreshTokenConfig `yaml:"refresh_token"`
	Redis        RedisConf          `yaml:"redis"`
	Session      SessionConfig      `yaml:"session"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
	DSN    string `yaml:"dsn" env:"DSN"`
}

type HTTPConfig struct {
	Host         string        `yaml:"host" env:"HTTP_HOST"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"10s"`
	CORSOrigins  []string      `yaml:"cors_origins" env:"HTTP_CORS_ORIGINS" env-default:"http://localhost:4200"`
}

// JWTConfig holds everything the token signer needs.
type JWTConfig struct {
	Secret   string        `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	Issuer   string        `yaml:"issuer" env:"JWT_ISSUER" env-default:"citiesmanager"`
	Audience string        `yaml:"audience" env:"JWT_AUDIENCE" env-default:"citiesmanager-client"`
	TTL      time.Duration `yaml:"ttl" env:"JWT_TTL" env-default:"10m"`
}

type RefreshTokenConfig struct {
	TTL   time.Duration `yaml:"ttl" env:"REFRESH_TOKEN_TTL" env-default:"60m"`
	Store string        `yaml:"store" env:"REFRESH_TOKEN_STORE" env-default:"user"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redispassword" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`
}

type SessionConfig struct {
	Secret string `yaml:"secret" env:"SESSION_SECRET" env-default:"change-me"`
	MaxAge int    `yaml:"max_age" env-default:"3600"`
}

type RateLimitConfig struct {
	RPS   float64       `yaml:"rps" env-default:"5"`
	Burst int           `yaml:"burst" env-default:"10"`
	TTL   time.Duration `yaml:"ttl" env-default:"10m"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

// Load reads the yaml file at configPath, applies env overrides and checks
// the combination of settings.
func Load(configPath string) (*Config, error) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn is required for postgres driver")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch c.RefreshToken.Store {
	case RefreshStoreUser, RefreshStoreRedis:
	default:
		return fmt.Errorf("unknown refresh token store %q", c.RefreshToken.Store)
	}

	if c.JWT.TTL <= 0 || c.RefreshToken.TTL <= 0 {
		return errors.New("token ttl must be positive")
	}

	if c.Env == EnvProd && (c.Session.Secret == "" || c.Session.Secret == defaultSessionSecret) {
		return errors.New("session.secret must be set in prod")
	}

	return nil
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
