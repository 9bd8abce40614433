// internal/config/config.go
//
// Configuration for the server and the terminal client.
// Sources, lowest precedence first:
//   - defaults set in New
//   - optional wordle.yaml (working directory or --config)
//   - .env (loaded into the process environment with godotenv)
//   - WORDLE_* environment variables (WORDLE_SERVER_PORT, WORDLE_DB_PATH, ...)
//   - command-line flags bound by the cobra commands
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/robalobadob/wordle/internal/auth"
)

// DevSecret is the fallback master secret. Servers log a warning when it
// is in use.
const DevSecret = "dev_secret_change_me"

type Config struct {
	Secret   string `mapstructure:"secret"`
	LogLevel string `mapstructure:"log_level"`

	Server struct {
		Port         string        `mapstructure:"port"`
		ClientOrigin string        `mapstructure:"client_origin"`
		Timeout      time.Duration `mapstructure:"timeout"`
	} `mapstructure:"server"`

	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`

	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		DB       int           `mapstructure:"db"`
		TTL      time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`

	Words struct {
		Answers       string        `mapstructure:"answers"`
		Allowed       string        `mapstructure:"allowed"`
		Remote        bool          `mapstructure:"remote"`
		DatamuseURL   string        `mapstructure:"datamuse_url"`
		DictionaryURL string        `mapstructure:"dictionary_url"`
		Timeout       time.Duration `mapstructure:"timeout"`
		CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"words"`

	Auth struct {
		JWTSecret    string        `mapstructure:"jwt_secret"`
		TTL          time.Duration `mapstructure:"ttl"`
		Cookie       string        `mapstructure:"cookie"`
		SecureCookie bool          `mapstructure:"secure_cookie"`
	} `mapstructure:"auth"`

	Daily struct {
		Salt string `mapstructure:"salt"`
	} `mapstructure:"daily"`

	Stats struct {
		File string `mapstructure:"file"`
	} `mapstructure:"stats"`
}

// New returns a viper instance with every key defaulted and WORDLE_*
// environment variables bound.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("secret", DevSecret)
	v.SetDefault("log_level", "info")

	v.SetDefault("server.port", "5175")
	v.SetDefault("server.client_origin", "http://localhost:5173")
	v.SetDefault("server.timeout", 10*time.Second)

	v.SetDefault("db.path", "./data/app.db")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)

	v.SetDefault("words.answers", "")
	v.SetDefault("words.allowed", "")
	v.SetDefault("words.remote", true)
	v.SetDefault("words.datamuse_url", "https://api.datamuse.com")
	v.SetDefault("words.dictionary_url", "https://api.dictionaryapi.dev/api/v2")
	v.SetDefault("words.timeout", 3*time.Second)
	v.SetDefault("words.cache_ttl", time.Hour)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.ttl", 14*24*time.Hour)
	v.SetDefault("auth.cookie", "wordle_token")
	v.SetDefault("auth.secure_cookie", false)

	v.SetDefault("daily.salt", "")

	v.SetDefault("stats.file", defaultStatsFile())

	v.SetConfigName("wordle")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("WORDLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads .env, the optional config file, and the environment into a
// Config. A missing wordle.yaml is not an error; a missing file named with
// SetConfigFile is.
func Load(v *viper.Viper) (*Config, error) {
	_ = godotenv.Load()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.Secret == "" {
		c.Secret = DevSecret
	}
	return &c, nil
}

// JWTKey is auth.jwt_secret, or a key derived from secret.
func (c *Config) JWTKey() []byte {
	if c.Auth.JWTSecret != "" {
		return []byte(c.Auth.JWTSecret)
	}
	return auth.DeriveKey(c.Secret, "wordle/jwt")
}

// DailySalt is daily.salt, or a salt derived from secret.
func (c *Config) DailySalt() string {
	if c.Daily.Salt != "" {
		return c.Daily.Salt
	}
	return string(auth.DeriveKey(c.Secret, "wordle/daily"))
}

// UsingDevSecret reports whether no real secret was configured.
func (c *Config) UsingDevSecret() bool {
	return c.Secret == DevSecret && c.Auth.JWTSecret == ""
}
