package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix は環境変数による上書きのプレフィックスです (例: EMPLOYEES_DATABASE_HOST, EMPLOYEES_SERVER_HTTP_LISTEN_ADDR)。
const EnvPrefix = "EMPLOYEES"

const (
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
)

const defaultShutdownTimeout = 15 * time.Second

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Messaging MessagingConfig `yaml:"messaging"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig は HTTP / gRPC サーバーに関する設定です。
type ServerConfig struct {
	HTTPListenAddr     string        `yaml:"http_listen_addr" split_words:"true"`
	GRPCListenAddr     string        `yaml:"grpc_listen_addr" split_words:"true"`
	ShutdownTimeout    time.Duration `yaml:"-" ignored:"true"`
	ShutdownTimeoutRaw string        `yaml:"shutdown_timeout" split_words:"true"`
}

// StoreConfig はドキュメントストアの選択です。
type StoreConfig struct {
	Driver string `yaml:"driver"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	MaxOpenConns       int           `yaml:"max_open_conns" split_words:"true"`
	MaxIdleConns       int           `yaml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime    time.Duration `yaml:"-" ignored:"true"`
	ConnMaxIdleTime    time.Duration `yaml:"-" ignored:"true"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime" split_words:"true"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time" split_words:"true"`
}

// RedisConfig は Redis ドキュメントストアの接続設定です。
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	TLS       bool   `yaml:"tls"`
	KeyPrefix string `yaml:"key_prefix" split_words:"true"`
}

// MessagingConfig は変更イベント送信の設定です。AMQPURL が空の場合は送信しません。
type MessagingConfig struct {
	AMQPURL  string `yaml:"amqp_url"`
	Exchange string `yaml:"exchange"`
}

// LogConfig はログ出力の設定です。
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load は指定されたパスから設定ファイルを読み込み、.env と環境変数で上書きします。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: apply env overrides: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if c.Server.HTTPListenAddr == "" {
		return fmt.Errorf("config: server.http_listen_addr must be set")
	}

	timeout, err := parseDurationAllowEmpty(c.Server.ShutdownTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: server.shutdown_timeout: %w", err)
	}
	if timeout == 0 {
		timeout = defaultShutdownTimeout
	}
	c.Server.ShutdownTimeout = timeout

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if c.Store.Driver == "" {
		c.Store.Driver = StoreDriverPostgres
	}

	switch c.Store.Driver {
	case StoreDriverPostgres:
		if err := c.Database.validateAndNormalize(); err != nil {
			return err
		}
	case StoreDriverRedis:
		if err := c.Redis.validateAndNormalize(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("config: store.driver %q is not supported", c.Store.Driver)
	}

	if c.Messaging.AMQPURL != "" && c.Messaging.Exchange == "" {
		c.Messaging.Exchange = "employees"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}

	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func (r *RedisConfig) validateAndNormalize() error {
	if r.Addr == "" {
		return fmt.Errorf("config: redis.addr must be set")
	}
	if r.DB < 0 {
		return fmt.Errorf("config: redis.db must not be negative")
	}
	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx / golang-migrate 用の接続文字列を返します。認証情報はエスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
