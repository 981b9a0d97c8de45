package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Sink names accepted in diagnostics.sinks.
const (
	SinkLog       = "log"
	SinkWebsocket = "websocket"
	SinkKafka     = "kafka"
	SinkRedis     = "redis"
	SinkSQL       = "sql"
)

type Config struct {
	Environment string        `yaml:"environment" default:"development"`
	Server      ServerConfig  `yaml:"server"`
	Log         LogConfig     `yaml:"log"`
	Metrics     MetricsConfig `yaml:"metrics"`
	Static      StaticConfig  `yaml:"static"`
	Diagnostics Diagnostics   `yaml:"diagnostics"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	CORS            bool          `yaml:"cors" default:"true"`
	RateLimit       RateLimit     `yaml:"rate_limit"`
	// TrustedProxies lists CIDRs whose X-Forwarded-For is believed. Empty
	// means the client IP is always the TCP peer.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// RateLimit throttles diagnostic-emitting POSTs per client IP.
type RateLimit struct {
	Enabled         bool    `yaml:"enabled" default:"true"`
	Burst           int     `yaml:"burst" default:"20"`
	RefillPerSecond float64 `yaml:"refill_per_second" default:"5"`
}

type LogConfig struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"console"`
	Output string `yaml:"output" default:"stdout"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Path    string `yaml:"path" default:"/metrics"`
}

type StaticConfig struct {
	Dir string `yaml:"dir" default:"public"`
}

type Diagnostics struct {
	Sinks     []string        `yaml:"sinks" default:"[\"log\",\"websocket\"]"`
	Kafka     KafkaSink       `yaml:"kafka"`
	Redis     RedisSink       `yaml:"redis"`
	SQL       SQLSink         `yaml:"sql"`
	Websocket WebsocketConfig `yaml:"websocket"`
}

type KafkaSink struct {
	Brokers      []string      `yaml:"brokers"`
	Topic        string        `yaml:"topic" default:"rugguard.diagnostics"`
	Compression  string        `yaml:"compression" default:"gzip"`
	Async        bool          `yaml:"async"`
	RequiredAcks int           `yaml:"required_acks" default:"1"`
	MaxAttempts  int           `yaml:"max_attempts" default:"3"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"5s"`
	BatchTimeout time.Duration `yaml:"batch_timeout" default:"100ms"`
}

type RedisSink struct {
	Addr     string `yaml:"addr" default:"localhost:6379"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key" default:"rugguard:diagnostics"`
	MaxLen   int64  `yaml:"max_len" default:"1000"`
}

type SQLSink struct {
	Driver          string        `yaml:"driver" default:"sqlite"`
	DSN             string        `yaml:"dsn" default:"rugguard.db"`
	Table           string        `yaml:"table" default:"diagnostics"`
	MaxOpenConns    int           `yaml:"max_open_conns" default:"10"`
	MaxIdleConns    int           `yaml:"max_idle_conns" default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" default:"5m"`
	AsyncInsert     bool          `yaml:"async_insert"`
	DialTimeout     time.Duration `yaml:"dial_timeout" default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
}

type WebsocketConfig struct {
	Buffer int `yaml:"buffer" default:"64"`
}

// Default returns a config populated from struct defaults only.
func Default() *Config {
	var c Config
	_ = defaults.Set(&c)
	return &c
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML over the defaults and validates the result. Keys
// present in the YAML win, including explicit false and zero values.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// A missing file falls back to defaults; a .env file is read when present.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		c = Default()
	} else if err != nil {
		return nil, err
	}

	if v := os.Getenv("RUGGUARD_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("RUGGUARD_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("RUGGUARD_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("RUGGUARD_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("RUGGUARD_DIAGNOSTIC_SINKS"); v != "" {
		c.Diagnostics.Sinks = splitList(v)
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Diagnostics.Kafka.Brokers = splitList(v)
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Diagnostics.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Diagnostics.Redis.Addr = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if rl := c.Server.RateLimit; rl.Enabled && (rl.Burst < 1 || rl.RefillPerSecond <= 0) {
		return fmt.Errorf("server.rate_limit needs burst >= 1 and refill_per_second > 0")
	}
	if _, err := c.Server.TrustedProxyNets(); err != nil {
		return err
	}
	for _, s := range c.Diagnostics.Sinks {
		switch s {
		case SinkLog, SinkWebsocket, SinkRedis:
		case SinkKafka:
			if len(c.Diagnostics.Kafka.Brokers) == 0 {
				return fmt.Errorf("diagnostics.kafka.brokers cannot be empty when the kafka sink is enabled")
			}
		case SinkSQL:
			if d := c.Diagnostics.SQL.Driver; d != "sqlite" && d != "clickhouse" {
				return fmt.Errorf("diagnostics.sql.driver must be 'sqlite' or 'clickhouse', got '%s'", d)
			}
		default:
			return fmt.Errorf("unknown diagnostics sink '%s'", s)
		}
	}
	return nil
}

// TrustedProxyNets parses TrustedProxies. A bare IP is a single-host range.
func (s ServerConfig) TrustedProxyNets() ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(s.TrustedProxies))
	for _, p := range s.TrustedProxies {
		if !strings.Contains(p, "/") {
			ip := net.ParseIP(p)
			if ip == nil {
				return nil, fmt.Errorf("server.trusted_proxies: invalid address '%s'", p)
			}
			bits := 32
			if ip.To4() == nil {
				bits = 128
			}
			p = fmt.Sprintf("%s/%d", p, bits)
		}
		_, n, err := net.ParseCIDR(p)
		if err != nil {
			return nil, fmt.Errorf("server.trusted_proxies: %w", err)
		}
		nets = append(nets, n)
	}
	return nets, nil
}

// HasSink reports whether the named sink is enabled.
func (c *Config) HasSink(name string) bool {
	for _, s := range c.Diagnostics.Sinks {
		if s == name {
			return true
		}
	}
	return false
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
