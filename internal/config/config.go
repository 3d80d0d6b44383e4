package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LOCKUP_REDIS_ADDR
const EnvPrefix = "LOCKUP"

// Unlock store backends
const (
	StoreRedis    = "redis"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config is the process configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Store       StoreConfig       `mapstructure:"store"`
	Engine      EngineConfig      `mapstructure:"engine"`
	Confinement ConfinementConfig `mapstructure:"confinement"`
	Realtime    RealtimeConfig    `mapstructure:"realtime"`
	Discord     DiscordConfig     `mapstructure:"discord"`
	Log         LogConfig         `mapstructure:"log"`

	// Crimes replaces the stock catalog when non-empty
	Crimes []*models.CrimeDefinition `mapstructure:"crimes"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type StoreConfig struct {
	// Unlocks selects the achievement unlock store: redis, sqlite or postgres
	Unlocks     string `mapstructure:"unlocks"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

type EngineConfig struct {
	LockTimeout      time.Duration `mapstructure:"lock_timeout"`
	SweepInterval    time.Duration `mapstructure:"sweep_interval"`
	SweepConcurrency int           `mapstructure:"sweep_concurrency"`
	EventBuffer      int           `mapstructure:"event_buffer"`
}

type ConfinementConfig struct {
	CostPerMinute CostPerMinuteConfig `mapstructure:"cost_per_minute"`
}

type CostPerMinuteConfig struct {
	Hospital int64 `mapstructure:"hospital"`
	Jail     int64 `mapstructure:"jail"`
}

type RealtimeConfig struct {
	// RedisFanout publishes events through Redis so every instance's
	// websocket hub receives them
	RedisFanout   bool   `mapstructure:"redis_fanout"`
	ChannelPrefix string `mapstructure:"channel_prefix"`
}

type DiscordConfig struct {
	Token         string `mapstructure:"token"`
	ApplicationID string `mapstructure:"application_id"`
	GuildID       string `mapstructure:"guild_id"`
}

// Enabled reports whether the Discord bot should start
func (d DiscordConfig) Enabled() bool {
	return d.Token != ""
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("store.unlocks", StoreRedis)
	v.SetDefault("store.sqlite_path", "lockup.db")
	v.SetDefault("store.postgres_dsn", "")

	v.SetDefault("engine.lock_timeout", 2*time.Second)
	v.SetDefault("engine.sweep_interval", time.Minute)
	v.SetDefault("engine.sweep_concurrency", 8)
	v.SetDefault("engine.event_buffer", 1024)

	v.SetDefault("confinement.cost_per_minute.hospital", 100)
	v.SetDefault("confinement.cost_per_minute.jail", 150)

	v.SetDefault("realtime.redis_fanout", false)
	v.SetDefault("realtime.channel_prefix", "lockup")

	v.SetDefault("discord.token", "")
	v.SetDefault("discord.application_id", "")
	v.SetDefault("discord.guild_id", "")

	v.SetDefault("log.level", "info")
}

// Load reads .env (if present), the optional config file at path, and
// LOCKUP_* environment overrides, in increasing precedence
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that would otherwise fail late at startup
func (c *Config) Validate() error {
	switch c.Store.Unlocks {
	case StoreRedis:
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("store.sqlite_path is required for the sqlite unlock store")
		}
	case StorePostgres:
		if c.Store.PostgresDSN == "" {
			return errors.New("store.postgres_dsn is required for the postgres unlock store")
		}
	default:
		return fmt.Errorf("store.unlocks must be redis, sqlite or postgres, got %q", c.Store.Unlocks)
	}

	if c.Engine.LockTimeout <= 0 {
		return errors.New("engine.lock_timeout must be positive")
	}

	if c.Engine.SweepInterval <= 0 {
		return errors.New("engine.sweep_interval must be positive")
	}

	if c.Confinement.CostPerMinute.Hospital < 0 || c.Confinement.CostPerMinute.Jail < 0 {
		return errors.New("confinement.cost_per_minute cannot be negative")
	}

	return nil
}
