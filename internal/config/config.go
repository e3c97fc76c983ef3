package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/SmitUplenchwar2687/macrokey/internal/library"
)

// Config is the top-level configuration for a macrokey process.
type Config struct {
	Server   ServerConfig   `json:"server"`
	Playback PlaybackConfig `json:"playback"`
	Library  library.Config `json:"library"`
	Log      LogConfig      `json:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// PlaybackConfig tunes the playback engine.
type PlaybackConfig struct {
	SettleDelay time.Duration `json:"settle_delay"`
	Yield       bool          `json:"yield"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `json:"level"`
	Development bool   `json:"development"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Playback: PlaybackConfig{
			SettleDelay: 500 * time.Millisecond,
			Yield:       true,
		},
		Library: library.Config{
			Backend: library.BackendMemory,
			Redis: library.RedisConfig{
				Host:        "localhost",
				Port:        6379,
				PoolSize:    20,
				MaxRetries:  3,
				DialTimeout: 5 * time.Second,
			},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the config is valid.
func (c Config) Validate() error {
	if c.Playback.SettleDelay < 0 {
		return fmt.Errorf("settle_delay must not be negative, got %s", c.Playback.SettleDelay)
	}
	switch c.Library.Backend {
	case library.BackendMemory:
	case library.BackendRedis:
		r := c.Library.Redis
		if r.Cluster {
			if len(r.ClusterNodes) == 0 {
				return fmt.Errorf("library.redis.cluster_nodes is required when cluster=true")
			}
		} else {
			if r.Host == "" {
				return fmt.Errorf("library.redis.host is required")
			}
			if r.Port <= 0 {
				return fmt.Errorf("library.redis.port must be positive, got %d", r.Port)
			}
		}
	default:
		return fmt.Errorf("unknown library backend %q, must be one of: memory, redis", c.Library.Backend)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return nil
}

// LoadFile reads a JSON config file and merges it with defaults.
// Fields not specified in the file retain their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	// Use a raw intermediate struct to handle duration parsing.
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}

	if raw.Server.Addr != "" {
		cfg.Server.Addr = raw.Server.Addr
	}

	if raw.Playback.SettleDelay != "" {
		d, err := time.ParseDuration(raw.Playback.SettleDelay)
		if err != nil {
			return cfg, fmt.Errorf("parsing playback.settle_delay: %w", err)
		}
		cfg.Playback.SettleDelay = d
	}
	if raw.Playback.Yield != nil {
		cfg.Playback.Yield = *raw.Playback.Yield
	}

	if raw.Library.Backend != "" {
		cfg.Library.Backend = raw.Library.Backend
	}
	r := raw.Library.Redis
	if r.Host != "" {
		cfg.Library.Redis.Host = r.Host
	}
	if r.Port > 0 {
		cfg.Library.Redis.Port = r.Port
	}
	if r.Password != "" {
		cfg.Library.Redis.Password = r.Password
	}
	if r.DB > 0 {
		cfg.Library.Redis.DB = r.DB
	}
	if r.Cluster {
		cfg.Library.Redis.Cluster = true
	}
	if len(r.ClusterNodes) > 0 {
		cfg.Library.Redis.ClusterNodes = r.ClusterNodes
	}
	if r.PoolSize > 0 {
		cfg.Library.Redis.PoolSize = r.PoolSize
	}
	if r.MaxRetries > 0 {
		cfg.Library.Redis.MaxRetries = r.MaxRetries
	}
	if r.DialTimeout != "" {
		d, err := time.ParseDuration(r.DialTimeout)
		if err != nil {
			return cfg, fmt.Errorf("parsing library.redis.dial_timeout: %w", err)
		}
		cfg.Library.Redis.DialTimeout = d
	}

	if raw.Log.Level != "" {
		cfg.Log.Level = raw.Log.Level
	}
	if raw.Log.Development {
		cfg.Log.Development = true
	}

	return cfg, nil
}

// rawConfig is the JSON-friendly representation with string durations.
type rawConfig struct {
	Server struct {
		Addr string `json:"addr"`
	} `json:"server"`
	Playback struct {
		SettleDelay string `json:"settle_delay"`
		Yield       *bool  `json:"yield"`
	} `json:"playback"`
	Library struct {
		Backend string `json:"backend"`
		Redis   struct {
			Host         string   `json:"host"`
			Port         int      `json:"port"`
			Password     string   `json:"password"`
			DB           int      `json:"db"`
			Cluster      bool     `json:"cluster"`
			ClusterNodes []string `json:"cluster_nodes"`
			PoolSize     int      `json:"pool_size"`
			MaxRetries   int      `json:"max_retries"`
			DialTimeout  string   `json:"dial_timeout"`
		} `json:"redis"`
	} `json:"library"`
	Log struct {
		Level       string `json:"level"`
		Development bool   `json:"development"`
	} `json:"log"`
}

// WriteExample writes an example config file to the given path.
func WriteExample(path string) error {
	example := `{
  "server": {
    "addr": ":8080"
  },
  "playback": {
    "settle_delay": "500ms",
    "yield": true
  },
  "library": {
    "backend": "memory",
    "redis": {
      "host": "localhost",
      "port": 6379,
      "db": 0,
      "pool_size": 20,
      "max_retries": 3,
      "dial_timeout": "5s"
    }
  },
  "log": {
    "level": "info",
    "development": false
  }
}
`
	return os.WriteFile(path, []byte(example), 0o644)
}
