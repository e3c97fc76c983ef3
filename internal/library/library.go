// Package library stores named macros in their text encoding so they can
// be shared between sessions and machines.
package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// ErrNotFound is returned when no macro has the requested name.
var ErrNotFound = errors.New("macro not found")

// Store persists encoded macros by name.
type Store interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// Config selects and configures a Store backend.
type Config struct {
	Backend string      `json:"backend"`
	Redis   RedisConfig `json:"redis"`
}

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	Password     string        `json:"password,omitempty"`
	DB           int           `json:"db"`
	Cluster      bool          `json:"cluster"`
	ClusterNodes []string      `json:"cluster_nodes,omitempty"`
	PoolSize     int           `json:"pool_size"`
	MaxRetries   int           `json:"max_retries"`
	DialTimeout  time.Duration `json:"dial_timeout"`
}

// New constructs the Store selected by cfg.Backend.
func New(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(&cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown library backend %q, must be one of: memory, redis", cfg.Backend)
	}
}

// ValidateName rejects names that cannot be used as keys.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("macro name is required")
	}
	if strings.ContainsAny(name, " \t\r\n/") {
		return fmt.Errorf("macro name %q must not contain whitespace or '/'", name)
	}
	return nil
}
