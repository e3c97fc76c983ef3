package cli

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SmitUplenchwar2687/macrokey/internal/library"
)

type libraryOptions struct {
	backend           string
	redisHost         string
	redisPort         int
	redisPassword     string
	redisDB           int
	redisCluster      bool
	redisClusterNodes []string
	redisPoolSize     int
	redisMaxRetries   int
	redisDialTimeout  time.Duration
}

func defaultLibraryOptions() libraryOptions {
	return libraryOptions{
		backend:          library.BackendMemory,
		redisHost:        "localhost",
		redisPort:        6379,
		redisDB:          0,
		redisPoolSize:    20,
		redisMaxRetries:  3,
		redisDialTimeout: 5 * time.Second,
	}
}

func (o *libraryOptions) addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.backend, "library", library.BackendMemory, "macro library backend (memory, redis)")
	flags.StringVar(&o.redisHost, "redis-host", "localhost", "redis host (or host:port)")
	flags.IntVar(&o.redisPort, "redis-port", 6379, "redis port")
	flags.StringVar(&o.redisPassword, "redis-password", "", "redis password")
	flags.IntVar(&o.redisDB, "redis-db", 0, "redis database index")
	flags.BoolVar(&o.redisCluster, "redis-cluster", false, "enable redis cluster mode")
	flags.StringSliceVar(&o.redisClusterNodes, "redis-cluster-nodes", nil, "redis cluster nodes host:port list")
	flags.IntVar(&o.redisPoolSize, "redis-pool-size", 20, "redis connection pool size")
	flags.IntVar(&o.redisMaxRetries, "redis-max-retries", 3, "redis max retries")
	flags.DurationVar(&o.redisDialTimeout, "redis-dial-timeout", 5*time.Second, "redis dial timeout")
}

func (o *libraryOptions) applyConfigIfUnset(cmd *cobra.Command, cfg *library.Config) {
	if cfg == nil {
		return
	}

	if !cmd.Flags().Changed("library") {
		o.backend = cfg.Backend
	}
	if !cmd.Flags().Changed("redis-host") {
		o.redisHost = cfg.Redis.Host
	}
	if !cmd.Flags().Changed("redis-port") {
		o.redisPort = cfg.Redis.Port
	}
	if !cmd.Flags().Changed("redis-password") {
		o.redisPassword = cfg.Redis.Password
	}
	if !cmd.Flags().Changed("redis-db") {
		o.redisDB = cfg.Redis.DB
	}
	if !cmd.Flags().Changed("redis-cluster") {
		o.redisCluster = cfg.Redis.Cluster
	}
	if !cmd.Flags().Changed("redis-cluster-nodes") {
		o.redisClusterNodes = cfg.Redis.ClusterNodes
	}
	if !cmd.Flags().Changed("redis-pool-size") {
		o.redisPoolSize = cfg.Redis.PoolSize
	}
	if !cmd.Flags().Changed("redis-max-retries") {
		o.redisMaxRetries = cfg.Redis.MaxRetries
	}
	if !cmd.Flags().Changed("redis-dial-timeout") {
		o.redisDialTimeout = cfg.Redis.DialTimeout
	}
}

func (o *libraryOptions) normalize() error {
	if o.backend != library.BackendRedis || o.redisCluster {
		return nil
	}

	host, port, err := normalizeRedisHostPort(o.redisHost, o.redisPort)
	if err != nil {
		return err
	}
	o.redisHost = host
	o.redisPort = port
	return nil
}

func (o *libraryOptions) toConfig() library.Config {
	return library.Config{
		Backend: o.backend,
		Redis: library.RedisConfig{
			Host:         o.redisHost,
			Port:         o.redisPort,
			Password:     o.redisPassword,
			DB:           o.redisDB,
			Cluster:      o.redisCluster,
			ClusterNodes: append([]string(nil), o.redisClusterNodes...),
			PoolSize:     o.redisPoolSize,
			MaxRetries:   o.redisMaxRetries,
			DialTimeout:  o.redisDialTimeout,
		},
	}
}

// open resolves the options against cfg and connects to the backend.
func (o *libraryOptions) open(cmd *cobra.Command, cfg *library.Config) (library.Store, error) {
	o.applyConfigIfUnset(cmd, cfg)
	if err := o.normalize(); err != nil {
		return nil, err
	}
	return library.New(o.toConfig())
}

func normalizeRedisHostPort(host string, port int) (string, int, error) {
	if strings.Contains(host, ":") {
		h, p, err := net.SplitHostPort(host)
		if err != nil {
			return "", 0, fmt.Errorf("invalid --redis-host value %q: %w", host, err)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", 0, fmt.Errorf("invalid redis port in --redis-host %q: %w", host, err)
		}
		host = h
		port = n
	}

	if host == "" {
		return "", 0, fmt.Errorf("redis host cannot be empty")
	}
	if port <= 0 {
		return "", 0, fmt.Errorf("redis port must be positive, got %d", port)
	}

	return host, port, nil
}
