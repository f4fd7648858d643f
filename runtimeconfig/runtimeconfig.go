// Package runtimeconfig centralizes the tunables spec.md §6 enumerates:
// per-channel buffer max_size, work-queue capacity, consumer pull timeout,
// consumer idle sleep, and thread-pool size. Defaults are registered with
// viper.SetDefault the way the teacher's trace/rate_limit.go registers its
// own tunables, and may be overridden by a YAML graph-definition file read
// with Load. No environment variables or CLI flags are bound to these keys.
package runtimeconfig

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	keyMaxSize            = "max_size"
	keyWorkQueueCapacity  = "work_queue_capacity"
	keyPullTimeoutMillis  = "pull_timeout_ms"
	keyIdleSleepMillis    = "idle_sleep_ms"
	keyThreadPoolSize     = "thread_pool_size"
	defaultMaxSize        = 20
	defaultWorkQueueCap   = 16
	defaultPullTimeoutMs  = 100
	defaultIdleSleepMs    = 100
	defaultThreadPoolSize = 8
)

func init() {
	viper.SetDefault(keyMaxSize, defaultMaxSize)
	viper.SetDefault(keyWorkQueueCapacity, defaultWorkQueueCap)
	viper.SetDefault(keyPullTimeoutMillis, defaultPullTimeoutMs)
	viper.SetDefault(keyIdleSleepMillis, defaultIdleSleepMs)
	viper.SetDefault(keyThreadPoolSize, defaultThreadPoolSize)
}

// Config is the resolved set of runtime tunables for one graph run.
type Config struct {
	// MaxSize caps in-flight versions per channel buffer; overflow evicts
	// the oldest entry.
	MaxSize int
	// WorkQueueCapacity bounds each node's assembled-tuple queue, the
	// backpressure knob of spec.md §5.
	WorkQueueCapacity int
	// PullTimeout bounds how long a consumer thread waits on an empty work
	// queue before re-checking GraphStatus.
	PullTimeout time.Duration
	// IdleSleep is the fixed sleep while a worker is not Idle.
	IdleSleep time.Duration
	// PoolSize bounds how many processor invocations run concurrently
	// system-wide.
	PoolSize int64
}

// Default returns the built-in defaults, ignoring any viper overrides.
func Default() Config {
	return Config{
		MaxSize:           defaultMaxSize,
		WorkQueueCapacity: defaultWorkQueueCap,
		PullTimeout:       defaultPullTimeoutMs * time.Millisecond,
		IdleSleep:         defaultIdleSleepMs * time.Millisecond,
		PoolSize:          defaultThreadPoolSize,
	}
}

// FromViper resolves a Config from what viper currently holds for these
// keys: the registered defaults, overridden by a config file if Load read
// one.
func FromViper() Config {
	return Config{
		MaxSize:           viper.GetInt(keyMaxSize),
		WorkQueueCapacity: viper.GetInt(keyWorkQueueCapacity),
		PullTimeout:       time.Duration(viper.GetInt(keyPullTimeoutMillis)) * time.Millisecond,
		IdleSleep:         time.Duration(viper.GetInt(keyIdleSleepMillis)) * time.Millisecond,
		PoolSize:          int64(viper.GetInt(keyThreadPoolSize)),
	}
}

// Load reads a YAML graph-definition file's runtime tunables into viper.
// An empty path is a no-op: callers fall back to the registered defaults.
func Load(path string) error {
	if path == "" {
		return nil
	}
	viper.SetConfigFile(path)
	return errors.Wrap(viper.ReadInConfig(), "failed to read graph config")
}
