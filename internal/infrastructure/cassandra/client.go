package cassandra

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gocql/gocql"
	"go.uber.org/zap"

	"github.com/jminango20/data-docs-api/domain"
	"github.com/jminango20/data-docs-api/internal/config"
)

// ConnectOptions carries the retry budget for session creation. Threading
// the budget through keeps concurrent connection attempts (tests included)
// from sharing any counter state.
type ConnectOptions struct {
	MaxAttempts int
	Delay       time.Duration
}

// NewSession creates and validates a Cassandra session. Failures in the
// "no host available" class are retried up to MaxAttempts with a fixed
// delay; any other failure class aborts immediately. Exhausting the budget
// yields a connection-class error the caller should treat as fatal.
func NewSession(ctx context.Context, cfg config.CassandraConfig, opts ConnectOptions, logger *zap.Logger) (*gocql.Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 10
	}
	if opts.Delay <= 0 {
		opts.Delay = 5 * time.Second
	}

	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Keyspace = cfg.Keyspace
	if cfg.Port > 0 {
		cluster.Port = cfg.Port
	}
	if cfg.Timeout > 0 {
		cluster.Timeout = cfg.Timeout
	}
	if cons, err := gocql.ParseConsistencyWrapper(cfg.Consistency); err == nil {
		cluster.Consistency = cons
	} else {
		logger.Warn("unknown consistency level, keeping driver default",
			zap.String("consistency", cfg.Consistency))
	}

	var lastErr error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		session, err := cluster.CreateSession()
		if err == nil {
			logger.Info("connected to cassandra",
				zap.Strings("hosts", cfg.Hosts),
				zap.String("keyspace", cfg.Keyspace),
				zap.Int("attempt", attempt))
			return session, nil
		}
		if !IsNoHostError(err) {
			return nil, err
		}
		lastErr = err
		logger.Warn("cassandra hosts unavailable, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", opts.MaxAttempts),
			zap.Duration("delay", opts.Delay),
			zap.Error(err))

		if attempt == opts.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.Delay):
		}
	}

	return nil, domain.WrapError(domain.ErrCodeConnection, "cassandra unreachable after retry budget", lastErr)
}

// IsNoHostError reports whether err belongs to the retryable
// "no host available" class.
func IsNoHostError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gocql.ErrNoConnections) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "no hosts available") ||
		strings.Contains(msg, "unable to connect")
}
