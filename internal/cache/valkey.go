// Package cache provides the Valkey (Redis-compatible) client and the
// rendered-section cache used by the HTTP handlers. The cache is
// optional: when no Valkey host is configured the handlers render every
// request.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache calls sit on the page path and a miss only costs a render, so
// they give up quickly instead of waiting on a slow Valkey.
const (
	dialTimeout = 2 * time.Second
	ioTimeout   = 250 * time.Millisecond
)

// ConnectValkey creates a Valkey client and verifies the connection with a ping.
func ConnectValkey(ctx context.Context, host, port, password string) (*redis.Client, error) {
	addr := net.JoinHostPort(host, port)
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		ClientName:   "ormtutor",
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	})

	ctx, cancel := context.WithTimeout(ctx, dialTimeout+time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping %s: %w", addr, err)
	}

	slog.Info("valkey connected", "addr", addr)
	return client, nil
}
