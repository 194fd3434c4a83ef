//go:build integration

// Package testutil provides test helpers for integration tests against a
// local Redis standing in for a device's CONFIG_DB.
package testutil

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisAddr returns the address of the test Redis container (IP:port).
// It first checks EAPICTL_TEST_REDIS_ADDR, then discovers the Docker container IP.
func RedisAddr() string {
	if addr := os.Getenv("EAPICTL_TEST_REDIS_ADDR"); addr != "" {
		return addr
	}

	out, err := exec.Command("docker", "inspect",
		"--format", "{{range .NetworkSettings.Networks}}{{.IPAddress}}{{end}}",
		"eapictl-test-redis").Output()
	if err != nil {
		return ""
	}
	ip := strings.TrimSpace(string(out))
	if ip == "" {
		return ""
	}
	return ip + ":6379"
}

// SkipIfNoRedis skips the test if the test Redis container is not reachable.
func SkipIfNoRedis(t *testing.T) {
	t.Helper()

	addr := RedisAddr()
	if addr == "" {
		t.Skip("test Redis not available: set EAPICTL_TEST_REDIS_ADDR or start eapictl-test-redis")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("test Redis not reachable at %s: %v", addr, err)
	}
}

// FlushConfigDB flushes the CONFIG_DB database (DB 4) on the test Redis.
func FlushConfigDB(t *testing.T) {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: RedisAddr(), DB: 4})
	defer client.Close()

	if err := client.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("flushing CONFIG_DB: %v", err)
	}
}

// WriteEntry writes a single hash entry to CONFIG_DB.
func WriteEntry(t *testing.T, table, key string, fields map[string]string) {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: RedisAddr(), DB: 4})
	defer client.Close()

	redisKey := table + "|" + key
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	if len(args) == 0 {
		args = append(args, "NULL", "NULL")
	}
	if err := client.HSet(context.Background(), redisKey, args...).Err(); err != nil {
		t.Fatalf("writing %s: %v", redisKey, err)
	}
}

// ReadEntry reads a hash entry from CONFIG_DB.
func ReadEntry(t *testing.T, table, key string) map[string]string {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: RedisAddr(), DB: 4})
	defer client.Close()

	vals, err := client.HGetAll(context.Background(), table+"|"+key).Result()
	if err != nil {
		t.Fatalf("reading %s|%s: %v", table, key, err)
	}
	return vals
}
