package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tankstore/storefront-backend/pkg/config"
)

type fakeCommands struct {
	values   map[string]string
	counters map[string]int64
	ttls     map[string]time.Duration
	expires  int
	incrErr  error
}

func newFakeCommands() *fakeCommands {
	return &fakeCommands{
		values:   map[string]string{},
		counters: map[string]int64{},
		ttls:     map[string]time.Duration{},
	}
}

func (f *fakeCommands) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeCommands) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCommands) SetNX(_ context.Context, key string, value any, _ time.Duration) *redis.BoolCmd {
	if _, ok := f.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCommands) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.incrErr != nil {
		return redis.NewIntResult(0, f.incrErr)
	}
	f.counters[key]++
	if _, ok := f.ttls[key]; !ok {
		f.ttls[key] = -1
	}
	return redis.NewIntResult(f.counters[key], nil)
}

func (f *fakeCommands) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.expires++
	f.ttls[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCommands) TTL(_ context.Context, key string) *redis.DurationCmd {
	ttl, ok := f.ttls[key]
	if !ok {
		ttl = -2
	}
	return redis.NewDurationResult(ttl, nil)
}

func (f *fakeCommands) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.values, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestFixedWindowAllowCountsWithinWindow(t *testing.T) {
	ctx := context.Background()
	fake := newFakeCommands()
	client := &Client{cmd: fake}

	for i, want := range []bool{true, true, false} {
		allowed, count, err := client.FixedWindowAllow(ctx, "login:ip:10.0.0.1", 2, time.Minute)
		if err != nil {
			t.Fatalf("hit %d: %v", i, err)
		}
		if allowed != want || count != int64(i+1) {
			t.Fatalf("hit %d: allowed=%v count=%d", i, allowed, count)
		}
	}
	if fake.expires != 1 {
		t.Fatalf("expected a single expire, got %d", fake.expires)
	}
	if ttl := fake.ttls["tankstore:rate_limit:login:ip:10.0.0.1"]; ttl != time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}
}

func TestFixedWindowAllowRepairsMissingExpiry(t *testing.T) {
	ctx := context.Background()
	fake := newFakeCommands()
	client := &Client{cmd: fake}
	key := client.RateLimitKey("login:id:abc")
	fake.counters[key] = 3
	fake.ttls[key] = -1

	if _, _, err := client.FixedWindowAllow(ctx, "login:id:abc", 10, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.expires != 1 || fake.ttls[key] != time.Minute {
		t.Fatalf("expected expiry to be restored, expires=%d ttl=%v", fake.expires, fake.ttls[key])
	}
}

func TestFixedWindowAllowPropagatesErrors(t *testing.T) {
	fake := newFakeCommands()
	fake.incrErr = errors.New("connection reset")
	client := &Client{cmd: fake}

	allowed, _, err := client.FixedWindowAllow(context.Background(), "login:ip:x", 5, time.Minute)
	if err == nil || allowed {
		t.Fatalf("expected error and deny, allowed=%v err=%v", allowed, err)
	}
}

func TestLockPrimitives(t *testing.T) {
	ctx := context.Background()
	client := &Client{cmd: newFakeCommands()}
	key := client.LockKey("cron-worker")

	if ok, err := client.SetNX(ctx, key, "a", time.Minute); err != nil || !ok {
		t.Fatalf("first setnx: ok=%v err=%v", ok, err)
	}
	if ok, err := client.SetNX(ctx, key, "b", time.Minute); err != nil || ok {
		t.Fatalf("second setnx: ok=%v err=%v", ok, err)
	}
	if owner, err := client.Get(ctx, key); err != nil || owner != "a" {
		t.Fatalf("owner=%q err=%v", owner, err)
	}
	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := client.Get(ctx, key); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected redis.Nil, got %v", err)
	}
}

func TestKeys(t *testing.T) {
	client := &Client{}
	if got := client.RateLimitKey("login:ip:1.2.3.4"); got != "tankstore:rate_limit:login:ip:1.2.3.4" {
		t.Fatalf("rate limit key %s", got)
	}
	if got := client.LockKey("cron-worker"); got != "tankstore:lock:cron-worker" {
		t.Fatalf("lock key %s", got)
	}
	if got := client.LockKey("  "); got != "tankstore:lock" {
		t.Fatalf("blank parts should be skipped, got %s", got)
	}
}

func TestNilClientErrors(t *testing.T) {
	client := &Client{}
	if err := client.Ping(context.Background()); !errors.Is(err, errNotInitialized) {
		t.Fatalf("expected errNotInitialized, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on nil conn: %v", err)
	}
}

func TestClientOptions(t *testing.T) {
	cfg := config.RedisConfig{Address: "localhost:6379", DB: 2, PoolSize: 7, DialTimeout: time.Second}
	opts, err := clientOptions(cfg)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.DB != 2 || opts.PoolSize != 7 || opts.DialTimeout != time.Second {
		t.Fatalf("unexpected options %+v", opts)
	}

	opts, err = clientOptions(config.RedisConfig{URL: "redis://localhost:6380/4", DB: 1})
	if err != nil {
		t.Fatalf("url options: %v", err)
	}
	if opts.DB != 4 {
		t.Fatalf("url db should win, got %d", opts.DB)
	}

	if _, err := clientOptions(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}
}
