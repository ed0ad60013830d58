// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"view:*", "analytics:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}
	defer client.Close()
}

func TestViewDedupWindow(t *testing.T) {
	client := testValkeyClient(t)
	ctx := context.Background()

	v := NewViewDedup(client, time.Minute)
	articleID := uuid.New()

	if !v.ShouldCount(ctx, articleID, "viewer-a") {
		t.Error("first view must count")
	}
	if v.ShouldCount(ctx, articleID, "viewer-a") {
		t.Error("repeat view within window must not count")
	}
	if !v.ShouldCount(ctx, articleID, "viewer-b") {
		t.Error("different viewer must count independently")
	}
	if !v.ShouldCount(ctx, uuid.New(), "viewer-a") {
		t.Error("same viewer on a different article must count")
	}
}

func TestTopCacheRoundTrip(t *testing.T) {
	client := testValkeyClient(t)
	ctx := context.Background()

	c := NewTopCache(client, time.Minute)

	type row struct {
		Title string `json:"title"`
		Views int    `json:"views"`
	}
	var missed []row
	if c.Get(ctx, &missed) {
		t.Error("expected miss on empty cache")
	}

	c.Set(ctx, []row{{Title: "hello", Views: 7}})

	var got []row
	if !c.Get(ctx, &got) {
		t.Fatal("expected hit after set")
	}
	if len(got) != 1 || got[0].Title != "hello" || got[0].Views != 7 {
		t.Errorf("round trip: got %+v", got)
	}

	c.Invalidate(ctx)
	var after []row
	if c.Get(ctx, &after) {
		t.Error("expected miss after invalidate")
	}
}
