package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestIdempotencyStore_Key(t *testing.T) {
	s := NewIdempotencyStore(nil)
	if got := s.key("product:sup-1", "abc"); got != "idem:product:sup-1:abc" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestIdempotencyStore_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	s := NewIdempotencyStore(client)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, ok, err := s.Lookup(ctx, "product:sup-1", "abc"); err == nil || ok {
		t.Fatalf("expected lookup error, got ok=%v err=%v", ok, err)
	}
	if err := s.Remember(ctx, "product:sup-1", "abc", "p1"); err == nil {
		t.Fatalf("expected remember error")
	}
}
