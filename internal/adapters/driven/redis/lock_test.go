package redis

import (
	"context"
	"testing"
	"time"
)

func TestLock_AcquireAndRelease(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	lock := NewLock(client)
	ctx := context.Background()

	acquired, err := lock.Acquire(ctx, "sync:batch", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !acquired {
		t.Fatal("expected to acquire free lock")
	}

	if err := lock.Release(ctx, "sync:batch"); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	acquired, err = lock.Acquire(ctx, "sync:batch", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !acquired {
		t.Error("expected to re-acquire after release")
	}
}

func TestLock_MutualExclusion(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	first := NewLock(client)
	second := NewLock(client)
	ctx := context.Background()

	acquired, err := first.Acquire(ctx, "sync:batch", time.Minute)
	if err != nil || !acquired {
		t.Fatalf("first acquire failed: acquired=%v err=%v", acquired, err)
	}

	acquired, err = second.Acquire(ctx, "sync:batch", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acquired {
		t.Error("second instance must not acquire a held lock")
	}
}

func TestLock_ReleaseOnlyOwn(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	first := NewLock(client)
	second := NewLock(client)
	ctx := context.Background()

	if acquired, _ := first.Acquire(ctx, "sync:batch", time.Minute); !acquired {
		t.Fatal("first acquire failed")
	}

	// Release by a non-owner is a no-op.
	if err := second.Release(ctx, "sync:batch"); err != nil {
		t.Fatalf("foreign release should not error: %v", err)
	}
	if acquired, _ := second.Acquire(ctx, "sync:batch", time.Minute); acquired {
		t.Error("lock should still be held by the first instance")
	}
}

func TestLock_ExpiresAfterTTL(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	first := NewLock(client)
	second := NewLock(client)
	ctx := context.Background()

	if acquired, _ := first.Acquire(ctx, "sync:batch", time.Second); !acquired {
		t.Fatal("acquire failed")
	}

	mr.FastForward(2 * time.Second)

	acquired, err := second.Acquire(ctx, "sync:batch", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !acquired {
		t.Error("expected to acquire after the holder's TTL expired")
	}
}

func TestLock_Extend(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	lock := NewLock(client)
	other := NewLock(client)
	ctx := context.Background()

	if acquired, _ := lock.Acquire(ctx, "sync:batch", time.Minute); !acquired {
		t.Fatal("acquire failed")
	}

	if err := lock.Extend(ctx, "sync:batch", 2*time.Minute); err != nil {
		t.Errorf("owner extend failed: %v", err)
	}
	if err := other.Extend(ctx, "sync:batch", 2*time.Minute); err == nil {
		t.Error("non-owner extend must fail")
	}
}
