package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CollapsesConcurrentMisses(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "standings", nil
	}

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "standings:PL:2025", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "standings" {
				errCh <- errors.New("unexpected loaded value")
			}
		}()
	}
	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "news:latest:PL", 1)
	if _, ok := store.Get(context.Background(), "news:latest:PL"); !ok {
		t.Fatalf("expected fresh entry")
	}
	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "news:latest:PL"); ok {
		t.Fatalf("expected expired entry to be dropped")
	}
}

func TestStore_InvalidateByPrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(0)
	store.Set(ctx, "matches:live:PL", 1)
	store.Set(ctx, "matches:list:UCL", 2)
	store.Set(ctx, "standings:PL", 3)

	if dropped := store.Invalidate(ctx, "matches:"); dropped != 2 {
		t.Fatalf("unexpected dropped count: got=%d want=2", dropped)
	}
	if store.Len() != 1 {
		t.Fatalf("unexpected remaining entries: %d", store.Len())
	}
	if _, ok := store.Get(ctx, "standings:PL"); !ok {
		t.Fatalf("unrelated prefix must survive")
	}
}

func TestLoad_TypedValueAndErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	got, err := Load(ctx, store, "clubs:PL", func(context.Context) ([]string, error) {
		return []string{"Arsenal", "Chelsea"}, nil
	})
	if err != nil || len(got) != 2 {
		t.Fatalf("unexpected load result: %v %v", got, err)
	}

	errLoad := errors.New("db down")
	if _, err := Load(ctx, store, "clubs:UCL", func(context.Context) ([]string, error) {
		return nil, errLoad
	}); !errors.Is(err, errLoad) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, ok := store.Get(ctx, "clubs:UCL"); ok {
		t.Fatalf("failed loads must not be cached")
	}
}

func TestStore_InvalidateDuringLoadSkipsStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	loading := make(chan struct{})
	release := make(chan struct{})

	done := make(chan any, 1)
	go func() {
		v, _ := store.GetOrLoad(ctx, "standings:PL", func(context.Context) (any, error) {
			close(loading)
			<-release
			return "stale", nil
		})
		done <- v
	}()

	<-loading
	store.Invalidate(ctx, "standings:")
	close(release)

	if got := <-done; got != "stale" {
		t.Fatalf("caller should still receive its load, got %v", got)
	}
	if _, ok := store.Get(ctx, "standings:PL"); ok {
		t.Fatalf("load that raced an invalidation must not be cached")
	}

	v, err := store.GetOrLoad(ctx, "standings:PL", func(context.Context) (any, error) {
		return "fresh", nil
	})
	if err != nil || v != "fresh" {
		t.Fatalf("reload = %v, %v", v, err)
	}
}

func TestStore_InvalidateIgnoresEmptyPrefixes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(0)
	store.Set(ctx, "clubs:PL", 1)

	if dropped := store.Invalidate(ctx, "", ""); dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if store.Len() != 1 {
		t.Fatalf("empty prefixes must not clear the store")
	}
}

func TestStore_NilLoader(t *testing.T) {
	t.Parallel()

	if _, err := NewStore(time.Minute).GetOrLoad(context.Background(), "k", nil); err == nil {
		t.Fatalf("expected an error for a nil loader")
	}
}
