package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/store"
)

// Run exercises the compliance suite against a store.Store implementation.
// makeStore must return a clean, isolated store on every call.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("AppendAssignsIdentity", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()

		e, err := s.Memories().Append(ctx, "my flight is at 6pm", []string{"chat", "travel"})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
		if e.ID == "" || e.CreatedAt.IsZero() {
			t.Fatalf("Append: missing id or timestamp: %+v", e)
		}
		got, err := s.Memories().ListRecent(ctx, 1)
		if err != nil || len(got) != 1 {
			t.Fatalf("ListRecent: n=%d err=%v", len(got), err)
		}
		if got[0].ID != e.ID || got[0].Content != e.Content {
			t.Fatalf("ListRecent: got %+v want %+v", got[0], e)
		}
		if len(got[0].Tags) != 2 || got[0].Tags[0] != "chat" || got[0].Tags[1] != "travel" {
			t.Fatalf("ListRecent: tags not preserved: %v", got[0].Tags)
		}
	})

	t.Run("ListRecentIsNewestFirstSuffix", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()

		var ids []string
		for i := 0; i < 15; i++ {
			e, err := s.Memories().Append(ctx, fmt.Sprintf("fact %d", i), nil)
			if err != nil {
				t.Fatalf("Append %d: %v", i, err)
			}
			ids = append(ids, e.ID)
		}

		for _, limit := range []int{1, 5, 15, 40} {
			got, err := s.Memories().ListRecent(ctx, limit)
			if err != nil {
				t.Fatalf("ListRecent(%d): %v", limit, err)
			}
			want := limit
			if want > len(ids) {
				want = len(ids)
			}
			if len(got) != want {
				t.Fatalf("ListRecent(%d): n=%d want %d", limit, len(got), want)
			}
			for i, e := range got {
				if exp := ids[len(ids)-1-i]; e.ID != exp {
					t.Fatalf("ListRecent(%d)[%d]: id=%s want %s", limit, i, e.ID, exp)
				}
			}
		}

		dflt, err := s.Memories().ListRecent(ctx, 0)
		if err != nil || len(dflt) != store.DefaultListLimit {
			t.Fatalf("ListRecent(0): n=%d err=%v", len(dflt), err)
		}
	})

	t.Run("ClearAllEmptiesStore", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			if _, err := s.Memories().Append(ctx, fmt.Sprintf("x%d", i), nil); err != nil {
				t.Fatalf("Append: %v", err)
			}
		}
		n, err := s.Memories().ClearAll(ctx)
		if err != nil || n != 3 {
			t.Fatalf("ClearAll: n=%d err=%v", n, err)
		}
		got, err := s.Memories().ListRecent(ctx, store.MaxListLimit)
		if err != nil || len(got) != 0 {
			t.Fatalf("ListRecent after clear: n=%d err=%v", len(got), err)
		}
		if c, err := s.Memories().Count(ctx); err != nil || c != 0 {
			t.Fatalf("Count after clear: n=%d err=%v", c, err)
		}
		if n, err := s.Memories().ClearAll(ctx); err != nil || n != 0 {
			t.Fatalf("ClearAll on empty: n=%d err=%v", n, err)
		}
	})

	t.Run("ConcurrentAppendsAreKept", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()

		const writers = 8
		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if _, err := s.Memories().Append(ctx, fmt.Sprintf("concurrent %d", i), nil); err != nil {
					errs <- err
				}
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Fatalf("concurrent Append: %v", err)
		}

		got, err := s.Memories().ListRecent(ctx, writers)
		if err != nil || len(got) != writers {
			t.Fatalf("ListRecent: n=%d err=%v", len(got), err)
		}
		seen := map[string]bool{}
		for _, e := range got {
			seen[e.Content] = true
		}
		for i := 0; i < writers; i++ {
			if !seen[fmt.Sprintf("concurrent %d", i)] {
				t.Fatalf("missing entry %d in %v", i, got)
			}
		}
		for i := 1; i < len(got); i++ {
			if got[i-1].CreatedAt.Before(got[i].CreatedAt) {
				t.Fatalf("entries not newest first at %d: %v then %v", i, got[i-1].CreatedAt, got[i].CreatedAt)
			}
		}
	})
	t.Run("ClearAllRacesAppends", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()

		const (
			writers   = 6
			perWriter = 10
			clears    = 5
		)
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			removed int
		)
		errs := make(chan error, writers*perWriter+clears*2)

		for w := 0; w < writers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < perWriter; i++ {
					if _, err := s.Memories().Append(ctx, fmt.Sprintf("w%d-%d", w, i), nil); err != nil {
						errs <- fmt.Errorf("Append: %w", err)
					}
				}
			}(w)
		}
		for c := 0; c < clears; c++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				n, err := s.Memories().ClearAll(ctx)
				if err != nil {
					errs <- fmt.Errorf("ClearAll: %w", err)
					return
				}
				mu.Lock()
				removed += n
				mu.Unlock()
			}()
			go func() {
				defer wg.Done()
				got, err := s.Memories().ListRecent(ctx, store.MaxListLimit)
				if err != nil {
					errs <- fmt.Errorf("ListRecent: %w", err)
					return
				}
				seen := make(map[string]bool, len(got))
				for i, e := range got {
					if seen[e.ID] {
						errs <- fmt.Errorf("snapshot repeats %s", e.ID)
						return
					}
					seen[e.ID] = true
					if i > 0 && got[i-1].CreatedAt.Before(e.CreatedAt) {
						errs <- fmt.Errorf("snapshot not newest first at %d", i)
						return
					}
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Fatal(err)
		}

		left, err := s.Memories().Count(ctx)
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		// Every append is either cleared exactly once or still present.
		if removed+left != writers*perWriter {
			t.Fatalf("removed %d + left %d != appended %d", removed, left, writers*perWriter)
		}
		got, err := s.Memories().ListRecent(ctx, store.MaxListLimit)
		if err != nil || len(got) != left {
			t.Fatalf("ListRecent after race: n=%d want %d err=%v", len(got), left, err)
		}
	})
}
