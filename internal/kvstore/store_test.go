// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package kvstore

import (
	"bytes"
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v4"
)

// =====================================================
// Helpers
// =====================================================

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(Config{InMemory: true, MaxConflictRetries: 10})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

// putRaw writes bytes that bypass JSON encoding.
func putRaw(t *testing.T, s *Store, key string, raw []byte) {
	t.Helper()
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
	if err != nil {
		t.Fatalf("raw set error = %v", err)
	}
}

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// =====================================================
// Set / Get / Remove
// =====================================================

func TestStore_SetGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := map[string][]record{"u1": {{ID: "a", Name: "first"}}}
	if err := s.Set(ctx, "collection", in); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var out map[string][]record
	found, err := s.Get(ctx, "collection", &out)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() found = false, want true")
	}
	if len(out["u1"]) != 1 || out["u1"][0].Name != "first" {
		t.Errorf("Get() = %+v, want stored value", out)
	}
}

func TestStore_Set_Overwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "users", []record{{ID: "1"}, {ID: "2"}}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set(ctx, "users", []record{{ID: "3"}}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var out []record
	if _, err := s.Get(ctx, "users", &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != "3" {
		t.Errorf("Get() = %+v, want only the latest value", out)
	}
}

func TestStore_Get_MissingKeepsDefault(t *testing.T) {
	s := newTestStore(t)

	out := []record{{ID: "default"}}
	found, err := s.Get(context.Background(), "missing", &out)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() found = true, want false")
	}
	if len(out) != 1 || out[0].ID != "default" {
		t.Errorf("Get() changed the default: %+v", out)
	}
}

func TestStore_Get_CorruptKeepsDefault(t *testing.T) {
	s := newTestStore(t)
	putRaw(t, s, "wishlist", []byte(`{"u1": [ {"id": "broken"`))

	out := map[string][]record{}
	found, err := s.Get(context.Background(), "wishlist", &out)
	if err != nil {
		t.Fatalf("Get() error = %v, want nil for corrupt value", err)
	}
	if found {
		t.Error("Get() found = true, want false for corrupt value")
	}
	if len(out) != 0 {
		t.Errorf("Get() leaked partial data into default: %+v", out)
	}
}

func TestStore_Get_RequiresPointer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "k", 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var out int
	if _, err := s.Get(ctx, "k", out); err == nil {
		t.Error("Get() with non-pointer should fail")
	}
}

func TestStore_Set_SerializationFailure(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "value", 1.5); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	err := s.Set(ctx, "value", math.Inf(1))
	if !errors.Is(err, ErrSerialization) {
		t.Fatalf("Set() error = %v, want ErrSerialization", err)
	}

	var out float64
	if _, err := s.Get(ctx, "value", &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if out != 1.5 {
		t.Errorf("previous value lost after failed Set: got %v", out)
	}
}

func TestStore_EmptyKey(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set(context.Background(), "", 1); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("Set() error = %v, want ErrEmptyKey", err)
	}
}

func TestStore_Remove_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "userInfo", record{ID: "u1"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.Remove(ctx, "userInfo"); err != nil {
			t.Fatalf("Remove() #%d error = %v", i+1, err)
		}
	}

	var out record
	found, _ := s.Get(ctx, "userInfo", &out)
	if found {
		t.Error("key still present after Remove")
	}
}

// =====================================================
// Clear / Keys
// =====================================================

func TestStore_ClearAndKeys(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"users", "friends", "reviews"} {
		if err := s.Set(ctx, k, []string{}); err != nil {
			t.Fatalf("Set(%s) error = %v", k, err)
		}
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 3 || keys[0] != "friends" || keys[2] != "users" {
		t.Errorf("Keys() = %v", keys)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	keys, err = s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("Keys() after Clear = %v, want empty", keys)
	}
}

// =====================================================
// Transactions
// =====================================================

func TestStore_Update_RollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	errAbort := errors.New("abort")

	if err := s.Set(ctx, "a", 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	err := s.Update(ctx, func(tx *Tx) error {
		if err := tx.Set("a", 2); err != nil {
			return err
		}
		if err := tx.Set("b", 2); err != nil {
			return err
		}
		return errAbort
	})
	if !errors.Is(err, errAbort) {
		t.Fatalf("Update() error = %v, want errAbort", err)
	}

	var a int
	if _, err := s.Get(ctx, "a", &a); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if a != 1 {
		t.Errorf("a = %d, want 1 after rollback", a)
	}
	var b int
	if found, _ := s.Get(ctx, "b", &b); found {
		t.Error("b should not exist after rollback")
	}
}

func TestStore_Update_ReadsOwnWrites(t *testing.T) {
	s := newTestStore(t)

	err := s.Update(context.Background(), func(tx *Tx) error {
		if err := tx.Set("likes", 3); err != nil {
			return err
		}
		var n int
		found, err := tx.Get("likes", &n)
		if err != nil {
			return err
		}
		if !found || n != 3 {
			t.Errorf("tx.Get() = %d, %v; want 3, true", n, found)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
}

func TestStore_Update_ConcurrentIncrements(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Update(ctx, func(tx *Tx) error {
				var n int
				if _, err := tx.Get("counter", &n); err != nil {
					return err
				}
				return tx.Set("counter", n+1)
			})
		}()
	}
	wg.Wait()
	close(errs)

	failed := 0
	for err := range errs {
		if err != nil {
			failed++
		}
	}

	var n int
	if _, err := s.Get(ctx, "counter", &n); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if n != workers-failed {
		t.Errorf("counter = %d, want %d (no lost updates)", n, workers-failed)
	}
}

func TestStore_View_IsReadOnly(t *testing.T) {
	s := newTestStore(t)

	err := s.View(context.Background(), func(tx *Tx) error {
		return tx.Set("k", 1)
	})
	if err == nil {
		t.Error("Set inside View should fail")
	}
}

// =====================================================
// Lifecycle
// =====================================================

func TestStore_ClosedOperations(t *testing.T) {
	s, err := Open(Config{InMemory: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	ctx := context.Background()
	if err := s.Set(ctx, "k", 1); !errors.Is(err, ErrClosed) {
		t.Errorf("Set() after Close error = %v, want ErrClosed", err)
	}
	var v int
	if _, err := s.Get(ctx, "k", &v); !errors.Is(err, ErrClosed) {
		t.Errorf("Get() after Close error = %v, want ErrClosed", err)
	}
}

func TestStore_CanceledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Set(ctx, "k", 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Set() error = %v, want context.Canceled", err)
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := Open(Config{}); err == nil {
		t.Error("Open() without path should fail")
	}
}

func TestStore_FileBackedPersistence(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(DefaultConfig(dir))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Set(ctx, "users", []record{{ID: "u1"}}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.RunGC(ctx, 0.5); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = Open(DefaultConfig(dir))
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	var out []record
	found, err := s.Get(ctx, "users", &out)
	if err != nil || !found {
		t.Fatalf("Get() after reopen = %v, %v", found, err)
	}
	if len(out) != 1 || out[0].ID != "u1" {
		t.Errorf("Get() after reopen = %+v", out)
	}
}

// =====================================================
// Backup / Restore
// =====================================================

func TestStore_BackupRestore(t *testing.T) {
	src := newTestStore(t)
	dst := newTestStore(t)
	ctx := context.Background()

	if err := src.Set(ctx, "friends", map[string][]string{"a": {"b"}, "b": {"a"}}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var buf bytes.Buffer
	if _, err := src.Backup(ctx, &buf); err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if err := dst.Restore(ctx, &buf); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	var friends map[string][]string
	found, err := dst.Get(ctx, "friends", &friends)
	if err != nil || !found {
		t.Fatalf("Get() after restore = %v, %v", found, err)
	}
	if len(friends["a"]) != 1 || friends["a"][0] != "b" {
		t.Errorf("restored friends = %+v", friends)
	}
}

func TestStore_RunGC_InMemory(t *testing.T) {
	s := newTestStore(t)
	if err := s.RunGC(context.Background(), 0.5); err != nil {
		t.Errorf("RunGC() in memory error = %v, want nil", err)
	}
}
