package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestBackends(t *testing.T) {
	ctx := context.Background()
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	backends := map[string]Cache{
		"file":   fc,
		"memory": NewMemoryCache(0),
	}
	for name, c := range backends {
		t.Run(name, func(t *testing.T) {
			if _, hit, _ := c.Get(ctx, "svg"); hit {
				t.Fatal("empty cache reported a hit")
			}
			if err := c.Set(ctx, "svg", []byte("<svg/>"), time.Hour); err != nil {
				t.Fatalf("Set: %v", err)
			}
			data, hit, err := c.Get(ctx, "svg")
			if err != nil || !hit || string(data) != "<svg/>" {
				t.Fatalf("Get = %q, %v, %v", data, hit, err)
			}

			if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
				t.Fatalf("Set: %v", err)
			}
			time.Sleep(2 * time.Millisecond)
			if _, hit, _ := c.Get(ctx, "old"); hit {
				t.Error("expired entry reported a hit")
			}

			if err := c.Delete(ctx, "svg"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, hit, _ := c.Get(ctx, "svg"); hit {
				t.Error("deleted entry reported a hit")
			}
			if err := c.Delete(ctx, "never"); err != nil {
				t.Errorf("Delete(missing): %v", err)
			}
		})
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	os.MkdirAll(filepath.Dir(path), 0o755)
	os.WriteFile(path, []byte("not json"), 0o644)

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(corrupt) = %v, %v; want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		c.Set(ctx, k, []byte(k), 0)
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestMemoryCacheEvicts(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)
	c.Set(ctx, "soon", []byte("1"), time.Minute)
	c.Set(ctx, "later", []byte("2"), time.Hour)
	c.Set(ctx, "new", []byte("3"), time.Hour)

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "soon"); hit {
		t.Error("entry closest to expiry should be evicted")
	}
	for _, k := range []string{"later", "new"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("%s was evicted", k)
		}
	}

	// Overwriting an existing key never evicts.
	c.Set(ctx, "new", []byte("4"), time.Hour)
	if c.Len() != 2 {
		t.Errorf("Len after overwrite = %d", c.Len())
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Width: 800})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Width: 800})
	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Width: 800, ShowAnchors: true})
	if ak1 == ak2 || ak1 == ak3 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if ak1 != k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Width: 800}) {
		t.Error("ArtifactKey should be deterministic")
	}

	if k.TreeKey("h", "svg", false) == k.TreeKey("h", "svg", true) {
		t.Error("detail flag should change TreeKey")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "lib:abc:")

	key := scoped.ArtifactKey("h", ArtifactKeyOpts{Format: "svg"})
	if key[:8] != "lib:abc:" {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", key)
	}
	if key == NewScopedKeyer(nil, "lib:def:").ArtifactKey("h", ArtifactKeyOpts{Format: "svg"}) {
		t.Error("different scopes should produce different keys")
	}
	if tk := scoped.TreeKey("h", "dot", false); tk[:8] != "lib:abc:" {
		t.Errorf("ScopedKeyer TreeKey should be prefixed: %s", tk)
	}
}
