package override

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overrides.json")
	backend, err := NewFileBackend(path)
	if err != nil {
		t.Fatal(err)
	}
	s := NewStore(backend)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	return s, path
}

func TestStoreSetGetRemove(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Set("Nature Communications", "Q1*"); err != nil {
		t.Fatal(err)
	}

	// 查询键规范化：大小写和首尾空白不敏感
	for _, title := range []string{"Nature Communications", "nature communications", "  Nature Communications  "} {
		rank, ok := s.Get(title)
		if !ok || rank != "Q1*" {
			t.Errorf("Get(%q) = %q, %v; want Q1*, true", title, rank, ok)
		}
	}
	if !s.Has("nature communications") || s.Count() != 1 {
		t.Error("Has/Count mismatch after Set")
	}

	if err := s.Remove("NATURE COMMUNICATIONS"); err != nil {
		t.Fatal(err)
	}
	if s.Has("Nature Communications") || s.Count() != 0 {
		t.Error("override still present after Remove")
	}
}

func TestStorePersistsAcrossReload(t *testing.T) {
	s, path := newTestStore(t)
	if err := s.Set("My Venue", "A+"); err != nil {
		t.Fatal(err)
	}

	// 新store从同一文件加载
	backend, err := NewFileBackend(path)
	if err != nil {
		t.Fatal(err)
	}
	s2 := NewStore(backend)
	if err := s2.Load(); err != nil {
		t.Fatal(err)
	}

	rank, ok := s2.Get("my venue")
	if !ok || rank != "A+" {
		t.Errorf("reloaded store Get = %q, %v; want A+, true", rank, ok)
	}
}

func TestStoreSelfHealsOnCorruptBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	backend, err := NewFileBackend(path)
	if err != nil {
		t.Fatal(err)
	}
	s := NewStore(backend)
	if err := s.Load(); err != nil {
		t.Fatalf("Load must self-heal on corrupt blob, got error: %v", err)
	}
	if s.Count() != 0 {
		t.Errorf("expected empty store after self-heal, got %d entries", s.Count())
	}

	// 自愈后空状态已经写回
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}" {
		t.Errorf("expected empty blob persisted back, got %q", data)
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	s, path := newTestStore(t)
	if s.Count() != 0 {
		t.Error("fresh store should be empty")
	}
	// Load对缺失文件也会把空状态写回
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected blob file to exist after Load: %v", err)
	}
}

func TestStoreClearAll(t *testing.T) {
	s, _ := newTestStore(t)
	s.Set("One", "A")
	s.Set("Two", "B")

	if err := s.ClearAll(); err != nil {
		t.Fatal(err)
	}
	if s.Count() != 0 {
		t.Errorf("expected 0 after ClearAll, got %d", s.Count())
	}
}

func TestStoreAllReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	s.Set("One", "A")

	all := s.All()
	all["one"] = "tampered"

	if rank, _ := s.Get("One"); rank != "A" {
		t.Error("All() must return a copy, internal map was mutated")
	}
}
