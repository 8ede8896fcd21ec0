package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadWriteRoundTrip(t *testing.T) {
	s := NewMemStore()

	type payload struct {
		Name  string         `json:"name"`
		Count int            `json:"count"`
		Tags  []string       `json:"tags"`
		Meta  map[string]int `json:"meta"`
	}

	want := payload{
		Name:  "hello",
		Count: 3,
		Tags:  []string{"a", "b"},
		Meta:  map[string]int{"x": 1},
	}

	Write(s, "key", want)
	got := Read(s, "key", payload{})

	if !reflect.DeepEqual(got, want) {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestReadMissingKeyReturnsFallback(t *testing.T) {
	s := NewMemStore()

	fallback := map[string]int{"default": 1}
	got := Read(s, "never-written", fallback)

	if !reflect.DeepEqual(got, fallback) {
		t.Errorf("Read on missing key = %v, want fallback %v", got, fallback)
	}
}

func TestReadCorruptValueReturnsFallback(t *testing.T) {
	s := NewMemStore()
	s.SetItem("bad", "{not json")

	got := Read(s, "bad", 42)
	if got != 42 {
		t.Errorf("Read on corrupt value = %d, want fallback 42", got)
	}
}

func TestFileStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s := NewFileStore(path)
	Write(s, KeyUsage, map[string]int{"2025-01": 1})
	s.SetItem(KeyAccessToken, "tok-123")

	// A fresh store against the same file sees the data.
	s2 := NewFileStore(path)
	usage := Read(s2, KeyUsage, map[string]int{})
	if usage["2025-01"] != 1 {
		t.Errorf("persisted usage = %v, want count 1 for 2025-01", usage)
	}
	if tok, ok := s2.GetItem(KeyAccessToken); !ok || tok != "tok-123" {
		t.Errorf("persisted token = %q (ok=%v), want tok-123", tok, ok)
	}
}

func TestFileStoreRemoveItem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s := NewFileStore(path)
	s.SetItem(KeyAccessToken, "tok")
	s.RemoveItem(KeyAccessToken)

	if _, ok := s.GetItem(KeyAccessToken); ok {
		t.Error("token should be gone after RemoveItem")
	}

	s2 := NewFileStore(path)
	if _, ok := s2.GetItem(KeyAccessToken); ok {
		t.Error("removal should persist across reloads")
	}

	// Removing an absent key must not error or write
	s.RemoveItem("absent")
}

func TestFileStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewFileStore(path)
	if _, ok := s.GetItem("anything"); ok {
		t.Error("corrupt file should start the store empty")
	}

	// Writes still work after a corrupt load
	s.SetItem("k", "v")
	if v, ok := s.GetItem("k"); !ok || v != "v" {
		t.Errorf("store should accept writes after corrupt load, got %q", v)
	}
}

func TestFileStoreUnwritableDirIsSilent(t *testing.T) {
	// A path whose parent cannot be created: writes must not panic or error.
	s := NewFileStore(filepath.Join(string([]byte{0}), "store.json"))
	s.SetItem("k", "v")

	// Value is still readable in memory even though persistence failed.
	if v, ok := s.GetItem("k"); !ok || v != "v" {
		t.Errorf("in-memory value = %q (ok=%v), want v", v, ok)
	}
}
