package caching

import (
	"testing"
	"time"
)

func TestKeyIsStable(t *testing.T) {
	a := Key("https://example.com/react")
	b := Key("https://example.com/react")
	c := Key("https://example.com/other")

	if a != b {
		t.Errorf("Key() not stable: %q vs %q", a, b)
	}
	if a == c {
		t.Error("Key() collides for different urls")
	}
	if len(a) != 64 {
		t.Errorf("Key() length = %d, want 64 hex chars", len(a))
	}
}

func TestDiskRoundTrip(t *testing.T) {
	disk, err := NewDisk(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewDisk() error = %v", err)
	}

	if _, found := disk.Get("missing"); found {
		t.Error("Get() on empty cache = hit, want miss")
	}

	want := []byte("<html><body>cached page</body></html>")
	if err := disk.Set(Key("https://example.com"), want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, found := disk.Get(Key("https://example.com"))
	if !found {
		t.Fatal("Get() after Set() = miss, want hit")
	}
	if string(got) != string(want) {
		t.Errorf("Get() = %q, want %q", got, want)
	}
}

func TestDiskExpiry(t *testing.T) {
	disk, err := NewDisk(t.TempDir(), time.Millisecond)
	if err != nil {
		t.Fatalf("NewDisk() error = %v", err)
	}

	if err := disk.Set("stale", []byte("old")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, found := disk.Get("stale"); found {
		t.Error("Get() on expired entry = hit, want miss")
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	mem := NewMemory(time.Hour)

	if _, found := mem.Get("missing"); found {
		t.Error("Get() on empty cache = hit, want miss")
	}

	if err := mem.Set("page", []byte("body")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, found := mem.Get("page")
	if !found || string(got) != "body" {
		t.Errorf("Get() = %q, %v, want %q, true", got, found, "body")
	}
}

func TestLayeredPromotesSlowHits(t *testing.T) {
	fast := NewMemory(time.Hour)
	slow, err := NewDisk(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewDisk() error = %v", err)
	}
	layered := NewLayered(fast, slow)

	// Seed only the slow layer, as if from an earlier process.
	if err := slow.Set("page", []byte("body")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, found := layered.Get("page")
	if !found || string(got) != "body" {
		t.Fatalf("Get() = %q, %v, want %q, true", got, found, "body")
	}

	if _, found := fast.Get("page"); !found {
		t.Error("slow hit was not promoted to the fast layer")
	}
}

func TestLayeredSetWritesBothLayers(t *testing.T) {
	fast := NewMemory(time.Hour)
	slow, err := NewDisk(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewDisk() error = %v", err)
	}
	layered := NewLayered(fast, slow)

	if err := layered.Set("page", []byte("body")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, found := fast.Get("page"); !found {
		t.Error("fast layer missing entry after Set()")
	}
	if _, found := slow.Get("page"); !found {
		t.Error("slow layer missing entry after Set()")
	}
}
