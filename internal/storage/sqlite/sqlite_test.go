package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	in := map[string]int64{"food": 220, "transport": 90}
	if err := s.Save(ctx, "settings", in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out := map[string]int64{}
	found, err := s.Load(ctx, "settings", &out)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if out["food"] != 220 || out["transport"] != 90 {
		t.Fatalf("round trip mismatch: %v", out)
	}
}

func TestLoadMissingKey(t *testing.T) {
	s := openTestStore(t)
	var out []string
	found, err := s.Load(context.Background(), "transactions", &out)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatalf("missing key reported found")
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Save(ctx, "categories", []string{"a"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, "categories", []string{"a", "b", "c"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	var out []string
	if _, err := s.Load(ctx, "categories", &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("out = %v", out)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.db")
	ctx := context.Background()

	first, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Save(ctx, "settings", map[string]int64{"food": 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	out := map[string]int64{}
	found, err := second.Load(ctx, "settings", &out)
	if err != nil || !found || out["food"] != 1 {
		t.Fatalf("reopen load: found=%v err=%v out=%v", found, err, out)
	}
}
