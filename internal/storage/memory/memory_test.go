package memory

import (
	"context"
	"testing"
)

func TestLoadMissingKey(t *testing.T) {
	s := New()
	var out []string
	found, err := s.Load(context.Background(), "transactions", &out)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatalf("missing key reported found")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New()
	in := map[string]int64{"food": 100, "transport": 50}
	if err := s.Save(context.Background(), "settings", in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out := map[string]int64{}
	found, err := s.Load(context.Background(), "settings", &out)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if len(out) != 2 || out["food"] != 100 || out["transport"] != 50 {
		t.Fatalf("round trip mismatch: %v", out)
	}
}

func TestLoadMalformedValue(t *testing.T) {
	s := New()
	s.SeedRaw("categories", []byte(`{not json`))
	var out []string
	found, err := s.Load(context.Background(), "categories", &out)
	if !found {
		t.Fatalf("seeded key should be found")
	}
	if err == nil {
		t.Fatalf("malformed value must error")
	}
}
