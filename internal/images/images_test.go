package images

import (
	"context"
	"errors"
	"strings"
	"testing"

	"blogpilot/internal/core"
)

// stubProvider returns a fixed record/error for every call and counts
// how many times it was asked.
type stubProvider struct {
	name  string
	rec   *core.ImageRecord
	err   error
	calls int
}

func (s *stubProvider) Search(ctx context.Context, query string, slot int) (*core.ImageRecord, error) {
	s.calls++
	return s.rec, s.err
}

func (s *stubProvider) GetName() string { return s.name }

func TestValidURL(t *testing.T) {
	valid := []string{
		"https://images.unsplash.com/photo-123",
		"http://example.com/img.jpg",
		"https://picsum.photos/seed/1/1200/800",
	}
	for _, u := range valid {
		if !ValidURL(u) {
			t.Errorf("expected %q to be valid", u)
		}
	}

	invalid := []string{
		"",
		"ftp://example.com/img.jpg",
		"not a url",
		"https://nodot",
	}
	for _, u := range invalid {
		if ValidURL(u) {
			t.Errorf("expected %q to be invalid", u)
		}
	}
}

func TestResolve_FirstProviderWins(t *testing.T) {
	first := &stubProvider{name: "first", rec: &core.ImageRecord{URL: "https://example.com/a.jpg", Source: "first"}}
	second := &stubProvider{name: "second", rec: &core.ImageRecord{URL: "https://example.com/b.jpg", Source: "second"}}

	r := NewResolver(first, second)
	rec := r.Resolve(context.Background(), "docker networking", 0)

	if rec.Source != "first" {
		t.Errorf("expected first provider to win, got source %q", rec.Source)
	}
	if second.calls != 0 {
		t.Errorf("second provider should not have been called, got %d calls", second.calls)
	}
}

func TestResolve_AllProvidersMiss(t *testing.T) {
	empty := &stubProvider{name: "empty"}
	failing := &stubProvider{name: "failing", err: errors.New("boom")}

	r := NewResolver(empty, failing)
	rec := r.Resolve(context.Background(), "kubernetes", 0)

	if rec.Source != "fallback" {
		t.Errorf("expected fallback record, got source %q", rec.Source)
	}
	if rec.URL == "" {
		t.Error("fallback record must carry a URL")
	}
}

func TestResolve_NoProviders(t *testing.T) {
	r := NewResolver()
	rec := r.Resolve(context.Background(), "anything", 0)
	if rec.Source != "fallback" {
		t.Errorf("expected fallback with no providers, got %q", rec.Source)
	}
}

func TestResolve_SkipsMalformedURL(t *testing.T) {
	bad := &stubProvider{name: "bad", rec: &core.ImageRecord{URL: "not a url", Source: "bad"}}
	good := &stubProvider{name: "good", rec: &core.ImageRecord{URL: "https://example.com/c.jpg", Source: "good"}}

	r := NewResolver(bad, good)
	rec := r.Resolve(context.Background(), "cloud security", 0)

	if rec.Source != "good" {
		t.Errorf("expected malformed URL to be skipped, got source %q", rec.Source)
	}
}

func TestResolve_RepeatedPairShortCircuits(t *testing.T) {
	p := &stubProvider{name: "p", rec: &core.ImageRecord{URL: "https://example.com/d.jpg", Source: "p"}}
	r := NewResolver(p)

	first := r.Resolve(context.Background(), "go generics", 2)
	if first.Source != "p" {
		t.Fatalf("first resolve should hit the provider, got %q", first.Source)
	}

	second := r.Resolve(context.Background(), "go generics", 2)
	if second.Source != "fallback" {
		t.Errorf("repeated (query, slot) should return fallback, got %q", second.Source)
	}
	if p.calls != 1 {
		t.Errorf("provider should only be queried once per (query, slot), got %d calls", p.calls)
	}

	// A different slot on the same query is a fresh attempt.
	third := r.Resolve(context.Background(), "go generics", 3)
	if third.Source != "p" {
		t.Errorf("different slot should hit the provider again, got %q", third.Source)
	}
}

func TestFallback(t *testing.T) {
	rec := Fallback("quantum computing")
	if rec.Source != "fallback" {
		t.Errorf("expected source fallback, got %q", rec.Source)
	}
	if !ValidURL(rec.URL) {
		t.Errorf("fallback URL should be well-formed, got %q", rec.URL)
	}
	if !strings.Contains(rec.Alt, "quantum computing") {
		t.Errorf("fallback alt should reference the query, got %q", rec.Alt)
	}
}

func TestRandomProvider_AlwaysReturns(t *testing.T) {
	p := NewRandomProvider()
	rec, err := p.Search(context.Background(), "edge computing", 0)
	if err != nil {
		t.Fatalf("random provider should not error: %v", err)
	}
	if rec == nil {
		t.Fatal("random provider should always return a record")
	}
	if !ValidURL(rec.URL) {
		t.Errorf("random provider URL should be well-formed, got %q", rec.URL)
	}
}

func TestNewProviderChain_OrderAndLength(t *testing.T) {
	chain := NewProviderChain(Config{})
	if len(chain) != 6 {
		t.Fatalf("expected 6 providers in the chain, got %d", len(chain))
	}
	want := []string{"Google Images", "Unsplash", "Pexels", "Pixabay", "Flickr", "Random"}
	for i, name := range want {
		if chain[i].GetName() != name {
			t.Errorf("chain[%d]: expected %q, got %q", i, name, chain[i].GetName())
		}
	}
}

func TestUnconfiguredProvidersReturnNil(t *testing.T) {
	chain := NewProviderChain(Config{})
	ctx := context.Background()
	// All but the terminal random provider require credentials.
	for _, p := range chain[:len(chain)-1] {
		rec, err := p.Search(ctx, "test", 0)
		if err != nil {
			t.Errorf("%s: unconfigured provider should not error, got %v", p.GetName(), err)
		}
		if rec != nil {
			t.Errorf("%s: unconfigured provider should return nil record", p.GetName())
		}
	}
}
