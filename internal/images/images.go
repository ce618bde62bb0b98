// Package images resolves short descriptive queries into usable image
// records by trying an ordered list of external providers. Resolution
// never fails: when every provider misses, a synthesized fallback record
// is returned instead.
package images

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"blogpilot/internal/core"
	"blogpilot/internal/logger"
)

// Provider defines the unified interface for image providers.
// A nil record with a nil error means the provider had no usable result
// (including "not configured"); errors are treated the same way by the
// resolver but carry diagnostic detail.
type Provider interface {
	// Search returns one image for the query, or nil when nothing usable
	// was found. slot varies the selection so repeated queries within one
	// article do not all land on the same photo.
	Search(ctx context.Context, query string, slot int) (*core.ImageRecord, error)

	// GetName returns the name of the image provider
	GetName() string
}

// Config holds configuration for building the default provider chain
type Config struct {
	GoogleAPIKey   string
	GoogleSearchID string
	UnsplashKey    string
	PexelsKey      string
	PixabayKey     string
	FlickrKey      string
	Timeout        time.Duration
}

// urlShape is the basic sanity check applied before an external URL is
// trusted for embedding.
var urlShape = regexp.MustCompile(`^https?://.+\..+`)

// ValidURL reports whether u looks like an embeddable image URL.
func ValidURL(u string) bool {
	return urlShape.MatchString(u)
}

// NewProviderChain builds the default waterfall order from configuration.
// Providers without credentials are still included; they report "not
// configured" at call time and the waterfall moves on.
func NewProviderChain(cfg Config) []Provider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return []Provider{
		NewGoogleProvider(cfg.GoogleAPIKey, cfg.GoogleSearchID),
		NewUnsplashProvider(cfg.UnsplashKey, cfg.Timeout),
		NewPexelsProvider(cfg.PexelsKey, cfg.Timeout),
		NewPixabayProvider(cfg.PixabayKey, cfg.Timeout),
		NewFlickrProvider(cfg.FlickrKey, cfg.Timeout),
		NewRandomProvider(),
	}
}

// Resolver runs the provider waterfall and tracks per-run attempts so a
// repeated (query, slot) pair short-circuits to the fallback instead of
// re-querying every provider.
type Resolver struct {
	providers []Provider

	mu        sync.Mutex
	attempted map[string]bool
}

// NewResolver creates a resolver over the given providers, tried in order.
func NewResolver(providers ...Provider) *Resolver {
	return &Resolver{
		providers: providers,
		attempted: make(map[string]bool),
	}
}

// Resolve returns an image for the query. The first provider returning a
// usable record wins; if all of them miss, a fallback record with
// source "fallback" is synthesized. Resolve never returns a record with
// an empty URL.
func (r *Resolver) Resolve(ctx context.Context, query string, slot int) core.ImageRecord {
	key := fmt.Sprintf("%s_%d", query, slot)

	r.mu.Lock()
	repeat := r.attempted[key]
	r.attempted[key] = true
	r.mu.Unlock()

	if repeat {
		logger.Debug("Repeated image query, using fallback", "query", query, "slot", slot)
		return Fallback(query)
	}

	for _, p := range r.providers {
		rec, err := p.Search(ctx, query, slot)
		if err != nil {
			logger.Warn("Image provider failed", "provider", p.GetName(), "query", query, "error", err.Error())
			continue
		}
		if rec == nil {
			continue
		}
		if !ValidURL(rec.URL) {
			logger.Warn("Image provider returned malformed URL", "provider", p.GetName(), "url", rec.URL)
			continue
		}
		logger.Info("Image resolved", "provider", p.GetName(), "query", query, "url", rec.URL)
		return *rec
	}

	logger.Warn("All image providers failed, using fallback", "query", query)
	return Fallback(query)
}
