package images

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"time"

	"blogpilot/internal/core"
)

// RandomProvider is the keyless last entry of the waterfall. It always
// succeeds, handing out a random-image service URL seeded by the query so
// articles still get visuals when every credentialed provider misses.
type RandomProvider struct{}

// NewRandomProvider creates the always-available random image provider
func NewRandomProvider() *RandomProvider {
	return &RandomProvider{}
}

// GetName returns the name of this provider
func (r *RandomProvider) GetName() string {
	return "Random"
}

// Search always returns a record; no network call is involved.
func (r *RandomProvider) Search(ctx context.Context, query string, slot int) (*core.ImageRecord, error) {
	seed := time.Now().UnixMilli() + int64(slot)*31 + int64(rand.Intn(1000))

	urls := []string{
		fmt.Sprintf("https://source.unsplash.com/1200x800/?%s&sig=%d",
			url.QueryEscape(query), seed),
		fmt.Sprintf("https://picsum.photos/seed/%d/1200/800", seed),
	}

	return &core.ImageRecord{
		URL:         urls[rand.Intn(len(urls))],
		Alt:         query,
		Source:      "Random",
		Attribution: "Alternative Image Source",
		Width:       1200,
		Height:      800,
	}, nil
}
