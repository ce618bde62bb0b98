package images

import (
	"context"
	"fmt"
	"math/rand"

	"blogpilot/internal/core"

	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// GoogleProvider implements Provider using the Google Custom Search API
// with image search enabled.
type GoogleProvider struct {
	apiKey   string
	searchID string
}

// NewGoogleProvider creates a new Google image search provider
func NewGoogleProvider(apiKey, searchID string) *GoogleProvider {
	return &GoogleProvider{
		apiKey:   apiKey,
		searchID: searchID,
	}
}

// GetName returns the name of this provider
func (g *GoogleProvider) GetName() string {
	return "Google Images"
}

// Search performs an image search using Google Custom Search
func (g *GoogleProvider) Search(ctx context.Context, query string, slot int) (*core.ImageRecord, error) {
	if g.apiKey == "" || g.searchID == "" {
		return nil, nil
	}

	svc, err := customsearch.NewService(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create custom search service: %w", err)
	}

	// Paginate by slot so the second image on a query pulls from a
	// different result page than the first.
	resp, err := svc.Cse.List().
		Context(ctx).
		Cx(g.searchID).
		Q(query).
		SearchType("image").
		Num(10).
		Safe("active").
		ImgSize("LARGE").
		ImgType("photo").
		Start(int64(slot*10 + 1)).
		Do()
	if err != nil {
		return nil, fmt.Errorf("google image search failed: %w", err)
	}

	if len(resp.Items) == 0 {
		return nil, nil
	}

	item := resp.Items[rand.Intn(len(resp.Items))]

	alt := item.Title
	if alt == "" {
		alt = query
	}

	rec := &core.ImageRecord{
		URL:         item.Link,
		Alt:         alt,
		Source:      "Google Images",
		Attribution: "Google Images",
	}
	if item.Image != nil {
		rec.Width = int(item.Image.Width)
		rec.Height = int(item.Image.Height)
		if item.Image.ContextLink != "" {
			rec.Attribution = item.Image.ContextLink
		}
	}

	return rec, nil
}
