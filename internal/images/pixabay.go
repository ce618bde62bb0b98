package images

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"blogpilot/internal/core"
)

// PixabayProvider implements Provider using the Pixabay API
type PixabayProvider struct {
	apiKey string
	client *http.Client
}

// NewPixabayProvider creates a new Pixabay image provider
func NewPixabayProvider(apiKey string, timeout time.Duration) *PixabayProvider {
	return &PixabayProvider{
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

// GetName returns the name of this provider
func (p *PixabayProvider) GetName() string {
	return "Pixabay"
}

// Search performs an image search against Pixabay
func (p *PixabayProvider) Search(ctx context.Context, query string, slot int) (*core.ImageRecord, error) {
	if p.apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("q", query)
	params.Set("image_type", "photo")
	params.Set("orientation", "horizontal")
	params.Set("min_width", "800")
	params.Set("per_page", "20")
	params.Set("safesearch", "true")
	params.Set("page", strconv.Itoa(slot/10+1))

	req, err := http.NewRequestWithContext(ctx, "GET",
		"https://pixabay.com/api/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pixabay request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute Pixabay request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Pixabay request failed with status: %d", resp.StatusCode)
	}

	var apiResponse struct {
		Hits []struct {
			WebformatURL string `json:"webformatURL"`
			Tags         string `json:"tags"`
			User         string `json:"user"`
			UserID       int    `json:"user_id"`
			ImageWidth   int    `json:"imageWidth"`
			ImageHeight  int    `json:"imageHeight"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse Pixabay response: %w", err)
	}

	if len(apiResponse.Hits) == 0 {
		return nil, nil
	}

	hit := apiResponse.Hits[rand.Intn(len(apiResponse.Hits))]

	alt := hit.Tags
	if alt == "" {
		alt = query
	}

	return &core.ImageRecord{
		URL:             hit.WebformatURL,
		Alt:             alt,
		Source:          "Pixabay",
		Attribution:     fmt.Sprintf("Image by %s from Pixabay", hit.User),
		Photographer:    hit.User,
		PhotographerURL: fmt.Sprintf("https://pixabay.com/users/%s-%d/", hit.User, hit.UserID),
		Width:           hit.ImageWidth,
		Height:          hit.ImageHeight,
	}, nil
}
