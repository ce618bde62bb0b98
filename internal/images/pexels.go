package images

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"blogpilot/internal/core"
)

// PexelsProvider implements Provider using the Pexels search API
type PexelsProvider struct {
	apiKey string
	client *http.Client
}

// NewPexelsProvider creates a new Pexels image provider
func NewPexelsProvider(apiKey string, timeout time.Duration) *PexelsProvider {
	return &PexelsProvider{
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

// GetName returns the name of this provider
func (p *PexelsProvider) GetName() string {
	return "Pexels"
}

// Search performs an image search against Pexels
func (p *PexelsProvider) Search(ctx context.Context, query string, slot int) (*core.ImageRecord, error) {
	if p.apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "15")
	params.Set("orientation", "landscape")
	params.Set("size", "large")

	req, err := http.NewRequestWithContext(ctx, "GET",
		"https://api.pexels.com/v1/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pexels request: %w", err)
	}
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute Pexels request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Pexels request failed with status: %d", resp.StatusCode)
	}

	var apiResponse struct {
		Photos []struct {
			Width           int    `json:"width"`
			Height          int    `json:"height"`
			Alt             string `json:"alt"`
			Photographer    string `json:"photographer"`
			PhotographerURL string `json:"photographer_url"`
			Src             struct {
				Large string `json:"large"`
			} `json:"src"`
		} `json:"photos"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse Pexels response: %w", err)
	}

	if len(apiResponse.Photos) == 0 {
		return nil, nil
	}

	start := (slot * 3) % len(apiResponse.Photos)
	end := start + 3
	if end > len(apiResponse.Photos) {
		end = len(apiResponse.Photos)
	}
	window := apiResponse.Photos[start:end]
	photo := window[rand.Intn(len(window))]

	alt := photo.Alt
	if alt == "" {
		alt = query
	}

	return &core.ImageRecord{
		URL:             photo.Src.Large,
		Alt:             alt,
		Source:          "Pexels",
		Attribution:     fmt.Sprintf("Photo by %s on Pexels", photo.Photographer),
		Photographer:    photo.Photographer,
		PhotographerURL: photo.PhotographerURL,
		Width:           photo.Width,
		Height:          photo.Height,
	}, nil
}
