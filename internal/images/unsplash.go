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

// UnsplashProvider implements Provider using the Unsplash search API
type UnsplashProvider struct {
	accessKey string
	client    *http.Client
}

// NewUnsplashProvider creates a new Unsplash image provider
func NewUnsplashProvider(accessKey string, timeout time.Duration) *UnsplashProvider {
	return &UnsplashProvider{
		accessKey: accessKey,
		client:    &http.Client{Timeout: timeout},
	}
}

// GetName returns the name of this provider
func (u *UnsplashProvider) GetName() string {
	return "Unsplash"
}

// Search performs an image search against Unsplash
func (u *UnsplashProvider) Search(ctx context.Context, query string, slot int) (*core.ImageRecord, error) {
	if u.accessKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "30")
	params.Set("orientation", "landscape")
	params.Set("order_by", "relevant")

	req, err := http.NewRequestWithContext(ctx, "GET",
		"https://api.unsplash.com/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Unsplash request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+u.accessKey)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute Unsplash request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Unsplash request failed with status: %d", resp.StatusCode)
	}

	var apiResponse struct {
		Results []struct {
			Width          int    `json:"width"`
			Height         int    `json:"height"`
			AltDescription string `json:"alt_description"`
			URLs           struct {
				Regular string `json:"regular"`
			} `json:"urls"`
			User struct {
				Name  string `json:"name"`
				Links struct {
					HTML string `json:"html"`
				} `json:"links"`
			} `json:"user"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse Unsplash response: %w", err)
	}

	if len(apiResponse.Results) == 0 {
		return nil, nil
	}

	// Window the results by slot, then pick randomly inside the window,
	// so multiple slots on the same query land on different photos.
	start := (slot * 5) % len(apiResponse.Results)
	end := start + 5
	if end > len(apiResponse.Results) {
		end = len(apiResponse.Results)
	}
	window := apiResponse.Results[start:end]
	photo := window[rand.Intn(len(window))]

	alt := photo.AltDescription
	if alt == "" {
		alt = query
	}

	return &core.ImageRecord{
		URL:             photo.URLs.Regular,
		Alt:             alt,
		Source:          "Unsplash",
		Attribution:     fmt.Sprintf("Photo by %s on Unsplash", photo.User.Name),
		Photographer:    photo.User.Name,
		PhotographerURL: photo.User.Links.HTML,
		Width:           photo.Width,
		Height:          photo.Height,
	}, nil
}
