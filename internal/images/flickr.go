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

// FlickrProvider implements Provider using the Flickr REST API
type FlickrProvider struct {
	apiKey string
	client *http.Client
}

// NewFlickrProvider creates a new Flickr image provider
func NewFlickrProvider(apiKey string, timeout time.Duration) *FlickrProvider {
	return &FlickrProvider{
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

// GetName returns the name of this provider
func (f *FlickrProvider) GetName() string {
	return "Flickr"
}

// Search performs an image search against Flickr
func (f *FlickrProvider) Search(ctx context.Context, query string, slot int) (*core.ImageRecord, error) {
	if f.apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("method", "flickr.photos.search")
	params.Set("api_key", f.apiKey)
	params.Set("text", query)
	params.Set("sort", "relevance")
	params.Set("per_page", "20")
	params.Set("page", strconv.Itoa(slot/20+1))
	params.Set("extras", "url_l,owner_name")
	params.Set("format", "json")
	params.Set("nojsoncallback", "1")

	req, err := http.NewRequestWithContext(ctx, "GET",
		"https://api.flickr.com/services/rest/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Flickr request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute Flickr request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Flickr request failed with status: %d", resp.StatusCode)
	}

	var apiResponse struct {
		Photos struct {
			Photo []struct {
				Title     string `json:"title"`
				Owner     string `json:"owner"`
				OwnerName string `json:"ownername"`
				URLLarge  string `json:"url_l"`
				WidthL    int    `json:"width_l"`
				HeightL   int    `json:"height_l"`
			} `json:"photo"`
		} `json:"photos"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse Flickr response: %w", err)
	}

	// Not every photo carries a large URL; keep only the usable ones.
	var usable []int
	for i, photo := range apiResponse.Photos.Photo {
		if photo.URLLarge != "" {
			usable = append(usable, i)
		}
	}
	if len(usable) == 0 {
		return nil, nil
	}

	photo := apiResponse.Photos.Photo[usable[rand.Intn(len(usable))]]

	alt := photo.Title
	if alt == "" {
		alt = query
	}

	return &core.ImageRecord{
		URL:             photo.URLLarge,
		Alt:             alt,
		Source:          "Flickr",
		Attribution:     fmt.Sprintf("Photo by %s on Flickr", photo.OwnerName),
		Photographer:    photo.OwnerName,
		PhotographerURL: fmt.Sprintf("https://www.flickr.com/people/%s/", photo.Owner),
		Width:           photo.WidthL,
		Height:          photo.HeightL,
	}, nil
}
