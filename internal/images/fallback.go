package images

import (
	"fmt"
	"math/rand"
	"net/url"
	"time"

	"blogpilot/internal/core"
)

// fallbackTerms is the rotating topical word list the last-resort record
// draws from, so consecutive fallbacks do not all show the same photo.
var fallbackTerms = []string{
	"technology", "computer", "network", "data", "innovation",
	"digital", "artificial intelligence", "cloud computing",
	"cybersecurity", "programming", "software", "hardware",
}

// Fallback synthesizes the never-fails image record: a random-image
// service URL keyed by a rotating tech term, tagged source "fallback".
func Fallback(query string) core.ImageRecord {
	term := fallbackTerms[rand.Intn(len(fallbackTerms))]
	return core.ImageRecord{
		URL: fmt.Sprintf("https://source.unsplash.com/1200x800/?%s&t=%d",
			url.QueryEscape(term), time.Now().UnixMilli()),
		Alt:         fmt.Sprintf("%s technology concept", query),
		Source:      "fallback",
		Attribution: "Technology Image Source",
		Width:       1200,
		Height:      800,
	}
}
