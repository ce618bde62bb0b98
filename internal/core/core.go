package core

import (
	"strings"
	"time"
)

// Topic is the short subject string one article is generated about.
type Topic struct {
	Text     string    `json:"text"`     // Raw topic text as selected
	Category string    `json:"category"` // Category the topic was harvested under (e.g., "IT", "Finance")
	Source   string    `json:"source"`   // Where the topic came from ("llm", "corpus", "trends")
	Selected time.Time `json:"selected"` // Timestamp when the topic was chosen
}

// Normalized returns the lowercased, trimmed form used for comparisons.
func (t Topic) Normalized() string {
	return strings.ToLower(strings.TrimSpace(t.Text))
}

// UsedTopicRecord is one persisted entry per historically used topic.
type UsedTopicRecord struct {
	ID     string    `json:"id"`      // Synthetic identifier (topic + timestamp)
	Topic  string    `json:"topic"`   // Topic text as it was used
	UsedAt time.Time `json:"used_at"` // Timestamp when the topic was consumed
}

// ImageRecord is a normalized external image reference. Provider adapters
// map their heterogeneous responses into this one shape.
type ImageRecord struct {
	URL             string `json:"url"`              // Direct image URL (must match https?:// shape)
	Alt             string `json:"alt"`              // Alt text for the embedded image
	Source          string `json:"source"`           // Provider name ("Unsplash", "Pexels", ..., "fallback")
	Attribution     string `json:"attribution"`      // Human-readable attribution line
	Photographer    string `json:"photographer"`     // Optional photographer name
	PhotographerURL string `json:"photographer_url"` // Optional photographer profile URL
	Width           int    `json:"width"`            // Optional pixel width
	Height          int    `json:"height"`           // Optional pixel height
}

// ImageSlot is one image request and its resolution. A slot is never left
// unresolved in a finished article; the resolver substitutes a fallback
// record when every provider fails.
type ImageSlot struct {
	Placement   int          `json:"placement"`   // Zero-based placement index within the article
	Description string       `json:"description"` // Search query used to find the image
	AltText     string       `json:"alt_text"`    // Alt text proposed for the image
	Image       *ImageRecord `json:"image"`       // Resolved image, filled by the resolver
}

// Article is the unit of generated content produced by the assembler and
// consumed once by the publisher.
type Article struct {
	Topic           Topic       `json:"topic"`            // Source topic
	Title           string      `json:"title"`            // SEO title (truncated to the configured length)
	MetaDescription string      `json:"meta_description"` // SEO description (truncated to the configured length)
	Markdown        string      `json:"markdown"`         // Generated body markup before conversion
	HTML            string      `json:"html"`             // Converted body HTML with images embedded
	ImageSlots      []ImageSlot `json:"image_slots"`      // Resolved image slots
	WordCount       int         `json:"word_count"`       // Word count of the generated markup
	SectionCount    int         `json:"section_count"`    // Number of second-level headings found
	Warnings        []string    `json:"warnings"`         // Soft quality-gate violations recorded during assembly
	GeneratedAt     time.Time   `json:"generated_at"`     // Timestamp when generation finished
}

// QualityReport summarizes one article's quality indicators so an operator
// can audit a run without re-deriving it from logs.
type QualityReport struct {
	Topic      string    `json:"topic"`
	WordCount  int       `json:"word_count"`
	ImageCount int       `json:"image_count"`
	Sections   int       `json:"sections"`
	HasSEOData bool      `json:"has_seo_data"`
	Score      int       `json:"score"` // 0-100 aggregate quality score
	Warnings   []string  `json:"warnings"`
	Generated  time.Time `json:"generated"`
}

// PublishResult describes the outcome of one platform publish call.
type PublishResult struct {
	PostID      string    `json:"post_id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Draft       bool      `json:"draft"`
	PublishedAt time.Time `json:"published_at"` // Scheduled or actual publish time (zero for drafts)
}
