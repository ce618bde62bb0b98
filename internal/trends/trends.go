// Package trends collects candidate topic phrases from public RSS feeds
// so harvesting can mix live trending subjects into its candidate pool.
package trends

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"blogpilot/internal/core"
	"blogpilot/internal/logger"
)

const (
	minTitleLen = 15
	maxTitleLen = 120
	maxPerFeed  = 10
)

// techSignal filters feed titles down to the ones plausibly about the
// topics this pipeline writes about.
var techSignal = regexp.MustCompile(`(?i)\b(ai|ml|machine learning|deep learning|llm|gpt|software|programming|developer|cloud|kubernetes|docker|database|security|cyber|crypto|blockchain|api|open source|linux|python|golang|javascript|rust|data|quantum|chip|gpu|startup|tech)\b`)

// noisePrefix strips common feed-title decorations before a title is
// turned into a topic phrase.
var noisePrefix = regexp.MustCompile(`(?i)^(show hn:|ask hn:|tell hn:|\[[^\]]*\]\s*)`)

// Collector fetches and filters trending titles from configured feeds.
type Collector struct {
	feeds  []string
	parser *gofeed.Parser
}

// NewCollector creates a collector over the given feed URLs.
func NewCollector(feeds []string) *Collector {
	parser := gofeed.NewParser()
	parser.UserAgent = "blogpilot/1.0"
	return &Collector{
		feeds:  feeds,
		parser: parser,
	}
}

// Collect fetches every configured feed and returns topic candidates
// built from titles that pass the length and relevance filters. Feeds
// that fail are logged and skipped; Collect itself never errors.
func (c *Collector) Collect(ctx context.Context) []core.Topic {
	var topics []core.Topic
	seen := make(map[string]bool)

	for _, feedURL := range c.feeds {
		fetchCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
		feed, err := c.parser.ParseURLWithContext(feedURL, fetchCtx)
		cancel()
		if err != nil {
			logger.Warn("Failed to fetch trend feed", "feed", feedURL, "error", err.Error())
			continue
		}

		count := 0
		for _, item := range feed.Items {
			if count >= maxPerFeed {
				break
			}
			phrase, ok := extractPhrase(item.Title)
			if !ok {
				continue
			}
			key := strings.ToLower(phrase)
			if seen[key] {
				continue
			}
			seen[key] = true
			topics = append(topics, core.Topic{
				Text:     phrase,
				Category: "IT",
				Source:   "trends",
			})
			count++
		}
	}

	logger.Info("Collected trending topics", "feeds", len(c.feeds), "topics", len(topics))
	return topics
}

// extractPhrase normalizes a raw feed title into a usable topic phrase,
// or reports that the title is unusable.
func extractPhrase(title string) (string, bool) {
	title = strings.TrimSpace(noisePrefix.ReplaceAllString(title, ""))
	if len(title) < minTitleLen || len(title) > maxTitleLen {
		return "", false
	}
	if !techSignal.MatchString(title) {
		return "", false
	}

	// Feed titles often carry a source suffix after a separator; keep the
	// leading clause only.
	for _, sep := range []string{" | ", " — ", " - ", " – ", ": "} {
		if idx := strings.Index(title, sep); idx > minTitleLen {
			title = title[:idx]
			break
		}
	}

	title = strings.TrimSpace(strings.Trim(title, ".?!"))
	if len(title) < minTitleLen {
		return "", false
	}
	return title, true
}
