// Package publish sends assembled articles to Blogger and exposes the
// existing-title listing the harvester uses for dedup.
package publish

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	blogger "google.golang.org/api/blogger/v3"
	"google.golang.org/api/option"

	"blogpilot/internal/config"
	"blogpilot/internal/core"
	"blogpilot/internal/logger"
)

// Publisher is what the pipeline needs from the platform side.
type Publisher interface {
	// Publish sends one article. Draft posts are saved unpublished;
	// non-draft posts are scheduled delayHours from now (clamped to at
	// least one hour when a delay is requested).
	Publish(ctx context.Context, article *core.Article, opts Options) (*core.PublishResult, error)

	// ListTitles returns up to max existing post titles, deduplicated.
	// Failures degrade to an empty list so dedup never blocks a run.
	ListTitles(ctx context.Context, max int) []string
}

// Options controls one publish call.
type Options struct {
	Draft      bool
	DelayHours int
	Labels     []string
}

// Client publishes to one Blogger blog.
type Client struct {
	blogID string
	svc    *blogger.Service
}

// NewClient builds a Blogger client from OAuth refresh-token
// credentials. The access token is minted and renewed by the token
// source; no interactive flow is involved.
func NewClient(ctx context.Context, cfg config.Blogger) (*Client, error) {
	if cfg.BlogID == "" {
		return nil, fmt.Errorf("blogger blog ID is not configured")
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, fmt.Errorf("blogger OAuth credentials are not configured")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{blogger.BloggerScope},
	}
	ts := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	svc, err := blogger.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create blogger service: %w", err)
	}

	return &Client{blogID: cfg.BlogID, svc: svc}, nil
}

// Publish sends one article to the blog.
func (c *Client) Publish(ctx context.Context, article *core.Article, opts Options) (*core.PublishResult, error) {
	labels := opts.Labels
	if len(labels) == 0 {
		labels = DefaultLabels(article.Topic.Text)
	}

	post := &blogger.Post{
		Title:   article.Title,
		Content: EnhanceHTML(article, time.Now()),
		Labels:  labels,
	}

	var scheduledAt time.Time
	if !opts.Draft {
		if opts.DelayHours > 0 {
			scheduledAt = ScheduledTime(time.Now(), opts.DelayHours)
		} else {
			scheduledAt = time.Now()
		}
		post.Published = scheduledAt.Format(time.RFC3339)
	}

	call := c.svc.Posts.Insert(c.blogID, post).Context(ctx)
	if opts.Draft {
		call = call.IsDraft(true)
	}

	created, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to publish post %q: %w", article.Title, err)
	}

	result := &core.PublishResult{
		PostID:      created.Id,
		URL:         created.Url,
		Title:       created.Title,
		Draft:       opts.Draft,
		PublishedAt: scheduledAt,
	}

	if opts.Draft {
		logger.Info("Draft saved", "post_id", result.PostID, "title", result.Title)
	} else {
		logger.Info("Post published", "post_id", result.PostID, "url", result.URL,
			"scheduled_at", scheduledAt.Format(time.RFC3339))
	}
	return result, nil
}

// ListTitles pages through the blog's posts (live and draft) and returns
// their titles, deduplicated, capped at max. Any API failure is logged
// and an empty list is returned so callers degrade instead of aborting.
func (c *Client) ListTitles(ctx context.Context, max int) []string {
	if max <= 0 {
		max = 500
	}

	var titles []string
	seen := make(map[string]bool)
	pageToken := ""

	for {
		call := c.svc.Posts.List(c.blogID).
			Context(ctx).
			MaxResults(100).
			FetchBodies(false).
			Status("live", "draft")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			logger.Warn("Failed to list post titles, dedup degrades to unfiltered", "error", err.Error())
			return nil
		}

		for _, item := range resp.Items {
			if seen[item.Title] {
				continue
			}
			seen[item.Title] = true
			titles = append(titles, item.Title)
			if len(titles) >= max {
				return titles
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	logger.Info("Fetched existing post titles", "count", len(titles))
	return titles
}

// PublishBatch schedules several articles with a fixed gap between
// their publish times. Individual failures are collected, not fatal.
func (c *Client) PublishBatch(ctx context.Context, articles []*core.Article, intervalHours int, labels []string) []BatchResult {
	if intervalHours <= 0 {
		intervalHours = 6
	}

	results := make([]BatchResult, 0, len(articles))
	for i, article := range articles {
		res, err := c.Publish(ctx, article, Options{
			DelayHours: (i + 1) * intervalHours,
			Labels:     labels,
		})
		if err != nil {
			logger.Error("Batch publish entry failed", err, "topic", article.Topic.Text)
			results = append(results, BatchResult{Topic: article.Topic.Text, Err: err})
			continue
		}
		results = append(results, BatchResult{Topic: article.Topic.Text, Result: res})

		// Spacing between API calls.
		if i < len(articles)-1 {
			select {
			case <-time.After(2 * time.Second):
			case <-ctx.Done():
				return results
			}
		}
	}
	return results
}

// BatchResult pairs one batch entry with its outcome.
type BatchResult struct {
	Topic  string
	Result *core.PublishResult
	Err    error
}

// ScheduledTime computes the publish timestamp delayHours from now,
// never earlier than one hour out.
func ScheduledTime(now time.Time, delayHours int) time.Time {
	if delayHours < 1 {
		delayHours = 1
	}
	return now.Add(time.Duration(delayHours) * time.Hour)
}

// DefaultLabels derives the label set for a topic: two fixed labels plus
// the topic slug.
func DefaultLabels(topic string) []string {
	slug := strings.ToLower(strings.TrimSpace(topic))
	slug = strings.Join(strings.Fields(slug), "-")
	return []string{"Technology", "IT Trends", slug}
}
