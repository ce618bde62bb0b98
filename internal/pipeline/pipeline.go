// Package pipeline drives one full publication run: harvest a topic,
// assemble the article, publish it. Stages execute strictly in order
// because each consumes the previous stage's output.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blogpilot/internal/assemble"
	"blogpilot/internal/core"
	"blogpilot/internal/logger"
	"blogpilot/internal/publish"
)

// Harvester selects the next topic, or nil when nothing distinct exists.
type Harvester interface {
	SelectTopic(ctx context.Context) (*core.Topic, error)
}

// Assembler turns one topic into one article.
type Assembler interface {
	Generate(ctx context.Context, topic core.Topic) (*core.Article, error)
}

// Driver owns the run sequence.
type Driver struct {
	harvester Harvester
	assembler Assembler
	publisher publish.Publisher
	cfg       Config
}

// Config holds the driver's publish and reporting settings.
type Config struct {
	Draft      bool
	DelayHours int
	Labels     []string

	MinWordCount    int
	MinSectionCount int
	MinImageCount   int
}

// NewDriver wires the three stages together.
func NewDriver(h Harvester, a Assembler, p publish.Publisher, cfg Config) *Driver {
	return &Driver{
		harvester: h,
		assembler: a,
		publisher: p,
		cfg:       cfg,
	}
}

// RunResult summarizes one pipeline run for the operator.
type RunResult struct {
	RunID    string              `json:"run_id"`
	Topic    *core.Topic         `json:"topic,omitempty"`
	Quality  *core.QualityReport `json:"quality,omitempty"`
	Publish  *core.PublishResult `json:"publish,omitempty"`
	Skipped  bool                `json:"skipped"` // true when no topic was found
	Duration time.Duration       `json:"duration"`
}

// Run executes one harvest-assemble-publish cycle. A harvest that finds
// no distinct topic ends the run cleanly with Skipped set; failures in
// assembly or publishing are hard errors.
func (d *Driver) Run(ctx context.Context) (*RunResult, error) {
	runID := uuid.New().String()
	started := time.Now()
	log := logger.Get().With("run_id", runID)

	log.Info("Pipeline run starting")

	topic, err := d.harvester.SelectTopic(ctx)
	if err != nil {
		return nil, fmt.Errorf("harvest stage failed: %w", err)
	}
	if topic == nil {
		log.Info("No distinct topic available, nothing to publish this run")
		return &RunResult{RunID: runID, Skipped: true, Duration: time.Since(started)}, nil
	}
	log.Info("Harvest stage complete", "topic", topic.Text, "source", topic.Source)

	article, err := d.assembler.Generate(ctx, *topic)
	if err != nil {
		return nil, fmt.Errorf("assemble stage failed: %w", err)
	}
	quality := assemble.BuildReport(article, d.cfg.MinWordCount, d.cfg.MinSectionCount, d.cfg.MinImageCount)
	log.Info("Assemble stage complete",
		"title", article.Title,
		"words", article.WordCount,
		"sections", article.SectionCount,
		"images", len(article.ImageSlots),
		"quality_score", quality.Score)

	result, err := d.publisher.Publish(ctx, article, publish.Options{
		Draft:      d.cfg.Draft,
		DelayHours: d.cfg.DelayHours,
		Labels:     d.cfg.Labels,
	})
	if err != nil {
		return nil, fmt.Errorf("publish stage failed: %w", err)
	}
	log.Info("Publish stage complete",
		"post_id", result.PostID,
		"url", result.URL,
		"draft", result.Draft)

	return &RunResult{
		RunID:    runID,
		Topic:    topic,
		Quality:  &quality,
		Publish:  result,
		Duration: time.Since(started),
	}, nil
}
