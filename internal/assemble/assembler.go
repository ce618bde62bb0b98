// Package assemble turns one selected topic into a complete publishable
// article: prompt, generation call, quality gates, image resolution,
// markdown-to-HTML conversion, and SEO metadata.
package assemble

import (
	"context"
	"fmt"
	"strings"
	"time"

	"blogpilot/internal/core"
	"blogpilot/internal/images"
	"blogpilot/internal/llm"
	"blogpilot/internal/logger"
	"blogpilot/internal/render"
)

// Options holds the assembly tunables.
type Options struct {
	Language        string // "en" or "ko"
	MinWordCount    int
	MinSectionCount int
	MinImageCount   int
	TitleMaxLen     int
	DescriptionMax  int
}

func (o *Options) applyDefaults() {
	if o.Language == "" {
		o.Language = "en"
	}
	if o.MinWordCount == 0 {
		o.MinWordCount = 1200
	}
	if o.MinSectionCount == 0 {
		o.MinSectionCount = 5
	}
	if o.MinImageCount == 0 {
		o.MinImageCount = 2
	}
	if o.TitleMaxLen == 0 {
		o.TitleMaxLen = 50
	}
	if o.DescriptionMax == 0 {
		o.DescriptionMax = 155
	}
}

// Assembler generates articles for topics.
type Assembler struct {
	completer llm.Completer
	resolver  *images.Resolver
	opts      Options
}

// NewAssembler creates an assembler over the given generation backend
// and image resolver.
func NewAssembler(completer llm.Completer, resolver *images.Resolver, opts Options) *Assembler {
	opts.applyDefaults()
	return &Assembler{
		completer: completer,
		resolver:  resolver,
		opts:      opts,
	}
}

// Generate produces one complete article for the topic. Generation and
// validation failures are hard errors; everything downstream degrades
// with warnings instead of aborting.
func (a *Assembler) Generate(ctx context.Context, topic core.Topic) (*core.Article, error) {
	logger.Info("Generating article", "topic", topic.Text, "language", a.opts.Language)

	raw, err := a.completer.Complete(ctx, articlePrompt(topic.Text, a.opts.Language, a.opts.MinWordCount))
	if err != nil {
		return nil, fmt.Errorf("article generation failed for %q: %w", topic.Text, err)
	}

	validation := Validate(raw, a.opts.MinWordCount, a.opts.MinSectionCount, a.opts.MinImageCount)
	if !validation.Valid() {
		return nil, fmt.Errorf("content validation failed for %q: %s",
			topic.Text, strings.Join(validation.Errors, "; "))
	}
	for _, w := range validation.Warnings {
		logger.Warn("Content quality warning", "topic", topic.Text, "warning", w)
	}

	slots := a.extractImageInfo(ctx, raw, topic.Text)
	for i := range slots {
		rec := a.resolver.Resolve(ctx, slots[i].Description, slots[i].Placement)
		if slots[i].AltText != "" {
			rec.Alt = slots[i].AltText
		}
		slots[i].Image = &rec
	}

	warnings := validation.Warnings
	if len(slots) < a.opts.MinImageCount {
		warnings = append(warnings,
			fmt.Sprintf("only %d images resolved, minimum %d recommended", len(slots), a.opts.MinImageCount))
	}

	seo := ExtractSEO(raw, a.opts.TitleMaxLen, a.opts.DescriptionMax)
	if seo.Title == defaultTitle {
		seo.Title = Truncate(fmt.Sprintf("%s - The Ultimate Guide to %d", topic.Text, time.Now().Year()), a.opts.TitleMaxLen)
	}
	if seo.Description == defaultDescription {
		seo.Description = Truncate(fmt.Sprintf("Comprehensive guide about %s", topic.Text), a.opts.DescriptionMax)
	}

	html, err := render.ToHTML(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to render article for %q: %w", topic.Text, err)
	}
	html, err = render.EmbedImages(html, slots)
	if err != nil {
		return nil, fmt.Errorf("failed to embed images for %q: %w", topic.Text, err)
	}

	article := &core.Article{
		Topic:           topic,
		Title:           seo.Title,
		MetaDescription: seo.Description,
		Markdown:        raw,
		HTML:            html,
		ImageSlots:      slots,
		WordCount:       validation.WordCount,
		SectionCount:    validation.SectionCount,
		Warnings:        warnings,
		GeneratedAt:     time.Now().UTC(),
	}

	logger.Info("Article assembled",
		"topic", topic.Text,
		"title", article.Title,
		"words", article.WordCount,
		"sections", article.SectionCount,
		"images", len(article.ImageSlots),
		"warnings", len(article.Warnings))

	return article, nil
}

// extractImageInfo runs the three-link extraction chain: a dedicated AI
// call, then inline placement-block parsing, then topic-derived
// defaults. It never returns an empty slice.
func (a *Assembler) extractImageInfo(ctx context.Context, content, topic string) []core.ImageSlot {
	resp, err := a.completer.Complete(ctx, imageInfoPrompt(topic))
	if err == nil {
		if slots := parseAIImageInfo(resp); len(slots) > 0 {
			logger.Debug("Image info extracted from AI response", "topic", topic, "slots", len(slots))
			return slots
		}
	} else {
		logger.Warn("Image info AI call failed", "topic", topic, "error", err.Error())
	}

	if slots := parseInlineImageInfo(content); len(slots) > 0 {
		logger.Debug("Image info extracted from article body", "topic", topic, "slots", len(slots))
		return slots
	}

	logger.Warn("No image info found, using topic defaults", "topic", topic)
	return defaultImageInfo(topic)
}

// BuildReport summarizes an assembled article for run auditing.
func BuildReport(article *core.Article, minWords, minSections, minImages int) core.QualityReport {
	score := 100
	if article.WordCount < minWords {
		score -= 25
	}
	if article.SectionCount < minSections {
		score -= 15
	}
	if len(article.ImageSlots) < minImages {
		score -= 15
	}
	for _, slot := range article.ImageSlots {
		if slot.Image != nil && slot.Image.Source == "fallback" {
			score -= 10
			break
		}
	}
	hasSEO := article.Title != "" && article.MetaDescription != ""
	if !hasSEO {
		score -= 10
	}
	if score < 0 {
		score = 0
	}

	return core.QualityReport{
		Topic:      article.Topic.Text,
		WordCount:  article.WordCount,
		ImageCount: len(article.ImageSlots),
		Sections:   article.SectionCount,
		HasSEOData: hasSEO,
		Score:      score,
		Warnings:   article.Warnings,
		Generated:  article.GeneratedAt,
	}
}
