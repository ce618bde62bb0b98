package handlers

import (
	"context"
	"fmt"

	"blogpilot/internal/assemble"
	"blogpilot/internal/config"
	"blogpilot/internal/harvest"
	"blogpilot/internal/history"
	"blogpilot/internal/images"
	"blogpilot/internal/llm"
	"blogpilot/internal/logger"
	"blogpilot/internal/pipeline"
	"blogpilot/internal/publish"
	"blogpilot/internal/trends"
)

// stack is the fully wired application: everything a command needs to
// run the pipeline or parts of it.
type stack struct {
	cfg       *config.Config
	store     *history.Store
	completer llm.Completer
	harvester *harvest.Harvester
	assembler *assemble.Assembler
	publisher *publish.Client
	driver    *pipeline.Driver
}

func (s *stack) Close() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

// buildStack constructs the production wiring from configuration. The
// publisher is required here because every pipeline run ends in a
// publish call; commands that only harvest use buildHarvestStack.
func buildStack(ctx context.Context) (*stack, error) {
	s, err := buildHarvestStack()
	if err != nil {
		return nil, err
	}

	publisher, err := publish.NewClient(ctx, s.cfg.Blogger)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to build publisher: %w", err)
	}
	s.publisher = publisher

	// The harvester was built without a title lister; rebuild it with
	// the publisher attached so dedup sees the live blog.
	s.harvester = newHarvester(s.cfg, s.completer, s.store, publisher)

	resolver := images.NewResolver(images.NewProviderChain(images.Config{
		GoogleAPIKey:   s.cfg.Images.Google.APIKey,
		GoogleSearchID: s.cfg.Images.Google.SearchID,
		UnsplashKey:    s.cfg.Images.Unsplash.AccessKey,
		PexelsKey:      s.cfg.Images.Pexels.APIKey,
		PixabayKey:     s.cfg.Images.Pixabay.APIKey,
		FlickrKey:      s.cfg.Images.Flickr.APIKey,
		Timeout:        s.cfg.ImageTimeout(),
	})...)

	s.assembler = assemble.NewAssembler(s.completer, resolver, assemble.Options{
		Language:        s.cfg.Content.Language,
		MinWordCount:    s.cfg.Content.MinWordCount,
		MinSectionCount: s.cfg.Content.MinSectionCount,
		MinImageCount:   s.cfg.Content.MinImageCount,
		TitleMaxLen:     s.cfg.Content.TitleMaxLen,
		DescriptionMax:  s.cfg.Content.DescriptionMaxLen,
	})

	s.driver = pipeline.NewDriver(s.harvester, s.assembler, s.publisher, pipeline.Config{
		Draft:           s.cfg.Publish.Draft,
		DelayHours:      s.cfg.Publish.DelayHours,
		Labels:          s.cfg.Publish.Labels,
		MinWordCount:    s.cfg.Content.MinWordCount,
		MinSectionCount: s.cfg.Content.MinSectionCount,
		MinImageCount:   s.cfg.Content.MinImageCount,
	})

	return s, nil
}

// buildHarvestStack wires only what topic selection needs: config,
// history store, and the generation backend. No platform credentials
// are required, so dedup runs against local history alone.
func buildHarvestStack() (*stack, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	for _, missing := range cfg.Validate() {
		logger.Warn("Missing configuration", "key", missing)
	}

	store, err := history.NewStore(cfg.App.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}

	completer, err := llm.NewClient(cfg.Gemini.Model)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &stack{
		cfg:       cfg,
		store:     store,
		completer: completer,
		harvester: newHarvester(cfg, completer, store, nil),
	}, nil
}

func newHarvester(cfg *config.Config, completer llm.Completer, store *history.Store, lister harvest.TitleLister) *harvest.Harvester {
	var trendSource harvest.TrendSource
	if cfg.Trends.Enabled && len(cfg.Trends.Feeds) > 0 {
		trendSource = trends.NewCollector(cfg.Trends.Feeds)
	}

	return harvest.NewHarvester(completer, store, lister, trendSource, harvest.Options{
		Category:            cfg.Harvest.Category,
		CandidateCount:      cfg.Harvest.CandidateCount,
		MaxAttempts:         cfg.Harvest.MaxAttempts,
		SimilarityThreshold: cfg.Harvest.SimilarityThreshold,
		ExistingTitleCap:    cfg.Harvest.ExistingTitleCap,
		UseArbitration:      cfg.Harvest.UseArbitration,
	})
}
