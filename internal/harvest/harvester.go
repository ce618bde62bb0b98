// Package harvest selects the next topic to write about: it gathers
// candidates, scores them against everything already published, and
// hands back the least-overlapping survivor — or nothing, which callers
// must treat as a quiet run rather than an error.
package harvest

import (
	"context"
	"regexp"
	"strings"
	"time"

	"blogpilot/internal/core"
	"blogpilot/internal/history"
	"blogpilot/internal/llm"
	"blogpilot/internal/logger"
	"blogpilot/internal/similarity"
)

var (
	numberPrefix = regexp.MustCompile(`^\d+[\.\)]\s*`)
	bulletPrefix = regexp.MustCompile(`^[-•]\s*`)
)

// TitleLister is the slice of the publisher the harvester needs.
type TitleLister interface {
	ListTitles(ctx context.Context, max int) []string
}

// TrendSource supplies externally harvested topic candidates.
type TrendSource interface {
	Collect(ctx context.Context) []core.Topic
}

// Options holds the selection tunables.
type Options struct {
	Category            string
	CandidateCount      int // Candidates requested per attempt
	MaxAttempts         int // Regeneration attempts before giving up
	SimilarityThreshold int // Candidates scoring above this against any existing title are dropped
	ExistingTitleCap    int // Most recent titles considered for dedup
	UseArbitration      bool
}

func (o *Options) applyDefaults() {
	if o.Category == "" {
		o.Category = "IT"
	}
	if o.CandidateCount == 0 {
		o.CandidateCount = 10
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = 10
	}
	if o.SimilarityThreshold == 0 {
		o.SimilarityThreshold = 40
	}
	if o.ExistingTitleCap == 0 {
		o.ExistingTitleCap = 50
	}
}

// Harvester selects topics.
type Harvester struct {
	completer llm.Completer
	store     *history.Store
	lister    TitleLister
	trends    TrendSource // optional
	opts      Options
}

// NewHarvester creates a harvester. trends may be nil.
func NewHarvester(completer llm.Completer, store *history.Store, lister TitleLister, trends TrendSource, opts Options) *Harvester {
	opts.applyDefaults()
	return &Harvester{
		completer: completer,
		store:     store,
		lister:    lister,
		trends:    trends,
		opts:      opts,
	}
}

// SelectTopic runs the bounded selection loop and returns the chosen
// topic, or nil when no sufficiently distinct candidate could be found.
// The winner is recorded in the history store before returning.
func (h *Harvester) SelectTopic(ctx context.Context) (*core.Topic, error) {
	existing := h.existingTitles(ctx)
	logger.Info("Harvesting topic", "category", h.opts.Category, "existing_titles", len(existing))

	trendPool := h.trendCandidates(ctx)

	for attempt := 1; attempt <= h.opts.MaxAttempts; attempt++ {
		candidates := h.candidatePool(ctx, existing, attempt, trendPool)
		if len(candidates) == 0 {
			logger.Warn("No candidates produced", "attempt", attempt)
			continue
		}

		survivors := h.filterBySimilarity(candidates, existing)
		logger.Debug("Similarity filter applied",
			"attempt", attempt, "candidates", len(candidates), "survivors", len(survivors))

		if len(survivors) == 0 {
			continue
		}

		chosen := h.choose(ctx, survivors, existing)
		topic := &core.Topic{
			Text:     chosen,
			Category: h.opts.Category,
			Source:   sourceOf(chosen, h.opts.Category, trendPool),
			Selected: time.Now().UTC(),
		}

		if _, err := h.store.Record(topic.Text); err != nil {
			logger.Error("Failed to record topic in history", err, "topic", topic.Text)
		}

		logger.Info("Topic selected", "topic", topic.Text, "attempt", attempt, "source", topic.Source)
		return topic, nil
	}

	logger.Warn("No distinct topic found, nothing to publish this run",
		"attempts", h.opts.MaxAttempts, "threshold", h.opts.SimilarityThreshold)
	return nil, nil
}

// existingTitles merges platform titles (most recent first, capped) with
// the local history. A failing platform listing degrades to history only.
func (h *Harvester) existingTitles(ctx context.Context) []string {
	var titles []string
	if h.lister != nil {
		titles = h.lister.ListTitles(ctx, h.opts.ExistingTitleCap)
	}

	seen := make(map[string]bool, len(titles))
	for _, t := range titles {
		seen[strings.ToLower(t)] = true
	}

	used, err := h.store.Topics()
	if err != nil {
		logger.Warn("Failed to load topic history", "error", err.Error())
	}
	for _, t := range used {
		if !seen[strings.ToLower(t)] {
			seen[strings.ToLower(t)] = true
			titles = append(titles, t)
		}
	}
	return titles
}

// candidatePool builds one attempt's candidates. The backend is the
// primary source; the built-in corpus takes over when it fails, and a
// slice of trend candidates is mixed in when available.
func (h *Harvester) candidatePool(ctx context.Context, existing []string, attempt int, trendPool []string) []string {
	var pool []string

	resp, err := h.completer.Complete(ctx, candidatesPrompt(h.opts.Category, existing, h.opts.CandidateCount))
	if err != nil {
		logger.Warn("Candidate generation failed, falling back to corpus",
			"attempt", attempt, "error", err.Error())
		pool = CorpusCandidates(h.opts.Category)
	} else {
		pool = parseCandidateLines(resp, h.opts.CandidateCount)
		if len(pool) == 0 {
			pool = CorpusCandidates(h.opts.Category)
		}
	}

	pool = append(pool, trendPool...)

	// Exact-match filtering against history is advisory; similarity
	// filtering is the real dedup.
	return h.store.FilterNew(pool)
}

func (h *Harvester) trendCandidates(ctx context.Context) []string {
	if h.trends == nil {
		return nil
	}
	topics := h.trends.Collect(ctx)
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		out = append(out, t.Text)
	}
	return out
}

// filterBySimilarity drops every candidate whose score against any
// existing title exceeds the threshold.
func (h *Harvester) filterBySimilarity(candidates, existing []string) []string {
	var survivors []string
	for _, cand := range candidates {
		if maxSimilarity(cand, existing) <= h.opts.SimilarityThreshold {
			survivors = append(survivors, cand)
		}
	}
	return survivors
}

// choose picks the winner among survivors: AI arbitration when enabled,
// with the deterministic lowest-max-similarity candidate as the answer
// of last resort either way.
func (h *Harvester) choose(ctx context.Context, survivors, existing []string) string {
	if len(survivors) == 1 {
		return survivors[0]
	}
	if !h.opts.UseArbitration {
		return lowestMaxSimilarity(survivors, existing)
	}

	resp, err := h.completer.Complete(ctx, arbitrationPrompt(survivors, existing))
	if err != nil {
		logger.Warn("Arbitration call failed, using word-based selection", "error", err.Error())
		return lowestMaxSimilarity(survivors, existing)
	}

	answer := strings.TrimSpace(resp)
	if strings.EqualFold(answer, noneSentinel) {
		logger.Debug("Arbitration returned the no-candidate sentinel")
		return lowestMaxSimilarity(survivors, existing)
	}

	for _, cand := range survivors {
		if strings.EqualFold(strings.TrimSpace(cand), answer) {
			return cand
		}
	}

	logger.Warn("Arbitration answer not in candidate list, using word-based selection", "answer", answer)
	return lowestMaxSimilarity(survivors, existing)
}

// maxSimilarity returns the highest score of s against any of titles.
func maxSimilarity(s string, titles []string) int {
	max := 0
	for _, t := range titles {
		if score := similarity.Score(s, t); score > max {
			max = score
		}
	}
	return max
}

// lowestMaxSimilarity returns the candidate whose worst-case overlap
// with the existing titles is smallest.
func lowestMaxSimilarity(candidates, existing []string) string {
	best := candidates[0]
	bestScore := 101
	for _, cand := range candidates {
		if score := maxSimilarity(cand, existing); score < bestScore {
			bestScore = score
			best = cand
		}
	}
	return best
}

func sourceOf(chosen, category string, trendPool []string) string {
	for _, t := range trendPool {
		if strings.EqualFold(t, chosen) {
			return "trends"
		}
	}
	for _, t := range CorpusCandidates(category) {
		if strings.EqualFold(t, chosen) {
			return "corpus"
		}
	}
	return "llm"
}
