package harvest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"blogpilot/internal/history"
)

// scriptedCompleter answers candidate prompts with candidateResp and
// arbitration prompts with arbitrationResp.
type scriptedCompleter struct {
	candidateResp   string
	arbitrationResp string
	err             error
	calls           int
}

func (s *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if strings.Contains(prompt, "Selected Keyword:") {
		return s.arbitrationResp, nil
	}
	return s.candidateResp, nil
}

type fixedLister struct {
	titles []string
}

func (f *fixedLister) ListTitles(ctx context.Context, max int) []string {
	if len(f.titles) > max {
		return f.titles[:max]
	}
	return f.titles
}

func newTestHarvester(t *testing.T, c *scriptedCompleter, lister TitleLister, opts Options) (*Harvester, *history.Store) {
	t.Helper()
	store, err := history.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create history store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewHarvester(c, store, lister, nil, opts), store
}

func TestSelectTopic_FiltersSimilarCandidates(t *testing.T) {
	c := &scriptedCompleter{
		candidateResp: "Docker Networking Deep Dive Guide\nRetirement Planning for Complete Beginners",
	}
	lister := &fixedLister{titles: []string{"Docker Basics Deep Dive Guide"}}

	h, _ := newTestHarvester(t, c, lister, Options{SimilarityThreshold: 40, UseArbitration: false})
	topic, err := h.SelectTopic(context.Background())
	if err != nil {
		t.Fatalf("SelectTopic failed: %v", err)
	}
	if topic == nil {
		t.Fatal("expected a topic to survive filtering")
	}
	if !strings.Contains(topic.Text, "Retirement") {
		t.Errorf("the overlapping Docker candidate should have been rejected, got %q", topic.Text)
	}
}

func TestSelectTopic_RecordsWinnerInHistory(t *testing.T) {
	c := &scriptedCompleter{candidateResp: "Quantum Computing Explained for Everyone"}
	h, store := newTestHarvester(t, c, &fixedLister{}, Options{UseArbitration: false})

	topic, err := h.SelectTopic(context.Background())
	if err != nil {
		t.Fatalf("SelectTopic failed: %v", err)
	}
	if topic == nil {
		t.Fatal("expected a topic")
	}

	used, err := store.IsUsed(topic.Text)
	if err != nil {
		t.Fatalf("IsUsed failed: %v", err)
	}
	if !used {
		t.Error("winning topic must be recorded in history before returning")
	}
}

func TestSelectTopic_TerminatesWithinAttemptBound(t *testing.T) {
	// Every candidate collides with an existing title, so every attempt
	// produces zero survivors.
	c := &scriptedCompleter{candidateResp: "Docker Container Basics Explained Simply"}
	lister := &fixedLister{titles: []string{"Docker Container Basics Explained Simply"}}

	h, _ := newTestHarvester(t, c, lister, Options{MaxAttempts: 3, UseArbitration: false})
	topic, err := h.SelectTopic(context.Background())
	if err != nil {
		t.Fatalf("SelectTopic failed: %v", err)
	}
	if topic != nil {
		t.Errorf("expected a nil topic when nothing survives, got %q", topic.Text)
	}
	if c.calls != 3 {
		t.Errorf("expected exactly 3 candidate calls, got %d", c.calls)
	}
}

func TestSelectTopic_ArbitrationHonored(t *testing.T) {
	c := &scriptedCompleter{
		candidateResp:   "Understanding GraphQL for API Beginners\nHome Network Security Basics for Families",
		arbitrationResp: "Home Network Security Basics for Families",
	}

	h, _ := newTestHarvester(t, c, &fixedLister{}, Options{UseArbitration: true})
	topic, err := h.SelectTopic(context.Background())
	if err != nil {
		t.Fatalf("SelectTopic failed: %v", err)
	}
	if topic == nil || topic.Text != "Home Network Security Basics for Families" {
		t.Errorf("arbitration answer should be honored, got %v", topic)
	}
}

func TestSelectTopic_ArbitrationNoneSentinel(t *testing.T) {
	c := &scriptedCompleter{
		candidateResp:   "Understanding GraphQL for API Beginners\nHome Network Security Basics for Families",
		arbitrationResp: "NONE",
	}

	h, _ := newTestHarvester(t, c, &fixedLister{}, Options{UseArbitration: true})
	topic, err := h.SelectTopic(context.Background())
	if err != nil {
		t.Fatalf("SelectTopic failed: %v", err)
	}
	if topic == nil {
		t.Fatal("the sentinel should fall back to word-based selection, not an empty result")
	}
}

func TestSelectTopic_ArbitrationAnswerNotInList(t *testing.T) {
	c := &scriptedCompleter{
		candidateResp:   "Understanding GraphQL for API Beginners\nHome Network Security Basics for Families",
		arbitrationResp: "Some Topic Nobody Proposed At All",
	}

	h, _ := newTestHarvester(t, c, &fixedLister{}, Options{UseArbitration: true})
	topic, err := h.SelectTopic(context.Background())
	if err != nil {
		t.Fatalf("SelectTopic failed: %v", err)
	}
	if topic == nil {
		t.Fatal("an off-list arbitration answer should fall back, not fail")
	}
	if topic.Text == "Some Topic Nobody Proposed At All" {
		t.Error("off-list answers must never be selected")
	}
}

func TestSelectTopic_BackendFailureFallsBackToCorpus(t *testing.T) {
	c := &scriptedCompleter{err: errors.New("backend down")}
	h, _ := newTestHarvester(t, c, &fixedLister{}, Options{Category: "IT", UseArbitration: false})

	topic, err := h.SelectTopic(context.Background())
	if err != nil {
		t.Fatalf("SelectTopic failed: %v", err)
	}
	if topic == nil {
		t.Fatal("corpus fallback should produce a topic when the backend is down")
	}
	if topic.Source != "corpus" {
		t.Errorf("expected source corpus, got %q", topic.Source)
	}
}

func TestLowestMaxSimilarity(t *testing.T) {
	existing := []string{"Docker Container Basics Guide"}
	candidates := []string{
		"Docker Container Networking Guide", // heavy token overlap
		"Retirement Savings for Young Families",
	}

	got := lowestMaxSimilarity(candidates, existing)
	if got != "Retirement Savings for Young Families" {
		t.Errorf("expected the least-overlapping candidate, got %q", got)
	}
}

func TestParseCandidateLines(t *testing.T) {
	resp := `1. Understanding Kubernetes for Beginners
2) "Cloud Cost Optimization Strategies Explained"
- What Is Edge Computing Anyway
short
NONE
` + strings.Repeat("x", 160)

	got := parseCandidateLines(resp, 10)
	want := []string{
		"Understanding Kubernetes for Beginners",
		"Cloud Cost Optimization Strategies Explained",
		"What Is Edge Computing Anyway",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCorpusCandidates(t *testing.T) {
	it := CorpusCandidates("IT")
	if len(it) == 0 {
		t.Fatal("IT corpus must not be empty")
	}
	finance := CorpusCandidates("Finance")
	if len(finance) == 0 {
		t.Fatal("Finance corpus must not be empty")
	}
	unknown := CorpusCandidates("Gardening")
	if len(unknown) != len(it) {
		t.Error("unknown categories should fall back to the IT corpus")
	}
}
