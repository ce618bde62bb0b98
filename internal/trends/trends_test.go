package trends

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractPhrase(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
		ok    bool
	}{
		{
			name:  "plain tech title",
			title: "Kubernetes networking explained for beginners",
			want:  "Kubernetes networking explained for beginners",
			ok:    true,
		},
		{
			name:  "strips show hn prefix",
			title: "Show HN: A new open source database engine",
			want:  "A new open source database engine",
			ok:    true,
		},
		{
			name:  "keeps leading clause before separator",
			title: "Docker security hardening in production - The Daily Feed",
			want:  "Docker security hardening in production",
			ok:    true,
		},
		{
			name:  "too short",
			title: "AI news",
			ok:    false,
		},
		{
			name:  "no tech signal",
			title: "Ten recipes for a perfect summer barbecue party",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractPhrase(tt.title)
			if ok != tt.ok {
				t.Fatalf("extractPhrase(%q) ok = %v, want %v", tt.title, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("extractPhrase(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestCollect(t *testing.T) {
	feedXML := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item><title>Cloud computing cost optimization strategies</title></item>
    <item><title>Cloud computing cost optimization strategies</title></item>
    <item><title>Best hiking trails for your autumn weekend</title></item>
    <item><title>Rust async runtime internals deep dive</title></item>
  </channel>
</rss>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	c := NewCollector([]string{srv.URL})
	topics := c.Collect(context.Background())

	if len(topics) != 2 {
		t.Fatalf("expected 2 topics after filtering and dedup, got %d: %v", len(topics), topics)
	}
	for _, topic := range topics {
		if topic.Source != "trends" {
			t.Errorf("expected source trends, got %q", topic.Source)
		}
	}
}

func TestCollect_UnreachableFeed(t *testing.T) {
	c := NewCollector([]string{"http://127.0.0.1:1/feed.xml"})
	topics := c.Collect(context.Background())
	if len(topics) != 0 {
		t.Errorf("expected no topics from unreachable feed, got %d", len(topics))
	}
}
