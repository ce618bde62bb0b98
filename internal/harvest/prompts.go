package harvest

import (
	"fmt"
	"strings"
)

// noneSentinel is the explicit "no unique candidate" answer the
// arbitration prompt allows the backend to return.
const noneSentinel = "NONE"

const itAreas = "Technology - ALL areas: AI, Software, Cloud, Security, Data, Web, Mobile, DevOps, IoT, Blockchain, Gaming, Hardware, Networking"
const financeAreas = "Finance - ALL areas: Personal Finance, Investment, Banking, Insurance, Real Estate, Tax, Retirement, Business, Trading, Crypto basics"

func categoryAreas(category string) string {
	if category == "Finance" {
		return financeAreas
	}
	return itAreas
}

// candidatesPrompt asks the backend for count diverse topics in the
// category, with the recent titles embedded so it can steer away from
// them.
func candidatesPrompt(category string, recentTitles []string, count int) string {
	titles := "No existing posts"
	if len(recentTitles) > 0 {
		var b strings.Builder
		for i, t := range recentTitles {
			if i >= 30 {
				break
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, t)
		}
		titles = strings.TrimRight(b.String(), "\n")
	}

	return fmt.Sprintf(`You are an expert content strategist. Generate %d diverse and unique %s topics.

**Category**: %s

**Recent Blog Post Titles (avoid exact duplicates, some similarity is acceptable):**
%s

**Task:**
1. Generate %d diverse topics covering DIFFERENT subtopics within %s
2. Topics should be beginner-friendly and accessible to the general public
3. Each topic should be specific and actionable
4. Length: 15-100 characters per topic
5. Language: ENGLISH only
6. Prioritize variety across areas, tools, concepts, and use cases

**Return Format:**
Return ONLY the topics, one per line, NO numbers, NO explanations, NO formatting.

%d Diverse Topics:`,
		count, category, categoryAreas(category), titles, count, category, count)
}

// arbitrationPrompt asks the backend to name the least-overlapping
// candidate, or the sentinel when it judges them all too similar.
func arbitrationPrompt(candidates, existingTitles []string) string {
	var titles strings.Builder
	for i, t := range existingTitles {
		if i >= 100 {
			fmt.Fprintf(&titles, "... and %d more\n", len(existingTitles)-100)
			break
		}
		fmt.Fprintf(&titles, "%d. %s\n", i+1, t)
	}

	var cands strings.Builder
	for i, c := range candidates {
		fmt.Fprintf(&cands, "%d. %s\n", i+1, c)
	}

	return fmt.Sprintf(`You are a content strategist expert. Select the MOST UNIQUE and LEAST SIMILAR keyword from the candidate list.

**Existing Blog Post Titles (%d posts):**
%s
**Candidate Keywords (%d candidates):**
%s
**Task:**
Compare each candidate semantically with ALL existing titles and select the ONE with the LOWEST overlap.

**IMPORTANT:**
- Return ONLY the exact keyword text from the candidate list
- Return the SINGLE most unique keyword
- NO explanations, NO numbers, NO additional text
- If every candidate is nearly identical to an existing post, return "%s"

Selected Keyword:`,
		len(existingTitles), titles.String(), len(candidates), cands.String(), noneSentinel)
}

// parseCandidateLines extracts cleaned topic lines from a backend
// response: numbering, bullets, and wrapping quotes are stripped, and
// lines outside the plausible length band are dropped.
func parseCandidateLines(response string, max int) []string {
	var out []string
	for _, line := range strings.Split(response, "\n") {
		c := cleanCandidate(line)
		if c == "" {
			continue
		}
		out = append(out, c)
		if len(out) >= max {
			break
		}
	}
	return out
}

func cleanCandidate(line string) string {
	c := strings.TrimSpace(line)
	c = numberPrefix.ReplaceAllString(c, "")
	c = bulletPrefix.ReplaceAllString(c, "")
	c = strings.TrimSpace(c)
	if len(c) >= 2 && (c[0] == '"' || c[0] == '\'') && c[len(c)-1] == c[0] {
		c = strings.TrimSpace(c[1 : len(c)-1])
	}
	if len(c) < 10 || len(c) > 150 || strings.EqualFold(c, noneSentinel) {
		return ""
	}
	return c
}
