package publish

import (
	"encoding/json"
	"fmt"
	"time"

	"blogpilot/internal/core"
)

// articleCSS is the fixed styling block wrapped around every post so
// articles render consistently regardless of the blog theme.
const articleCSS = `<style>
.article-container h1, .article-container h2, .article-container h3 {
  color: #2c3e50;
  margin-top: 30px;
  margin-bottom: 15px;
}
.article-container h1 {
  font-size: 2.5em;
  border-bottom: 3px solid #3498db;
  padding-bottom: 10px;
}
.article-container h2 {
  font-size: 2em;
  border-left: 4px solid #3498db;
  padding-left: 15px;
}
.article-container h3 {
  font-size: 1.5em;
  color: #34495e;
}
.article-container p {
  margin-bottom: 15px;
  text-align: justify;
}
.article-container ul, .article-container ol {
  margin: 15px 0;
  padding-left: 30px;
}
.article-container li {
  margin-bottom: 8px;
}
.article-container blockquote {
  border-left: 4px solid #3498db;
  margin: 20px 0;
  padding: 10px 20px;
  background-color: #f8f9fa;
  font-style: italic;
}
.article-container code {
  background-color: #f4f4f4;
  padding: 2px 6px;
  border-radius: 3px;
  font-family: 'Courier New', monospace;
}
.article-container pre {
  background-color: #f4f4f4;
  padding: 15px;
  border-radius: 5px;
  overflow-x: auto;
}
.article-container a {
  color: #3498db;
  text-decoration: none;
}
.article-container a:hover {
  text-decoration: underline;
}
.article-image {
  text-align: center;
  margin: 30px 0;
}
.article-image img {
  max-width: 100%;
  height: auto;
  border-radius: 8px;
  box-shadow: 0 4px 8px rgba(0,0,0,0.1);
}
.faq-section {
  background-color: #f8f9fa;
  padding: 20px;
  border-radius: 8px;
  margin: 20px 0;
}
</style>`

// EnhanceHTML wraps article HTML in the platform styling container, a
// dated footer, and JSON-LD article metadata.
func EnhanceHTML(article *core.Article, now time.Time) string {
	return fmt.Sprintf(`<div class="article-container" style="max-width: 800px; margin: 0 auto; padding: 20px; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6;">
%s
%s
<div class="article-footer" style="margin-top: 40px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666;">
<p>Published on %s</p>
</div>
%s
</div>`,
		articleCSS,
		article.HTML,
		now.Format("January 2, 2006"),
		schemaMarkup(article, now),
	)
}

// schemaMarkup renders the JSON-LD BlogPosting block for search engines.
func schemaMarkup(article *core.Article, now time.Time) string {
	schema := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Article",
		"headline":    article.Title,
		"description": article.MetaDescription,
		"author": map[string]any{
			"@type": "Organization",
			"name":  "Tech Blog",
		},
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  "Tech Blog",
		},
		"datePublished": now.Format(time.RFC3339),
		"dateModified":  now.Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return ""
	}
	return fmt.Sprintf(`<script type="application/ld+json">
%s
</script>`, data)
}
