package assemble

import "fmt"

// articlePrompt builds the single generation prompt for one topic. The
// format contract matters more than the prose: a # title line, ##
// sections, and a trailing image-placement block the extraction chain
// and the cleanup pass both know how to find.
func articlePrompt(topic, language string, minWords int) string {
	languageLine := "Write the article in clear, natural English."
	if language == "ko" {
		languageLine = "Write the article entirely in natural, friendly Korean. Explain technical terms in everyday language before using them."
	}

	return fmt.Sprintf(`You are a friendly IT guide and professional SEO writer who explains technology topics in a simple, easy-to-understand way for beginners and the general public.

Write a comprehensive, accurate, and highly engaging article about **%s**.

%s

**TARGET AUDIENCE:**
- General readers with little to no IT background
- Beginners who are just starting to learn
- People who want practical understanding without technical jargon

**OUTPUT FORMAT REQUIREMENTS:**
1. Output in Markdown only.
2. Start with exactly one top-level title line: "# <title>".
3. Use 6-8 second-level sections ("## <section title>") with keyword-rich headings.
4. Minimum %d words of body content.
5. Open the first section with a concise summary paragraph suitable as a meta description.
6. Use everyday analogies and step-by-step explanations; avoid unexplained jargon.
7. End with an FAQ section of 5 common questions and short answers.
8. After the FAQ, append an image-placement block in EXACTLY this format:

## Image Placement Suggestions

**Image 1 Placement:** [where in the article]
**Image 1 Description (for Unsplash Search):** [2-4 word search term]
**Image 1 ALT Text:** [accessibility alt text]

**Image 2 Placement:** [where in the article]
**Image 2 Description (for Unsplash Search):** [2-4 word search term]
**Image 2 ALT Text:** [accessibility alt text]

The content must be 100%% original, objective, and authoritative. Do not include meta commentary about being generated.`,
		topic, languageLine, minWords)
}

// imageInfoPrompt asks the backend for standalone image search terms
// when the article body did not carry a usable placement block.
func imageInfoPrompt(topic string) string {
	return fmt.Sprintf(`Keyword: "%s"

Generate 2 high-quality image search terms and descriptions for a blog post related to the above keyword.

Please respond in the following format EXACTLY:

**Image 1 Description:** [specific image search term 1]
**Image 1 ALT Text:** [accessibility ALT text 1]

**Image 2 Description:** [specific image search term 2]
**Image 2 ALT Text:** [accessibility ALT text 2]

Requirements:
1. Search terms must be real terms findable on Unsplash, Pexels, and Pixabay
2. Must be directly related to the keyword
3. Must be technical and professional images
4. Search terms should be 2-4 words, concise
5. ALT text should clearly describe the image content
6. Image 1 and Image 2 should show different perspectives

IMPORTANT: Respond ONLY in English. Use only the format above.`, topic)
}
