// Package prompt assembles the natural-language instructions sent to the text model.
package prompt

import (
	"fmt"
	"strings"

	"blogpost-generator/domain/models"
)

const (
	titleLine            = "## [Create a Catchy, SEO-Optimized Title]"
	AffiliatePlaceholder = "[AFFILIATE_LINK]"
	ImageCount           = 3
)

const blogPostStructure = `**Required Blog Post Structure:**

## [Create a Catchy, SEO-Optimized Title]
- Include the main product name/keyword.
- Make it engaging and click-worthy.

[Write a short, compelling introduction. Hook the reader and briefly introduce the product and why it's worth their attention.]

## Product Overview
- What is this product?
- Who is it for? (Relate it to the target audience).
- What main problem does it solve?

## Key Features & Benefits
- Use a bulleted list.
- For each feature, explain the direct benefit to the user. Don't just list specs; explain why they matter.

## Pros and Cons
- Create two sub-sections (H3 for "### Pros" and "### Cons").
- Provide an honest, balanced view. List at least 3 pros and 2 cons.

## Comparison with Similar Products
- If possible, briefly compare this product to one or two well-known alternatives.
- Highlight what makes this product stand out.

## Buying Guide: Why This Product is a Smart Choice
- Explain specific scenarios or reasons why this product is a great purchase for the target audience.
- Offer tips on what to consider before buying.

## Final Verdict
[IMAGE: stylish banner with the word "Final Verdict" in bold elegant design]

[Start with a summary paragraph (4–5 sentences) that highlights the overall usefulness of the product.]

### Who Should Buy This?
[Describe in detail the type of people or situations where this product is most valuable.]

### Who Might Avoid This?
[Explain cases where the product may not be the best fit.]

### Key Strengths
- **Strength 1:** [Short explanation]
- **Strength 2:** [Short explanation]
- **Strength 3:** [Short explanation]
- **Strength 4:** [Short explanation]
- **Strength 5:** [Short explanation]
(You can add up to 2 more strengths)

### Possible Limitations
- **Limitation 1:** [Short explanation]
- **Limitation 2:** [Short explanation]
(You can add 1 more limitation)

### Rating Breakdown
- **Design:** ⭐⭐⭐⭐☆
- **Performance:** ⭐⭐⭐⭐⭐
- **Value for Money:** ⭐⭐⭐⭐☆

[End with a strong persuasive conclusion (6–7 sentences) encouraging readers to take action. The final sentence must include the call-to-action.] Ready to upgrade your experience? Get the [Product Name] today! Check the latest price here: [AFFILIATE_LINK]`

const imageInstructions = `**Image Generation:**
- After creating the article, identify 3 key moments for images (e.g., a hero shot, a feature in action, a lifestyle benefit).
- Insert placeholders in the markdown article text in the format ` + "`[IMAGE_1]`, `[IMAGE_2]`, and `[IMAGE_3]`" + `.
- Generate a corresponding array of 3 detailed, descriptive prompts for an AI image generator. These prompts should result in photorealistic, high-quality marketing images.`

const jsonOutputRequirement = "**Output Requirement:** You MUST return a single valid JSON object matching the provided schema. Do not include markdown formatting like ```json."

// Build returns the full prompt for params. With wantImages the prompt asks for the
// JSON shape consumed by the illustrated path. Input is not validated.
func Build(params models.GenerationParameters, wantImages bool) string {
	base := basePrompt(params)

	if !wantImages {
		return fmt.Sprintf(`%s
---
%s
---
Begin generating the blog post now.
`, base, blogPostStructure)
	}

	return fmt.Sprintf(`%s
%s

%s
---
%s
---
Begin generating the JSON output now.
`, base, imageInstructions, jsonOutputRequirement, structureWithHeroImage())
}

// structureWithHeroImage seeds the first image placeholder directly under the title.
func structureWithHeroImage() string {
	return strings.Replace(blogPostStructure, titleLine, titleLine+"\n\n[IMAGE_1]", 1)
}

func basePrompt(params models.GenerationParameters) string {
	return fmt.Sprintf(`You are an expert AI content writer specializing in high-ranking eCommerce and affiliate blog posts.
Your goal is to generate a full, SEO-optimized blog post from a product URL.

**Core Task:**
- **Analyze Product:** Thoroughly analyze the content at this URL: %s. Use Google Search to extract all relevant product details. If you cannot access the URL, state that and stop.

**Content Requirements:**
- **Target Audience:** Tailor the tone and focus for: **%s**.
- **Writing Style:** %s
- **Language:** Write the entire article in **%s**.
- **Article Length:** %s
%s
%s

**Formatting & Structure:**
- Use markdown for structure (H2 for main titles, H3 for sub-headings, bullet points for lists).
- Follow the provided blog post structure precisely.
`,
		params.ProductURL,
		params.TargetAudience,
		styleInstruction(params.WritingStyle),
		params.Language,
		wordCountInstruction(params.ArticleLength),
		seoInstruction(params.SEOKeywords),
		affiliateInstruction(params.AffiliateLink),
	)
}

func styleInstruction(style string) string {
	if style == models.StyleInterview {
		return "Adopt an **Interview** tone. Structure the content as a Q&A with an expert about the product."
	}
	return fmt.Sprintf("Adopt a **%s** tone.", style)
}

// Anything other than the exact short option gets the long range.
func wordCountInstruction(length string) string {
	if length == models.LengthShort {
		return "The final article should be between 400 and 600 words."
	}
	return "The final article should be between 800 and 1200 words."
}

func seoInstruction(keywords string) string {
	if keywords == "" {
		return ""
	}
	return fmt.Sprintf("- **SEO Keywords:** Naturally integrate the following keywords throughout the article: **%s**. Do not just list them.", keywords)
}

func affiliateInstruction(link string) string {
	if link == "" {
		return "- **Affiliate Link Placeholder:** Where the call-to-action link should go, you MUST insert the exact placeholder: **" + AffiliatePlaceholder + "**"
	}
	return fmt.Sprintf("- **Affiliate Link:** The final call to action must use this exact URL: **%s**", link)
}
