package prompt

import (
	"strings"
	"testing"

	"blogpost-generator/domain/models"
)

func baseParams() models.GenerationParameters {
	p := models.DefaultParameters()
	p.ProductURL = "https://shop.example.com/headphones"
	return p
}

func TestBuildEmbedsParameters(t *testing.T) {
	p := baseParams()
	p.TargetAudience = "Gamers"
	p.Language = "German"

	got := Build(p, false)

	for _, want := range []string{
		"https://shop.example.com/headphones",
		"**Gamers**",
		"Write the entire article in **German**.",
		"Adopt a **Friendly** tone.",
		"Begin generating the blog post now.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(got, "JSON") {
		t.Error("text-only prompt should not ask for JSON")
	}
}

func TestBuildWordCount(t *testing.T) {
	tests := []struct {
		length string
		want   string
	}{
		{models.LengthShort, "between 400 and 600 words"},
		{models.LengthLong, "between 800 and 1200 words"},
		{"Medium", "between 800 and 1200 words"},
		{"", "between 800 and 1200 words"},
	}

	for _, tt := range tests {
		t.Run(tt.length, func(t *testing.T) {
			p := baseParams()
			p.ArticleLength = tt.length
			if got := Build(p, false); !strings.Contains(got, tt.want) {
				t.Errorf("length %q: prompt missing %q", tt.length, tt.want)
			}
		})
	}
}

// changedLines returns the line pairs that differ between two prompts of equal length.
func changedLines(t *testing.T, before, after string) [][2]string {
	t.Helper()
	a, b := strings.Split(before, "\n"), strings.Split(after, "\n")
	if len(a) != len(b) {
		t.Fatalf("line count changed from %d to %d", len(a), len(b))
	}
	var diff [][2]string
	for i := range a {
		if a[i] != b[i] {
			diff = append(diff, [2]string{a[i], b[i]})
		}
	}
	return diff
}

func TestBuildInterviewStyle(t *testing.T) {
	for _, images := range []bool{false, true} {
		p := baseParams()
		before := Build(p, images)
		p.WritingStyle = models.StyleInterview
		after := Build(p, images)

		diff := changedLines(t, before, after)
		if len(diff) != 1 {
			t.Fatalf("images=%v: %d lines changed, want only the style clause: %q", images, len(diff), diff)
		}
		if diff[0][0] != "- **Writing Style:** Adopt a **Friendly** tone." {
			t.Errorf("removed line = %q", diff[0][0])
		}
		if diff[0][1] != "- **Writing Style:** Adopt an **Interview** tone. Structure the content as a Q&A with an expert about the product." {
			t.Errorf("added line = %q", diff[0][1])
		}
	}
}

func TestBuildSEOKeywords(t *testing.T) {
	p := baseParams()
	if strings.Contains(Build(p, false), "SEO Keywords") {
		t.Error("SEO clause present without keywords")
	}

	p.SEOKeywords = "wireless headphones, noise cancelling"
	if !strings.Contains(Build(p, false), "**wireless headphones, noise cancelling**") {
		t.Error("SEO clause missing keywords")
	}
}

func TestBuildAffiliateLink(t *testing.T) {
	p := baseParams()
	before := Build(p, false)
	p.AffiliateLink = "https://amzn.to/abc"
	after := Build(p, false)

	diff := changedLines(t, before, after)
	if len(diff) != 1 {
		t.Fatalf("%d lines changed, want only the affiliate clause: %q", len(diff), diff)
	}
	if diff[0][0] != "- **Affiliate Link Placeholder:** Where the call-to-action link should go, you MUST insert the exact placeholder: **[AFFILIATE_LINK]**" {
		t.Errorf("removed line = %q", diff[0][0])
	}
	if diff[0][1] != "- **Affiliate Link:** The final call to action must use this exact URL: **https://amzn.to/abc**" {
		t.Errorf("added line = %q", diff[0][1])
	}
}

func TestBuildWithImages(t *testing.T) {
	got := Build(baseParams(), true)

	for _, want := range []string{
		"identify 3 key moments",
		"`[IMAGE_1]`, `[IMAGE_2]`, and `[IMAGE_3]`",
		"You MUST return a single valid JSON object",
		titleLine + "\n\n[IMAGE_1]",
		"Begin generating the JSON output now.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("illustrated prompt missing %q", want)
		}
	}
	if strings.Contains(got, "Begin generating the blog post now.") {
		t.Error("illustrated prompt should end with the JSON instruction")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	p := baseParams()
	if Build(p, true) != Build(p, true) {
		t.Error("Build should be pure")
	}
}

func TestBuildTemplateEndsWithCallToAction(t *testing.T) {
	if !strings.HasSuffix(blogPostStructure, "Check the latest price here: "+AffiliatePlaceholder) {
		t.Error("structure template must end with the affiliate call to action")
	}
}
