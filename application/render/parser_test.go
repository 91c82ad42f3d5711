package render

import (
	"reflect"
	"strings"
	"testing"

	"blogpost-generator/domain/models"
)

func TestParseArticleEmpty(t *testing.T) {
	nodes := ParseArticle("", []string{"data:image/jpeg;base64,AAA"})
	if nodes == nil || len(nodes) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", nodes)
	}
}

func TestParseArticleLines(t *testing.T) {
	article := "## Title\n\nIntro text\n### Pros\n* fast\n- light\n   \nplain -not a list"

	got := ParseArticle(article, nil)
	want := []models.RenderNode{
		models.HeadingNode(2, "Title"),
		models.ParagraphNode("Intro text"),
		models.HeadingNode(3, "Pros"),
		models.ListItemNode("fast"),
		models.ListItemNode("light"),
		models.ParagraphNode("plain -not a list"),
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseArticle() =\n%#v\nwant\n%#v", got, want)
	}
}

func TestParseArticleHeadingPrecedence(t *testing.T) {
	got := ParseArticle("### Deep", nil)
	if len(got) != 1 || got[0].Level != 3 || got[0].Text != "Deep" {
		t.Errorf("### should parse as h3, got %#v", got)
	}

	got = ParseArticle("#### Deeper", nil)
	if len(got) != 1 || got[0].Type != models.NodeParagraph || got[0].Text != "#### Deeper" {
		t.Errorf("#### should be a verbatim paragraph, got %#v", got)
	}
}

func TestParseArticleImages(t *testing.T) {
	images := []string{"data:image/jpeg;base64,ONE", "data:image/jpeg;base64,TWO"}

	t.Run("placeholder between text", func(t *testing.T) {
		got := ParseArticle("Intro [IMAGE_1] Outro", images)
		want := []models.RenderNode{
			models.ParagraphNode("Intro "),
			models.ImageNode(0, images[0]),
			models.ParagraphNode(" Outro"),
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %#v, want %#v", got, want)
		}
	})

	t.Run("one node per placeholder in order", func(t *testing.T) {
		got := ParseArticle("[IMAGE_2]\n[IMAGE_1]", images)
		if len(got) != 2 {
			t.Fatalf("expected 2 nodes, got %d", len(got))
		}
		if got[0].Src != images[1] || *got[0].Index != 1 {
			t.Errorf("first node = %#v", got[0])
		}
		if got[1].Src != images[0] || *got[1].Index != 0 {
			t.Errorf("second node = %#v", got[1])
		}
	})

	t.Run("out of range placeholders dropped", func(t *testing.T) {
		got := ParseArticle("A\n[IMAGE_3]\n[IMAGE_0]\nB", images)
		want := []models.RenderNode{models.ParagraphNode("A"), models.ParagraphNode("B")}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %#v, want %#v", got, want)
		}
	})

	t.Run("no images yields text only", func(t *testing.T) {
		got := ParseArticle("## T\n[IMAGE_1]\nBody", []string{})
		for _, n := range got {
			if n.Type == models.NodeImage {
				t.Fatalf("unexpected image node %#v", n)
			}
		}
		if len(got) != 2 {
			t.Errorf("expected 2 text nodes, got %d", len(got))
		}
	})

	t.Run("empty image entry dropped", func(t *testing.T) {
		got := ParseArticle("[IMAGE_1]", []string{""})
		if len(got) != 0 {
			t.Errorf("expected no nodes, got %#v", got)
		}
	})

	t.Run("huge placeholder number dropped", func(t *testing.T) {
		got := ParseArticle("[IMAGE_99999999999999999999]", images)
		if len(got) != 0 {
			t.Errorf("expected no nodes, got %#v", got)
		}
	})
}

func TestParseArticleIsPure(t *testing.T) {
	article := "## A\n[IMAGE_1]\n- b"
	images := []string{"data:image/jpeg;base64,X"}
	if !reflect.DeepEqual(ParseArticle(article, images), ParseArticle(article, images)) {
		t.Error("ParseArticle should be deterministic")
	}
}

func TestExtractShareData(t *testing.T) {
	long := strings.Repeat("word ", 12)

	tests := []struct {
		name    string
		article string
		want    models.ShareData
	}{
		{
			name:    "title and summary",
			article: "Intro\n## Best Headphones 2024\n" + long,
			want:    models.ShareData{Title: "Best Headphones 2024", Text: long, URL: "https://p"},
		},
		{
			name:    "fallbacks",
			article: "### Only h3\nshort line",
			want:    models.ShareData{Title: DefaultShareTitle, Text: DefaultShareText, URL: "https://p"},
		},
		{
			name:    "first h2 wins",
			article: "## One\n## Two",
			want:    models.ShareData{Title: "One", Text: DefaultShareText, URL: "https://p"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractShareData(tt.article, "https://p"); got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestToHTML(t *testing.T) {
	images := []string{"data:image/jpeg;base64,QUJD"}
	out, err := ToHTML("## Title\n[IMAGE_1]\nBody text\n[IMAGE_2]\n- item", images)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}

	for _, want := range []string{"<h2>Title</h2>", `src="data:image/jpeg;base64,QUJD"`, "<li>item</li>", "Body text"} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "IMAGE_2") {
		t.Error("unresolved placeholder should be dropped")
	}
}

func TestToDocumentEscapesTitle(t *testing.T) {
	doc, err := ToDocument("## Tom & Jerry <3\nText", nil)
	if err != nil {
		t.Fatalf("ToDocument() error = %v", err)
	}
	if !strings.Contains(doc, "<title>Tom &amp; Jerry &lt;3</title>") {
		t.Errorf("title not escaped:\n%s", doc)
	}
}
