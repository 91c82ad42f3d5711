package render

import (
	"bytes"
	"fmt"
	gohtml "html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// InlineImages swaps each resolvable placeholder for a markdown image and drops the rest.
func InlineImages(article string, images []string) string {
	return imagePlaceholder.ReplaceAllStringFunc(article, func(match string) string {
		number := imagePlaceholder.FindStringSubmatch(match)[1]
		idx, ok := resolveImage(number, images)
		if !ok {
			return ""
		}
		return fmt.Sprintf("\n\n![Generated illustration for the article %d](%s)\n\n", idx+1, images[idx])
	})
}

// ToHTML renders the article as an HTML fragment with images embedded.
func ToHTML(article string, images []string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(InlineImages(article, images)), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
<article>
%s</article>
</body>
</html>
`

// ToDocument wraps ToHTML output in a minimal page titled from the article.
func ToDocument(article string, images []string) (string, error) {
	body, err := ToHTML(article, images)
	if err != nil {
		return "", err
	}
	title := ExtractShareData(article, "").Title
	return fmt.Sprintf(documentTemplate, gohtml.EscapeString(title), body), nil
}
