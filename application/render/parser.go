// Package render turns generated markdown with [IMAGE_n] placeholders into
// displayable blocks, share metadata and standalone HTML.
package render

import (
	"regexp"
	"strconv"
	"strings"

	"blogpost-generator/domain/models"
)

var imagePlaceholder = regexp.MustCompile(`\[IMAGE_(\d+)\]`)

// ParseArticle splits article on image placeholders and maps every line of the
// surrounding text to a node. Placeholder n resolves to images[n-1]; placeholders
// without a non-empty image are dropped.
func ParseArticle(article string, images []string) []models.RenderNode {
	nodes := []models.RenderNode{}
	if article == "" {
		return nodes
	}

	last := 0
	for _, m := range imagePlaceholder.FindAllStringSubmatchIndex(article, -1) {
		nodes = appendText(nodes, article[last:m[0]])
		if idx, ok := resolveImage(article[m[2]:m[3]], images); ok {
			nodes = append(nodes, models.ImageNode(idx, images[idx]))
		}
		last = m[1]
	}
	return appendText(nodes, article[last:])
}

// resolveImage returns the 0-based index for the 1-based placeholder number.
func resolveImage(number string, images []string) (int, bool) {
	n, err := strconv.Atoi(number)
	if err != nil {
		return 0, false
	}
	idx := n - 1
	if idx < 0 || idx >= len(images) || images[idx] == "" {
		return 0, false
	}
	return idx, true
}

func appendText(nodes []models.RenderNode, text string) []models.RenderNode {
	if text == "" {
		return nodes
	}
	for _, line := range strings.Split(text, "\n") {
		if node, ok := parseLine(line); ok {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// parseLine classifies one line. Order matters: "### " must win over "## ".
func parseLine(line string) (models.RenderNode, bool) {
	switch {
	case strings.HasPrefix(line, "### "):
		return models.HeadingNode(3, line[4:]), true
	case strings.HasPrefix(line, "## "):
		return models.HeadingNode(2, line[3:]), true
	case strings.HasPrefix(line, "* "), strings.HasPrefix(line, "- "):
		return models.ListItemNode(line[2:]), true
	case strings.TrimSpace(line) == "":
		return models.RenderNode{}, false
	default:
		return models.ParagraphNode(line), true
	}
}
