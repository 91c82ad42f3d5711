package models

// GenerationResult is one generated article. Images[n-1] belongs to the [IMAGE_n] placeholder.
type GenerationResult struct {
	Article string   `json:"article"`
	Images  []string `json:"images"`
}

// NewGenerationResult never leaves Images nil so it serializes as [].
func NewGenerationResult(article string, images []string) *GenerationResult {
	if images == nil {
		images = []string{}
	}
	return &GenerationResult{Article: article, Images: images}
}

type NodeType string

const (
	NodeHeading   NodeType = "heading"
	NodeParagraph NodeType = "paragraph"
	NodeListItem  NodeType = "list_item"
	NodeImage     NodeType = "image"
)

// RenderNode is one displayable block of a parsed article.
type RenderNode struct {
	Type  NodeType `json:"type"`
	Level int      `json:"level,omitempty"`
	Text  string   `json:"text,omitempty"`
	Src   string   `json:"src,omitempty"`
	Index *int     `json:"index,omitempty"`
}

func HeadingNode(level int, text string) RenderNode {
	return RenderNode{Type: NodeHeading, Level: level, Text: text}
}

func ParagraphNode(text string) RenderNode {
	return RenderNode{Type: NodeParagraph, Text: text}
}

func ListItemNode(text string) RenderNode {
	return RenderNode{Type: NodeListItem, Text: text}
}

func ImageNode(index int, src string) RenderNode {
	return RenderNode{Type: NodeImage, Src: src, Index: &index}
}

// ShareData is what a native share sheet receives.
type ShareData struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}
