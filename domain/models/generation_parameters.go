package models

// Field names accepted by a single-field edit. They match the JSON keys.
type Field string

const (
	FieldProductURL     Field = "productUrl"
	FieldAffiliateLink  Field = "affiliateLink"
	FieldTargetAudience Field = "targetAudience"
	FieldWritingStyle   Field = "writingStyle"
	FieldLanguage       Field = "language"
	FieldSEOKeywords    Field = "seoKeywords"
	FieldGenerateImages Field = "generateImages"
	FieldArticleLength  Field = "articleLength"
)

const (
	LengthShort = "Short (~500 words)"
	LengthLong  = "Long (~1200 words)"

	StyleInterview = "Interview"
)

var (
	TargetAudiences = []string{"Tech lovers", "Fitness enthusiasts", "Parents", "Home chefs", "Gamers", "Fashionistas"}
	WritingStyles   = []string{"Friendly", "Professional", "Persuasive", "Humorous", "Technical", StyleInterview}
	Languages       = []string{"English", "Spanish", "French", "German", "Bangla"}
	ArticleLengths  = []string{LengthShort, LengthLong}
)

// GenerationParameters is everything the user chooses before generating an article.
type GenerationParameters struct {
	ProductURL     string `json:"productUrl"`
	AffiliateLink  string `json:"affiliateLink"`
	TargetAudience string `json:"targetAudience" validate:"audience"`
	WritingStyle   string `json:"writingStyle" validate:"writing_style"`
	Language       string `json:"language" validate:"language"`
	SEOKeywords    string `json:"seoKeywords"`
	GenerateImages bool   `json:"generateImages"`
	ArticleLength  string `json:"articleLength" validate:"article_length"`
}

// DefaultParameters returns the form state of a fresh session.
func DefaultParameters() GenerationParameters {
	return GenerationParameters{
		TargetAudience: TargetAudiences[0],
		WritingStyle:   WritingStyles[0],
		Language:       Languages[0],
		GenerateImages: true,
		ArticleLength:  LengthLong,
	}
}

// WithDefaults fills empty enum fields from DefaultParameters.
func (p GenerationParameters) WithDefaults() GenerationParameters {
	d := DefaultParameters()
	if p.TargetAudience == "" {
		p.TargetAudience = d.TargetAudience
	}
	if p.WritingStyle == "" {
		p.WritingStyle = d.WritingStyle
	}
	if p.Language == "" {
		p.Language = d.Language
	}
	if p.ArticleLength == "" {
		p.ArticleLength = d.ArticleLength
	}
	return p
}

// OptionSets is the payload of the options endpoint.
type OptionSets struct {
	TargetAudiences []string             `json:"targetAudiences"`
	WritingStyles   []string             `json:"writingStyles"`
	Languages       []string             `json:"languages"`
	ArticleLengths  []string             `json:"articleLengths"`
	Defaults        GenerationParameters `json:"defaults"`
}

func Options() OptionSets {
	return OptionSets{
		TargetAudiences: TargetAudiences,
		WritingStyles:   WritingStyles,
		Languages:       Languages,
		ArticleLengths:  ArticleLengths,
		Defaults:        DefaultParameters(),
	}
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

func IsTargetAudience(v string) bool { return contains(TargetAudiences, v) }
func IsWritingStyle(v string) bool   { return contains(WritingStyles, v) }
func IsLanguage(v string) bool       { return contains(Languages, v) }
func IsArticleLength(v string) bool  { return contains(ArticleLengths, v) }
