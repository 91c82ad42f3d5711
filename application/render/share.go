package render

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"blogpost-generator/domain/models"
)

const (
	DefaultShareTitle = "Check out this AI-Generated Article"
	DefaultShareText  = "An in-depth product review."

	summaryMinLength = 50
)

var firstHeading = regexp.MustCompile(`(?m)^## ([^\r\n]*)`)

// ExtractShareData picks the first H2 as title and the first substantial line as text.
func ExtractShareData(article, productURL string) models.ShareData {
	data := models.ShareData{
		Title: DefaultShareTitle,
		Text:  DefaultShareText,
		URL:   productURL,
	}

	if m := firstHeading.FindStringSubmatch(article); m != nil {
		data.Title = m[1]
	}

	for _, line := range strings.Split(article, "\n") {
		if utf8.RuneCountInString(strings.TrimSpace(line)) > summaryMinLength {
			data.Text = line
			break
		}
	}
	return data
}
