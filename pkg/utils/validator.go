package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"blogpost-generator/domain/models"
)

// ValidationIssue describes one failed rule in a request body.
type ValidationIssue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	optionRules := map[string]func(string) bool{
		"audience":       models.IsTargetAudience,
		"writing_style":  models.IsWritingStyle,
		"language":       models.IsLanguage,
		"article_length": models.IsArticleLength,
	}
	for tag, check := range optionRules {
		check := check
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		})
	}
	return v
}

// fieldRules maps a single-field edit to the rule its value must satisfy.
var fieldRules = map[models.Field]string{
	models.FieldProductURL:     "",
	models.FieldAffiliateLink:  "",
	models.FieldSEOKeywords:    "",
	models.FieldTargetAudience: "audience",
	models.FieldWritingStyle:   "writing_style",
	models.FieldLanguage:       "language",
	models.FieldArticleLength:  "article_length",
	models.FieldGenerateImages: "boolean",
}

// IsKnownField reports whether field can be edited.
func IsKnownField(field models.Field) bool {
	_, ok := fieldRules[field]
	return ok
}

// ValidateField checks value against the closed option set of field.
func ValidateField(field models.Field, value string) error {
	rule, ok := fieldRules[field]
	if !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	if rule == "" {
		return nil
	}
	if err := validate.Var(value, rule); err != nil {
		return fmt.Errorf("invalid value %q for %s", value, field)
	}
	return nil
}

// ValidateStruct runs the validate tags of s and flattens the failures.
func ValidateStruct(s interface{}) []ValidationIssue {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ValidationIssue{{Field: "", Rule: "invalid", Message: err.Error()}}
	}

	issues := make([]ValidationIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, ValidationIssue{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: issueMessage(fe),
		})
	}
	return issues
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "audience", "writing_style", "language", "article_length", "oneof":
		return fmt.Sprintf("%s has an unsupported value %q", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
