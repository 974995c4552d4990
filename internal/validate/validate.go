package validate

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"book_catalog_tgbot/internal/model"
)

const (
	maxTitleLength       = 120
	maxDescriptionLength = 1000

	dateLayout = "2006-01-02"
)

type rule struct {
	label     string
	required  bool
	maxLength int
	isDate    bool
}

var rules = map[model.FormField]rule{
	model.FieldTitle:         {label: "Title", required: true, maxLength: maxTitleLength},
	model.FieldAuthors:       {label: "Authors", required: true},
	model.FieldPublishedDate: {label: "Published date", required: true, isDate: true},
	model.FieldImage:         {label: "Image", required: true},
	model.FieldDescription:   {label: "Description", required: true, maxLength: maxDescriptionLength},
}

// Field checks one form value against its rules and returns the
// message to show next to the field, empty when the value is valid.
func Field(field model.FormField, value string) string {
	r, ok := rules[field]
	if !ok {
		return ""
	}

	value = strings.TrimSpace(value)

	if r.required && value == "" {
		return fmt.Sprintf("%s is required", r.label)
	}

	if r.maxLength > 0 && utf8.RuneCountInString(value) > r.maxLength {
		return fmt.Sprintf("%s must be at most %d characters", r.label, r.maxLength)
	}

	if r.isDate && value != "" {
		parsed, err := time.Parse(dateLayout, value)
		if err != nil {
			return fmt.Sprintf("%s must be a date in the form %s", r.label, dateLayout)
		}
		if parsed.After(time.Now()) {
			return fmt.Sprintf("%s must not be in the future", r.label)
		}
	}

	return ""
}

// Draft validates every field of a draft and returns the messages per
// field. An empty map means the draft can be submitted.
func Draft(d model.BookDraft) map[model.FormField]string {
	out := make(map[model.FormField]string)

	checks := map[model.FormField]string{
		model.FieldTitle:         d.Title,
		model.FieldAuthors:       strings.Join(d.Authors, ","),
		model.FieldPublishedDate: d.PublishedDate,
		model.FieldImage:         d.ImageUrl,
		model.FieldDescription:   d.Description,
	}

	for field, value := range checks {
		if msg := Field(field, value); msg != "" {
			out[field] = msg
		}
	}

	return out
}
