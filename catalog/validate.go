package catalog

import (
	"net/url"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Field limits shared by the factory and the mutators.
const (
	MaxTags      = 20
	MaxTagLength = 50
	MaxExcerpt   = 500
	MaxContent   = 100000
	DateLayout   = "2006-01-02"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Posts dated before the catalog's epoch are rejected outright.
var minPostDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ValidateSlug checks the URL-safe identifier shape: 3 to 200
// characters, lowercase alphanumerics and single hyphens only.
func ValidateSlug(slug string) error {
	return wrap("slug", validation.Validate(slug,
		validation.Required,
		validation.Length(3, 200),
		validation.Match(slugPattern).Error("must contain only lowercase letters, digits and hyphens"),
	))
}

// ValidateTitle checks the 3 to 200 character title bounds.
func ValidateTitle(title string) error {
	return wrap("title", validation.Validate(title,
		validation.Required,
		validation.Length(3, 200),
	))
}

// ValidateAuthor checks the 2 to 100 character author bounds.
func ValidateAuthor(author string) error {
	return wrap("author", validation.Validate(author,
		validation.Required,
		validation.Length(2, 100),
	))
}

// ValidateDate checks that date is a real yyyy-mm-dd calendar date, not
// before 2000-01-01 and not in the future.
func ValidateDate(date string) error {
	return wrap("date", validation.Validate(date,
		validation.Required,
		validation.Date(DateLayout).Min(minPostDate).Max(time.Now()),
	))
}

// ValidateTag checks a single tag: non-empty, at most MaxTagLength runes.
func ValidateTag(tag string) error {
	return wrap("tags", validation.Validate(tag,
		validation.Required,
		validation.Length(1, MaxTagLength),
	))
}

// ValidateTags checks the tag list: one to MaxTags entries, each within
// the single-tag bounds.
func ValidateTags(tags []string) error {
	return wrap("tags", validation.Validate(tags,
		validation.Required,
		validation.Length(1, MaxTags),
		validation.Each(validation.Required, validation.Length(1, MaxTagLength)),
	))
}

// ValidateExcerpt allows an empty excerpt but caps it at MaxExcerpt runes.
func ValidateExcerpt(excerpt string) error {
	return wrap("excerpt", validation.Validate(excerpt,
		validation.Length(0, MaxExcerpt),
	))
}

// ValidateContent requires a non-empty body of at most MaxContent runes.
func ValidateContent(content string) error {
	return wrap("content", validation.Validate(content,
		validation.Required,
		validation.Length(1, MaxContent),
	))
}

// ValidateImage accepts an empty image; anything else must parse as an
// absolute URL.
func ValidateImage(image string) error {
	if image == "" {
		return nil
	}
	return wrap("image", validation.Validate(image, validation.By(absoluteURL)))
}

func absoluteURL(value any) error {
	raw, _ := value.(string)
	u, err := url.ParseRequestURI(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return validation.NewError("validation_is_url", "must be a valid URL")
	}
	return nil
}

// ValidatePost runs every field rule, first violation wins.
func ValidatePost(p Post) error {
	checks := []func() error{
		func() error { return ValidateSlug(p.Slug) },
		func() error { return ValidateTitle(p.Title) },
		func() error { return ValidateAuthor(p.Author) },
		func() error { return ValidateDate(p.Date) },
		func() error { return ValidateTags(p.Tags) },
		func() error { return ValidateExcerpt(p.Excerpt) },
		func() error { return ValidateContent(p.Content) },
		func() error { return ValidateImage(p.Image) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// wrap converts a rule failure into the package's ValidationError.
func wrap(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}
