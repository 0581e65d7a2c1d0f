package catalog

import (
	"fmt"
	"strings"
)

// Post is the catalog's core entity. Date is a calendar date rendered as
// yyyy-mm-dd; ComicPages holds a newline-delimited list of page image
// URLs for comic-style posts.
type Post struct {
	Slug       string   `json:"slug"`
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	Date       string   `json:"date"`
	Tags       []string `json:"tags"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	Image      string   `json:"image,omitempty"`
	ComicPages string   `json:"comicPages,omitempty"`
}

// Genre is a tag paired with the number of posts carrying it.
type Genre struct {
	Name  string `json:"genre"`
	Count int    `json:"count"`
}

// CreatePostData carries the fields of a post to be created. The slug is
// supplied separately or generated by the store.
type CreatePostData struct {
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	Date       string   `json:"date"`
	Tags       []string `json:"tags"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	Image      string   `json:"image,omitempty"`
	ComicPages string   `json:"comicPages,omitempty"`
}

// UpdatePostData carries a partial change set. Nil fields are left
// untouched; the slug itself is immutable and cannot appear here.
type UpdatePostData struct {
	Title      *string   `json:"title,omitempty"`
	Author     *string   `json:"author,omitempty"`
	Date       *string   `json:"date,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
	Excerpt    *string   `json:"excerpt,omitempty"`
	Content    *string   `json:"content,omitempty"`
	Image      *string   `json:"image,omitempty"`
	ComicPages *string   `json:"comicPages,omitempty"`
}

// Changes lists the canonical names of the fields the update touches.
func (u UpdatePostData) Changes() []string {
	var changes []string
	if u.Title != nil {
		changes = append(changes, "title")
	}
	if u.Author != nil {
		changes = append(changes, "author")
	}
	if u.Date != nil {
		changes = append(changes, "date")
	}
	if u.Tags != nil {
		changes = append(changes, "tags")
	}
	if u.Excerpt != nil {
		changes = append(changes, "excerpt")
	}
	if u.Content != nil {
		changes = append(changes, "content")
	}
	if u.Image != nil {
		changes = append(changes, "image")
	}
	if u.ComicPages != nil {
		changes = append(changes, "comicPages")
	}
	return changes
}

// IsEmpty reports whether the update touches no fields at all.
func (u UpdatePostData) IsEmpty() bool {
	return len(u.Changes()) == 0
}

// NewPost builds a fully validated Post. The first violated rule aborts
// construction with a *ValidationError, so no partially valid Post can
// be observed.
func NewPost(slug string, data CreatePostData) (Post, error) {
	p := Post{
		Slug:       strings.TrimSpace(slug),
		Title:      strings.TrimSpace(data.Title),
		Author:     strings.TrimSpace(data.Author),
		Date:       strings.TrimSpace(data.Date),
		Tags:       NormalizeTags(data.Tags),
		Excerpt:    strings.TrimSpace(data.Excerpt),
		Content:    data.Content,
		Image:      strings.TrimSpace(data.Image),
		ComicPages: data.ComicPages,
	}
	if err := ValidatePost(p); err != nil {
		return Post{}, err
	}
	return p, nil
}

// SetTitle replaces the title after validating it.
func (p *Post) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if err := ValidateTitle(title); err != nil {
		return err
	}
	p.Title = title
	return nil
}

// SetAuthor replaces the author after validating it.
func (p *Post) SetAuthor(author string) error {
	author = strings.TrimSpace(author)
	if err := ValidateAuthor(author); err != nil {
		return err
	}
	p.Author = author
	return nil
}

// SetDate replaces the publication date after validating it.
func (p *Post) SetDate(date string) error {
	date = strings.TrimSpace(date)
	if err := ValidateDate(date); err != nil {
		return err
	}
	p.Date = date
	return nil
}

// SetExcerpt replaces the excerpt after validating it.
func (p *Post) SetExcerpt(excerpt string) error {
	excerpt = strings.TrimSpace(excerpt)
	if err := ValidateExcerpt(excerpt); err != nil {
		return err
	}
	p.Excerpt = excerpt
	return nil
}

// SetContent replaces the body after validating it.
func (p *Post) SetContent(content string) error {
	if err := ValidateContent(content); err != nil {
		return err
	}
	p.Content = content
	return nil
}

// SetImage replaces the cover image URL after validating it.
func (p *Post) SetImage(image string) error {
	image = strings.TrimSpace(image)
	if err := ValidateImage(image); err != nil {
		return err
	}
	p.Image = image
	return nil
}

// SetTags replaces the whole tag list after validating it.
func (p *Post) SetTags(tags []string) error {
	tags = NormalizeTags(tags)
	if err := ValidateTags(tags); err != nil {
		return err
	}
	p.Tags = tags
	return nil
}

// HasTag reports whether the post already carries tag, after trimming.
func (p *Post) HasTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag appends a tag. Duplicates and overflows past MaxTags are
// rejected.
func (p *Post) AddTag(tag string) error {
	tag = strings.TrimSpace(tag)
	if err := ValidateTag(tag); err != nil {
		return err
	}
	if p.HasTag(tag) {
		return &ValidationError{Field: "tags", Message: fmt.Sprintf("tag %q already present", tag)}
	}
	if len(p.Tags) >= MaxTags {
		return &ValidationError{Field: "tags", Message: fmt.Sprintf("cannot exceed %d tags", MaxTags)}
	}
	p.Tags = append(p.Tags, tag)
	return nil
}

// RemoveTag drops a tag. Removing the last remaining tag is rejected;
// removing an absent tag is a no-op.
func (p *Post) RemoveTag(tag string) error {
	tag = strings.TrimSpace(tag)
	if !p.HasTag(tag) {
		return nil
	}
	if len(p.Tags) == 1 {
		return &ValidationError{Field: "tags", Message: "post must keep at least one tag"}
	}

	kept := make([]string, 0, len(p.Tags)-1)
	for _, t := range p.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	p.Tags = kept
	return nil
}
