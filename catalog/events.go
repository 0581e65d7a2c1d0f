package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Event names as published on the bus.
const (
	EventPostCreated  = "PostCreated"
	EventPostUpdated  = "PostUpdated"
	EventPostDeleted  = "PostDeleted"
	EventPostSearched = "PostSearched"
	EventTagAdded     = "TagAdded"
	EventTagRemoved   = "TagRemoved"
)

// Event is the contract all domain events satisfy. Delivery is
// in-process and at-most-once; nothing persists or retries.
type Event interface {
	EventID() string
	EventName() string
	OccurredOn() time.Time
}

type baseEvent struct {
	id   string
	name string
	at   time.Time
}

func newBaseEvent(name string) baseEvent {
	return baseEvent{id: uuid.NewString(), name: name, at: time.Now()}
}

func (e baseEvent) EventID() string       { return e.id }
func (e baseEvent) EventName() string     { return e.name }
func (e baseEvent) OccurredOn() time.Time { return e.at }

// PostCreated fires after a post is persisted and the manifest rebuilt.
type PostCreated struct {
	baseEvent
	Slug   string
	Title  string
	Author string
	Tags   []string
}

func NewPostCreated(slug, title, author string, tags []string) PostCreated {
	return PostCreated{
		baseEvent: newBaseEvent(EventPostCreated),
		Slug:      slug,
		Title:     title,
		Author:    author,
		Tags:      tags,
	}
}

// PostUpdated fires after a partial update lands, naming the touched
// fields.
type PostUpdated struct {
	baseEvent
	Slug    string
	Changes []string
}

func NewPostUpdated(slug string, changes []string) PostUpdated {
	return PostUpdated{baseEvent: newBaseEvent(EventPostUpdated), Slug: slug, Changes: changes}
}

// PostDeleted fires after a post is removed.
type PostDeleted struct {
	baseEvent
	Slug  string
	Title string
}

func NewPostDeleted(slug, title string) PostDeleted {
	return PostDeleted{baseEvent: newBaseEvent(EventPostDeleted), Slug: slug, Title: title}
}

// PostSearched records a search term and how many results it produced.
type PostSearched struct {
	baseEvent
	Term        string
	ResultCount int
}

func NewPostSearched(term string, resultCount int) PostSearched {
	return PostSearched{baseEvent: newBaseEvent(EventPostSearched), Term: term, ResultCount: resultCount}
}

// TagAdded fires after a tag is appended to a post.
type TagAdded struct {
	baseEvent
	Slug string
	Tag  string
}

func NewTagAdded(slug, tag string) TagAdded {
	return TagAdded{baseEvent: newBaseEvent(EventTagAdded), Slug: slug, Tag: tag}
}

// TagRemoved fires after a tag is dropped from a post.
type TagRemoved struct {
	baseEvent
	Slug string
	Tag  string
}

func NewTagRemoved(slug, tag string) TagRemoved {
	return TagRemoved{baseEvent: newBaseEvent(EventTagRemoved), Slug: slug, Tag: tag}
}
