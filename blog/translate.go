package blog

import (
	"time"

	"github.com/yeshua-aguilar/comicflix-catalog/catalog"
	"github.com/yeshua-aguilar/comicflix-catalog/docstore"
)

// The store grew up bilingual: documents written by the first admin tool
// use Spanish field names, newer ones the canonical English set. The
// tables below are the single source of truth for the translation.
// Reads tolerate either convention, writes always emit the legacy names
// the store started with.

// legacyFields maps each canonical field to the name written to the
// store.
var legacyFields = map[string]string{
	"title":      "titulo",
	"author":     "autor",
	"date":       "fecha",
	"tags":       "tags",
	"excerpt":    "descripcion",
	"image":      "portada",
	"content":    "contenido",
	"comicPages": "comicPages",
}

// readAliases lists, per canonical field, the document keys consulted in
// priority order when reading.
var readAliases = map[string][]string{
	"title":      {"title", "titulo"},
	"author":     {"author", "autor"},
	"date":       {"date", "fecha", "fecha_creacion", "createdAt"},
	"excerpt":    {"excerpt", "descripcion"},
	"image":      {"image", "portada"},
	"content":    {"content", "contenido"},
	"comicPages": {"comicPages"},
}

// Sentinels for documents that never carried the field.
const (
	defaultTitle  = "untitled"
	defaultAuthor = "anonymous"
)

// LegacyDateField is the name paginated reads order by; every document
// written through this package carries it.
const LegacyDateField = "fecha"

// ToPost converts a stored document into the canonical post shape,
// falling back to sentinels for fields the document never carried.
func ToPost(key string, doc docstore.Document) catalog.Post {
	return catalog.Post{
		Slug:       key,
		Title:      stringField(doc, "title", defaultTitle),
		Author:     stringField(doc, "author", defaultAuthor),
		Date:       dateField(doc),
		Tags:       catalog.NormalizeTags(doc["tags"]),
		Excerpt:    stringField(doc, "excerpt", ""),
		Content:    stringField(doc, "content", ""),
		Image:      stringField(doc, "image", ""),
		ComicPages: stringField(doc, "comicPages", ""),
	}
}

// ToLegacy rewrites canonical field names to the stored legacy names.
// Unknown fields pass through unchanged.
func ToLegacy(fields docstore.Document) docstore.Document {
	out := make(docstore.Document, len(fields))
	for name, v := range fields {
		legacy, ok := legacyFields[name]
		if !ok {
			legacy = name
		}
		out[legacy] = v
	}
	return out
}

// FromCreateData renders create input in the store's legacy schema.
func FromCreateData(data catalog.CreatePostData) docstore.Document {
	return ToLegacy(docstore.Document{
		"title":      data.Title,
		"author":     data.Author,
		"date":       data.Date,
		"tags":       catalog.NormalizeTags(data.Tags),
		"excerpt":    data.Excerpt,
		"content":    data.Content,
		"image":      data.Image,
		"comicPages": data.ComicPages,
	})
}

// FromUpdateData renders the non-nil fields of a partial update in the
// store's legacy schema.
func FromUpdateData(data catalog.UpdatePostData) docstore.Document {
	fields := docstore.Document{}
	if data.Title != nil {
		fields["title"] = *data.Title
	}
	if data.Author != nil {
		fields["author"] = *data.Author
	}
	if data.Date != nil {
		fields["date"] = *data.Date
	}
	if data.Tags != nil {
		fields["tags"] = catalog.NormalizeTags(*data.Tags)
	}
	if data.Excerpt != nil {
		fields["excerpt"] = *data.Excerpt
	}
	if data.Content != nil {
		fields["content"] = *data.Content
	}
	if data.Image != nil {
		fields["image"] = *data.Image
	}
	if data.ComicPages != nil {
		fields["comicPages"] = *data.ComicPages
	}
	return ToLegacy(fields)
}

func stringField(doc docstore.Document, canonical, fallback string) string {
	for _, name := range readAliases[canonical] {
		if s, ok := doc[name].(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

// dateField tolerates the four historic date spellings plus time.Time
// values some documents were written with. Documents with no date at
// all read as today.
func dateField(doc docstore.Document) string {
	for _, name := range readAliases["date"] {
		switch v := doc[name].(type) {
		case string:
			if v != "" {
				return v
			}
		case time.Time:
			return v.Format(catalog.DateLayout)
		}
	}
	return time.Now().Format(catalog.DateLayout)
}
