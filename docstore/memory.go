package docstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is a map-backed Store for tests and example programs.
// Documents are deep-copied on the way in and out so callers cannot
// mutate stored state through shared references.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]Document)}
}

func (s *MemoryStore) Get(ctx context.Context, collection, key string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][key]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDocument(doc), nil
}

func (s *MemoryStore) GetAll(ctx context.Context, collection string) ([]Keyed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col := s.collections[collection]
	keys := make([]string, 0, len(col))
	for key := range col {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	docs := make([]Keyed, 0, len(keys))
	for _, key := range keys {
		docs = append(docs, Keyed{Key: key, Doc: copyDocument(col[key])})
	}
	return docs, nil
}

func (s *MemoryStore) QueryContains(ctx context.Context, collection, field, value string) ([]Keyed, error) {
	docs, err := s.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	var matched []Keyed
	for _, d := range docs {
		if containsValue(d.Doc, field, value) {
			matched = append(matched, d)
		}
	}
	return matched, nil
}

func (s *MemoryStore) QueryPage(ctx context.Context, collection, orderField string, desc bool, limit int, startAfter string) ([]Keyed, error) {
	docs, err := s.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	sortByField(docs, orderField, desc)
	return pageAfter(docs, startAfter, limit), nil
}

func (s *MemoryStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	key := uuid.NewString()
	if err := s.Set(ctx, collection, key, doc); err != nil {
		return "", err
	}
	return key, nil
}

func (s *MemoryStore) Set(ctx context.Context, collection, key string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[collection]
	if !ok {
		col = make(map[string]Document)
		s.collections[collection] = col
	}
	col[key] = copyDocument(doc)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, key string, fields Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[collection][key]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		doc[k] = copyValue(v)
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, key string) error {
	s.mu.Lock()
	delete(s.collections[collection], key)
	s.mu.Unlock()
	return nil
}

func copyDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyDocument(val)
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
