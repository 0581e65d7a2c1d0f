package docstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/vmihailenco/msgpack/v5"
)

var _ Store = (*BunStore)(nil)

// documentRow is the single-table layout documents persist in. The body
// is msgpack-encoded so the schemaless field set survives round trips
// untouched.
type documentRow struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	Collection string `bun:"collection,pk"`
	Key        string `bun:"key,pk"`
	Data       []byte `bun:"data,notnull"`
}

// BunStore persists documents in SQLite through bun.
//
// Ordering and membership queries decode the documents first: the order
// field lives inside the msgpack blob, not in a column.
type BunStore struct {
	db *bun.DB
}

// NewBunStore opens (or creates) the SQLite database at dsn and ensures
// the documents table exists.
func NewBunStore(ctx context.Context, dsn string) (*BunStore, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.NewCreateTable().Model((*documentRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return &BunStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *BunStore) Close() error {
	return s.db.Close()
}

func (s *BunStore) Get(ctx context.Context, collection, key string) (Document, error) {
	row := new(documentRow)
	err := s.db.NewSelect().Model(row).
		Where("d.collection = ?", collection).
		Where("d.key = ?", key).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeDocument(row.Data)
}

func (s *BunStore) GetAll(ctx context.Context, collection string) ([]Keyed, error) {
	var rows []documentRow
	err := s.db.NewSelect().Model(&rows).
		Where("d.collection = ?", collection).
		Order("d.key ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]Keyed, 0, len(rows))
	for _, row := range rows {
		doc, err := decodeDocument(row.Data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Keyed{Key: row.Key, Doc: doc})
	}
	return docs, nil
}

func (s *BunStore) QueryContains(ctx context.Context, collection, field, value string) ([]Keyed, error) {
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

func (s *BunStore) QueryPage(ctx context.Context, collection, orderField string, desc bool, limit int, startAfter string) ([]Keyed, error) {
	docs, err := s.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	sortByField(docs, orderField, desc)
	return pageAfter(docs, startAfter, limit), nil
}

func (s *BunStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	key := uuid.NewString()
	if err := s.Set(ctx, collection, key, doc); err != nil {
		return "", err
	}
	return key, nil
}

func (s *BunStore) Set(ctx context.Context, collection, key string, doc Document) error {
	data, err := msgpack.Marshal(doc)
	if err != nil {
		return err
	}

	row := &documentRow{Collection: collection, Key: key, Data: data}
	_, err = s.db.NewInsert().Model(row).
		On("CONFLICT (collection, key) DO UPDATE").
		Set("data = EXCLUDED.data").
		Exec(ctx)
	return err
}

func (s *BunStore) Update(ctx context.Context, collection, key string, fields Document) error {
	doc, err := s.Get(ctx, collection, key)
	if err != nil {
		return err
	}
	for k, v := range fields {
		doc[k] = v
	}
	return s.Set(ctx, collection, key, doc)
}

func (s *BunStore) Delete(ctx context.Context, collection, key string) error {
	_, err := s.db.NewDelete().Model((*documentRow)(nil)).
		Where("collection = ?", collection).
		Where(`"key" = ?`, key).
		Exec(ctx)
	return err
}

func decodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
