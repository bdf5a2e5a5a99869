package store

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go.etcd.io/bbolt"

	"paydocs/internal/domain"
	"paydocs/internal/port"
)

var (
	bucketDocuments = []byte("documents")
)

var _ port.DocumentStore = (*BoltStore)(nil)

// BoltStore persists raw markdown documents so a corpus can be reloaded
// without refetching. The search index is never stored; it is rebuilt in
// memory from these documents on every load.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDocuments)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

type documentRecord struct {
	Markdown string `json:"markdown"`
	Link     string `json:"link"`
	Version  string `json:"version,omitempty"`
	Category string `json:"category,omitempty"`
}

func (s *BoltStore) PutDocument(id int, doc domain.RawDocument) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		rec := documentRecord{
			Markdown: doc.Markdown,
			Link:     doc.Link,
			Version:  string(doc.Version),
			Category: doc.Category,
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketDocuments).Put([]byte(strconv.Itoa(id)), data)
	})
}

func (s *BoltStore) GetDocument(id int) (domain.RawDocument, error) {
	var doc domain.RawDocument
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocuments).Get([]byte(strconv.Itoa(id)))
		if data == nil {
			return fmt.Errorf("document not found: %d", id)
		}
		var rec documentRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		doc = toRawDocument(rec)
		return nil
	})
	return doc, err
}

func (s *BoltStore) ListDocuments() (map[int]domain.RawDocument, error) {
	docs := make(map[int]domain.RawDocument)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocuments).ForEach(func(k, v []byte) error {
			id, err := strconv.Atoi(string(k))
			if err != nil {
				return fmt.Errorf("corrupt document key %q: %w", k, err)
			}
			var rec documentRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			docs[id] = toRawDocument(rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketDocuments); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketDocuments)
		return err
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func toRawDocument(rec documentRecord) domain.RawDocument {
	return domain.RawDocument{
		Markdown: rec.Markdown,
		Link:     rec.Link,
		Version:  domain.Version(rec.Version),
		Category: rec.Category,
	}
}
