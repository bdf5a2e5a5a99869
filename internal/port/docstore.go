package port

import "paydocs/internal/domain"

// DocumentStore persists raw markdown documents between runs. The search
// index itself is never persisted; it is rebuilt in memory from this store.
type DocumentStore interface {
	PutDocument(id int, doc domain.RawDocument) error

	GetDocument(id int) (domain.RawDocument, error)

	ListDocuments() (map[int]domain.RawDocument, error)

	Clear() error

	Close() error
}
