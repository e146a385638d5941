// ABOUTME: Badger key-value document backend.
// ABOUTME: Keys are doc/<owner>/<kind>; values are JSON records.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v3"
)

const kvPrefix = "doc/"

// KVStore is the badger implementation of Backend.
type KVStore struct {
	db *badger.DB
}

// Compile-time check that KVStore implements Backend.
var _ Backend = (*KVStore)(nil)

type kvRecord struct {
	Body      json.RawMessage `json:"body"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// OpenKV opens or creates a badger database in dir.
func OpenKV(dir string) (*KVStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create kv directory: %w", err)
	}
	return openKV(badger.DefaultOptions(dir))
}

// OpenKVInMemory opens a badger database that is never written to disk.
func OpenKVInMemory() (*KVStore, error) {
	return openKV(badger.DefaultOptions("").WithInMemory(true))
}

func openKV(opts badger.Options) (*KVStore, error) {
	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &KVStore{db: db}, nil
}

// Close closes the badger database.
func (s *KVStore) Close() error {
	return s.db.Close()
}

func kvKey(owner string, kind Kind) []byte {
	return []byte(kvPrefix + owner + "/" + string(kind))
}

// GetDocument retrieves one document.
func (s *KVStore) GetDocument(owner string, kind Kind) (*Document, error) {
	var rec kvRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(kvKey(owner, kind))
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return json.Unmarshal(val, &rec)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, notFound(owner, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &Document{Owner: owner, Kind: kind, Body: rec.Body, UpdatedAt: rec.UpdatedAt}, nil
}

// PutDocument inserts or replaces a document.
func (s *KVStore) PutDocument(doc *Document) error {
	if err := validateKey(doc.Owner, doc.Kind); err != nil {
		return err
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now()
	}
	val, err := json.Marshal(kvRecord{Body: doc.Body, UpdatedAt: doc.UpdatedAt.UTC()})
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(kvKey(doc.Owner, doc.Kind), val)
	})
	if err != nil {
		return fmt.Errorf("put document: %w", err)
	}
	return nil
}

// DeleteDocument removes a document.
func (s *KVStore) DeleteDocument(owner string, kind Kind) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := kvKey(owner, kind)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return notFound(owner, kind)
	}
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// ListDocuments returns documents sorted by owner then kind.
func (s *KVStore) ListDocuments(owner string) ([]*Document, error) {
	prefix := []byte(kvPrefix)
	if owner != "" {
		prefix = []byte(kvPrefix + owner + "/")
	}

	var docs []*Document
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			o, k, ok := splitKVKey(string(item.Key()))
			if !ok {
				continue
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			var rec kvRecord
			if err := json.Unmarshal(val, &rec); err != nil {
				return fmt.Errorf("decode %s: %w", item.Key(), err)
			}
			docs = append(docs, &Document{Owner: o, Kind: Kind(k), Body: rec.Body, UpdatedAt: rec.UpdatedAt})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	// Byte order puts "u1-a/" before "u1/"; callers expect owner order.
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Owner != docs[j].Owner {
			return docs[i].Owner < docs[j].Owner
		}
		return docs[i].Kind < docs[j].Kind
	})
	return docs, nil
}

func splitKVKey(key string) (owner, kind string, ok bool) {
	rest, found := strings.CutPrefix(key, kvPrefix)
	if !found {
		return "", "", false
	}
	owner, kind, ok = strings.Cut(rest, "/")
	return owner, kind, ok
}
