package docstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps BSON-encoded documents in process memory. It backs the test suites and
// STORE_BACKEND=memory for local development.
type MemoryStore struct {
	mu          sync.RWMutex
	seq         int
	collections map[string]map[string]memRecord
	watchers    map[string][]chan struct{}
}

type memRecord struct {
	seq int
	raw bson.Raw
}

type memDocument struct {
	id  string
	raw bson.Raw
}

func (d memDocument) ID() string { return d.id }

func (d memDocument) DataTo(v interface{}) error {
	return bson.Unmarshal(d.raw, v)
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]memRecord),
		watchers:    make(map[string][]chan struct{}),
	}
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.collections[collection][id]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return memDocument{id: id, raw: rec.raw}, nil
}

func (s *MemoryStore) List(ctx context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll := s.collections[collection]
	ids := make([]string, 0, len(coll))
	for id := range coll {
		ids = append(ids, id)
	}
	// Insertion order, like an unsorted Mongo find.
	sort.Slice(ids, func(i, j int) bool { return coll[ids[i]].seq < coll[ids[j]].seq })

	docs := make([]Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, memDocument{id: id, raw: coll[id].raw})
	}
	return docs, nil
}

func (s *MemoryStore) Create(ctx context.Context, collection, id string, doc interface{}) error {
	m, err := toMap(id, doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection][id]; ok {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrAlreadyExists)
	}
	return s.put(collection, id, m)
}

func (s *MemoryStore) Set(ctx context.Context, collection, id string, doc interface{}) error {
	m, err := toMap(id, doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(collection, id, m)
}

func (s *MemoryStore) Merge(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := bson.M{"id": id}
	if rec, ok := s.collections[collection][id]; ok {
		if err := bson.Unmarshal(rec.raw, &m); err != nil {
			return fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
		}
	}
	if err := applyPaths(m, fields); err != nil {
		return err
	}
	return s.put(collection, id, m)
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(collection, id, fields)
}

func (s *MemoryStore) UpdateMany(ctx context.Context, collection string, updates map[string]map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var failed []string
	for id, fields := range updates {
		if err := s.update(collection, id, fields); err != nil {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		sort.Strings(failed)
		return fmt.Errorf("%s: %d of %d updates failed (%s): %w",
			collection, len(failed), len(updates), strings.Join(failed, ", "), ErrNotFound)
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	delete(s.collections[collection], id)
	s.signal(collection)
	return nil
}

func (s *MemoryStore) Exists(ctx context.Context, collection string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection]) > 0, nil
}

func (s *MemoryStore) Watch(ctx context.Context, collection string) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.watchers[collection] = append(s.watchers[collection], ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		list := s.watchers[collection]
		for i, w := range list {
			if w == ch {
				s.watchers[collection] = append(list[:i], list[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// update expects s.mu to be held.
func (s *MemoryStore) update(collection, id string, fields map[string]interface{}) error {
	rec, ok := s.collections[collection][id]
	if !ok {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	m := bson.M{}
	if err := bson.Unmarshal(rec.raw, &m); err != nil {
		return fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
	}
	if err := applyPaths(m, fields); err != nil {
		return err
	}
	return s.put(collection, id, m)
}

// put expects s.mu to be held.
func (s *MemoryStore) put(collection, id string, m bson.M) error {
	raw, err := bson.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", collection, id, err)
	}
	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string]memRecord)
		s.collections[collection] = coll
	}
	rec, exists := coll[id]
	if !exists {
		s.seq++
		rec.seq = s.seq
	}
	rec.raw = raw
	coll[id] = rec
	s.signal(collection)
	return nil
}

// signal expects s.mu to be held.
func (s *MemoryStore) signal(collection string) {
	for _, ch := range s.watchers[collection] {
		notify(ch)
	}
}

// toMap encodes doc (a struct or a map) as a BSON map and stamps the id field.
func toMap(id string, doc interface{}) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document %s: %w", id, err)
	}
	m := bson.M{}
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	m["id"] = id
	return m, nil
}

// applyPaths sets every dotted path of fields inside m, creating intermediate maps.
func applyPaths(m bson.M, fields map[string]interface{}) error {
	for path, value := range fields {
		parts := strings.Split(path, ".")
		cur := m
		for _, part := range parts[:len(parts)-1] {
			next, ok := asBSONMap(cur[part])
			if !ok {
				if cur[part] != nil {
					return fmt.Errorf("cannot set %q: %q is not a document", path, part)
				}
				next = bson.M{}
			}
			cur[part] = next
			cur = next
		}
		cur[parts[len(parts)-1]] = value
	}
	return nil
}

func asBSONMap(v interface{}) (bson.M, bool) {
	switch t := v.(type) {
	case primitive.M:
		return bson.M(t), true
	case map[string]interface{}:
		return bson.M(t), true
	case primitive.D:
		return t.Map(), true
	}
	return nil, false
}
