package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore talks to the hosted Firestore database the booking widget writes to.
type FirestoreStore struct {
	client *firestore.Client
	logger *zap.Logger
}

type firestoreDocument struct {
	snap *firestore.DocumentSnapshot
}

func (d firestoreDocument) ID() string { return d.snap.Ref.ID }

func (d firestoreDocument) DataTo(v interface{}) error {
	return d.snap.DataTo(v)
}

// NewFirestoreStore wraps a Firestore client obtained from the Firebase app.
func NewFirestoreStore(client *firestore.Client, logger *zap.Logger) *FirestoreStore {
	return &FirestoreStore{client: client, logger: logger}
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch %s/%s: %w", collection, id, err)
	}
	return firestoreDocument{snap: snap}, nil
}

func (s *FirestoreStore) List(ctx context.Context, collection string) ([]Document, error) {
	iter := s.client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", collection, err)
		}
		docs = append(docs, firestoreDocument{snap: snap})
	}
	return docs, nil
}

func (s *FirestoreStore) Create(ctx context.Context, collection, id string, doc interface{}) error {
	if _, err := s.client.Collection(collection).Doc(id).Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("%s/%s: %w", collection, id, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, id string, doc interface{}) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, doc); err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Merge(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, nestPaths(fields), firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to merge %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, toUpdates(fields)); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
		}
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	return nil
}

// UpdateMany queues every update on a BulkWriter; each document write succeeds or fails on its own.
func (s *FirestoreStore) UpdateMany(ctx context.Context, collection string, updates map[string]map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	bw := s.client.BulkWriter(ctx)
	jobs := make(map[string]*firestore.BulkWriterJob, len(updates))
	var errs []error
	for id, fields := range updates {
		job, err := bw.Update(s.client.Collection(collection).Doc(id), toUpdates(fields))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s/%s: %w", collection, id, err))
			continue
		}
		jobs[id] = job
	}
	bw.End()

	for id, job := range jobs {
		if _, err := job.Results(); err != nil {
			if status.Code(err) == codes.NotFound {
				err = ErrNotFound
			}
			errs = append(errs, fmt.Errorf("%s/%s: %w", collection, id, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d updates failed: %w", len(errs), len(updates), errors.Join(errs...))
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
		}
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Exists(ctx context.Context, collection string) (bool, error) {
	snaps, err := s.client.Collection(collection).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return false, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return len(snaps) > 0, nil
}

func (s *FirestoreStore) Watch(ctx context.Context, collection string) (<-chan struct{}, error) {
	iter := s.client.Collection(collection).Snapshots(ctx)

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer iter.Stop()
		for {
			if _, err := iter.Next(); err != nil {
				if ctx.Err() == nil && status.Code(err) != codes.Canceled {
					s.logger.Error("snapshot listener stopped", zap.String("collection", collection), zap.Error(err))
				}
				return
			}
			notify(ch)
		}
	}()
	return ch, nil
}

func (s *FirestoreStore) Ping(ctx context.Context) error {
	_, err := s.client.Collection(Config).Limit(1).Documents(ctx).GetAll()
	return err
}

func (s *FirestoreStore) Close(ctx context.Context) error {
	return s.client.Close()
}

func toUpdates(fields map[string]interface{}) []firestore.Update {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	return updates
}

// nestPaths turns {"a.b": 1} into {"a": {"b": 1}} as required by MergeAll.
func nestPaths(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for path, value := range fields {
		parts := strings.Split(path, ".")
		cur := out
		for _, part := range parts[:len(parts)-1] {
			next, ok := cur[part].(map[string]interface{})
			if !ok {
				next = make(map[string]interface{})
				cur[part] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = value
	}
	return out
}
