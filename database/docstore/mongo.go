package docstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoStore keeps each collection in a Mongo collection of the same name. Documents are
// addressed by their "id" field, which carries a unique index; "_id" is left to the driver.
// Documents written by other clients without an "id" are addressed by their ObjectID hex.
type MongoStore struct {
	client  *mongo.Client
	db      *mongo.Database
	logger  *zap.Logger
	indexed sync.Map
}

type mongoDocument struct {
	id  string
	raw bson.Raw
}

func (d mongoDocument) ID() string { return d.id }

func (d mongoDocument) DataTo(v interface{}) error {
	return bson.Unmarshal(d.raw, v)
}

// NewMongoStore wraps a connected client.
func NewMongoStore(client *mongo.Client, database string, logger *zap.Logger) *MongoStore {
	return &MongoStore{
		client: client,
		db:     client.Database(database),
		logger: logger,
	}
}

// coll returns the collection, creating its id index on first use.
func (s *MongoStore) coll(name string) *mongo.Collection {
	c := s.db.Collection(name)
	if _, done := s.indexed.LoadOrStore(name, true); !done {
		if err := ensureIDIndex(c); err != nil {
			s.logger.Warn("failed to create id index", zap.String("collection", name), zap.Error(err))
		}
	}
	return c
}

// filterFor matches the document whose "id" is id or, when id is an ObjectID hex, whose "_id" is it.
func filterFor(id string) bson.M {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return bson.M{"id": id}
	}
	return bson.M{"$or": bson.A{bson.M{"id": id}, bson.M{"_id": oid}}}
}

func ensureIDIndex(c *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (Document, error) {
	raw, err := s.coll(collection).FindOne(ctx, filterFor(id)).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch %s/%s: %w", collection, id, err)
	}
	return mongoDocument{id: id, raw: raw}, nil
}

func (s *MongoStore) List(ctx context.Context, collection string) ([]Document, error) {
	cursor, err := s.coll(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	for cursor.Next(ctx) {
		raw := make(bson.Raw, len(cursor.Current))
		copy(raw, cursor.Current)
		id, _ := raw.Lookup("id").StringValueOK()
		if id == "" {
			// Documents inserted by other writers may only carry an ObjectID.
			if oid, ok := raw.Lookup("_id").ObjectIDOK(); ok {
				id = oid.Hex()
			}
		}
		docs = append(docs, mongoDocument{id: id, raw: raw})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", collection, err)
	}
	return docs, nil
}

func (s *MongoStore) Create(ctx context.Context, collection, id string, doc interface{}) error {
	m, err := toMap(id, doc)
	if err != nil {
		return err
	}
	if _, err := s.coll(collection).InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s/%s: %w", collection, id, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *MongoStore) Set(ctx context.Context, collection, id string, doc interface{}) error {
	m, err := toMap(id, doc)
	if err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll(collection).ReplaceOne(ctx, filterFor(id), m, opts); err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *MongoStore) Merge(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	opts := options.Update().SetUpsert(true)
	if _, err := s.coll(collection).UpdateOne(ctx, filterFor(id), bson.M{"$set": fields, "$setOnInsert": bson.M{"id": id}}, opts); err != nil {
		return fmt.Errorf("failed to merge %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	res, err := s.coll(collection).UpdateOne(ctx, filterFor(id), bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) UpdateMany(ctx context.Context, collection string, updates map[string]map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(updates))
	for id, fields := range updates {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(filterFor(id)).
			SetUpdate(bson.M{"$set": fields}))
	}

	res, err := s.coll(collection).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", collection, err)
	}
	if int(res.MatchedCount) != len(updates) {
		return fmt.Errorf("%s: matched %d of %d documents: %w", collection, res.MatchedCount, len(updates), ErrNotFound)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.coll(collection).DeleteOne(ctx, filterFor(id))
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) Exists(ctx context.Context, collection string) (bool, error) {
	n, err := s.coll(collection).CountDocuments(ctx, bson.M{}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count %s: %w", collection, err)
	}
	return n > 0, nil
}

// Watch opens a change stream; it requires a replica set or sharded cluster.
func (s *MongoStore) Watch(ctx context.Context, collection string) (<-chan struct{}, error) {
	stream, err := s.coll(collection).Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", collection, err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			notify(ch)
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			s.logger.Error("change stream stopped", zap.String("collection", collection), zap.Error(err))
		}
	}()
	return ch, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
