package database

import (
	"context"
	"fmt"
	"time"

	"bookingadmin/config"
	"bookingadmin/database/docstore"

	firebase "firebase.google.com/go/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Open connects the document store selected by STORE_BACKEND.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (docstore.Store, error) {
	switch cfg.StoreBackend {
	case "mongo":
		client, err := ConnectMongo(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to MongoDB", zap.String("database", cfg.DatabaseName))
		return docstore.NewMongoStore(client, cfg.DatabaseName, logger), nil

	case "firestore":
		store, err := ConnectFirestore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to Firestore", zap.String("project", cfg.FirebaseProjectID))
		return store, nil

	case "memory":
		logger.Warn("Using the in-memory document store; data is lost on restart")
		return docstore.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

// ConnectMongo dials and pings MongoDB.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// ConnectFirestore initializes the Firebase app and returns its Firestore database.
func ConnectFirestore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*docstore.FirestoreStore, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}
	var fbConfig *firebase.Config
	if cfg.FirebaseProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Firestore client: %w", err)
	}
	return docstore.NewFirestoreStore(client, logger), nil
}
