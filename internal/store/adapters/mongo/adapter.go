// Package mongo implementa el adapter MongoDB usando go.mongodb.org/mongo-driver.
//
// Los usuarios viven en la colección "app_users". La unicidad de nick y del par
// (social_id, provider) la garantizan índices únicos creados por Migrate.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	store "github.com/dropDatabas3/socialauth/internal/store"
)

// UsersCollection es la colección de usuarios.
const UsersCollection = "app_users"

func init() {
	store.RegisterAdapter(&mongoAdapter{})
}

type mongoAdapter struct{}

func (a *mongoAdapter) Name() string { return "mongo" }

func (a *mongoAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.AdapterConnection, error) {
	if cfg.DSN == "" {
		return nil, errors.New("mongo: empty uri")
	}
	dbName := cfg.Database
	if dbName == "" {
		dbName = "socialauth"
	}

	opts := options.Client().ApplyURI(cfg.DSN).SetConnectTimeout(10 * time.Second)
	if cfg.MaxOpenConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxOpenConns))
	}
	if cfg.MaxIdleConns > 0 {
		opts.SetMinPoolSize(uint64(cfg.MaxIdleConns))
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping failed: %w", err)
	}
	db := client.Database(dbName)
	return &mongoConnection{client: client, users: db.Collection(UsersCollection)}, nil
}

type mongoConnection struct {
	client *mongo.Client
	users  *mongo.Collection
}

func (c *mongoConnection) Name() string { return "mongo" }

func (c *mongoConnection) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *mongoConnection) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

func (c *mongoConnection) Users() repository.UserRepository { return &userRepo{coll: c.users} }

// Migrate asegura los índices de la colección de usuarios.
func (c *mongoConnection) Migrate(ctx context.Context) (*store.MigrationResult, error) {
	start := time.Now()
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "nick", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("nick_unique"),
		},
		{
			Keys:    bson.D{{Key: "social_id", Value: 1}, {Key: "provider", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("social_provider_unique"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "provider", Value: 1}},
			Options: options.Index().SetName("email_provider"),
		},
	}
	if _, err := c.users.Indexes().CreateMany(ctx, models); err != nil {
		return nil, fmt.Errorf("mongo: create indexes: %w", err)
	}
	return &store.MigrationResult{Applied: []int{1}, Duration: time.Since(start)}, nil
}
