package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct{ coll *mongo.Collection }

// userDoc es la forma persistida de repository.User.
type userDoc struct {
	ID         string    `bson:"_id"`
	ExternalID string    `bson:"social_id"`
	Name       string    `bson:"name"`
	Email      string    `bson:"email"`
	Nick       string    `bson:"nick"`
	Provider   string    `bson:"provider"`
	CreatedAt  time.Time `bson:"created_at"`
}

func (d userDoc) toDomain() repository.User {
	return repository.User{
		ID:         d.ID,
		ExternalID: d.ExternalID,
		Name:       d.Name,
		Email:      d.Email,
		Nick:       d.Nick,
		Provider:   repository.Provider(d.Provider),
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

func (r *userRepo) findOne(ctx context.Context, op string, filter bson.D) (*repository.User, error) {
	var d userDoc
	err := r.coll.FindOne(ctx, filter).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: %s: %w", op, err)
	}
	u := d.toDomain()
	return &u, nil
}

func (r *userRepo) FindByExternalID(ctx context.Context, externalID string) ([]repository.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{{Key: "social_id", Value: externalID}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo: find by external id: %w", err)
	}
	defer cur.Close(ctx)

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decode users: %w", err)
	}
	out := make([]repository.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *userRepo) FindByProviderID(ctx context.Context, provider repository.Provider, externalID string) (*repository.User, error) {
	return r.findOne(ctx, "find by provider id", bson.D{
		{Key: "social_id", Value: externalID},
		{Key: "provider", Value: string(provider)},
	})
}

func (r *userRepo) FindByNick(ctx context.Context, nick string) (*repository.User, error) {
	return r.findOne(ctx, "find by nick", bson.D{{Key: "nick", Value: nick}})
}

func (r *userRepo) FindByEmailAndProvider(ctx context.Context, email string, provider repository.Provider) (*repository.User, error) {
	return r.findOne(ctx, "find by email", bson.D{
		{Key: "email", Value: email},
		{Key: "provider", Value: string(provider)},
	})
}

func (r *userRepo) Create(ctx context.Context, in repository.CreateUserInput) (*repository.User, error) {
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	d := userDoc{
		ID:         uuid.NewString(),
		ExternalID: in.ExternalID,
		Name:       in.Name,
		Email:      in.Email,
		Nick:       in.Nick,
		Provider:   string(in.Provider),
		// BSON guarda milisegundos
		CreatedAt: createdAt.UTC().Truncate(time.Millisecond),
	}
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("mongo: create user: %w", err)
	}
	u := d.toDomain()
	return &u, nil
}
