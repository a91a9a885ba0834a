package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devconnect/internal/domain/entity"
	"devconnect/internal/domain/repository"
)

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(ProfilesCollection)}
}

// Upsert is a single FindOneAndUpdate round trip, so the exists-check and the
// write cannot race: concurrent calls for the same user land on one document.
func (r *ProfileRepository) Upsert(ctx context.Context, userID string, fields map[string]any) (*entity.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"user":       oid,
			"experience": []entity.Experience{},
			"created_at": time.Now().UTC(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	p := &entity.Profile{}
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"user": oid}, update, opts).Decode(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) GetByUser(ctx context.Context, userID string) (*entity.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	p := &entity.Profile{}
	if err := r.col.FindOne(ctx, bson.M{"user": oid}).Decode(p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]entity.Profile, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	out := make([]entity.Profile, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddExperience prepends atomically with $push/$position so the newest-first
// order holds even under concurrent writers.
func (r *ProfileRepository) AddExperience(ctx context.Context, userID string, exp entity.Experience) (*entity.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	update := bson.M{
		"$push": bson.M{
			"experience": bson.M{
				"$each":     []entity.Experience{exp},
				"$position": 0,
			},
		},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	p := &entity.Profile{}
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"user": oid}, update, opts).Decode(p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) DeleteByUser(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repository.ErrNotFound
	}
	// Deleting a missing profile is not an error; the account delete continues.
	_, err = r.col.DeleteOne(ctx, bson.M{"user": oid})
	return err
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
