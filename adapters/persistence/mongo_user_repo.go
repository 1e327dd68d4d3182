package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/khoahotran/rentredi/internal/domain/user"
	"github.com/khoahotran/rentredi/pkg/apperror"
)

// userDocument is the flat document stored in the users collection.
type userDocument struct {
	ID        string   `bson:"_id"`
	Name      string   `bson:"name"`
	ZipCode   string   `bson:"zipCode"`
	Latitude  *float64 `bson:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty"`
	Timezone  *int     `bson:"timezone,omitempty"`
}

func toUserDocument(u user.User) userDocument {
	return userDocument{
		ID:        u.ID,
		Name:      u.Name,
		ZipCode:   u.ZipCode,
		Latitude:  u.Latitude,
		Longitude: u.Longitude,
		Timezone:  u.Timezone,
	}
}

func (d userDocument) toDomain() user.User {
	return user.User{
		ID:        d.ID,
		Name:      d.Name,
		ZipCode:   d.ZipCode,
		Latitude:  d.Latitude,
		Longitude: d.Longitude,
		Timezone:  d.Timezone,
	}
}

type mongoUserRepo struct {
	collection *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) user.Repository {
	return &mongoUserRepo{collection: db.Collection(UsersCollection)}
}

func (r *mongoUserRepo) Create(ctx context.Context, d user.Draft) (user.User, error) {
	u := d.WithID(uuid.NewString())
	if _, err := r.collection.InsertOne(ctx, toUserDocument(u)); err != nil {
		return user.User{}, apperror.NewInternal("failed to save user", err)
	}
	return u, nil
}

func (r *mongoUserRepo) List(ctx context.Context) ([]user.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperror.NewInternal("failed to list users", err)
	}
	defer cursor.Close(ctx)

	users := make([]user.User, 0)
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperror.NewInternal("failed to decode user", err)
		}
		users = append(users, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating users", err)
	}
	return users, nil
}

func (r *mongoUserRepo) FindByID(ctx context.Context, id string) (user.User, bool, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, false, nil
		}
		return user.User{}, false, apperror.NewInternal("failed to get user", err)
	}
	return doc.toDomain(), true, nil
}

func (r *mongoUserRepo) Update(ctx context.Context, id string, p user.Patch) (user.User, bool, error) {
	current, found, err := r.FindByID(ctx, id)
	if err != nil || !found {
		return user.User{}, found, err
	}

	merged := current.Apply(p)
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, toUserDocument(merged))
	if err != nil {
		return user.User{}, false, apperror.NewInternal("failed to update user", err)
	}
	if res.MatchedCount == 0 {
		return user.User{}, false, nil
	}
	return merged, true, nil
}

func (r *mongoUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, apperror.NewInternal("failed to delete user", err)
	}
	return res.DeletedCount > 0, nil
}
