package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirpyerre/account-portal/internal/core/domain"
)

const usersCollection = "users"

// UserRepository implements ports.UserRepository on MongoDB. The unique index
// on firebase_uid (see EnsureIndexes) makes GetOrCreate race-safe.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(usersCollection)}
}

type userDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FirebaseUID string             `bson:"firebase_uid"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:          d.ID.Hex(),
		FirebaseUID: d.FirebaseUID,
		Name:        d.Name,
		Email:       d.Email,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func (r *UserRepository) FindByUID(ctx context.Context, uid string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.col.FindOne(ctx, bson.M{"firebase_uid": uid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// GetOrCreate upserts with $setOnInsert so an existing record is returned
// untouched. The pre-image tells whether this call inserted the document.
func (r *UserRepository) GetOrCreate(ctx context.Context, user *domain.User) (*domain.User, bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"firebase_uid": user.FirebaseUID}
	update := bson.M{"$setOnInsert": bson.M{
		"firebase_uid": user.FirebaseUID,
		"name":         user.Name,
		"email":        user.Email,
		"created_at":   user.CreatedAt.UTC(),
		"updated_at":   user.UpdatedAt.UTC(),
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	var before userDocument
	err := r.col.FindOneAndUpdate(opCtx, filter, update, opts).Decode(&before)
	switch {
	case err == nil:
		return before.toDomain(), false, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		created, err := r.FindByUID(ctx, user.FirebaseUID)
		if err != nil {
			return nil, false, fmt.Errorf("read created user: %w", err)
		}
		return created, true, nil
	case mongo.IsDuplicateKeyError(err):
		// Two upserts raced on the unique index; the other one inserted.
		existing, err := r.FindByUID(ctx, user.FirebaseUID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	default:
		return nil, false, fmt.Errorf("upsert user: %w", err)
	}
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"firebase_uid": user.FirebaseUID},
		bson.M{"$set": bson.M{
			"name":       user.Name,
			"email":      user.Email,
			"updated_at": user.UpdatedAt.UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List returns users ordered by _id, which follows insertion order.
func (r *UserRepository) List(ctx context.Context, offset, limit int64) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(offset).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, len(docs))
	for i := range docs {
		users[i] = docs[i].toDomain()
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the unique firebase_uid index and the email index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "firebase_uid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
