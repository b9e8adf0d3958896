package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewsRepo interface {
	CreateReview(ctx context.Context, review *Review) (*Review, error)
	GetReviewByID(ctx context.Context, ownerId uuid.UUID, reviewId primitive.ObjectID) (*Review, error)
	GetReviewsByOwner(ctx context.Context, ownerId uuid.UUID) ([]*Review, error)
	UpdateReview(ctx context.Context, ownerId uuid.UUID, reviewId primitive.ObjectID, fields bson.M) (*Review, error)
	DeleteReview(ctx context.Context, ownerId uuid.UUID, reviewId primitive.ObjectID) error
	EnsureReviewIndexes(ctx context.Context) error
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, dbName, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	col := mdb.mongodbClient.Database(dbName).Collection(colName)
	return col, nil
}

// EnsureReviewIndexes creates the owner index backing the one unfiltered
// owner query every list starts from.
func (mdb *MongodbRepo) EnsureReviewIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("owner_id_idx"),
		},
		{
			Keys: bson.D{
				{Key: "owner_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("owner_created_at_idx"),
		},
	}

	_, err = col.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("error creating indexes: %v", err)
	}

	return nil
}

func (mdb *MongodbRepo) CreateReview(ctx context.Context, review *Review) (*Review, error) {
	if err := Validate.Struct(review); err != nil {
		return nil, fmt.Errorf("invalid review data: %w", err)
	}
	if review.OwnerID == uuid.Nil {
		return nil, fmt.Errorf("invalid owner ID")
	}

	if err := review.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare review for creation: %w", err)
	}

	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	_, err = col.InsertOne(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("failed to insert review into database: %w", err)
	}

	return review, nil
}

func (mdb *MongodbRepo) GetReviewByID(ctx context.Context, ownerId uuid.UUID, reviewId primitive.ObjectID) (*Review, error) {
	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var review Review
	err = col.FindOne(ctx, bson.M{"_id": reviewId, "owner_id": ownerId}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("error finding review: %v", err)
	}

	return &review, nil
}

// GetReviewsByOwner fetches the owner's full unfiltered set in one query;
// all ordering happens client-side on the returned snapshot.
func (mdb *MongodbRepo) GetReviewsByOwner(ctx context.Context, ownerId uuid.UUID) ([]*Review, error) {
	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, bson.M{"owner_id": ownerId})
	if err != nil {
		return nil, fmt.Errorf("error finding reviews: %v", err)
	}
	defer cursor.Close(ctx)

	reviews := []*Review{}
	for cursor.Next(ctx) {
		var r Review
		if err := cursor.Decode(&r); err != nil {
			return nil, fmt.Errorf("error decoding review: %v", err)
		}
		reviews = append(reviews, &r)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return reviews, nil
}

// UpdateReview replaces the given fields on an owner's review. Callers
// build the field set from a normalized record; owner_id and created_at are
// stripped here so an edit can never reassign ownership or rewrite the
// creation timestamp.
func (mdb *MongodbRepo) UpdateReview(ctx context.Context, ownerId uuid.UUID, reviewId primitive.ObjectID, fields bson.M) (*Review, error) {
	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	delete(fields, "owner_id")
	delete(fields, "owner_email")
	delete(fields, "created_at")
	delete(fields, "_id")
	fields["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Review
	err = col.FindOneAndUpdate(ctx,
		bson.M{"_id": reviewId, "owner_id": ownerId},
		bson.M{"$set": fields},
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("error updating review: %v", err)
	}

	return &updated, nil
}

func (mdb *MongodbRepo) DeleteReview(ctx context.Context, ownerId uuid.UUID, reviewId primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": reviewId, "owner_id": ownerId})
	if err != nil {
		return fmt.Errorf("error deleting review: %v", err)
	}
	if res.DeletedCount == 0 {
		return ErrReviewNotFound
	}

	return nil
}
