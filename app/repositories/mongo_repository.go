package repositories

import (
	"context"
	"errors"
	"fmt"

	"firstblog/app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostsCollection is the collection holding post documents.
const PostsCollection = "posts"

// MongoPostRepository stores posts as documents in MongoDB. Identifiers are
// ObjectID hex strings.
type MongoPostRepository struct {
	coll *mongo.Collection
}

func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{coll: db.Collection(PostsCollection)}
}

func (r *MongoPostRepository) Create(ctx context.Context, post *models.Post) error {
	doc := bson.M{
		"title":      post.Title,
		"author":     post.Author,
		"body":       post.Body,
		"created_at": post.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("insert post: unexpected id type %T", res.InsertedID)
	}
	post.ID = oid.Hex()
	return nil
}

func (r *MongoPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", id, ErrNotFound)
	}

	var post models.Post
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("post %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find post %q: %w", id, err)
	}
	return &post, nil
}

func (r *MongoPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	posts := []*models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}
