package repositories

import (
	"context"
	"fmt"

	"firstblog/app/models"

	"github.com/boltdb/bolt"
)

var postsBucket = []byte("posts")

// BoltPostRepository implements PostRepository on a single Bolt bucket.
// Keys are big-endian bucket sequence numbers, so cursor order is creation
// order.
type BoltPostRepository struct {
	db *bolt.DB
}

// NewBoltPostRepository makes sure the posts bucket exists.
func NewBoltPostRepository(db *bolt.DB) (*BoltPostRepository, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(postsBucket); err != nil {
			return fmt.Errorf("could not ensure bucket %q exists: %w", postsBucket, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &BoltPostRepository{db: db}, nil
}

func (r *BoltPostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(postsBucket)
		id, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("could not allocate post id: %w", err)
		}
		post.ID = formatID(id)

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		if err := b.Put(itob(id), data); err != nil {
			return fmt.Errorf("could not put post %d: %w", id, err)
		}
		return nil
	})
}

func (r *BoltPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var post models.Post
	err = r.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(postsBucket).Get(itob(n))
		if data == nil {
			return fmt.Errorf("post %q: %w", id, ErrNotFound)
		}
		return unmarshalEntity(data, &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *BoltPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(postsBucket).ForEach(func(_, v []byte) error {
			var post models.Post
			if err := unmarshalEntity(v, &post); err != nil {
				return err
			}
			posts = append(posts, &post)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}
