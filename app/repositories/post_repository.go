package repositories

import (
	"context"
	"fmt"
	"sync"

	"firstblog/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB.
// Identifiers come from a badger sequence, so concurrent creates never
// contend on a shared counter key.
type BadgerPostRepository struct {
	db *badger.DB

	mu  sync.Mutex
	seq *badger.Sequence
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// nextID leases the sequence on first use. Sequence numbers start at zero
// and identifiers at one.
func (r *BadgerPostRepository) nextID() (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seq == nil {
		seq, err := r.db.GetSequence([]byte(PostSeqKey), postSeqBandwidth)
		if err != nil {
			return 0, fmt.Errorf("failed to lease sequence: %w", err)
		}
		r.seq = seq
	}
	n, err := r.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence: %w", err)
	}
	return n + 1, nil
}

// Release returns the unused part of the sequence lease. Call it before
// closing the database.
func (r *BadgerPostRepository) Release() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seq == nil {
		return nil
	}
	err := r.seq.Release()
	r.seq = nil
	return err
}

// Create creates a new post. post.ID is only set once the post is stored.
func (r *BadgerPostRepository) Create(ctx context.Context, post *models.Post) error {
	id, err := r.nextID()
	if err != nil {
		return err
	}

	stored := *post
	stored.ID = formatID(id)
	data, err := marshalEntity(&stored)
	if err != nil {
		return err
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(postKey(id), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store post: %w", err)
	}
	post.ID = stored.ID
	return nil
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var post models.Post
	err = r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(n))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("post %q: %w", id, ErrNotFound)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves all posts in creation order
func (r *BadgerPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}
