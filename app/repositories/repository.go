package repositories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	"github.com/dgraph-io/badger/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Storage drivers understood by Open.
const (
	DriverBadger   = "badger"
	DriverBolt     = "bolt"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Options selects and locates the document store.
type Options struct {
	Driver string `json:"driver" validate:"oneof=badger bolt mongo postgres"`
	// Path is the badger directory or bolt file. An empty badger path opens
	// an in-memory database.
	Path string `json:"path"`
	// URI is the mongo connection string or postgres DSN.
	URI string `json:"uri" validate:"required_if=Driver mongo,required_if=Driver postgres"`
	// Database names the mongo database.
	Database string `json:"database"`
}

// Store is an opened PostRepository together with the handle that owns its
// connection.
type Store struct {
	Posts  PostRepository
	driver string
	close  func() error
}

// Driver reports which backend the store was opened with.
func (s *Store) Driver() string {
	return s.driver
}

func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to the configured document store.
func Open(ctx context.Context, opts Options) (*Store, error) {
	switch opts.Driver {
	case DriverBadger, "":
		db, err := OpenBadger(opts.Path)
		if err != nil {
			return nil, err
		}
		repo := NewBadgerPostRepository(db)
		return &Store{
			Posts:  repo,
			driver: DriverBadger,
			close: func() error {
				if err := repo.Release(); err != nil {
					log.WithField("err", err).Warn("Could not release post sequence")
				}
				return db.Close()
			},
		}, nil

	case DriverBolt:
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0700); err != nil {
			return nil, fmt.Errorf("could not ensure directory for %q exists: %w", opts.Path, err)
		}
		db, err := bolt.Open(opts.Path, 0600, &bolt.Options{Timeout: time.Second})
		if err != nil {
			return nil, fmt.Errorf("could not open bolt database %q: %w", opts.Path, err)
		}
		repo, err := NewBoltPostRepository(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return &Store{Posts: repo, driver: DriverBolt, close: db.Close}, nil

	case DriverMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			client.Disconnect(context.Background())
			return nil, fmt.Errorf("ping mongo: %w", err)
		}
		database := opts.Database
		if database == "" {
			database = "firstblog"
		}
		return &Store{
			Posts:  NewMongoPostRepository(client.Database(database)),
			driver: DriverMongo,
			close:  func() error { return client.Disconnect(context.Background()) },
		}, nil

	case DriverPostgres:
		pool, err := pgxpool.New(ctx, opts.URI)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		repo, err := NewPostgresPostRepository(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Posts:  repo,
			driver: DriverPostgres,
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
}

// OpenBadger opens the badger database at path, or an in-memory one when
// path is empty. Badger's own logging goes through logrus.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(log.WithField("component", "badger")).
		WithLoggingLevel(badger.WARNING)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("could not open badger database %q: %w", path, err)
	}
	return db, nil
}
