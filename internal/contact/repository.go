package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultCollection holds contact documents.
const DefaultCollection = "contacts"

// Store persists contacts.
type Store interface {
	Create(ctx context.Context, c *Contact) error
	FindByID(ctx context.Context, id string) (Contact, error)
	List(ctx context.Context, f Filter) ([]Contact, int64, error)
	UpdateStatus(ctx context.Context, id string, status Status, at time.Time) (Contact, error)
}

// DatabaseProvider hands out a ready database. *mongo.Connector satisfies it.
type DatabaseProvider interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

// Repository is the MongoDB Store.
type Repository struct {
	db         DatabaseProvider
	collection string
}

type RepositoryOption func(*Repository)

func WithCollection(name string) RepositoryOption {
	return func(r *Repository) {
		if name != "" {
			r.collection = name
		}
	}
}

func NewRepository(db DatabaseProvider, opts ...RepositoryOption) *Repository {
	r := &Repository{db: db, collection: DefaultCollection}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) coll(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(r.collection), nil
}

// EnsureIndexes creates the indexes List relies on. It is idempotent.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	coll, err := r.coll(ctx)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create contact indexes: %w", err)
	}
	return nil
}

func (r *Repository) Create(ctx context.Context, c *Contact) error {
	coll, err := r.coll(ctx)
	if err != nil {
		return err
	}
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}
	if _, err := coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (Contact, error) {
	oid, err := ParseID(id)
	if err != nil {
		return Contact{}, err
	}
	coll, err := r.coll(ctx)
	if err != nil {
		return Contact{}, err
	}

	var c Contact
	if err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&c); err != nil {
		return Contact{}, notFound("find contact", err)
	}
	return c, nil
}

func (r *Repository) List(ctx context.Context, f Filter) ([]Contact, int64, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := listQuery(f)
	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(f.Skip())
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cur, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find contacts: %w", err)
	}
	items := []Contact{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode contacts: %w", err)
	}
	return items, total, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status, at time.Time) (Contact, error) {
	oid, err := ParseID(id)
	if err != nil {
		return Contact{}, err
	}
	coll, err := r.coll(ctx)
	if err != nil {
		return Contact{}, err
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: status},
		{Key: "updatedAt", Value: at},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c Contact
	if err := coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&c); err != nil {
		return Contact{}, notFound("update contact status", err)
	}
	return c, nil
}

// ParseID converts a hex string to an ObjectID.
func ParseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

func listQuery(f Filter) bson.D {
	if f.Status == "" {
		return bson.D{}
	}
	return bson.D{{Key: "status", Value: f.Status}}
}

func notFound(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
