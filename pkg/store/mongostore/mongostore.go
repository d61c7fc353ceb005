// Package mongostore implements store.Store on a MongoDB collection.
//
// Each venue has one document in the collection (default "tablelayouts"):
//
//	{club: <venue id>, name: <layout name>, tables: [...], createdAt, updatedAt}
//
// Tables use the same field names as the HTTP wire format. Saves are upserts
// keyed by club, guarded by a unique index.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/tableplan/pkg/store"
)

// DefaultCollection is the collection used when Config.Collection is empty.
const DefaultCollection = "tablelayouts"

// Config locates the collection.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// Store is a MongoDB-backed layout store.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *log.Logger
	now    func() time.Time
}

type record struct {
	Club      string              `bson:"club"`
	Name      string              `bson:"name"`
	Tables    []store.TableRecord `bson:"tables"`
	CreatedAt time.Time           `bson:"createdAt,omitempty"`
	UpdatedAt time.Time           `bson:"updatedAt"`
}

// Open connects, pings and ensures the club index exists.
func Open(ctx context.Context, cfg Config, logger *log.Logger) (*Store, error) {
	if cfg.URI == "" || cfg.Database == "" {
		return nil, errors.New("mongostore: uri and database are required")
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if logger == nil {
		logger = log.Default()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "club", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create club index: %w", err)
	}

	logger.Debug("mongo layout store ready", "database", cfg.Database, "collection", cfg.Collection)
	return &Store{client: client, coll: coll, logger: logger, now: time.Now}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Fetch implements store.Store.
func (s *Store) Fetch(ctx context.Context, venueID string) (*store.Document, error) {
	var rec record
	err := s.coll.FindOne(ctx, filter(venueID)).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find layout: %w", err)
	}
	doc := fromRecord(rec, s.logger.With("venue", venueID))
	return &doc, nil
}

// Put implements store.Store.
func (s *Store) Put(ctx context.Context, venueID string, doc store.Document) error {
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = s.now()
	}
	_, err := s.coll.UpdateOne(ctx, filter(venueID), update(venueID, doc), options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert layout: %w", err)
	}
	return nil
}

func filter(venueID string) bson.D {
	return bson.D{{Key: "club", Value: venueID}}
}

func update(venueID string, doc store.Document) bson.D {
	rec := toRecord(venueID, doc)
	return bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "name", Value: rec.Name},
			{Key: "tables", Value: rec.Tables},
			{Key: "updatedAt", Value: rec.UpdatedAt},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "club", Value: rec.Club},
			{Key: "createdAt", Value: rec.UpdatedAt},
		}},
	}
}

func toRecord(venueID string, doc store.Document) record {
	rec := store.EncodeDocument(doc)
	return record{Club: venueID, Name: rec.Name, Tables: rec.Tables, UpdatedAt: doc.UpdatedAt}
}

func fromRecord(rec record, logger *log.Logger) store.Document {
	doc := store.DecodeDocument(store.LayoutRecord{Name: rec.Name, Tables: rec.Tables}, logger)
	doc.UpdatedAt = rec.UpdatedAt
	return doc
}

var _ store.Store = (*Store)(nil)
