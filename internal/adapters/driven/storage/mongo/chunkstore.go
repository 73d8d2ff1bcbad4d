// Package mongo implements the chunk store on MongoDB. One document per
// chunk, grouped into logical documents by filename.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docuchat-labs/docuchat/internal/core/domain"
	"github.com/docuchat-labs/docuchat/internal/core/ports/driven"
)

// Default connection settings.
const (
	DefaultURI        = "mongodb://localhost:27017"
	DefaultDatabase   = "chatbot_db"
	DefaultCollection = "pdf_chunks"

	connectTimeout = 5 * time.Second
)

// Config holds MongoDB connection settings.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// DefaultConfig returns a config pointing at a local MongoDB.
func DefaultConfig() Config {
	return Config{
		URI:        DefaultURI,
		Database:   DefaultDatabase,
		Collection: DefaultCollection,
	}
}

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is a MongoDB-backed implementation of driven.ChunkStore.
type ChunkStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// chunkDoc is the BSON shape of one stored chunk. Timestamps are kept as
// RFC 3339 strings so documents stay readable in the shell.
type chunkDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Filename   string             `bson:"filename"`
	ChunkIndex int                `bson:"chunk_index"`
	Text       string             `bson:"text"`
	Embedding  []float32          `bson:"embedding"`
	UploadDate string             `bson:"upload_date"`
}

// NewChunkStore connects to MongoDB and pings it before returning, so a
// misconfigured URI fails at startup rather than on the first request.
func NewChunkStore(ctx context.Context, cfg Config) (*ChunkStore, error) {
	if cfg.URI == "" {
		cfg = DefaultConfig()
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return &ChunkStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Insert stores one chunk and returns its ObjectID in hex form.
func (s *ChunkStore) Insert(ctx context.Context, chunk domain.Chunk) (string, error) {
	res, err := s.collection.InsertOne(ctx, chunkDoc{
		Filename:   chunk.Filename,
		ChunkIndex: chunk.Index,
		Text:       chunk.Text,
		Embedding:  chunk.Embedding,
		UploadDate: chunk.UploadedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("inserting chunk: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// ListDocuments returns one entry per filename, represented by the
// earliest-inserted chunk. ObjectIDs encode insertion time, so sorting on
// _id before grouping picks the first chunk of each document.
func (s *ChunkStore) ListDocuments(ctx context.Context) ([]domain.DocumentRef, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$filename"},
			{Key: "first_id", Value: bson.D{{Key: "$first", Value: "$_id"}}},
			{Key: "upload_date", Value: bson.D{{Key: "$first", Value: "$upload_date"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "first_id", Value: 1}}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregating documents: %w", err)
	}
	defer cursor.Close(ctx)

	var refs []domain.DocumentRef
	for cursor.Next(ctx) {
		var row struct {
			Filename   string             `bson:"_id"`
			FirstID    primitive.ObjectID `bson:"first_id"`
			UploadDate string             `bson:"upload_date"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decoding document group: %w", err)
		}

		uploadedAt, err := time.Parse(time.RFC3339, row.UploadDate)
		if err != nil {
			return nil, fmt.Errorf("parsing upload date of %q: %w", row.Filename, err)
		}

		refs = append(refs, domain.DocumentRef{
			ID:         row.FirstID.Hex(),
			Filename:   row.Filename,
			UploadedAt: uploadedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating document groups: %w", err)
	}

	return refs, nil
}

// GetDocument resolves chunkID to its filename and returns every chunk of
// that document ordered by chunk index.
func (s *ChunkStore) GetDocument(ctx context.Context, chunkID string) (*domain.DocumentText, error) {
	filename, err := s.resolveFilename(ctx, chunkID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "chunk_index", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{"filename": filename}, opts)
	if err != nil {
		return nil, fmt.Errorf("finding chunks of %q: %w", filename, err)
	}
	defer cursor.Close(ctx)

	doc := &domain.DocumentText{Filename: filename}
	for cursor.Next(ctx) {
		var row chunkDoc
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decoding chunk: %w", err)
		}
		doc.Chunks = append(doc.Chunks, domain.ChunkText{Index: row.ChunkIndex, Text: row.Text})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return doc, nil
}

// DeleteDocument resolves chunkID to its filename and removes every chunk
// sharing it.
func (s *ChunkStore) DeleteDocument(ctx context.Context, chunkID string) (int64, error) {
	filename, err := s.resolveFilename(ctx, chunkID)
	if err != nil {
		return 0, err
	}

	res, err := s.collection.DeleteMany(ctx, bson.M{"filename": filename})
	if err != nil {
		return 0, fmt.Errorf("deleting chunks of %q: %w", filename, err)
	}
	return res.DeletedCount, nil
}

// ScanAll streams every chunk's text and embedding through fn in _id
// order, without loading the collection into memory.
func (s *ChunkStore) ScanAll(ctx context.Context, fn func(driven.ChunkVector) error) error {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"text": 1, "embedding": 1})

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("scanning chunks: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var row chunkDoc
		if err := cursor.Decode(&row); err != nil {
			return fmt.Errorf("decoding chunk: %w", err)
		}
		if err := fn(driven.ChunkVector{Text: row.Text, Embedding: row.Embedding}); err != nil {
			return err
		}
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("iterating chunks: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *ChunkStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// resolveFilename looks up the chunk owning chunkID and returns its
// filename. A malformed ID cannot match anything and maps to not found.
func (s *ChunkStore) resolveFilename(ctx context.Context, chunkID string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(chunkID)
	if err != nil {
		return "", domain.ErrNotFound
	}

	var row struct {
		Filename string `bson:"filename"`
	}
	err = s.collection.FindOne(ctx, bson.M{"_id": oid},
		options.FindOne().SetProjection(bson.M{"filename": 1})).Decode(&row)
	if err == mongo.ErrNoDocuments {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolving chunk %s: %w", chunkID, err)
	}
	return row.Filename, nil
}
