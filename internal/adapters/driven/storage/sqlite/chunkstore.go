// Package sqlite implements the chunk store on an embedded SQLite
// database, for single-node deployments that do not want to run MongoDB.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/docuchat-labs/docuchat/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/docuchat-labs/docuchat/internal/core/domain"
	"github.com/docuchat-labs/docuchat/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is a SQLite-backed implementation of driven.ChunkStore.
type ChunkStore struct {
	db   *sql.DB
	path string
}

// NewChunkStore opens (or creates) the database under dataDir and runs
// pending migrations. If dataDir is empty, defaults to
// ~/.docuchat/data/chunks.db.
func NewChunkStore(dataDir string) (*ChunkStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docuchat", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "chunks.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &ChunkStore{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *ChunkStore) Path() string {
	return s.path
}

// Insert stores one chunk under a generated UUID.
func (s *ChunkStore) Insert(ctx context.Context, chunk domain.Chunk) (string, error) {
	id := uuid.New().String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chunks (id, filename, chunk_index, text, embedding, upload_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, chunk.Filename, chunk.Index, chunk.Text,
		float32SliceToBytes(chunk.Embedding),
		chunk.UploadedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("inserting chunk: %w", err)
	}
	return id, nil
}

// ListDocuments returns one entry per filename in first-insertion order,
// represented by the earliest-inserted chunk.
func (s *ChunkStore) ListDocuments(ctx context.Context) ([]domain.DocumentRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, upload_date
		FROM chunks
		WHERE rowid IN (SELECT MIN(rowid) FROM chunks GROUP BY filename)
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var refs []domain.DocumentRef //nolint:prealloc // size unknown from query
	for rows.Next() {
		var ref domain.DocumentRef
		var uploadDate string
		if err := rows.Scan(&ref.ID, &ref.Filename, &uploadDate); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		ref.UploadedAt, err = time.Parse(time.RFC3339, uploadDate)
		if err != nil {
			return nil, fmt.Errorf("parsing upload date of %q: %w", ref.Filename, err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
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

	rows, err := s.db.QueryContext(ctx, `
		SELECT chunk_index, text
		FROM chunks WHERE filename = ?
		ORDER BY chunk_index
	`, filename)
	if err != nil {
		return nil, fmt.Errorf("querying chunks of %q: %w", filename, err)
	}
	defer rows.Close()

	doc := &domain.DocumentText{Filename: filename}
	for rows.Next() {
		var ct domain.ChunkText
		if err := rows.Scan(&ct.Index, &ct.Text); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		doc.Chunks = append(doc.Chunks, ct)
	}
	if err := rows.Err(); err != nil {
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

	res, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE filename = ?", filename)
	if err != nil {
		return 0, fmt.Errorf("deleting chunks of %q: %w", filename, err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted chunks: %w", err)
	}
	return deleted, nil
}

// ScanAll streams every chunk's text and embedding through fn in
// insertion order.
func (s *ChunkStore) ScanAll(ctx context.Context, fn func(driven.ChunkVector) error) error {
	rows, err := s.db.QueryContext(ctx, "SELECT text, embedding FROM chunks ORDER BY rowid")
	if err != nil {
		return fmt.Errorf("scanning chunks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var text string
		var blob []byte
		if err := rows.Scan(&text, &blob); err != nil {
			return fmt.Errorf("scanning chunk: %w", err)
		}
		if err := fn(driven.ChunkVector{Text: text, Embedding: bytesToFloat32Slice(blob)}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating chunks: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *ChunkStore) Close(_ context.Context) error {
	return s.db.Close()
}

// resolveFilename looks up the chunk owning chunkID and returns its
// filename.
func (s *ChunkStore) resolveFilename(ctx context.Context, chunkID string) (string, error) {
	var filename string
	err := s.db.QueryRowContext(ctx,
		"SELECT filename FROM chunks WHERE id = ?", chunkID).Scan(&filename)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolving chunk %s: %w", chunkID, err)
	}
	return filename, nil
}

// migrate runs all pending migrations.
func (s *ChunkStore) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
