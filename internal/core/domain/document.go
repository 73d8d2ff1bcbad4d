package domain

import "time"

// Chunk is the unit of storage and retrieval: one contiguous piece of a
// document's text together with its embedding vector.
//
// Documents have no record of their own. A document exists only as the set
// of chunks sharing a filename, so the filename acts as the document's
// logical key. Re-uploading a file with the same name merges into the same
// logical document when listed or fetched.
type Chunk struct {
	// ID is the store-assigned unique identifier.
	ID string

	// Filename is the owning document's logical key.
	Filename string

	// Index is the zero-based position of the chunk within the original
	// document text. Stored indices may have gaps when some chunks were
	// skipped during ingestion; Index is "original position", not
	// "storage order".
	Index int

	// Text is the chunk content, non-empty after trimming.
	Text string

	// Embedding is the vector representation. All stored chunks share the
	// dimensionality produced by the embedding service.
	Embedding []float32

	// UploadedAt is a denormalized copy of the document's upload time,
	// assigned once per ingestion batch.
	UploadedAt time.Time
}

// DocumentRef is a listing entry for one logical document. ID is the
// identifier of the document's earliest-inserted chunk and doubles as the
// handle for fetching and deleting the whole document.
type DocumentRef struct {
	ID         string    `json:"_id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"upload_date"`
}

// ChunkText is a chunk's position and content without its embedding.
type ChunkText struct {
	Index int    `json:"chunk_index"`
	Text  string `json:"text"`
}

// DocumentText is the full reconstructed content of one logical document,
// chunks ordered by index.
type DocumentText struct {
	Filename string      `json:"filename"`
	Chunks   []ChunkText `json:"chunks"`
}

// IngestResult reports the outcome of ingesting one document.
type IngestResult struct {
	// Stored is the number of chunks persisted with embeddings.
	Stored int

	// ChunkIDs are the store-assigned identifiers of the persisted chunks,
	// in original chunk order.
	ChunkIDs []string
}
