// Package domain defines the core business entities for docuchat.
//
// This package is the hexagonal architecture's innermost layer. It defines
// the fundamental types:
//
//   - Chunk: a stored unit of document text with its embedding
//   - DocumentRef: a listing entry for one logical document
//   - DocumentText: a document reconstructed from its chunks
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
