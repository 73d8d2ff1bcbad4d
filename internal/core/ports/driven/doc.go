// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - ChunkStore: chunk persistence grouped by document
//   - EmbeddingService: turns text into embedding vectors
//   - AnswerGenerator: produces grounded natural-language answers
//   - TextExtractor: pulls raw text out of uploaded document bytes
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
