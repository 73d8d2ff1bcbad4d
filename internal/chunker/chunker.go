// Package chunker splits raw document text into retrievable units.
package chunker

import (
	"strings"

	"github.com/docuchat-labs/docuchat/internal/core/domain"
)

// separator is the chunk boundary: a blank line between paragraphs.
const separator = "\n\n"

// Chunker splits text on blank-line boundaries. This is a structural
// heuristic, not semantic segmentation; units may be of arbitrary length.
type Chunker struct{}

// New creates a blank-line chunker.
func New() *Chunker {
	return &Chunker{}
}

// Split returns the non-empty trimmed paragraphs of rawText in original
// order. The same input always yields the same sequence. Returns
// domain.ErrEmptyDocument when nothing remains after trimming.
func (c *Chunker) Split(rawText string) ([]string, error) {
	parts := strings.Split(rawText, separator)

	chunks := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		chunks = append(chunks, part)
	}

	if len(chunks) == 0 {
		return nil, domain.ErrEmptyDocument
	}
	return chunks, nil
}
