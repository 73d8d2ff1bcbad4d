package driven

// TextExtractor pulls plain text out of uploaded document bytes.
// Resource handling (temp files, reader cleanup) belongs to the
// implementation, not to core.
type TextExtractor interface {
	// Extract returns the document's plain text.
	Extract(data []byte) (string, error)
}
