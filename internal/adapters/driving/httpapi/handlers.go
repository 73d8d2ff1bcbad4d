package httpapi

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docuchat-labs/docuchat/internal/core/domain"
	"github.com/docuchat-labs/docuchat/internal/logger"
)

// chatRequest is the body of POST /chat.
type chatRequest struct {
	Query string `json:"query"`
}

// handleRoot reports liveness.
func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Chatbot backend is running."})
}

// handleListDocuments returns one entry per ingested document.
func (s *Server) handleListDocuments(c *gin.Context) {
	refs, err := s.documents.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if refs == nil {
		refs = []domain.DocumentRef{}
	}
	c.JSON(http.StatusOK, refs)
}

// handleGetDocument returns the full chunked text of one document,
// addressed by any of its chunk IDs.
func (s *Server) handleGetDocument(c *gin.Context) {
	doc, err := s.documents.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// handleDeleteDocument removes a document and all its chunks.
func (s *Server) handleDeleteDocument(c *gin.Context) {
	deleted, err := s.documents.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "deleted_count": deleted})
}

// handleUploadPDF accepts a multipart PDF upload, extracts its text and
// runs the ingestion pipeline.
func (s *Server) handleUploadPDF(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "missing file upload"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(c, err)
		return
	}

	text, err := s.extractor.Extract(data)
	if err != nil {
		logger.Warn("failed to extract text from %q: %v", fileHeader.Filename, err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "failed to extract text from PDF"})
		return
	}

	result, err := s.ingest.Ingest(c.Request.Context(), fileHeader.Filename, text)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"chunks_stored": result.Stored,
		"ids":           result.ChunkIDs,
	})
}

// handleChat answers a question grounded on the ingested documents.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	answer, err := s.chat.Answer(c.Request.Context(), req.Query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
