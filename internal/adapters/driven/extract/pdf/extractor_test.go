package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_RejectsNonPDFData(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract([]byte("this is not a pdf"))
	assert.Error(t, err)
}

func TestExtract_RejectsEmptyData(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(nil)
	assert.Error(t, err)
}
