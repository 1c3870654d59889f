package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/document-validator-api/internal/testutil"
)

func TestExtractPDF(t *testing.T) {
	data := testutil.SamplePDF(t, "Name: Jane Doe", "Address: 12 Elm Street")

	text, err := ExtractPDF(data)
	require.NoError(t, err)

	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Elm Street")
	t.Logf("Extracted PDF text:\n%s", text)
}

func TestExtractPDF_AllPages(t *testing.T) {
	data := testutil.MultiPagePDF(t, "first page body", "second page body")

	text, err := ExtractPDF(data)
	require.NoError(t, err)

	first := strings.Index(text, "first page body")
	second := strings.Index(text, "second page body")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestExtractPDF_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "plain text", data: []byte("this is not a pdf")},
		{name: "truncated header", data: []byte("%PDF-1.4\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractPDF(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestExtractPDFFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.pdf")
	require.NoError(t, os.WriteFile(path, testutil.SamplePDF(t, "Invoice 42"), 0o644))

	text, err := ExtractPDFFile(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Invoice 42")

	_, err = ExtractPDFFile(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestPDFExtractor_Extract(t *testing.T) {
	e := NewPDFExtractor()

	res, err := e.Extract(context.Background(), testutil.SamplePDF(t, "Name: Jane Doe"))
	require.NoError(t, err)
	assert.Contains(t, res.Text, "Jane Doe")
	assert.False(t, strings.HasSuffix(res.Text, "\n"))
}

func TestPDFExtractor_ExtractFailure(t *testing.T) {
	e := NewPDFExtractor()

	_, err := e.Extract(context.Background(), []byte("not a pdf"))
	require.Error(t, err)

	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to extract text: "))
}

func TestPDFExtractor_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPDFExtractor().Extract(ctx, testutil.SamplePDF(t, "x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPageCount_Invalid(t *testing.T) {
	_, err := PageCount([]byte("not a pdf"))
	assert.Error(t, err)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "ligature", in: "ﬁrst ﬂoor", want: "first floor"},
		{name: "crlf and blank lines", in: "a\r\n\r\n  b  \rc", want: "a\nb\nc"},
		{name: "nul bytes", in: "na\x00me", want: "name"},
		{name: "full width digits", in: "１２３", want: "123"},
		{name: "empty", in: " \n\t\n", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanText(tt.in))
		})
	}
}
