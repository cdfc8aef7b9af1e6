package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestTextPlain(t *testing.T) {
	out, err := Text("offer.txt", []byte("Skupaj: 67.400 EUR"))
	require.NoError(t, err)
	assert.Equal(t, "Skupaj: 67.400 EUR", out)
}

func TestTextUnsupported(t *testing.T) {
	_, err := Text("offer.xlsx", []byte{0x50, 0x4b})
	assert.Error(t, err)
}

func TestTextDocx(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Project offer</w:t></w:r></w:p>
    <w:p><w:r><w:t>Total: </w:t></w:r><w:r><w:t>25.000 EUR</w:t></w:r></w:p>
  </w:body>
</w:document>`
	out, err := Text("ponudba.docx", buildDocx(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "Project offer\nTotal: 25.000 EUR", out)
}

func TestTextDocxMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("other.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Text("broken.docx", buf.Bytes())
	assert.Error(t, err)
}

func TestTextDocxNotAZip(t *testing.T) {
	_, err := Text("broken.docx", []byte("not a zip archive"))
	assert.Error(t, err)
}

func TestTextPdfInvalid(t *testing.T) {
	_, err := Text("broken.pdf", []byte("not a pdf"))
	assert.Error(t, err)
}
