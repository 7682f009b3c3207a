package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

type memFile struct {
	name string
	*bytes.Reader
}

func (f memFile) Name() string { return f.name }

func newMemFile(name string, data []byte) memFile {
	return memFile{name: name, Reader: bytes.NewReader(data)}
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	entry, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := entry.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestTextPlainFile(t *testing.T) {
	t.Parallel()

	got, err := Text(newMemFile("brief.txt", []byte("  A growing software company.\n")))
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if got != "A growing software company." {
		t.Fatalf("Text() = %q", got)
	}
}

func TestTextDocxParagraphs(t *testing.T) {
	t.Parallel()

	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	got, err := Text(newMemFile("brief.docx", buildDocx(t, doc)))
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if got != "First paragraph.\nSecond paragraph." {
		t.Fatalf("Text() = %q", got)
	}
}

func TestTextDocxIgnoresNonTextElements(t *testing.T) {
	t.Parallel()

	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t>Visible text.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	got, err := Text(newMemFile("styled.docx", buildDocx(t, doc)))
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if got != "Visible text." {
		t.Fatalf("Text() = %q", got)
	}
}

func TestTextDocxMissingDocument(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	entry, err := w.Create("word/other.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := entry.Write([]byte("<x/>")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	if _, err := Text(newMemFile("broken.docx", buf.Bytes())); err == nil {
		t.Fatal("Text() should fail for a docx without word/document.xml")
	}
}

func TestTextUnsupportedExtension(t *testing.T) {
	t.Parallel()

	_, err := Text(newMemFile("image.png", []byte{0x89, 0x50}))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Text() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestTextExtensionIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	got, err := Text(newMemFile("BRIEF.TXT", []byte("upper case name")))
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if !strings.Contains(got, "upper case name") {
		t.Fatalf("Text() = %q", got)
	}
}

func TestTextNilFile(t *testing.T) {
	t.Parallel()

	if _, err := Text(nil); err == nil {
		t.Fatal("Text(nil) should fail")
	}
}
