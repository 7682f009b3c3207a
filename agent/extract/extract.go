// Package extract turns uploaded client documents into the plain text
// the classifier and generation agents consume.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

var ErrUnsupportedFormat = errors.New("unsupported document format")

// File is the minimal surface extraction needs from an upload: a name
// to pick the decoder by extension, and the bytes.
type File interface {
	io.Reader
	Name() string
}

// Text extracts plain text from a client document. Supported formats
// are .txt, .docx, and .pdf; anything else returns
// ErrUnsupportedFormat.
func Text(f File) (string, error) {
	if f == nil {
		return "", fmt.Errorf("file is nil")
	}

	name := f.Name()
	ext := strings.ToLower(filepath.Ext(name))

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}

	switch ext {
	case ".txt":
		return strings.TrimSpace(string(data)), nil
	case ".docx":
		text, err := docxText(data)
		if err != nil {
			return "", fmt.Errorf("extract docx %s: %w", name, err)
		}
		return text, nil
	case ".pdf":
		text, err := pdfText(data)
		if err != nil {
			return "", fmt.Errorf("extract pdf %s: %w", name, err)
		}
		return text, nil
	default:
		log.Error().Str("file", name).Str("extension", ext).Msg("unsupported document format")
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}
