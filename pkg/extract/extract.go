// Package extract turns uploaded resume files into plain text.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MaxBytes is the upload size ceiling.
const MaxBytes = 5 << 20 // 5MB

var (
	ErrTooLarge    = fmt.Errorf("file too large: limit is %d bytes", int64(MaxBytes))
	ErrUnsupported = errors.New("unsupported file format: only pdf and docx are allowed")
)

// Text extracts plain text from a PDF or DOCX file.
func Text(filename string, data []byte) (string, error) {
	if int64(len(data)) > MaxBytes {
		return "", ErrTooLarge
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return fromPDF(data)
	case ".docx":
		return fromDocx(data)
	default:
		return "", ErrUnsupported
	}
}

func fromPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return normalizeWhitespace(buf.String()), nil
}

func fromDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()
	content := doc.Editable().GetContent()
	// GetContent returns raw document.xml; keep paragraph breaks, drop tags.
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	content = reTags.ReplaceAllString(content, " ")
	return normalizeWhitespace(content), nil
}

var (
	reTags   = regexp.MustCompile(`<[^>]+>`)
	reSpaces = regexp.MustCompile(`[ \t\r\f\v]+`)
	reLines  = regexp.MustCompile(`\n+`)
)

func normalizeWhitespace(s string) string {
	s = reSpaces.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " ", " ")
	s = reLines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
