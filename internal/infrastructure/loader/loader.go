// Package loader reads classification inputs from the local filesystem:
// plain text, JSON payloads, and PDF documents.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

type FileLoader struct{}

func New() *FileLoader {
	return &FileLoader{}
}

func (l *FileLoader) LoadText(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("not a UTF-8 text file: %s", path)
	}
	return strings.TrimSpace(string(raw)), nil
}

func (l *FileLoader) LoadJSON(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json file: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse json file: %w", err)
	}
	return data, nil
}

// LoadPDFText concatenates the plain text of every page. Pages whose text
// layer cannot be read are skipped; an entirely unreadable document returns
// an error.
func (l *FileLoader) LoadPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	readPages := 0
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
		readPages++
	}
	if readPages == 0 {
		return "", fmt.Errorf("no readable text in pdf: %s", path)
	}
	return strings.TrimSpace(sb.String()), nil
}
