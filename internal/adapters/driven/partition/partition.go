// Package partition provides the built-in processing step applied to fetched
// documents. It produces the JSON artifact each document's output path
// expects: file metadata plus the raw text content.
package partition

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
)

// Ensure JSONPartitioner implements the interface.
var _ driven.Partitioner = (*JSONPartitioner)(nil)

// Element is one partitioned unit of a document.
type Element struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Artifact is the JSON envelope written for every processed document.
type Artifact struct {
	Filename    string    `json:"filename"`
	SizeBytes   int64     `json:"size_bytes"`
	SHA256      string    `json:"sha256"`
	ProcessedAt time.Time `json:"processed_at"`
	Elements    []Element `json:"elements"`
}

// JSONPartitioner turns a downloaded file into a structured JSON artifact.
type JSONPartitioner struct{}

// New creates the default partitioner.
func New() *JSONPartitioner {
	return &JSONPartitioner{}
}

// Partition reads the file at downloadPath and writes its artifact to
// outputPath, creating parent directories as needed. Binary content is
// described by its digest only; its bytes are not embedded.
func (p *JSONPartitioner) Partition(_ context.Context, downloadPath, outputPath string) error {
	f, err := os.Open(downloadPath)
	if err != nil {
		return fmt.Errorf("opening download: %w", err)
	}
	defer f.Close()

	hash := sha256.New()
	content, err := io.ReadAll(io.TeeReader(f, hash))
	if err != nil {
		return fmt.Errorf("reading %s: %w", downloadPath, err)
	}

	artifact := Artifact{
		Filename:    filepath.Base(downloadPath),
		SizeBytes:   int64(len(content)),
		SHA256:      hex.EncodeToString(hash.Sum(nil)),
		ProcessedAt: time.Now().UTC(),
		Elements:    []Element{},
	}
	if utf8.Valid(content) {
		artifact.Elements = append(artifact.Elements, Element{Type: "Text", Text: string(content)})
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(artifact); err != nil {
		return fmt.Errorf("encoding artifact: %w", err)
	}
	return nil
}
