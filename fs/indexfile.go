package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/docsearch"
)

// Ensure IndexFile implements docsearch.IndexReader and docsearch.IndexWriter at compile time.
var (
	_ docsearch.IndexReader = (*IndexFile)(nil)
	_ docsearch.IndexWriter = (*IndexFile)(nil)
)

// IndexFile stores the index as a JSON array with atomic update semantics.
// Writes go to a temporary file next to the target, which is renamed over
// the target once complete.
type IndexFile struct {
	path string
}

// NewIndexFile creates a new IndexFile at path.
func NewIndexFile(path string) *IndexFile {
	return &IndexFile{path: path}
}

// Path returns the location of the index file.
func (f *IndexFile) Path() string {
	return f.path
}

func (f *IndexFile) tempPath() string {
	return f.path + ".tmp"
}

// ReadIndex loads all entries in file order.
func (f *IndexFile) ReadIndex(ctx context.Context) ([]docsearch.IndexEntry, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, docsearch.Errorf(docsearch.ENOTFOUND, "index file %q not found", f.path)
	} else if err != nil {
		return nil, err
	}

	entries, err := DecodeIndex(data)
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "index file %q: %v", f.path, err)
	}
	return entries, nil
}

// WriteIndex replaces the index file with entries.
func (f *IndexFile) WriteIndex(ctx context.Context, entries []docsearch.IndexEntry) error {
	data, err := EncodeIndex(entries)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(f.tempPath(), data, 0644); err != nil {
		return err
	}

	// Atomically replace the previous index
	if err := os.Rename(f.tempPath(), f.path); err != nil {
		_ = os.Remove(f.tempPath())
		return err
	}

	return nil
}

// EncodeIndex formats entries as a JSON array indented by two spaces.
// HTML characters are written as-is.
func EncodeIndex(entries []docsearch.IndexEntry) ([]byte, error) {
	if entries == nil {
		entries = []docsearch.IndexEntry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DecodeIndex parses a JSON array of entries. Unknown fields are ignored.
func DecodeIndex(data []byte) ([]docsearch.IndexEntry, error) {
	var entries []docsearch.IndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []docsearch.IndexEntry{}
	}
	return entries, nil
}
