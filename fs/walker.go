// Package fs provides file-based content discovery and index storage.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/docsearch"
)

// DefaultBasePath is the site path that the content root is served at.
const DefaultBasePath = "/docs"

// DefaultPageName is the file name that marks a content page.
const DefaultPageName = "page.mdx"

// Ensure Walker implements docsearch.ContentSource at compile time.
var _ docsearch.ContentSource = (*Walker)(nil)

// Walker discovers content pages in a directory tree. Each page lives in a
// file named after one of PageNames and is served at the URL of its
// directory.
type Walker struct {
	root string

	// BasePath is the site path of the content root.
	BasePath string

	// PageNames lists the file names that mark a page.
	PageNames []string
}

// NewWalker creates a Walker rooted at root.
func NewWalker(root string) *Walker {
	return &Walker{
		root:      root,
		BasePath:  DefaultBasePath,
		PageNames: []string{DefaultPageName},
	}
}

// Discover walks the content tree in lexical order. Directories whose name
// starts with a dot are skipped.
func (w *Walker) Discover(ctx context.Context) ([]docsearch.SourceFile, error) {
	info, err := os.Stat(w.root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, docsearch.Errorf(docsearch.ENOTFOUND, "content root %q not found", w.root)
	} else if err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, docsearch.Errorf(docsearch.EINVALID, "content root %q is not a directory", w.root)
	}

	var files []docsearch.SourceFile
	err = filepath.WalkDir(w.root, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if p != w.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !slices.Contains(w.PageNames, d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(w.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		files = append(files, docsearch.SourceFile{
			Path: rel,
			URL:  PathToURL(w.BasePath, rel),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// ReadFile returns the content of a discovered page.
func (w *Walker) ReadFile(ctx context.Context, file docsearch.SourceFile) (string, error) {
	data, err := os.ReadFile(filepath.Join(w.root, filepath.FromSlash(file.Path)))
	if errors.Is(err, os.ErrNotExist) {
		return "", docsearch.Errorf(docsearch.ENOTFOUND, "page %q not found", file.Path)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}

// PathToURL converts the slash-separated path of a page file, relative to
// the content root, into the site URL of the page.
// Example: ("/docs", "sdk/openai/page.mdx") → /docs/sdk/openai
func PathToURL(basePath, rel string) string {
	dir := strings.TrimSuffix(strings.TrimSuffix(rel, path.Base(rel)), "/")
	if dir == "" {
		return basePath
	}
	return strings.TrimSuffix(basePath, "/") + "/" + dir
}
