package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/docsearch"
)

type searchJSON struct {
	Query   string                 `json:"query"`
	Results []docsearch.IndexEntry `json:"results"`
	Total   int                    `json:"total"`
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Searcher.Search(deps.Ctx, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(searchJSON{Query: c.Query, Results: results, Total: len(results)})
	}

	out, err := deps.Renderer.Render(docsearch.FormatResults(c.Query, results))
	if err != nil {
		return fmt.Errorf("render results: %w", err)
	}
	fmt.Fprint(deps.Stdout, out)
	return nil
}
