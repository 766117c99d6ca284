package main

import (
	"fmt"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/indexer"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	entries, result, err := deps.Builder.Build(deps.Ctx, func(event indexer.ProgressEvent) {
		switch event.Type {
		case indexer.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "skipped %s: %s\n", event.Path, docsearch.ErrorMessage(event.Error))
		case indexer.ProgressCompleted:
			deps.Logger.Debug("indexed page", "path", event.Path, "url", event.URL, "completed", event.Completed, "total", event.Total)
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Generated search index with %d entries\n", len(entries))
	if result.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "Indexed %d pages to %s, skipped %d\n", result.Pages, deps.IndexPath, result.Skipped)
	} else {
		fmt.Fprintf(deps.Stdout, "Indexed %d pages to %s\n", result.Pages, deps.IndexPath)
	}
	return nil
}
