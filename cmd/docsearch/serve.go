package main

import (
	"fmt"

	dshttp "github.com/fwojciec/docsearch/http"
)

// Run executes the serve command. It serves until the context is cancelled,
// then shuts down gracefully.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := dshttp.NewServer()
	s.Addr = c.Addr
	s.StaticDir = c.Static
	s.RateLimit = c.RateLimit
	s.Burst = c.Burst
	s.Searcher = deps.Searcher
	s.Index = deps.Index
	s.Logger = deps.Logger

	deps.Logger.Info("serving search index", "entries", deps.Index.Len())
	if err := s.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	<-deps.Ctx.Done()
	deps.Logger.Info("shutting down")
	return s.Close()
}
