package main

import (
	"context"
	"errors"

	dsmcp "github.com/fwojciec/docsearch/mcp"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Run executes the mcp command. Protocol messages use stdin and stdout, so
// everything else goes to the logger.
func (c *MCPCmd) Run(deps *Dependencies) error {
	deps.Logger.Info("mcp server ready", "tool", dsmcp.SearchToolName, "entries", deps.Index.Len())
	err := dsmcp.NewServer(deps.Searcher, version).Run(deps.Ctx, &mcp.StdioTransport{})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
