// Package mcpserver exposes the item catalog over the Model Context Protocol.
package mcpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Laurian/scp-mcp/internal/dataset"
	"github.com/Laurian/scp-mcp/internal/store"
	"github.com/Laurian/scp-mcp/internal/version"
)

// ServerName is the implementation name advertised during the MCP handshake.
const ServerName = "scp-mcp"

// ConvertFunc converts raw item HTML to markdown.
type ConvertFunc func(html string) (string, error)

// Server wires the dataset loader and item store into MCP tools.
type Server struct {
	loader  *dataset.Loader
	store   *store.Store
	convert ConvertFunc
	server  *mcp.Server
}

// NewServer creates the MCP server. The store may be nil when no database
// has been imported yet; tools that need it report that in their output.
func NewServer(loader *dataset.Loader, st *store.Store, convert ConvertFunc) *Server {
	impl := &mcp.Implementation{
		Name:    ServerName,
		Version: version.String(),
	}

	s := &Server{
		loader:  loader,
		store:   st,
		convert: convert,
		server:  mcp.NewServer(impl, nil),
	}
	s.registerTools()
	return s
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr until the context is
// cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
