package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Laurian/scp-mcp/internal/convert"
	"github.com/Laurian/scp-mcp/internal/dataset"
	"github.com/Laurian/scp-mcp/internal/logger"
	"github.com/Laurian/scp-mcp/internal/mcpserver"
	"github.com/Laurian/scp-mcp/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Serve the item catalog over the Model Context Protocol.

The default stdio transport is what MCP clients expect; the HTTP
transport exposes the same tools on a local address.

Examples:
  scp-mcp serve
  scp-mcp serve --transport http --port 8000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.StringP("transport", "t", "stdio", "transport protocol: stdio, http")
	flags.String("host", "", "HTTP server host")
	flags.IntP("port", "p", 0, "HTTP server port")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := initRun()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	transport, _ := cmd.Flags().GetString("transport")
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.HTTPHost = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.HTTPPort = port
	}

	loader := dataset.New(cfg.DataPath)

	// The store is optional for serving; without an import only the
	// dataset-backed tools have data.
	var st *store.Store
	if _, err := os.Stat(cfg.DBPath); err == nil {
		st, err = store.Open(cfg.DBPath, cfg.DBTable)
		if err != nil {
			logError("opening store: %v", err)
			return err
		}
		defer func() { _ = st.Close() }()
	} else {
		logger.Debug("no store database, serving from dataset only", "path", cfg.DBPath)
	}

	srv := mcpserver.NewServer(loader, st, convert.HTMLToMarkdown)

	switch transport {
	case "http":
		logInfo("Serving MCP over HTTP on %s", cfg.HTTPAddr())
		return srv.RunHTTP(ctx, cfg.HTTPAddr())
	case "stdio", "":
		logInfo("Serving MCP over stdio")
		return srv.Run(ctx)
	default:
		return fmt.Errorf("unknown transport: %s (use 'stdio' or 'http')", transport)
	}
}
