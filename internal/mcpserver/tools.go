package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Laurian/scp-mcp/internal/dataset"
	"github.com/Laurian/scp-mcp/internal/logger"
	"github.com/Laurian/scp-mcp/internal/scp"
	"github.com/Laurian/scp-mcp/internal/version"
)

// errNotImplemented marks tools whose backing index does not exist yet.
var errNotImplemented = errors.New("not implemented")

// ItemInput identifies a single item. The identifier accepts any spelling
// the normalizer understands (SCP-XXXX, bare number, or page link).
type ItemInput struct {
	Identifier     string `json:"identifier" jsonschema:"SCP identifier (SCP-XXXX, number, or link)"`
	IncludeContent bool   `json:"include_content,omitempty" jsonschema:"include heavy content fields"`
}

// SearchInput is the input schema for search_items.
type SearchInput struct {
	Query     string   `json:"query,omitempty" jsonschema:"natural language or keyword search"`
	Tags      []string `json:"tags,omitempty" jsonschema:"filter by categorization tags"`
	Series    string   `json:"series,omitempty" jsonschema:"filter by series (e.g. series-1, joke, archive)"`
	MinRating int      `json:"min_rating,omitempty" jsonschema:"minimum community rating threshold"`
	Limit     int      `json:"limit,omitempty" jsonschema:"results per page (max 100)"`
	Cursor    string   `json:"cursor,omitempty" jsonschema:"pagination token"`
}

// RelatedInput is the input schema for get_related.
type RelatedInput struct {
	Identifier  string `json:"identifier" jsonschema:"SCP identifier (SCP-XXXX, number, or link)"`
	IncludeHubs bool   `json:"include_hubs,omitempty" jsonschema:"include hub page references"`
}

// RandomInput is the input schema for random_item.
type RandomInput struct {
	Tags   []string `json:"tags,omitempty" jsonschema:"filter by tags"`
	Series string   `json:"series,omitempty" jsonschema:"filter by series"`
}

type emptyInput struct{}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_items",
		Description: "Search SCP items with semantic ranking",
	}, s.handleSearchItems)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_item",
		Description: "Retrieve a specific SCP item by identifier",
	}, s.handleGetItem)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_item_content",
		Description: "Get AI-optimized markdown content for a specific item",
	}, s.handleGetItemContent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_related",
		Description: "Find items related to the given item",
	}, s.handleGetRelated)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "random_item",
		Description: "Get a random SCP item with optional filtering",
	}, s.handleRandomItem)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sync_index",
		Description: "Synchronize data from the upstream SCP data source",
	}, s.handleSyncIndex)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "version_info",
		Description: "Get current system version and dataset info",
	}, s.handleVersionInfo)
}

func (s *Server) handleGetItem(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ItemInput,
) (*mcp.CallToolResult, scp.Item, error) {
	item, err := s.loadItem(input.Identifier)
	if err != nil {
		return nil, scp.Item{}, err
	}

	out := *item
	if !input.IncludeContent {
		out.RawSource = ""
		out.RawContent = ""
		out.Markdown = ""
		out.Summary = ""
	}
	return nil, out, nil
}

func (s *Server) handleGetItemContent(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ItemInput,
) (*mcp.CallToolResult, scp.ContentResponse, error) {
	item, err := s.loadItem(input.Identifier)
	if err != nil {
		return nil, scp.ContentResponse{}, err
	}

	resp := scp.ContentResponse{
		Markdown:      item.Markdown,
		URL:           item.URL,
		ContentSHA1:   item.ContentSHA1,
		DatasetCommit: item.DatasetCommit,
	}

	if resp.Markdown == "" && s.convert != nil && item.RawContent != "" {
		md, convErr := s.convert(item.RawContent)
		if convErr != nil {
			logger.Debug("conversion failed, serving raw content", "id", input.Identifier, "error", convErr)
		} else {
			resp.Markdown = md
		}
	}
	if resp.Markdown == "" {
		resp.RawContent = item.RawContent
		resp.RawSource = item.RawSource
		resp.Fallback = true
	}
	return nil, resp, nil
}

func (s *Server) handleVersionInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ emptyInput,
) (*mcp.CallToolResult, scp.VersionInfo, error) {
	info := scp.VersionInfo{
		ServerInfo: map[string]string{
			"app_version": version.String(),
			"commit":      version.Commit,
			"go_version":  runtime.Version(),
		},
	}
	if s.loader != nil {
		info.DatasetCommit = s.loader.Commit()
	}
	if s.store != nil {
		count, err := s.store.Count(ctx)
		if err != nil {
			return nil, scp.VersionInfo{}, fmt.Errorf("counting store items: %w", err)
		}
		info.StoreItems = count
	}
	return nil, info, nil
}

func (s *Server) handleSearchItems(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ SearchInput,
) (*mcp.CallToolResult, scp.SearchResult, error) {
	return nil, scp.SearchResult{}, fmt.Errorf("search_items: %w", errNotImplemented)
}

func (s *Server) handleGetRelated(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ RelatedInput,
) (*mcp.CallToolResult, scp.SearchResult, error) {
	return nil, scp.SearchResult{}, fmt.Errorf("get_related: %w", errNotImplemented)
}

func (s *Server) handleRandomItem(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ RandomInput,
) (*mcp.CallToolResult, scp.Hit, error) {
	return nil, scp.Hit{}, fmt.Errorf("random_item: %w", errNotImplemented)
}

func (s *Server) handleSyncIndex(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ emptyInput,
) (*mcp.CallToolResult, scp.SyncResult, error) {
	return nil, scp.SyncResult{}, fmt.Errorf("sync_index: %w", errNotImplemented)
}

func (s *Server) loadItem(identifier string) (*scp.Item, error) {
	if s.loader == nil {
		return nil, errors.New("no dataset configured")
	}
	item, err := s.loader.Load(identifier)
	if errors.Is(err, dataset.ErrNotFound) {
		return nil, fmt.Errorf("item %s not found in current snapshot", identifier)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}
