package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/starred/internal/ops"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
// All tools are read-only: publishing stays on the CLI where the token and
// repository flags are explicit.
var toolRegistry = map[string]toolEntry{
	"stars_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"stars_render": {
		def:     renderToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRender },
	},
	"stars_check": {
		def:     checkToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCheck },
	},
}

var listToolDef = mcp.NewTool("stars_list",
	mcp.WithDescription("List a GitHub user's starred repositories grouped by language."),
	mcp.WithString("username",
		mcp.Description("GitHub username; falls back to the configured username."),
	),
	mcp.WithString("sort",
		mcp.Description("Order within each language: date, name, or stars."),
	),
)

var renderToolDef = mcp.NewTool("stars_render",
	mcp.WithDescription("Render a GitHub user's starred repositories as an awesome-list markdown document."),
	mcp.WithString("username",
		mcp.Description("GitHub username; falls back to the configured username."),
	),
	mcp.WithString("sort",
		mcp.Description("Order within each language: date, name, or stars."),
	),
	mcp.WithString("format",
		mcp.Description("Section layout: table or list."),
	),
)

var checkToolDef = mcp.NewTool("stars_check",
	mcp.WithDescription("Check whether the starred repositories changed since the last recorded run. Does not record a new baseline."),
	mcp.WithString("username",
		mcp.Description("GitHub username; falls back to the configured username."),
	),
)

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// NewServer creates a new MCP server with starred tools registered.
func NewServer(deps ops.Deps, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"starred",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(deps)
	for _, entry := range toolRegistry {
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(deps ops.Deps, version string) error {
	s := NewServer(deps, version)
	return server.ServeStdio(s)
}
