package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/starred/internal/errors"
	"github.com/hpungsan/starred/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	deps ops.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps ops.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// Request types for each tool

// ListRequest represents the arguments for stars_list.
type ListRequest struct {
	Username string `json:"username,omitempty"`
	Sort     string `json:"sort,omitempty"`
}

// RenderRequest represents the arguments for stars_render.
type RenderRequest struct {
	Username string `json:"username,omitempty"`
	Sort     string `json:"sort,omitempty"`
	Format   string `json:"format,omitempty"`
}

// CheckRequest represents the arguments for stars_check.
type CheckRequest struct {
	Username string `json:"username,omitempty"`
}

// Handler implementations

// HandleList handles the stars_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(ctx, h.deps, ops.ListInput{
		Username: input.Username,
		Sort:     input.Sort,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRender handles the stars_render tool call.
func (h *Handlers) HandleRender(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RenderRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.RenderDoc(ctx, h.deps, ops.RenderInput{
		Username: input.Username,
		Sort:     input.Sort,
		Format:   input.Format,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCheck handles the stars_check tool call.
func (h *Handlers) HandleCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CheckRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Check(ctx, h.deps, ops.CheckInput{Username: input.Username})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// errorResult converts an error into an MCP error result with a JSON body.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if starErr, ok := err.(*errors.StarredError); ok {
		errorObj := map[string]any{
			"code":    starErr.Code,
			"message": starErr.Message,
			"status":  starErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if starErr.Code != errors.ErrInternal && starErr.Details != nil {
			errorObj["details"] = starErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult converts a value into an MCP result with a JSON body.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
