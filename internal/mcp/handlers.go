package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/promptbin/internal/config"
	"github.com/hpungsan/promptbin/internal/errors"
	"github.com/hpungsan/promptbin/internal/ops"
	"github.com/hpungsan/promptbin/internal/prompt"
	"github.com/hpungsan/promptbin/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	st  *store.Store
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st *store.Store, cfg *config.Config) *Handlers {
	return &Handlers{st: st, cfg: cfg}
}

// Request types for each tool

// CreateRequest represents the arguments for prompt_create.
type CreateRequest struct {
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// GetRequest represents the arguments for prompt_get.
type GetRequest struct {
	ID       string `json:"id,omitempty"`
	Category string `json:"category,omitempty"`
	Name     string `json:"name,omitempty"`
}

// UpdateRequest represents the arguments for prompt_update.
type UpdateRequest struct {
	ID          string    `json:"id"`
	Category    string    `json:"category,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Body        *string   `json:"body,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	NewCategory *string   `json:"new_category,omitempty"`
}

// DeleteRequest represents the arguments for prompt_delete.
type DeleteRequest struct {
	ID       string `json:"id"`
	Category string `json:"category,omitempty"`
}

// ListRequest represents the arguments for prompt_list.
type ListRequest struct {
	Category string `json:"category,omitempty"`
}

// SearchRequest represents the arguments for prompt_search.
type SearchRequest struct {
	Query    string `json:"query"`
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// recordPayload wraps a record with derived content metadata for assistants.
type recordPayload struct {
	prompt.Record
	Stats prompt.ContentStats `json:"metadata"`
}

func payload(rec *prompt.Record) recordPayload {
	return recordPayload{Record: *rec, Stats: prompt.Stats(rec.Body)}
}

// Handler implementations

// HandleCreate handles the prompt_create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	rec, err := ops.Create(h.st, h.cfg, ops.CreateInput{
		Category:    input.Category,
		Title:       input.Title,
		Body:        input.Body,
		Description: input.Description,
		Tags:        input.Tags,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(payload(rec))
}

// HandleGet handles the prompt_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	rec, err := ops.Get(h.st, h.cfg, ops.GetInput{
		Category: input.Category,
		ID:       input.ID,
		Name:     input.Name,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(payload(rec))
}

// HandleUpdate handles the prompt_update tool call.
func (h *Handlers) HandleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	rec, err := ops.Update(h.st, h.cfg, ops.UpdateInput{
		Category:    input.Category,
		ID:          input.ID,
		Title:       input.Title,
		Body:        input.Body,
		Description: input.Description,
		Tags:        input.Tags,
		NewCategory: input.NewCategory,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(payload(rec))
}

// HandleDelete handles the prompt_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(h.st, h.cfg, ops.DeleteInput{
		Category: input.Category,
		ID:       input.ID,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the prompt_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(h.st, h.cfg, ops.ListInput{Category: input.Category})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSearch handles the prompt_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Search(h.st, h.cfg, ops.SearchInput{
		Query:    input.Query,
		Category: input.Category,
		Limit:    input.Limit,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleStats handles the prompt_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Stats(h.st, h.cfg)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if pErr, ok := err.(*errors.PromptError); ok {
		errorObj := map[string]any{
			"code":    pErr.Code,
			"message": pErr.Message,
			"status":  pErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// file paths or system error text
		if pErr.Code != errors.ErrInternal && pErr.Code != errors.ErrStorageIO && pErr.Details != nil {
			errorObj["details"] = pErr.Details
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

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
