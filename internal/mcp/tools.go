package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var stringItems = map[string]any{"type": "string"}

var createToolDef = mcp.NewTool("prompt_create",
	mcp.WithDescription("Create a new prompt. Returns the stored record including its generated id."),
	mcp.WithString("category", mcp.Required(), mcp.Description("Category from the configured set (e.g. coding, writing, analysis)")),
	mcp.WithString("title", mcp.Required(), mcp.Description("Prompt title")),
	mcp.WithString("body", mcp.Required(), mcp.Description("Prompt text; may contain {{name}} template variables")),
	mcp.WithString("description", mcp.Description("Optional one-line summary")),
	mcp.WithArray("tags", mcp.Description("Optional tags"), mcp.Items(stringItems)),
)

var getToolDef = mcp.NewTool("prompt_get",
	mcp.WithDescription("Get a single prompt by id or by sanitized-title name (e.g. 'code-review-helper')."),
	mcp.WithString("id", mcp.Description("Prompt id")),
	mcp.WithString("category", mcp.Description("Category the id lives in; scanned if omitted")),
	mcp.WithString("name", mcp.Description("Sanitized-title lookup, used when id is omitted")),
)

var updateToolDef = mcp.NewTool("prompt_update",
	mcp.WithDescription("Update fields of an existing prompt. Omitted fields are left unchanged."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Prompt id")),
	mcp.WithString("category", mcp.Description("Category the id lives in; scanned if omitted")),
	mcp.WithString("title", mcp.Description("New title")),
	mcp.WithString("body", mcp.Description("New body")),
	mcp.WithString("description", mcp.Description("New description")),
	mcp.WithArray("tags", mcp.Description("Replacement tag list"), mcp.Items(stringItems)),
	mcp.WithString("new_category", mcp.Description("Move the prompt to this category")),
)

var deleteToolDef = mcp.NewTool("prompt_delete",
	mcp.WithDescription("Delete a prompt. Deleting an unknown prompt is an error."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Prompt id")),
	mcp.WithString("category", mcp.Description("Category the id lives in; scanned if omitted")),
)

var listToolDef = mcp.NewTool("prompt_list",
	mcp.WithDescription("List prompts sorted by last update, newest first."),
	mcp.WithString("category", mcp.Description("Optional category filter")),
)

var searchToolDef = mcp.NewTool("prompt_search",
	mcp.WithDescription("Case-insensitive substring search over prompt titles and bodies."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
	mcp.WithString("category", mcp.Description("Optional category filter")),
	mcp.WithNumber("limit", mcp.Description("Maximum results to return")),
)

var statsToolDef = mcp.NewTool("prompt_stats",
	mcp.WithDescription("Store-wide totals: prompt counts per category, distinct tags, recent activity."),
)
