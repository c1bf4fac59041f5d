// Package mcp exposes the daybook API as Model Context Protocol tools so
// AI agents can journal activities, matters and goals over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/daybookhq/daybook/internal/client"
)

// apiClient holds the API client for tool handlers
var apiClient *client.Client

// ServeStdio starts the MCP server using the official go-sdk over stdio.
func ServeStdio(c *client.Client) error {
	if c == nil {
		return errors.New("api client is required")
	}
	apiClient = c

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "daybook",
			Version: "0.1.0",
		},
		&mcp.ServerOptions{
			Instructions: `📓 DAYBOOK - Activity journal, daily matters and long-term goals

You are connected to the user's personal activity journal.

## Core model
- Starting an activity automatically ends whatever was running (one thing
  at a time unless the activity allows parallel execution).
- Important matters are daily time budgets; time flows into them from
  activities that share at least one tag with the matter.
- Goals are long-term targets updated through explicit progress values.

## When to use which tool
- User begins working on something → start_activity
- User finishes or switches → end_activity (switching is implicit in
  start_activity, prefer that)
- User plans the day → create_matter with a target in minutes
- User reports goal progress ("read 3 more books") → update_goal_progress
- "What am I doing / what did I do today?" → current_activities / daily_timeline

## Tips
- Always tag activities that belong to a matter with the matter's tags,
  otherwise the time will not be attributed.
- Durations and targets are in minutes in tool inputs.`,
		},
	)

	registerTools(server)

	return server.Run(context.Background(), &mcp.StdioTransport{})
}

// textResult converts any data to a CallToolResult with JSON TextContent.
func textResult(data interface{}) (*mcp.CallToolResult, error) {
	if data == nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: "{}"},
			},
		}, nil
	}
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, nil
}

// errorResult wraps an error as a tool result instead of a protocol error,
// so the agent sees what went wrong and can adjust.
func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(`{"error": %q}`, err.Error())},
		},
		IsError: true,
	}
}
