package commands

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/daybookhq/daybook/internal/client"
	"github.com/daybookhq/daybook/internal/mcp"
)

func NewMcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "MCP (Model Context Protocol) server management",
		Subcommands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start MCP server (stdio)",
				Action: func(c *cli.Context) error {
					return mcp.ServeStdio(client.NewClient())
				},
			},
			{
				Name:  "config",
				Usage: "Print MCP config example for clients",
				Action: func(c *cli.Context) error {
					cfg := map[string]interface{}{
						"mcpServers": map[string]interface{}{
							"daybook": map[string]interface{}{
								"command": "daybook",
								"args":    []string{"mcp", "serve"},
							},
						},
					}
					b, _ := json.MarshalIndent(cfg, "", "  ")
					fmt.Println(string(b))
					return nil
				},
			},
		},
	}
}
