package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/promptbin/internal/config"
	"github.com/hpungsan/promptbin/internal/errors"
	"github.com/hpungsan/promptbin/internal/logger"
	"github.com/hpungsan/promptbin/internal/ops"
	"github.com/hpungsan/promptbin/internal/share"
	"github.com/hpungsan/promptbin/internal/store"
	"github.com/hpungsan/promptbin/internal/tunnel"
	"github.com/hpungsan/promptbin/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(st *store.Store, cfg *config.Config, log logger.Logger) *cli.App {
	app := &cli.App{
		Name:    "promptbin",
		Usage:   "Personal prompt manager",
		Version: Version,
		Commands: []*cli.Command{
			createCmd(st, cfg),
			getCmd(st, cfg),
			updateCmd(st, cfg),
			deleteCmd(st, cfg),
			listCmd(st, cfg),
			searchCmd(st, cfg),
			statsCmd(st, cfg),
			serveCmd(st, cfg, log),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// createCmd creates the create command.
func createCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a new prompt (reads body from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Required: true, Usage: "Prompt category"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true, Usage: "Prompt title"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "One-line description"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("body must be piped via stdin"))
			}

			body, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if body == "" {
				return outputError(errors.NewInvalidRequest("body is required"))
			}

			rec, err := ops.Create(st, cfg, ops.CreateInput{
				Category:    c.String("category"),
				Title:       c.String("title"),
				Body:        body,
				Description: c.String("description"),
				Tags:        parseTags(c.String("tags")),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(rec)
		},
	}
}

// getCmd creates the get command.
func getCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get a prompt by id or sanitized-title name",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Category the id lives in (scanned if omitted)"},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Sanitized-title lookup when no id given"},
		},
		Action: func(c *cli.Context) error {
			rec, err := ops.Get(st, cfg, ops.GetInput{
				Category: c.String("category"),
				ID:       c.Args().First(),
				Name:     c.String("name"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(rec)
		},
	}
}

// updateCmd creates the update command.
func updateCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update an existing prompt (optionally reads body from stdin)",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Category the id lives in (scanned if omitted)"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New description"},
			&cli.StringFlag{Name: "tags", Usage: "New comma-separated tags"},
			&cli.StringFlag{Name: "move-to", Usage: "Move the prompt to this category"},
		},
		Action: func(c *cli.Context) error {
			input := ops.UpdateInput{
				Category: c.String("category"),
				ID:       c.Args().First(),
			}

			if stdinHasData() {
				body, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				if body != "" {
					input.Body = &body
				}
			}

			if title := c.String("title"); title != "" {
				input.Title = &title
			}
			if c.IsSet("description") {
				desc := c.String("description")
				input.Description = &desc
			}
			if c.IsSet("tags") {
				tags := parseTags(c.String("tags"))
				input.Tags = &tags
			}
			if moveTo := c.String("move-to"); moveTo != "" {
				input.NewCategory = &moveTo
			}

			rec, err := ops.Update(st, cfg, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(rec)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a prompt",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Category the id lives in (scanned if omitted)"},
		},
		Action: func(c *cli.Context) error {
			result, err := ops.Delete(st, cfg, ops.DeleteInput{
				Category: c.String("category"),
				ID:       c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(result)
		},
	}
}

// listCmd creates the list command.
func listCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List prompts, newest update first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Filter by category"},
		},
		Action: func(c *cli.Context) error {
			result, err := ops.List(st, cfg, ops.ListInput{Category: c.String("category")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(result)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search prompt titles and bodies",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Filter by category"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum results"},
		},
		Action: func(c *cli.Context) error {
			result, err := ops.Search(st, cfg, ops.SearchInput{
				Query:    strings.Join(c.Args().Slice(), " "),
				Category: c.String("category"),
				Limit:    c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(result)
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show store-wide totals",
		Action: func(c *cli.Context) error {
			result, err := ops.Stats(st, cfg)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(result)
		},
	}
}

// serveCmd creates the serve command running the web UI.
func serveCmd(st *store.Store, cfg *config.Config, log logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Usage: "Bind host (overrides config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Bind port (overrides config)"},
			&cli.BoolFlag{Name: "tunnel", Usage: "Expose the server through the configured tunnel command"},
		},
		Action: func(c *cli.Context) error {
			// Flag overrides apply to a copy; config itself stays immutable.
			serveCfg := *cfg
			if host := c.String("host"); host != "" {
				serveCfg.Host = host
			}
			if port := c.Int("port"); port != 0 {
				serveCfg.Port = port
			}

			shares := share.NewManager(&serveCfg, log)
			srv := web.NewServer(st, &serveCfg, shares, log, Version)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			if c.Bool("tunnel") {
				runner := tunnel.New(&serveCfg, shares, log)
				if err := runner.Start(ctx); err != nil {
					return outputError(errors.NewInternal(err))
				}
				defer runner.Stop()
			}

			return srv.Run(ctx)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if pErr, ok := err.(*errors.PromptError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", pErr.Code, pErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// parseTags splits a comma-separated string into a slice of tags.
func parseTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
