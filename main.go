package main

import (
	"fmt"
	"os"

	"github.com/gleanhq/glean/internal/capture"
	"github.com/gleanhq/glean/internal/kb"
	"github.com/gleanhq/glean/internal/summarize"
	"github.com/gleanhq/glean/models"
	"github.com/urfave/cli/v2"
)

// version is stamped by the release build.
var version = "dev"

func main() {
	app := &cli.App{
		Name:    "glean",
		Usage:   "capture web pages into a personal study knowledge base",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the config file (default: " + models.DefaultConfigPath() + ")",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "path to the knowledge base database",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only log errors",
			},
		},
		Commands: []*cli.Command{
			captureCommand(),
			summarizeCommand(),
			classifyCommand(),
			kbCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func captureCommand() *cli.Command {
	return &cli.Command{
		Name:  "capture",
		Usage: "fetch, classify and save pages to the knowledge base",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "urls",
				Usage: "comma-separated list of URLs to capture",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "number of concurrent capture workers",
			},
			&cli.StringFlag{
				Name:  "taxonomy",
				Usage: "path to a custom taxonomy YAML file",
			},
			&cli.StringFlag{
				Name:  "report-dir",
				Usage: "directory for run reports",
			},
		}, fetchFlags()...),
		Action: capture.Action,
	}
}

func summarizeCommand() *cli.Command {
	return &cli.Command{
		Name:   "summarize",
		Usage:  "summarize one page without saving it",
		Flags:  analysisFlags(),
		Action: summarize.SummarizeAction,
	}
}

func classifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "classify",
		Usage: "classify one page without saving it",
		Flags: append(analysisFlags(), &cli.StringFlag{
			Name:  "taxonomy",
			Usage: "path to a custom taxonomy YAML file",
		}),
		Action: summarize.ClassifyAction,
	}
}

func kbCommand() *cli.Command {
	return &cli.Command{
		Name:  "kb",
		Usage: "inspect and manage the knowledge base",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list entries, optionally filtered by attribute",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "subject", Usage: "filter by subject"},
					&cli.StringFlag{Name: "topic", Usage: "filter by topic"},
					&cli.StringFlag{Name: "chapter", Usage: "filter by chapter"},
					&cli.StringFlag{Name: "url", Usage: "filter by exact URL"},
					&cli.IntFlag{Name: "limit", Usage: "max entries to show (0 shows all)"},
				},
				Action: kb.ListAction,
			},
			{
				Name:      "show",
				Usage:     "show one entry as YAML (latest when no ID is given)",
				ArgsUsage: "[id]",
				Action:    kb.ShowAction,
			},
			{
				Name:      "search",
				Usage:     "search entries by text",
				ArgsUsage: "<text>",
				Action:    kb.SearchAction,
			},
			{
				Name:      "delete",
				Usage:     "delete one entry by ID",
				ArgsUsage: "<id>",
				Action:    kb.DeleteAction,
			},
			{
				Name:  "clear",
				Usage: "remove every entry from the knowledge base",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Usage: "confirm the clear"},
				},
				Action: kb.ClearAction,
			},
			{
				Name:   "stats",
				Usage:  "show entry counts by subject, topic and chapter",
				Action: kb.StatsAction,
			},
			{
				Name:  "runs",
				Usage: "list recorded capture runs, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "max runs to show (0 shows all)"},
				},
				Action: kb.RunsAction,
			},
			{
				Name:  "export",
				Usage: "export all entries to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Value: ".", Usage: "directory to write the export into"},
					&cli.StringFlag{Name: "format", Value: "yaml", Usage: "export format: yaml or json"},
				},
				Action: kb.ExportAction,
			},
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the glean version",
		Action: func(c *cli.Context) error {
			fmt.Printf("glean %s\n", version)
			return nil
		},
	}
}

// analysisFlags are shared by summarize and classify, which read a single
// page and print the result instead of saving it.
func analysisFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "url",
			Usage: "page URL to fetch and analyze",
		},
		&cli.StringFlag{
			Name:  "file",
			Usage: "local HTML file to analyze",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "yaml",
			Usage: "output format: yaml or json",
		},
	}
	return append(flags, fetchFlags()...)
}

func fetchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "user-agent",
			Usage: "User-Agent header for page requests",
		},
		&cli.Float64Flag{
			Name:  "rate",
			Usage: "max requests per second per host",
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "directory for the page cache",
		},
		&cli.StringFlag{
			Name:  "max-age",
			Usage: "max age for cached pages, e.g. 24h or 30m",
		},
		&cli.BoolFlag{
			Name:  "force-fetch",
			Usage: "refetch pages even when cached",
		},
	}
}
