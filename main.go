package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dtnitsch/llm-content-optimizer/internal/analyze"
	"github.com/dtnitsch/llm-content-optimizer/internal/api"
	dbcmd "github.com/dtnitsch/llm-content-optimizer/internal/db"
	"github.com/dtnitsch/llm-content-optimizer/internal/optimize"
	"github.com/dtnitsch/llm-content-optimizer/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:    "lco",
		Usage:   "Pre-filter noisy HTML into compact, content-dense pages for LLM parsing",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to lco.yaml config file"},
		},
		Commands: []*cli.Command{
			{
				Name:      "optimize",
				Aliases:   []string{"o"},
				Usage:     "Optimize one HTML file (use '-' for stdin)",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "Source URL recorded as metadata (nothing is fetched)"},
					&cli.StringFlag{Name: "title", Usage: "Page title, used for query scoring when no --query is given"},
					&cli.StringFlag{Name: "query", Usage: "Score blocks against this query instead of the page centroid"},
					&cli.StringFlag{Name: "output", Value: "yaml", Usage: "Output format: yaml or json"},
					&cli.StringFlag{Name: "fields", Usage: "Comma-separated report fields to print"},
					&cli.BoolFlag{Name: "print-html", Usage: "Print the optimized HTML instead of the report"},
					&cli.BoolFlag{Name: "force", Usage: "Ignore the cache and re-optimize"},
					&cli.StringFlag{Name: "results-dir", Usage: "Override the results directory"},
					&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Only log errors"},
				},
				Action: optimize.OptimizeAction,
			},
			{
				Name:  "batch",
				Usage: "Optimize a batch of HTML files listed in a YAML inputs file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "inputs", Aliases: []string{"i"}, Usage: "Path to the batch inputs YAML"},
					&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "Concurrent workers (default from config)"},
					&cli.StringFlag{Name: "output", Value: "yaml", Usage: "Output format: yaml or json"},
					&cli.StringFlag{Name: "summary", Value: "v1", Usage: "Summary format: v1, or v2 for terse token-optimized rows"},
					&cli.StringFlag{Name: "fields", Usage: "Comma-separated summary fields to print"},
					&cli.BoolFlag{Name: "force", Usage: "Ignore the cache and re-optimize everything"},
					&cli.StringFlag{Name: "results-dir", Usage: "Override the results directory"},
					&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Only log errors"},
				},
				Action: optimize.BatchAction,
			},
			{
				Name:  "analyze",
				Usage: "Aggregate recorded run reports into corpus stats",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "from", Usage: "Glob pattern(s) for report files (default: all recorded runs)"},
					&cli.StringFlag{Name: "results-dir", Usage: "Override the results directory"},
					&cli.IntFlag{Name: "top", Value: 25, Usage: "Number of keywords to report"},
					&cli.BoolFlag{Name: "keywords-only", Usage: "Print only the aggregated keyword list"},
					&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Only log errors"},
				},
				Action: analyze.AnalyzeAction,
			},
			{
				Name:  "serve",
				Usage: "Run the optimizer as a local HTTP service",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Value: ":8080", Usage: "Listen address"},
					&cli.Int64Flag{Name: "max-body-bytes", Usage: "Request body cap for /optimize"},
					&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Only log errors"},
				},
				Action: api.ServeAction,
			},
			{
				Name:  "db",
				Usage: "Inspect the run history database",
				Subcommands: []*cli.Command{
					{
						Name:   "runs",
						Usage:  "List recent runs",
						Flags:  []cli.Flag{&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum rows"}},
						Action: dbcmd.RunsAction,
					},
					{
						Name:      "run",
						Usage:     "Show one run's details (latest when omitted)",
						ArgsUsage: "[run_id]",
						Action:    dbcmd.RunAction,
					},
					{
						Name:      "report",
						Usage:     "Print a run's report YAML",
						ArgsUsage: "[run_id_or_source]",
						Action:    dbcmd.ReportAction,
					},
					{
						Name:      "html",
						Usage:     "Print a run's optimized HTML",
						ArgsUsage: "<run_id_or_source>",
						Action:    dbcmd.HTMLAction,
					},
					{
						Name:   "batches",
						Usage:  "List recent batches",
						Flags:  []cli.Flag{&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum rows"}},
						Action: dbcmd.BatchesAction,
					},
					{
						Name:      "batch",
						Usage:     "List the runs recorded for a batch",
						ArgsUsage: "<batch_id>",
						Action:    dbcmd.BatchAction,
					},
					{
						Name:   "stats",
						Usage:  "Aggregate run history stats",
						Action: dbcmd.StatsAction,
					},
				},
			},
			{
				Name:  "quickstart",
				Usage: "Print a machine-readable quick start reference",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
