package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kotoba-lab/verbfreq/internal/count"
	"github.com/kotoba-lab/verbfreq/internal/ingest"
	"github.com/kotoba-lab/verbfreq/internal/report"
)

func main() {
	app := &cli.App{
		Name:  "verbfreq",
		Usage: "verb and inflection frequency statistics over a Japanese text corpus",
		Commands: []*cli.Command{
			{
				Name:  "count",
				Usage: "Process the corpus shards and write the frequency document",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to a YAML config file",
					},
					&cli.StringFlag{
						Name:  "input-dir",
						Usage: "Directory holding the JSONL corpus shards",
					},
					&cli.IntFlag{
						Name:  "shards",
						Usage: "Number of shard files to process",
					},
					&cli.StringFlag{
						Name:  "shard-pattern",
						Usage: "printf-style shard filename pattern, e.g. corpus-%02d.jsonl",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Path of the final JSON document",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size",
					},
					&cli.StringFlag{
						Name:  "database",
						Usage: "Optional SQLite file to persist run results",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Only log errors and disable the progress spinner",
					},
				},
				Action: count.Action,
			},
			{
				Name:  "ingest",
				Usage: "Build JSONL corpus shards from a directory of HTML pages",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to a YAML config file",
					},
					&cli.StringFlag{
						Name:  "html-dir",
						Usage: "Directory scanned recursively for .html/.htm files",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "Directory the shard files are written to",
					},
					&cli.IntFlag{
						Name:  "shard-size",
						Usage: "Records per shard file",
					},
					&cli.BoolFlag{
						Name:  "all-languages",
						Usage: "Keep documents regardless of detected language",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Only log errors",
					},
				},
				Action: ingest.Action,
			},
			{
				Name:  "top",
				Usage: "Print the most frequent surface forms and inflections",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "input",
						Value: "frequency_list.json",
						Usage: "Frequency document produced by count",
					},
					&cli.IntFlag{
						Name:  "n",
						Value: 25,
						Usage: "How many rows to print",
					},
				},
				Action: report.Action,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
