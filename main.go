package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Prometheus-P/hwp-bridge/internal/corpus"
	"github.com/Prometheus-P/hwp-bridge/internal/gate"
	"github.com/Prometheus-P/hwp-bridge/pkg/help"
)

func main() {
	app := &cli.App{
		Name:  "hwp-bridge",
		Usage: "Quality gate for the hwp CLI over a private local corpus",
		Commands: []*cli.Command{
			{
				Name:   "gate",
				Usage:  "Run the corpus through the hwp binary and enforce thresholds",
				Action: gate.GateAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "corpus-dir",
						Value: "corpus/local",
						Usage: "Directory holding the .hwp corpus",
					},
					&cli.StringFlag{
						Name:  "manifest",
						Value: "corpus/manifest.json",
						Usage: "Manifest with per-file categories",
					},
					&cli.StringFlag{
						Name:  "hwp-bin",
						Value: "target/release/hwp",
						Usage: "Path to the hwp binary under test",
					},
					&cli.StringFlag{
						Name:  "timeout",
						Value: "30s",
						Usage: "Wall-clock timeout per hwp invocation",
					},
					&cli.BoolFlag{
						Name:  "check-markdown",
						Usage: "Also run `hwp markdown` twice for determinism (slower)",
					},
					&cli.IntFlag{
						Name:  "min-corpus-size",
						Value: 100,
						Usage: "Fail the gate when fewer files resolve (0 disables)",
					},
					&cli.Float64Flag{
						Name:  "min-success-a",
						Value: 0.95,
						Usage: "Minimum success rate for category A",
					},
					&cli.Float64Flag{
						Name:  "min-success-b",
						Value: 0.85,
						Usage: "Minimum success rate for category B",
					},
					&cli.Float64Flag{
						Name:  "min-success-c",
						Value: 0.80,
						Usage: "Minimum success rate for category C",
					},
					&cli.Float64Flag{
						Name:  "min-deterministic-rate",
						Value: 0.99,
						Usage: "Minimum deterministic share of successful files",
					},
					&cli.IntFlag{
						Name:  "max-files",
						Value: 0,
						Usage: "Cap on files processed, 0 = no limit",
					},
					&cli.IntFlag{
						Name:  "workers",
						Value: 1,
						Usage: "Concurrent files in flight",
					},
					&cli.StringFlag{
						Name:  "reports-dir",
						Value: "reports/v1_gate",
						Usage: "Directory for summary and details artifacts",
					},
					&cli.BoolFlag{
						Name:  "ci",
						Usage: "CI-friendly one-line output",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Log errors only",
					},
				},
			},
			{
				Name:   "scan",
				Usage:  "Hash corpus files and regenerate the manifest, keeping labels",
				Action: corpus.ScanAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "corpus-dir",
						Value: "corpus/local",
						Usage: "Directory holding the .hwp corpus",
					},
					&cli.StringFlag{
						Name:  "manifest",
						Value: "corpus/manifest.json",
						Usage: "Manifest path to write",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Log errors only",
					},
				},
			},
			{
				Name:  "coldstart",
				Usage: "Print the quick-start reference",
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
