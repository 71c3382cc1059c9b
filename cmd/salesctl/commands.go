package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/salesdash/internal/app"
	"github.com/andresuchdata/salesdash/internal/config"
	"github.com/andresuchdata/salesdash/internal/service"
	"github.com/andresuchdata/salesdash/pkg/logger"
)

const appKey = "app"

func initLogger(c *cli.Context) error {
	logger.SetLevel(c.String("log-level"))
	return nil
}

// openApp builds the services and stores them on the command context.
func openApp(load bool) cli.BeforeFunc {
	return func(c *cli.Context) error {
		a, err := app.New(c.Context, config.Load())
		if err != nil {
			return err
		}
		if load {
			if _, err := a.Loader.Load(c.Context); err != nil {
				_ = a.Close()
				return err
			}
		}
		c.App.Metadata = map[string]interface{}{appKey: a}
		return nil
	}
}

func closeApp(c *cli.Context) error {
	if a := appFrom(c); a != nil {
		return a.Close()
	}
	return nil
}

func appFrom(c *cli.Context) *app.App {
	a, _ := c.App.Metadata[appKey].(*app.App)
	return a
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeExport(path string, res service.ExportResult) error {
	if err := os.WriteFile(path, res.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", path, len(res.Data))
	if res.ArchiveKey != "" {
		fmt.Printf("archived as %s\n", res.ArchiveKey)
	}
	return nil
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write an .xlsx workbook to this path instead of printing JSON"}
}

func rangeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "salesperson", Usage: "Salesperson code, or \"all\""},
		&cli.StringFlag{Name: "preset", Usage: "this-month, last-month, last-3-months, last-6-months or all-time"},
		&cli.StringFlag{Name: "start", Usage: "Range start (YYYY-MM-DD), overrides --preset"},
		&cli.StringFlag{Name: "end", Usage: "Range end (YYYY-MM-DD), overrides --preset"},
	}
}

func reportCommand() *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{Name: "group-by", Value: "itemCode", Usage: "itemCode, custType, postingGroup, vendorNo or customerCode"},
		&cli.StringFlag{Name: "revenue", Usage: "Revenue basis: item or sale (defaults per dimension)"},
		outputFlag(),
	}, rangeFlags()...)

	return &cli.Command{
		Name:   "report",
		Usage:  "Grouped performance report",
		Flags:  flags,
		Before: openApp(true),
		After:  closeApp,
		Action: func(c *cli.Context) error {
			q := service.PerformanceQuery{
				GroupBy:     c.String("group-by"),
				Revenue:     c.String("revenue"),
				SalesPerson: c.String("salesperson"),
				Preset:      c.String("preset"),
				Start:       c.String("start"),
				End:         c.String("end"),
			}
			reports := appFrom(c).Reports

			out := c.String("output")
			if out == "" {
				report, err := reports.Performance(c.Context, q)
				if err != nil {
					return err
				}
				return printJSON(report)
			}

			res, err := reports.ExportPerformance(c.Context, q)
			if err != nil {
				return err
			}
			return writeExport(out, res)
		},
	}
}

func gainsLossesCommand() *cli.Command {
	return &cli.Command{
		Name:  "gains-losses",
		Usage: "Quarter over quarter customer gains and losses",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "salesperson", Usage: "Salesperson code, or \"all\""},
			&cli.StringFlag{Name: "sort", Usage: "name, revenue or items"},
			&cli.StringFlag{Name: "dir", Value: "desc", Usage: "asc or desc"},
			outputFlag(),
		},
		Before: openApp(true),
		After:  closeApp,
		Action: func(c *cli.Context) error {
			q := service.GainLossQuery{
				SalesPerson: c.String("salesperson"),
				Sort:        c.String("sort"),
				Direction:   c.String("dir"),
			}
			reports := appFrom(c).Reports

			if out := c.String("output"); out != "" {
				res, err := reports.ExportGainsLosses(c.Context, q)
				if err != nil {
					return err
				}
				return writeExport(out, res)
			}

			report, err := reports.GainsLosses(c.Context, q)
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}
}

func budgetCommand() *cli.Command {
	return &cli.Command{
		Name:  "budget",
		Usage: "Budget and actual figures",
		Subcommands: []*cli.Command{
			{
				Name:  "report",
				Usage: "Budget versus actual for a fiscal year",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "fiscal-year", Usage: "Fiscal year label, e.g. 2024-2025 (defaults to the current one)"},
					&cli.StringFlag{Name: "salesperson", Usage: "Salesperson code, or \"all\""},
					outputFlag(),
				},
				Before: openApp(true),
				After:  closeApp,
				Action: func(c *cli.Context) error {
					budgets := appFrom(c).Budgets
					if out := c.String("output"); out != "" {
						res, err := budgets.ExportReport(c.Context, c.String("fiscal-year"), c.String("salesperson"))
						if err != nil {
							return err
						}
						return writeExport(out, res)
					}

					report, err := budgets.Report(c.Context, c.String("fiscal-year"), c.String("salesperson"))
					if err != nil {
						return err
					}
					return printJSON(report)
				},
			},
			{
				Name:  "show",
				Usage: "Print stored figures of one fiscal year",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Value: "budget", Usage: "budget or actual"},
					&cli.StringFlag{Name: "fiscal-year", Required: true},
				},
				Before: openApp(false),
				After:  closeApp,
				Action: func(c *cli.Context) error {
					rec, err := appFrom(c).Budgets.Get(c.Context, c.String("kind"), c.String("fiscal-year"))
					if err != nil {
						return err
					}
					return printJSON(rec)
				},
			},
			{
				Name:  "set",
				Usage: "Set the figure of one month",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Value: "budget", Usage: "budget or actual"},
					&cli.StringFlag{Name: "fiscal-year", Required: true},
					&cli.StringFlag{Name: "month", Required: true, Usage: "Month name, e.g. april"},
					&cli.Float64Flag{Name: "amount", Required: true},
				},
				Before: openApp(false),
				After:  closeApp,
				Action: func(c *cli.Context) error {
					months, err := service.ParseMonthlyInput(map[string]float64{
						c.String("month"): c.Float64("amount"),
					})
					if err != nil {
						return err
					}
					rec, err := appFrom(c).Budgets.Upsert(c.Context, c.String("kind"), c.String("fiscal-year"), months)
					if err != nil {
						return err
					}
					return printJSON(rec)
				},
			},
		},
	}
}

func exportsCommand() *cli.Command {
	return &cli.Command{
		Name:  "exports",
		Usage: "Archived report workbooks",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List archived workbooks, newest first",
				Before: openApp(false),
				After:  closeApp,
				Action: func(c *cli.Context) error {
					objects, err := appFrom(c).Reports.ListExports(c.Context)
					if err != nil {
						return err
					}
					return printJSON(objects)
				},
			},
			{
				Name:      "download",
				Usage:     "Download an archived workbook",
				ArgsUsage: "<key>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true},
				},
				Before: openApp(false),
				After:  closeApp,
				Action: func(c *cli.Context) error {
					key := c.Args().First()
					if key == "" {
						return cli.Exit("an object key is required", 1)
					}
					if err := appFrom(c).Reports.DownloadExport(c.Context, key, c.String("output")); err != nil {
						return err
					}
					fmt.Printf("downloaded %s to %s\n", key, c.String("output"))
					return nil
				},
			},
		},
	}
}
