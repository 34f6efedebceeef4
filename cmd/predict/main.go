package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"store_sales/internal/application/batch"
	"store_sales/internal/application/prediction"
	"store_sales/internal/domain/sales"
	"store_sales/internal/infrastructure/artifact"
	"store_sales/internal/infrastructure/csvfile"
	"store_sales/pkg/logger"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "predict",
		Usage: "predict item outlet sales from trained model artifacts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "artifacts",
				Usage:   "directory holding the model artifacts",
				Value:   "./artifacts",
				EnvVars: []string{"ARTIFACTS_DIR"},
			},
			&cli.IntFlag{
				Name:  "current-year",
				Usage: "year used to derive outlet age (default: this year)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "write structured logs to stdout",
			},
		},
		Commands: []*cli.Command{
			scoreCommand(),
			batchCommand(),
		},
	}
}

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "predict sales for a single item/outlet pair",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "weight", Usage: "item weight; omit to use the imputed default"},
			&cli.StringFlag{Name: "fat", Value: "Low Fat", Usage: "item fat content"},
			&cli.Float64Flag{Name: "visibility", Value: 0.05, Usage: "item visibility (0 to 1)"},
			&cli.StringFlag{Name: "type", Value: "Dairy", Usage: "item type: " + strings.Join(sales.ItemTypes, ", ")},
			&cli.Float64Flag{Name: "mrp", Value: 150, Usage: "item MRP (price)"},
			&cli.IntFlag{Name: "established", Value: 2000, Usage: "outlet establishment year"},
			&cli.StringFlag{Name: "size", Usage: "outlet size (Small, Medium, High); omit to use the imputed default"},
			&cli.StringFlag{Name: "location", Value: "Tier 1", Usage: "outlet location type"},
			&cli.StringFlag{Name: "outlet-type", Value: "Supermarket Type1", Usage: "outlet type"},
		},
		Action: func(c *cli.Context) error {
			svc, err := buildService(c)
			if err != nil {
				return err
			}

			record := sales.RawItemRecord{
				ItemFatContent:          c.String("fat"),
				ItemVisibility:          c.Float64("visibility"),
				ItemType:                c.String("type"),
				ItemMRP:                 c.Float64("mrp"),
				OutletEstablishmentYear: c.Int("established"),
				OutletLocationType:      c.String("location"),
				OutletType:              c.String("outlet-type"),
			}
			if c.IsSet("weight") {
				w := c.Float64("weight")
				record.ItemWeight = &w
			}
			if c.IsSet("size") {
				s := c.String("size")
				record.OutletSize = &s
			}

			p, err := svc.Predict(c.Context, record)
			if err != nil {
				if sales.IsRejected(err) {
					return cli.Exit(fmt.Sprintf("prediction rejected: %v", err), 2)
				}
				return err
			}
			fmt.Fprintf(c.App.Writer, "Predicted Item Outlet Sales: %s\n", p.Sales)
			return nil
		},
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "predict sales for every row of a CSV file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Required: true, Usage: "CSV file with training-style column headers"},
			&cli.IntFlag{Name: "workers", Value: 4, EnvVars: []string{"BATCH_WORKERS"}},
			&cli.IntFlag{Name: "queue-size", Value: 100, EnvVars: []string{"BATCH_QUEUE_SIZE"}},
		},
		Action: func(c *cli.Context) error {
			svc, err := buildService(c)
			if err != nil {
				return err
			}

			runner := batch.NewService(
				csvfile.NewSource(c.String("file")),
				svc,
				c.Int("workers"),
				c.Int("queue-size"),
				newLogger(c),
			)
			results, err := runner.Run(c.Context)
			if err != nil && results == nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(c.App.Writer, "%d\terror: %v\n", r.Row+1, r.Err)
					continue
				}
				fmt.Fprintf(c.App.Writer, "%d\t%s\n", r.Row+1, r.Prediction.Sales)
			}
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d rows failed", failed, len(results)), 3)
			}
			return err
		},
	}
}

func buildService(c *cli.Context) (*prediction.Service, error) {
	log := newLogger(c)

	bundle, err := artifact.Load(c.String("artifacts"), log)
	if err != nil {
		var missing *sales.MissingArtifactError
		if errors.As(err, &missing) {
			return nil, cli.Exit(fmt.Sprintf("model artifacts not found in %s: %s",
				c.String("artifacts"), strings.Join(missing.Names, ", ")), 2)
		}
		return nil, err
	}

	opts := []prediction.Option{prediction.WithLogger(log)}
	if year := c.Int("current-year"); year > 0 {
		opts = append(opts, prediction.WithClock(func() time.Time {
			return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		}))
	}
	return prediction.NewService(bundle.Pipeline, bundle.Model, opts...), nil
}

func newLogger(c *cli.Context) logger.Logger {
	if !c.Bool("verbose") {
		return logger.Nop()
	}
	l, err := logger.NewZapLoggerFromEnv()
	if err != nil {
		return logger.Nop()
	}
	return l
}
