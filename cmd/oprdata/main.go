// Package main is the oprdata tool for inspecting place-recognition
// dataset traversals: summaries, single-sample assembly, coverage plots
// and point cloud export.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/edaniels/golog"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/urfave/cli/v2"
	"go.viam.com/utils"

	"github.com/opr-project/oprdata/dataset"
	"github.com/opr-project/oprdata/pointcloud"
)

func main() {
	logger := golog.NewDevelopmentLogger("oprdata")

	app := &cli.App{
		Name:  "oprdata",
		Usage: "inspect place-recognition dataset traversals",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Required: true,
				Usage:    "path to the dataset YAML config",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "info",
				Usage: "print dataset length and per-track row counts",
				Action: func(c *cli.Context) error {
					return runInfo(c, logger)
				},
			},
			{
				Name:  "sample",
				Usage: "assemble one sample and print its fields",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "index", Usage: "sample index", Value: 0},
				},
				Action: func(c *cli.Context) error {
					return runSample(c, logger)
				},
			},
			{
				Name:  "plot",
				Usage: "render an HTML coverage map of traversal coordinates",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "output HTML file", Value: "coverage.html"},
				},
				Action: func(c *cli.Context) error {
					return runPlot(c, logger)
				},
			},
			{
				Name:  "export-pcd",
				Usage: "write one filtered point cloud as ASCII PCD",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "index", Usage: "sample index", Value: 0},
					&cli.StringFlag{Name: "out", Usage: "output PCD file", Value: "cloud.pcd"},
				},
				Action: func(c *cli.Context) error {
					return runExportPCD(c, logger)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func openDataset(c *cli.Context, logger golog.Logger) (dataset.Config, *dataset.Dataset, error) {
	cfg, err := dataset.ReadConfig(c.String("config"))
	if err != nil {
		return dataset.Config{}, nil, err
	}
	d, err := dataset.New(cfg, logger)
	if err != nil {
		return dataset.Config{}, nil, err
	}
	return cfg, d, nil
}

func runInfo(c *cli.Context, logger golog.Logger) error {
	cfg, d, err := openDataset(c, logger)
	if err != nil {
		return err
	}

	tracks := map[string]int{}
	for i := 0; i < d.Len(); i++ {
		row, err := d.Row(i)
		if err != nil {
			return err
		}
		tracks[row.Track]++
	}
	names := make([]string, 0, len(tracks))
	for name := range tracks {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("root:       %s\n", cfg.Root)
	fmt.Printf("subset:     %s\n", cfg.Subset)
	fmt.Printf("modalities: %v\n", cfg.Modalities)
	fmt.Printf("samples:    %d\n", d.Len())
	for _, name := range names {
		fmt.Printf("track %s: %d rows\n", name, tracks[name])
	}
	return nil
}

func runSample(c *cli.Context, logger golog.Logger) error {
	_, d, err := openDataset(c, logger)
	if err != nil {
		return err
	}

	s, err := d.GetSample(c.Int("index"))
	if err != nil {
		return err
	}
	fmt.Printf("idx: %d\n", s.Idx)
	fmt.Printf("utm: northing=%f easting=%f\n", s.UTM[0], s.UTM[1])
	if s.Image != nil {
		fmt.Printf("image: %v\n", s.Image.Shape())
	}
	if s.Cloud != nil {
		fmt.Printf("cloud: %v\n", s.Cloud.Shape())
	}
	if s.SemanticFront != nil {
		fmt.Printf("semantic_front: %v\n", s.SemanticFront.Shape())
	}
	if s.SemanticBack != nil {
		fmt.Printf("semantic_back: %v\n", s.SemanticBack.Shape())
	}
	fmt.Printf("fields: %v\n", s.Fields())
	return nil
}

func runPlot(c *cli.Context, logger golog.Logger) error {
	cfg, d, err := openDataset(c, logger)
	if err != nil {
		return err
	}

	series := map[string][]opts.ScatterData{}
	for i := 0; i < d.Len(); i++ {
		row, err := d.Row(i)
		if err != nil {
			return err
		}
		series[row.Track] = append(series[row.Track],
			opts.ScatterData{Value: []interface{}{row.Easting, row.Northing}})
	}
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Traversal coverage",
			Subtitle: fmt.Sprintf("subset=%s rows=%d", cfg.Subset, d.Len()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "easting (m)"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "northing (m)"}),
	)
	for _, name := range names {
		scatter.AddSeries(name, series[name],
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
	}

	out := c.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer utils.UncheckedErrorFunc(f.Close)
	if err := scatter.Render(f); err != nil {
		return err
	}
	logger.Infow("wrote coverage map", "path", out)
	return nil
}

func runExportPCD(c *cli.Context, logger golog.Logger) error {
	cfg, d, err := openDataset(c, logger)
	if err != nil {
		return err
	}

	row, err := d.Row(c.Int("index"))
	if err != nil {
		return err
	}
	ts, err := row.Column(dataset.CloudTSColumn)
	if err != nil {
		return err
	}
	trackDir := filepath.Join(cfg.Root, row.Track)
	pts, err := pointcloud.ReadBinFile(dataset.AssetPath(trackDir, dataset.CloudSubdir, ts, "bin"))
	if err != nil {
		return err
	}

	out := c.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer utils.UncheckedErrorFunc(f.Close)
	if err := pointcloud.WritePCD(pts, f); err != nil {
		return err
	}
	logger.Infow("wrote point cloud", "path", out, "points", len(pts))
	return nil
}
