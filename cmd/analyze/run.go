package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Bgoodwin24/insightforge/internal/charts"
	"github.com/Bgoodwin24/insightforge/internal/config"
	"github.com/Bgoodwin24/insightforge/internal/dataset"
	"github.com/Bgoodwin24/insightforge/internal/dispatcher"
	"github.com/Bgoodwin24/insightforge/internal/fetchers"
	"github.com/Bgoodwin24/insightforge/internal/logger"
	"github.com/Bgoodwin24/insightforge/internal/mocks"
	"github.com/Bgoodwin24/insightforge/internal/models"
	"github.com/Bgoodwin24/insightforge/internal/reports"
)

type runOptions struct {
	dataset   string
	group     string
	method    string
	subMethod string
	fillValue string
	format    string
	htmlOut   string
	pngOut    string
	mock      bool
}

func newRunCmd(a *app) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one analysis against a CSV or XLSX dataset",
		Example: `  analyze run --dataset sales.csv --method grouped-sum
  analyze run --dataset sales.csv --method correlation-matrix --sub-method spearman --format yaml
  analyze run --dataset sales.xlsx --method histogram --mock --png histogram.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.run(ctx, cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.dataset, "dataset", "", "path to the .csv or .xlsx dataset (required)")
	f.StringVar(&opts.method, "method", "", "analysis method identifier (required)")
	f.StringVar(&opts.group, "group", "", "method group (defaults to the method's own group)")
	f.StringVar(&opts.subMethod, "sub-method", "", "correlation method for correlation-matrix: pearson, spearman")
	f.StringVar(&opts.fillValue, "fill-value", "", "replacement value for fill-missing-with")
	f.StringVar(&opts.format, "format", "json", "output format: json, yaml, markdown")
	f.StringVar(&opts.htmlOut, "html", "", "also write an HTML report to this path")
	f.StringVar(&opts.pngOut, "png", "", "also write a PNG chart to this path")
	f.BoolVar(&opts.mock, "mock", false, "answer requests with the built-in mock analytics service")
	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("method")
	return cmd
}

func (a *app) run(ctx context.Context, out io.Writer, opts *runOptions) error {
	log := logger.WithComponent("cli")

	ds, err := dataset.Load(opts.dataset)
	if err != nil {
		return err
	}
	log.Info("dataset loaded", map[string]interface{}{
		"name":    ds.Name,
		"columns": len(ds.Columns),
		"rows":    len(ds.Rows),
	})

	baseURL := a.cfg.AnalyticsURL
	if opts.mock {
		store := dataset.NewStore()
		store.Add(ds)
		url, shutdown, err := serveMock(store)
		if err != nil {
			return err
		}
		defer shutdown()
		baseURL = url
	}

	client := fetchers.NewAnalyticsClient(baseURL, clientOptions(a.cfg))
	d := dispatcher.New(client, defaults(a.cfg))

	state, err := d.Run(ctx, dispatcher.Request{
		Group:     opts.group,
		Method:    opts.method,
		SubMethod: opts.subMethod,
		FillValue: opts.fillValue,
		Dataset:   ds,
	})
	if err != nil {
		if upstream, ok := fetchers.AsUpstream(err); ok {
			return fmt.Errorf("analytics service returned %d: %s", upstream.Status, upstream.Message)
		}
		return err
	}

	cg := charts.NewChartGenerator(0, 0)
	gen := reports.NewGenerator(cg, config.GetVersion())

	if opts.htmlOut != "" {
		html, err := gen.GenerateHTML(state)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.htmlOut, []byte(html), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		log.Info("report written", map[string]interface{}{"path": opts.htmlOut})
	}
	if opts.pngOut != "" {
		if err := writePNG(cg, state, opts.pngOut); err != nil {
			return err
		}
		log.Info("chart written", map[string]interface{}{"path": opts.pngOut})
	}

	return writeState(out, state, gen, opts.format)
}

func writeState(w io.Writer, state models.ChartState, gen *reports.Generator, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(state)
	case "markdown", "md":
		_, err := io.WriteString(w, gen.Markdown(state))
		return err
	default:
		return fmt.Errorf("unsupported --format: %s (use json|yaml|markdown)", format)
	}
}

func writePNG(cg *charts.ChartGenerator, state models.ChartState, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := cg.Render(f, state, charts.FormatPNG); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// serveMock starts the mock analytics service on a loopback port
func serveMock(store *dataset.Store) (string, func(), error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("start mock service: %w", err)
	}
	srv := &http.Server{Handler: mocks.NewMockService(store).Handler()}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("mock service stopped", err)
		}
	}()
	return "http://" + ln.Addr().String(), func() { _ = srv.Close() }, nil
}

func clientOptions(cfg *config.Config) fetchers.Options {
	opts := fetchers.DefaultOptions()
	opts.Timeout = cfg.HTTPTimeout
	opts.RetryCount = cfg.HTTPRetryCount
	return opts
}

func defaults(cfg *config.Config) dispatcher.Defaults {
	return dispatcher.Defaults{
		Column:     cfg.DefaultColumnIndex,
		GroupBy:    cfg.DefaultGroupByIndex,
		RowField:   cfg.DefaultRowFieldIndex,
		ValueField: cfg.DefaultValueFieldIndex,
	}
}
