// Command chart-cli renders the daily pollution chart of one station and
// pollutant to the terminal or to a file.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"dailyair/internal/app"
	"dailyair/internal/charts"
	"dailyair/internal/config"
	"dailyair/internal/logger"
	"dailyair/internal/models"
	"dailyair/internal/reports"
	"dailyair/internal/storage"
)

// Output formats
const (
	formatText = "text"
	formatPNG  = "png"
	formatHTML = "html"
	formatJSON = "json"
)

type options struct {
	station   string
	pollutant string
	start     string
	format    string
	out       string
	width     int
	height    int
	publish   bool
	timeout   time.Duration
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("chart-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.station, "station", "", "monitoring station name (required)")
	fs.StringVar(&o.pollutant, "pollutant", "", "pollutant code, e.g. NO2 (required)")
	fs.StringVar(&o.start, "start", "", "first day of the period, YYYY-MM-DD (default: configured lookback before the last update)")
	fs.StringVar(&o.format, "format", formatText, "output format: text, png, html or json")
	fs.StringVar(&o.out, "out", "", "output file (default: stdout)")
	fs.IntVar(&o.width, "width", 72, "text chart width")
	fs.IntVar(&o.height, "height", 16, "text chart height")
	fs.BoolVar(&o.publish, "publish", false, "also store the report files in the configured storage")
	fs.DurationVar(&o.timeout, "timeout", 2*time.Minute, "overall timeout")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	o.format = strings.ToLower(o.format)
	switch o.format {
	case formatText, formatPNG, formatHTML, formatJSON:
	default:
		return o, fmt.Errorf("unsupported format %q", o.format)
	}
	if o.station == "" || o.pollutant == "" {
		return o, errors.New("-station and -pollutant are required")
	}
	return o, nil
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env file", logger.Fields{"error": err.Error()})
	}

	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if notice := reports.NoticeFor(err); notice != "" {
			fmt.Fprintln(os.Stderr, notice)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "chart-cli: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat, cfg.Environment); err != nil {
		return err
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	page, err := analyze(ctx, a, o)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch o.format {
	case formatText:
		text, err := charts.RenderText(page.Result.Chart, o.width, o.height)
		if err != nil {
			return err
		}
		buf.WriteString(text)
		for _, w := range page.Result.Warnings {
			fmt.Fprintf(&buf, "warning: %s\n", w)
		}
	case formatPNG:
		err = charts.RenderPNG(page.Result.Chart, &buf)
	case formatHTML:
		err = charts.RenderPage(page.Result.Chart, &buf)
	case formatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(page.Result)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s chart: %w", o.format, err)
	}

	if o.out == "" {
		_, err = stdout.Write(buf.Bytes())
	} else {
		err = os.WriteFile(o.out, buf.Bytes(), 0644)
	}
	if err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}

	if o.publish {
		return publish(ctx, cfg, page)
	}
	return nil
}

// analyze resolves the cutoff and runs the analysis, checking the selection
// against the catalog when the backend keeps one
func analyze(ctx context.Context, a *app.App, o options) (*reports.Page, error) {
	page := &reports.Page{Station: o.station, Pollutant: o.pollutant}

	if a.Catalog.Supported() {
		period, err := a.Catalog.Period(ctx)
		if err != nil {
			return nil, err
		}
		page.Period = &period
		page.Cutoff = period.DefaultCutoff
		if err := a.Catalog.CheckStation(ctx, o.station); err != nil {
			return nil, err
		}
	}
	if o.start != "" {
		cutoff, err := time.Parse(models.DateLayout, o.start)
		if err != nil {
			return nil, fmt.Errorf("-start must be a %s date: %w", models.DateLayout, err)
		}
		if page.Period != nil {
			if err := page.Period.Validate(cutoff); err != nil {
				return nil, err
			}
		}
		page.Cutoff = cutoff
	}
	if page.Cutoff.IsZero() {
		return nil, errors.New("-start is required when the data backend keeps no catalog")
	}

	req, err := models.NewAnalysisRequest(o.station, o.pollutant, page.Cutoff)
	if err != nil {
		return nil, err
	}
	res, err := a.Analyzer.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	page.Result = res
	return page, nil
}

// publish stores the report files of the page in the configured storage
func publish(ctx context.Context, cfg *config.Config, page *reports.Page) error {
	client, err := storage.NewStorageClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	generator, err := reports.NewGenerator()
	if err != nil {
		return err
	}
	files, err := reports.NewFileGenerator(generator).GenerateAllFiles(*page)
	if err != nil {
		return err
	}
	stored, err := reports.NewStorageOrchestrator(client).StoreAllFiles(ctx, files)
	if err != nil {
		return err
	}
	logger.Info("Report published", logger.Fields{"folder": files.FolderPath, "files": len(stored)})
	return nil
}
