// Command metasearch is a thin CLI demonstrating the search engine
// registry/aggregator wired against real adapters. It runs one query,
// streams JSON results to stdout, and exits — the HTTP front end a real
// deployment would sit behind is out of scope (spec.md §7).
//
// The flag layout and signal-based graceful shutdown follow the teacher's
// own main.go.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"metasearch/engine/adapter"
	"metasearch/engine/config"
	"metasearch/engine/models"
	"metasearch/engine/registry"
	"metasearch/engine/telemetry/logging"
	"metasearch/engine/telemetry/metrics"
	"metasearch/internal/engines"
)

func main() {
	var (
		query       string
		categories  string
		language    string
		safeSearch  int
		page        int
		configPath  string
		blocklist   string
		metricsAddr string
		requestTime time.Duration
		showVersion bool
	)

	flag.StringVar(&query, "q", "", "Search query text (required)")
	flag.StringVar(&categories, "categories", "", "Comma separated categories (default: general)")
	flag.StringVar(&language, "lang", "", "Preferred result language")
	flag.IntVar(&safeSearch, "safesearch", 0, "Safe search level: 0=off, 1=moderate, 2=strict")
	flag.IntVar(&page, "page", 1, "Result page, 1-indexed")
	flag.StringVar(&configPath, "config", "", "Path to engines.yaml (optional; defaults apply when unset)")
	flag.StringVar(&blocklist, "blocklist", "", "Comma separated list of blocked result hostnames")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "If set, serve Prometheus metrics on this address (e.g. :9100) until the query completes")
	flag.DurationVar(&requestTime, "timeout", 10*time.Second, "Overall deadline for the search call")
	flag.BoolVar(&showVersion, "version", false, "Show version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("metasearch CLI (demo mode)")
		return
	}
	if query == "" {
		fmt.Fprintln(os.Stderr, "usage: metasearch -q \"search text\" [-categories general,images] [-config engines.yaml]")
		os.Exit(1)
	}

	logger := logging.New(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	metricsProvider := metrics.New()

	store := config.NewStore()
	if configPath != "" {
		if err := store.Load(configPath); err != nil {
			log.Fatalf("load config: %v", err)
		}
		if err := store.Watch(func(err error) {
			if err != nil {
				logger.ErrorCtx(context.Background(), "config reload failed", "error", err.Error())
			} else {
				logger.InfoCtx(context.Background(), "config reloaded")
			}
		}); err != nil {
			log.Fatalf("watch config: %v", err)
		}
		defer store.Close()
	}

	if metricsAddr != "" {
		srv := &http.Server{Addr: metricsAddr, Handler: metricsProvider.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.ErrorCtx(context.Background(), "metrics server stopped", "error", err.Error())
			}
		}()
		defer srv.Close()
	}

	reg := registry.New(
		registry.WithConfigStore(store),
		registry.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
		registry.WithLogger(logger),
		registry.WithMetrics(metricsProvider),
	)

	for _, a := range defaultAdapters() {
		if err := reg.Register(a); err != nil {
			log.Fatalf("register %s: %v", a.ID(), err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTime)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		logger.WarnCtx(context.Background(), "signal received; cancelling in-flight search")
		cancel()
	}()

	q := models.SearchQuery{
		Q:          query,
		Language:   language,
		Page:       page,
		SafeSearch: models.SafeSearchLevel(safeSearch),
		Categories: splitCSV(categories),
	}.Normalize()

	results := reg.Search(ctx, q, splitCSV(blocklist))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		log.Fatalf("encode results: %v", err)
	}
}

func defaultAdapters() []adapter.Adapter {
	return []adapter.Adapter{
		engines.NewDummy(5),
		engines.NewDuckDuckGo(),
		engines.NewWikipedia(),
		engines.NewBing(),
		engines.NewGoogle(),
		engines.NewReddit(),
		engines.NewQwant(),
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
