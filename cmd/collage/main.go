// Command collage builds a product collage from two photographs: a product
// closeup (slot 1, background-removed and placed on a chosen overlay
// color) and a color-variants shot (slot 2). Single-pair and batch modes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Ankurjain1121/collage-tool-api/internal/assets"
	"github.com/Ankurjain1121/collage-tool-api/internal/compose"
	"github.com/Ankurjain1121/collage-tool-api/internal/config"
	"github.com/Ankurjain1121/collage-tool-api/internal/extract"
	"github.com/Ankurjain1121/collage-tool-api/internal/imgio"
)

func main() {
	var (
		configPath  string
		product     string
		variants    string
		outPath     string
		background  string
		borderStyle string
		borderName  string
		batchDir    string
		outDir      string
		listAssets  bool
	)

	flag.StringVar(&configPath, "config", "", "path to config.yaml (optional)")
	flag.StringVar(&product, "product", "", "product closeup: local path or http(s) URL")
	flag.StringVar(&variants, "variants", "", "color variants image: local path or http(s) URL")
	flag.StringVar(&outPath, "out", "", "output PNG path (default: storage outputs dir)")
	flag.StringVar(&background, "background", "", `base background asset name, or "random"`)
	flag.StringVar(&borderStyle, "border-style", "", "border style override: solid | asset-overlay | none")
	flag.StringVar(&borderName, "border", "", "border asset name for asset-overlay style")
	flag.StringVar(&batchDir, "in", "", "batch mode: directory of <name>_1.* / <name>_2.* pairs")
	flag.StringVar(&outDir, "outdir", "", "batch mode: output directory")
	flag.BoolVar(&listAssets, "list", false, "list available background and border assets, then exit")
	flag.Parse()

	// Best effort; the environment may carry everything already.
	_ = godotenv.Load()

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store := assets.NewStore(assets.Options{
		Root:              cfg.Storage.Root,
		DefaultBackground: cfg.Style.DefaultBackground,
		DefaultBorder:     cfg.Style.DefaultBorder,
	})

	if listAssets {
		printCatalog(store)
		return
	}

	composer, err := compose.New(cfg, newExtractor(cfg, logger), store, logger)
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	logger.Info("pipeline ready",
		zap.Int("canvas_w", cfg.Canvas.Width),
		zap.Int("canvas_h", cfg.Canvas.Height),
		zap.String("overlay_strategy", cfg.Style.OverlayStrategy),
		zap.Bool("remote_extractor", cfg.Extractor.Endpoint != ""))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := compose.Options{
		BackgroundName: background,
		BorderStyle:    compose.BorderStyle(borderStyle),
		BorderName:     borderName,
	}

	if batchDir != "" {
		if outDir == "" {
			logger.Fatal("batch mode needs -outdir")
		}
		if err := runBatch(ctx, composer, logger, batchDir, outDir, opts, cfg.Batch.MaxConcurrent); err != nil {
			logger.Fatal("batch failed", zap.Error(err))
		}
		return
	}

	if product == "" || variants == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := runSingle(ctx, composer, store, logger, product, variants, outPath, opts); err != nil {
		logger.Fatal("collage failed",
			zap.String("kind", string(compose.ErrKind(err))),
			zap.Error(err))
	}
}

func printCatalog(store *assets.Store) {
	backgrounds, _ := store.ListBackgrounds()
	borders, _ := store.ListBorders()
	fmt.Println("backgrounds:", strings.Join(backgrounds, ", "))
	fmt.Println("borders:", strings.Join(borders, ", "))
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.New(), nil
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newExtractor(cfg config.Config, logger *zap.Logger) extract.Extractor {
	if cfg.Extractor.Endpoint == "" {
		logger.Warn("no extractor endpoint configured, expecting pre-cut product images")
		return extract.Passthrough{}
	}
	return extract.NewClient(extract.Options{
		Endpoint:   cfg.Extractor.Endpoint,
		HTTPClient: extract.NewHTTPClient(cfg.Extractor.Timeout),
		Logger:     logger,
	})
}

func runSingle(ctx context.Context, composer *compose.Composer, store *assets.Store, logger *zap.Logger,
	product, variants, outPath string, opts compose.Options) error {

	productBytes, err := imgio.Load(product)
	if err != nil {
		return err
	}
	variantBytes, err := imgio.Load(variants)
	if err != nil {
		return err
	}

	start := time.Now()
	out, err := composer.Create(ctx, productBytes, variantBytes, opts)
	if err != nil {
		return err
	}

	if outPath == "" {
		name := strings.TrimSuffix(filepath.Base(product), filepath.Ext(product)) + "_collage"
		outPath, err = store.SaveOutput(name, out)
		if err != nil {
			return err
		}
	} else if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	logger.Info("collage written",
		zap.String("path", outPath),
		zap.Duration("took", time.Since(start)))
	return nil
}

// runBatch processes every <name>_1.* / <name>_2.* pair found in dir,
// bounding concurrency; requests are fully independent, so a bounded
// errgroup fan-out is safe.
func runBatch(ctx context.Context, composer *compose.Composer, logger *zap.Logger,
	dir, outDir string, opts compose.Options, maxConcurrent int) error {

	pairs, err := findPairs(dir)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return fmt.Errorf("no image pairs found in %s", dir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for name, pair := range pairs {
		name, pair := name, pair
		g.Go(func() error {
			productBytes, err := os.ReadFile(pair[0])
			if err != nil {
				return err
			}
			variantBytes, err := os.ReadFile(pair[1])
			if err != nil {
				return err
			}
			out, err := composer.Create(ctx, productBytes, variantBytes, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			target := filepath.Join(outDir, name+".png")
			if err := os.WriteFile(target, out, 0o644); err != nil {
				return err
			}
			logger.Info("collage written", zap.String("path", target))
			return nil
		})
	}
	return g.Wait()
}

// findPairs maps base names to their [product, variants] paths. A pair is
// complete only when both the _1 and _2 files exist.
func findPairs(dir string) (map[string][2]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	firsts := map[string]string{}
	seconds := map[string]string{}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		switch {
		case strings.HasSuffix(base, "_1"):
			name := strings.TrimSuffix(base, "_1")
			firsts[name] = filepath.Join(dir, e.Name())
			names = append(names, name)
		case strings.HasSuffix(base, "_2"):
			seconds[strings.TrimSuffix(base, "_2")] = filepath.Join(dir, e.Name())
		}
	}
	sort.Strings(names)

	pairs := map[string][2]string{}
	for _, name := range names {
		second, ok := seconds[name]
		if !ok {
			continue
		}
		pairs[name] = [2]string{firsts[name], second}
	}
	return pairs, nil
}
