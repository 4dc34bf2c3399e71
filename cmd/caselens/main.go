// Copyright 2025 Caselens Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/caselens/caselens"
	"github.com/caselens/caselens/ai"
	"github.com/caselens/caselens/ai/openai"
	"github.com/caselens/caselens/config"
	"github.com/caselens/caselens/ingestion"
	"github.com/caselens/caselens/pdftext"
	"github.com/caselens/caselens/reembed"
	"github.com/caselens/caselens/storage/badger"
	"github.com/caselens/caselens/web"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "caselens",
		Usage: "Semantic search over court judgments",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file (defaults to ./config.yaml, then ~/.config/caselens/config.yaml)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP search server",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address (overrides the config file)",
					},
				},
			},
			{
				Name:      "ingest",
				Usage:     "Add judgment files (.txt or .pdf) to the corpus",
				ArgsUsage: "FILE [FILE ...]",
				Action:    ingestCommand,
			},
			{
				Name:      "search",
				Usage:     "Run a one-shot query against the corpus",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max-hits",
						Usage: "Maximum number of results",
						Value: 5,
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Recompute embeddings for every stored judgment",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of cases to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N cases",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig resolves the application config from the --config flag or
// the default search path.
func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	cfg, path, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded configuration", "path", path)
	return cfg, nil
}

// openDatabase opens the corpus store described by the config.
func openDatabase(cfg *config.AppConfig, aiConfig *ai.Config) (*caselens.Database, error) {
	opts := []caselens.DatabaseOption{caselens.WithAIConfig(aiConfig)}
	if cfg.Database.InMemory {
		opts = append(opts, caselens.WithInMemory())
	}
	return caselens.NewDatabase(cfg.Database.Path, opts...)
}

// aiConfigFrom maps the file config onto the model tier config.
func aiConfigFrom(cfg *config.AppConfig) *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(cfg.AI.EmbeddingHost),
		ai.WithChatHost(cfg.AI.ChatHost),
		ai.WithEmbeddingModel(cfg.AI.EmbeddingModel),
		ai.WithChatModel(cfg.AI.ChatModel),
		ai.WithAPIKey(cfg.AI.APIKey()),
		ai.WithExplainRequestsPerMinute(cfg.AI.ExplainRPM),
		ai.WithMaxAttempts(cfg.AI.MaxAttempts),
	)
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	aiConfig := aiConfigFrom(cfg)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := openDatabase(cfg, aiConfig)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	server, err := db.NewServer(
		web.WithMaxHits(cfg.Search.MaxHits),
		web.WithMaxUploadBytes(int64(cfg.Server.MaxUploadMB)<<20),
	)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	addr := cfg.Server.Addr
	if flagAddr := c.String("addr"); flagAddr != "" {
		addr = flagAddr
	}

	slog.Info("starting server", "addr", addr, "db", cfg.Database.Path)
	return server.Run(addr)
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one judgment file is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	aiConfig := aiConfigFrom(cfg)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	docs := make([]ingestion.Document, 0, c.NArg())
	for _, path := range c.Args().Slice() {
		doc, err := readDocument(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		docs = append(docs, doc)
	}

	db, err := openDatabase(cfg, aiConfig)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	cases, err := pipeline.Ingest(context.Background(), docs...)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	for _, cs := range cases {
		fmt.Fprintf(os.Stderr, "ingested %q\n", cs.Name)
	}
	fmt.Fprintf(os.Stderr, "%d judgments queued for embedding\n", len(cases))
	return nil
}

// readDocument loads a judgment from disk. PDF files are extracted,
// everything else is read as plain text. The case name is the file name
// without its extension.
func readDocument(path string) (ingestion.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ingestion.Document{}, err
	}

	text := string(data)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = pdftext.Extract(data)
		if err != nil {
			return ingestion.Document{}, err
		}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ingestion.Document{Name: name, Text: text}, nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("query text is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	aiConfig := aiConfigFrom(cfg)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := openDatabase(cfg, aiConfig)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	ctx := context.Background()
	results, err := searcher.FindSimilar(ctx, query, c.Int("max-hits"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	category := searcher.ClassifyQuery(ctx, query)
	fmt.Printf("Found %d hits (category: %s)\n", len(results), category)
	for i, hit := range results {
		fmt.Printf("%d: %s [%0.3f]\n", i+1, hit.Case.Name, hit.Score)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	aiConfig := aiConfigFrom(cfg)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	// Open database
	backend, err := badger.OpenBackend(cfg.Database.Path, cfg.Database.InMemory)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewCaseRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}

	// Create embedder
	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	// Create reembedding config
	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	// Validate config
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	// Create reembedder
	reembedder := reembed.NewReembedder(repo, embedder, reembedConfig, os.Stderr)

	// Run reembedding
	fmt.Fprintf(os.Stderr, "Database: %s\n", cfg.Database.Path)
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", aiConfig.EmbeddingHost)
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", aiConfig.EmbeddingModel)
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
