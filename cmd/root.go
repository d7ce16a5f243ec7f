package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/kansi/internal/cache"
	"github.com/lepinkainen/kansi/internal/config"
	"github.com/lepinkainen/kansi/internal/cover"
	"github.com/lepinkainen/kansi/internal/fileutil"
	"github.com/lepinkainen/kansi/internal/sources"
)

// CLI represents the complete command structure for the kansi application
type CLI struct {
	// Global flags
	UpdateCovers bool   `help:"Re-download cover images even if they already exist"`
	AliasFile    string `help:"Path to YAML file with title alias overrides"`

	// Cache flags
	CacheDBFile     string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL        string `help:"Cache time-to-live duration (e.g., 24h)" default:"24h"`
	CacheMaxEntries int    `help:"Maximum number of cached cover entries" default:"1000"`

	Resolve ResolveCmd `cmd:"" help:"Resolve the cover image URL for a single title"`
	Batch   BatchCmd   `cmd:"" help:"Resolve cover image URLs for many titles"`
	Cache   CacheCmd   `cmd:"" help:"Manage the cover cache"`
}

// ResolveCmd resolves one title to a cover URL.
type ResolveCmd struct {
	Title    string `arg:"" help:"Manga title to resolve"`
	Author   string `short:"a" help:"Author name to disambiguate the search"`
	Force    bool   `short:"f" help:"Bypass the cache read and re-resolve"`
	Download bool   `short:"d" help:"Download the resolved cover image"`
	Output   string `short:"o" help:"Directory for downloaded covers (defaults to CoverOutputDir)"`
}

// BatchCmd resolves a list of titles, from arguments or a CSV file.
type BatchCmd struct {
	Titles []string `arg:"" optional:"" help:"Titles to resolve"`
	Input  string   `short:"i" help:"Path to CSV file with title,author rows"`
	Force  bool     `short:"f" help:"Bypass the cache read and re-resolve"`
}

// CacheCmd groups cache maintenance subcommands.
type CacheCmd struct {
	Invalidate cache.InvalidateCmd `cmd:"" help:"Delete all cached cover entries"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("kansi"),
		kong.Description("Resolve first-volume English-edition manga cover images."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("CoverOutputDir", "./covers/")
	viper.SetDefault("UpdateCovers", false)

	// Cache defaults
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.maxentries", cache.DefaultMaxEntries)

	// Resolver defaults
	viper.SetDefault("resolver.batchsize", 5)
	viper.SetDefault("resolver.batchdelay", "200ms")

	// Enable environment variable support
	viper.AutomaticEnv()
	if err := viper.BindEnv("googlebooks.apikey", "GOOGLE_BOOKS_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetUpdateCovers(cli.UpdateCovers)

	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
	viper.Set("cache.maxentries", cli.CacheMaxEntries)
	if cli.AliasFile != "" {
		viper.Set("aliases.file", cli.AliasFile)
	}
}

// newResolver wires the resolver from configuration: alias table, SQLite
// store (memory store when the database cannot be opened) and the default
// source chain.
func newResolver() (*cover.Resolver, func(), error) {
	aliases := cover.DefaultAliases
	if path := viper.GetString("aliases.file"); path != "" {
		loaded, err := cover.LoadAliasFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load aliases: %w", err)
		}
		aliases = loaded
	}

	ttl, err := time.ParseDuration(viper.GetString("cache.ttl"))
	if err != nil {
		slog.Warn("Invalid cache TTL, using default", "ttl", viper.GetString("cache.ttl"), "error", err)
		ttl = cache.DefaultTTL
	}

	var store cache.Store
	cleanup := func() {}
	sqliteStore, err := cache.NewSQLiteStore(viper.GetString("cache.dbfile"),
		cache.WithSQLiteTTL(ttl),
		cache.WithSQLiteMaxEntries(viper.GetInt("cache.maxentries")),
	)
	if err != nil {
		slog.Warn("Failed to open cache database, using in-memory cache", "error", err)
		store = cache.NewMemoryStore(cache.WithTTL(ttl))
	} else {
		store = sqliteStore
		cleanup = func() { _ = sqliteStore.Close() }
	}

	batchDelay, err := time.ParseDuration(viper.GetString("resolver.batchdelay"))
	if err != nil {
		batchDelay = 200 * time.Millisecond
	}

	resolver := cover.NewResolver(store, sources.Default(aliases),
		cover.WithBatchSize(viper.GetInt("resolver.batchsize")),
		cover.WithBatchDelay(batchDelay),
	)
	return resolver, cleanup, nil
}

func (r *ResolveCmd) Run() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title must not be empty")
	}

	resolver, cleanup, err := newResolver()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	url := resolver.Resolve(ctx, cover.Request{
		Title:        r.Title,
		Author:       r.Author,
		ForceRefresh: r.Force,
	})
	fmt.Println(url)

	if !r.Download {
		return nil
	}

	outputDir := r.Output
	if outputDir == "" {
		outputDir = viper.GetString("CoverOutputDir")
	}

	result, err := fileutil.DownloadCover(ctx, fileutil.CoverDownloadOptions{
		URL:          url,
		OutputDir:    outputDir,
		Filename:     fileutil.BuildCoverFilename(r.Title),
		UpdateCovers: config.UpdateCovers,
	})
	if err != nil {
		return fmt.Errorf("cover download failed: %w", err)
	}
	if result != nil && !result.Downloaded {
		slog.Info("Cover already present", "path", result.LocalPath)
	}
	return nil
}

func (b *BatchCmd) Run() error {
	reqs, err := b.collectRequests()
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		return fmt.Errorf("no titles given (pass titles as arguments or use --input)")
	}

	resolver, cleanup, err := newResolver()
	if err != nil {
		return err
	}
	defer cleanup()

	results := resolver.ResolveMany(context.Background(), reqs)

	for _, req := range reqs {
		fmt.Printf("%s\t%s\n", req.Title, results[req.Title])
	}
	return nil
}

// collectRequests merges titles given as arguments with rows from the
// optional CSV file (title in column one, author in column two).
func (b *BatchCmd) collectRequests() ([]cover.Request, error) {
	reqs := make([]cover.Request, 0, len(b.Titles))
	for _, title := range b.Titles {
		if strings.TrimSpace(title) == "" {
			continue
		}
		reqs = append(reqs, cover.Request{Title: title, ForceRefresh: b.Force})
	}

	if b.Input == "" {
		return reqs, nil
	}

	f, err := os.Open(b.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}
		req := cover.Request{Title: strings.TrimSpace(record[0]), ForceRefresh: b.Force}
		if len(record) > 1 {
			req.Author = strings.TrimSpace(record[1])
		}
		reqs = append(reqs, req)
	}

	return reqs, nil
}

func initLogging() {
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
