package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thesavant42/cinesearch/internal/api"
	"github.com/thesavant42/cinesearch/internal/browse"
	"github.com/thesavant42/cinesearch/internal/config"
	"github.com/thesavant42/cinesearch/internal/db"
	"github.com/thesavant42/cinesearch/internal/library"
	"github.com/thesavant42/cinesearch/internal/models"
	"github.com/thesavant42/cinesearch/internal/ui"
	"github.com/thesavant42/cinesearch/internal/web"
)

func main() {
	// Load .env file and environment (flags below override)
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}

	dbPath := flag.String("db", cfg.DBPath, "Path to SQLite database file")
	apiKey := flag.String("apikey", "", "OMDb API key (default $"+config.EnvAPIKey+")")
	searchFlag := flag.String("search", "", "Search for a title and print the results")
	pageFlag := flag.Int("page", 1, "Result page for -search")
	favoritesFlag := flag.Bool("favorites", false, "List favorite movies")
	historyFlag := flag.Bool("history", false, "List search history")
	clearHistoryFlag := flag.Bool("clear-history", false, "Clear search history (asks for confirmation)")
	exportFlag := flag.String("export-favorites", "", "Export favorites to an HTML file")
	serveFlag := flag.String("serve", "", "Serve the web interface on this address (e.g. :8080)")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.Parse()

	cfg.DBPath = *dbPath
	cfg.LogLevel = *logLevel
	if *apiKey != "" {
		cfg.APIKey = *apiKey
	}

	logger, logCloser := config.NewLogger(cfg)
	defer logCloser.Close()

	// Initialize database
	database, err := db.New(cfg.DBPath)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Failed to initialize database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	lib := library.Open(
		db.NewCollection[models.FavoriteEntry](database, db.KeyFavorites),
		db.NewCollection[models.HistoryEntry](database, db.KeyHistory),
		logger,
	)
	logger.Info("Library opened", "db", cfg.DBPath, "favorites", lib.FavoriteCount(), "history", len(lib.History()))
	if keys, err := database.Keys(); err == nil {
		for _, k := range keys {
			logger.Debug("Stored collection", "key", k.Key, "updated", k.UpdatedAt)
		}
	}

	// Local-only commands don't need an API key
	switch {
	case *favoritesFlag:
		ui.PrintFavorites(os.Stdout, lib.Favorites())
		return
	case *historyFlag:
		ui.PrintHistory(os.Stdout, lib.History(), time.Now())
		return
	case *clearHistoryFlag:
		runClearHistory(lib)
		return
	case *exportFlag != "":
		path, err := ui.ExportFavoritesHTML(*exportFlag, lib.Favorites(), time.Now())
		if err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
		ui.PrintSuccess(fmt.Sprintf("Exported %d favorites to %s", lib.FavoriteCount(), path))
		return
	}

	if err := cfg.Validate(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}

	client := api.NewOMDbClient(cfg.APIKey, logger,
		api.WithBaseURL(cfg.BaseURL),
		api.WithTimeout(cfg.Timeout),
	)

	switch {
	case *searchFlag != "":
		runSearch(client, lib, cfg.Timeout, *searchFlag, *pageFlag)
	case *serveFlag != "":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ui.PrintSuccess(fmt.Sprintf("Serving on %s (ctrl+c to stop)", *serveFlag))
		if err := web.NewServer(client, lib, logger).ListenAndServe(ctx, *serveFlag); err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
	default:
		if err := ui.RunApp(client, lib, logger, cfg.Timeout); err != nil {
			ui.PrintError(fmt.Sprintf("TUI error: %v", err))
			os.Exit(1)
		}
	}
}

// runSearch performs one search and prints the results
func runSearch(client *api.OMDbClient, lib *library.Library, timeout time.Duration, term string, page int) {
	term = browse.NormalizeTerm(term)
	if term == "" {
		ui.PrintError(browse.MsgEmptyTerm)
		os.Exit(1)
	}
	if page < 1 {
		page = 1
	}
	if page == 1 {
		if err := lib.RecordSearch(term); err != nil {
			ui.PrintError(err.Error())
		}
	}

	var result *models.SearchResult
	var fetchErr error
	err := ui.RunWithSpinner(fmt.Sprintf("Searching for %q...", term), func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		result, fetchErr = client.Search(ctx, term, page)
	})
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
	if fetchErr != nil {
		ui.PrintError(browse.SearchErrorMessage(fetchErr))
		os.Exit(1)
	}

	ui.PrintSearchResult(os.Stdout, result, lib.FavoriteIDs())
}

func runClearHistory(lib *library.Library) {
	if len(lib.History()) == 0 {
		fmt.Println("Search history is already empty.")
		return
	}
	confirm, err := ui.ConfirmClearHistory()
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
	if !confirm {
		fmt.Println("Search history kept.")
		return
	}
	if err := lib.ClearHistory(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
	ui.PrintSuccess("Search history cleared")
}
