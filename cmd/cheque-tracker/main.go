package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/mvaidya/cheque-tracker/internal/analytics"
	"github.com/mvaidya/cheque-tracker/internal/cheque"
	"github.com/mvaidya/cheque-tracker/internal/extraction"
	"github.com/mvaidya/cheque-tracker/internal/server"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("cheque-tracker")
	var (
		port          = fs.IntLong("port", 8080, "HTTP server port")
		dbURL         = fs.StringLong("db-url", "", "Postgres connection URL (or set DATABASE_URL env var)")
		storagePath   = fs.StringLong("storage", "./temp_images", "Temporary image directory")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-1.5-pro", "Google Gemini model name")
		loginEmail    = fs.StringLong("login-email", "", "Basic auth email (or set LOGIN_EMAIL env var)")
		loginPassword = fs.StringLong("login-password", "", "Basic auth password (or set LOGIN_PASSWORD env var)")
		strictAmounts = fs.BoolLong("strict-amounts", "Report unparseable amount strings as analytics warnings")
		showVersion   = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("CHEQUE_TRACKER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Get Gemini API key from flag or environment; the extractor is
	// mandatory, so a missing key aborts startup.
	apiKey := *geminiKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
		os.Exit(1)
	}

	databaseURL := *dbURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("Database URL is required. Set --db-url flag or DATABASE_URL environment variable")
		os.Exit(1)
	}

	email := *loginEmail
	if email == "" {
		email = os.Getenv("LOGIN_EMAIL")
	}
	password := *loginPassword
	if password == "" {
		password = os.Getenv("LOGIN_PASSWORD")
	}

	// Initialize database
	slog.Info("Initializing database...")
	db, err := cheque.NewPostgresDB(databaseURL)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize extractor
	slog.Info("Initializing Gemini extractor...", "model", *geminiModel)
	extractor, err := extraction.NewGemini(apiKey, *geminiModel)
	if err != nil {
		slog.Error("Failed to initialize Gemini", "error", err)
		os.Exit(1)
	}
	defer extractor.Close()

	// Initialize temp-image storage
	slog.Info("Initializing storage...")
	store, err := cheque.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	// Initialize service and analytics engine
	service := cheque.NewService(db, extractor, store)
	engine := analytics.NewEngine(analytics.Options{StrictAmounts: *strictAmounts})

	// Initialize server
	basicAuth := server.BasicAuth{
		Username: email,
		Password: password,
	}
	srv := server.New(service, engine, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := srv.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if email != "" || password != "" {
		slog.Info("Basic auth enabled", "user", email)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
