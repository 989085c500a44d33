// main.go - Entry point and dependency injection
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sstent/trackedit/internal/config"
	"github.com/sstent/trackedit/internal/database"
	"github.com/sstent/trackedit/internal/edit"
	"github.com/sstent/trackedit/internal/parser"
	"github.com/sstent/trackedit/internal/sync"
	"github.com/sstent/trackedit/internal/track"
	"github.com/sstent/trackedit/internal/web"
)

type App struct {
	cfg         *config.Config
	db          *database.SQLiteDB
	cron        *cron.Cron
	server      *http.Server
	shutdown    chan os.Signal
	syncService *sync.SyncService
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [serve]\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(os.Stderr, "       %s edit [-quiet] [-verbatim] [-strict] <file>...\n", filepath.Base(os.Args[0]))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	args := os.Args[1:]
	cmd := "serve"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		serve(cfg)
	case "edit":
		if err := editFiles(cfg, args, os.Stdin, os.Stdout); err != nil {
			log.Fatal(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func serve(cfg *config.Config) {
	app := &App{
		cfg:      cfg,
		shutdown: make(chan os.Signal, 1),
	}

	// Initialize components
	if err := app.init(); err != nil {
		log.Fatal("Failed to initialize app:", err)
	}

	// Start services
	if err := app.start(); err != nil {
		log.Fatal("Failed to start app:", err)
	}

	// Wait for shutdown signal
	signal.Notify(app.shutdown, os.Interrupt, syscall.SIGTERM)
	<-app.shutdown

	// Graceful shutdown
	app.stop()
}

func (app *App) init() error {
	var err error

	// Initialize database
	app.db, err = initDatabase(app.cfg)
	if err != nil {
		return err
	}

	// Initialize sync service
	app.syncService = sync.NewSyncService(app.db, app.cfg.InboxDir, app.cfg.TrackOptions())

	// Setup cron scheduler
	app.cron = cron.New()

	// Setup HTTP server
	webHandler := web.NewWebHandler(app.db, app.syncService)
	app.server = &http.Server{
		Addr:    app.cfg.ListenAddr,
		Handler: web.NewRouter(webHandler),
	}

	return nil
}

func (app *App) start() error {
	// Start cron scheduler
	_, err := app.cron.AddFunc(app.cfg.SyncSchedule, func() {
		log.Println("Starting scheduled sync...")
		if err := app.syncService.Sync(context.Background()); err != nil {
			log.Printf("Sync failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid sync schedule %q: %w", app.cfg.SyncSchedule, err)
	}
	app.cron.Start()

	// Start web server
	go func() {
		log.Printf("Server starting on %s", app.cfg.ListenAddr)
		if err := app.server.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()
	return nil
}

func (app *App) stop() {
	log.Println("Shutting down...")

	// Stop cron and wait for a running sync
	<-app.cron.Stop().Done()

	// Stop web server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	// Close database
	if app.db != nil {
		app.db.Close()
	}

	log.Println("Shutdown complete")
}

// Database initialization
func initDatabase(cfg *config.Config) (*database.SQLiteDB, error) {
	// Create data directories if they don't exist
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	db, err := database.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// editFiles loads the files into one track and runs the editor commands
// read from in, one per line.
func editFiles(cfg *config.Config, args []string, in io.Reader, out io.Writer) error {
	opts := cfg.TrackOptions()
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.BoolVar(&opts.Quiet, "quiet", opts.Quiet, "suppress INFO and WARNING messages")
	fs.BoolVar(&opts.Verbatim, "verbatim", opts.Verbatim, "keep bad samples, carrying values forward")
	fs.BoolVar(&opts.Strict, "strict", opts.Strict, "require distance and speed data")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		usage()
		return errors.New("no input file")
	}

	trk := track.New(opts)
	var size int64
	for _, path := range fs.Args() {
		if err := parser.ParseFile(path, trk); err != nil {
			return err
		}
		if info, err := os.Stat(path); err == nil {
			size += info.Size()
		}
	}
	if err := trk.Validate(); err != nil {
		return err
	}
	trk.ComputeMetrics()
	fmt.Fprintf(out, "Loaded %d points from %s\n", trk.Len(), strings.Join(fs.Args(), ", "))

	editor := edit.New(trk, out)
	name := filepath.Base(fs.Arg(0))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		words := strings.Fields(scanner.Text())
		if len(words) == 0 {
			continue
		}

		switch words[0] {
		case "quit", "exit":
			return nil
		case "save":
			if err := saveTrack(cfg, name, size, trk); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
			}
			continue
		}

		err := editor.Exec(words)
		switch {
		case err == nil:
		case errors.Is(err, track.ErrNothingToUndo):
			fmt.Fprintln(out, "Nothing to undo")
		case errors.Is(err, edit.ErrUnknownCommand):
			fmt.Fprintf(out, "%v (try \"help\")\n", err)
		default:
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
	return scanner.Err()
}

func saveTrack(cfg *config.Config, name string, size int64, trk *track.Track) error {
	db, err := initDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := sync.NewSyncService(db, cfg.InboxDir, trk.Options())
	_, err = svc.Store(name, size, trk, true)
	return err
}
