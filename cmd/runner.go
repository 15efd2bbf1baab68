package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/dren-arifi/isrcfind/internal/repositories"
	"github.com/dren-arifi/isrcfind/internal/services"
	"github.com/dren-arifi/isrcfind/internal/shared"
	"github.com/dren-arifi/isrcfind/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, credsCommand, lookupCommand, fetchCommand, searchCommand,
		historyCommand, statsCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the Runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// stores bundles the database-backed dependencies every action wires up.
type stores struct {
	db      *sql.DB
	kv      *repositories.KVStore
	cache   *repositories.SearchCache
	history *repositories.HistoryRepository
	stats   *repositories.StatsRepository
	creds   *services.CredentialStore
	tokens  *services.TokenManager
	catalog *services.SpotifyService
	videos  *services.YouTubeService
	engine  *tasks.LookupEngine
}

func (s *stores) Close() error {
	return s.db.Close()
}

// openStores opens the configured database and wires the repositories,
// services, and lookup engine on top of it. The caller closes it.
func (r *Runner) openStores() (*stores, error) {
	cfg := r.config

	db, err := shared.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &stores{
		db:      db,
		kv:      repositories.NewKVStore(db),
		cache:   repositories.NewSearchCache(db, time.Duration(cfg.Lookup.CacheTTLHours)*time.Hour),
		history: repositories.NewHistoryRepository(db, 0),
		stats:   repositories.NewStatsRepository(db),
	}

	s.creds = services.NewCredentialStore(s.kv)
	s.tokens = services.NewTokenManager(s.kv, s.creds, "").WithLogger(r.logger)
	s.catalog = services.NewSpotifyService(s.tokens, "").
		WithCache(s.cache).
		WithLimit(cfg.Lookup.SearchLimit).
		WithLogger(r.logger)
	s.videos = services.NewYouTubeService(cfg.Credentials.YouTube.APIKey, "").WithLogger(r.logger)

	s.engine = tasks.NewLookupEngine(s.catalog, s.videos).
		WithHistory(s.history).
		WithRateLimit(cfg.Lookup.RateLimit).
		WithLogger(r.logger)

	return s, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
