package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/ashgrove/trackshift/internal/markers"
	"github.com/ashgrove/trackshift/internal/repositories"
	"github.com/ashgrove/trackshift/internal/services"
	"github.com/ashgrove/trackshift/internal/shared"
	"github.com/ashgrove/trackshift/internal/tasks"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	spotify services.Service
	markers *markers.Store
	logger  *log.Logger
	output  io.Writer

	db     *sql.DB
	repo   *repositories.SnapshotRepository
	engine tasks.CommitEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Spotify services.Service
	Markers *markers.Store
	Engine  tasks.CommitEngine
	Logger  *log.Logger
	Output  io.Writer
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
	if opts.Markers == nil {
		opts.Markers = markers.NewStore()
	}

	return &Runner{
		config:  opts.Config,
		spotify: opts.Spotify,
		markers: opts.Markers,
		logger:  opts.Logger,
		output:  opts.Output,
		engine:  opts.Engine,
	}
}

// SetLogger swaps the runner's logger, used when the TUI takes over the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, playlistsCommand, moveCommand, removeCommand, insertCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openDatabase opens the configured SQLite database, runs pending migrations,
// and wires the snapshot repository and commit engine. Idempotent.
func (r *Runner) openDatabase() error {
	if r.db != nil {
		return nil
	}

	path := r.config.Database.Path
	if path == "" {
		path = "trackshift.db"
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return err
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return err
	}

	r.db = db
	r.repo = repositories.NewSnapshotRepository(db)
	r.engine = tasks.NewDropEngine(r.spotify, r.repo, r.markers, nil)
	return nil
}

// requireEngine makes sure a commit engine exists, building one without
// persistence when the database is unavailable.
func (r *Runner) requireEngine() tasks.CommitEngine {
	if r.engine == nil {
		r.engine = tasks.NewDropEngine(r.spotify, nil, r.markers, nil)
	}
	return r.engine
}

// logProgress drains a progress channel into the logger until it closes.
// Returns the channel and a wait function for the caller to block on.
func (r *Runner) logProgress() (chan tasks.ProgressUpdate, func()) {
	progress := make(chan tasks.ProgressUpdate, 50)
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		for update := range progress {
			r.logger.Infof("[%s] %s", update.Phase, update.Message)
		}
	}()

	return progress, wg.Wait
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
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
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// parsePositions parses a comma-separated list of non-negative positions.
func parsePositions(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	positions := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pos, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid position %q", shared.ErrInvalidInput, part)
		}
		if pos < 0 {
			return nil, fmt.Errorf("%w: negative position %d", shared.ErrInvalidInput, pos)
		}
		positions = append(positions, pos)
	}
	return positions, nil
}
