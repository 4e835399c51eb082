package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/blogem/campus-admin/config"
	"github.com/blogem/campus-admin/database"
	"github.com/blogem/campus-admin/faq"
	"github.com/blogem/campus-admin/models"
	"github.com/blogem/campus-admin/repositories"
	"github.com/blogem/campus-admin/services"
)

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool

	logger    *zap.Logger
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "campus-admin",
	Short: "Campus administration backend for student records",
	Long: `campus-admin keeps student records and their change history in SQLite.

Run "campus-admin serve" for the HTTP API and chat endpoint, or use the
student and stats commands to work on the database directly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		appConfig, err = loadConfig()
		if err != nil {
			return err
		}

		logger, err = newLogger(appConfig.Logging.Level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DATABASE_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd, migrateCmd, studentCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the production logger at level, or debug with --verbose
func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// app is the wired backend shared by the commands
type app struct {
	cfg      *config.Config
	db       *sql.DB
	services *services.Services
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	return cfg, nil
}

// openApp loads configuration, opens and migrates the database and builds the
// services
func openApp() (*app, error) {
	cfg := appConfig

	facts, err := loadFacts(cfg)
	if err != nil {
		return nil, err
	}

	db, err := database.InitializeDatabase(cfg.Database.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	store := repositories.NewStore(db, models.NowPKT)
	return &app{
		cfg:      cfg,
		db:       db,
		services: services.NewServices(store, facts, logger),
	}, nil
}

func loadFacts(cfg *config.Config) (*faq.Facts, error) {
	if cfg.FAQPath != "" {
		return faq.Load(cfg.FAQPath)
	}
	return faq.Default()
}

func (a *app) Close() error {
	return a.db.Close()
}

// runOperation opens the app, runs op and prints its envelope
func runOperation(cmd *cobra.Command, op func(ctx context.Context, a *app) models.Response) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	return printResponse(cmd.OutOrStdout(), op(cmd.Context(), a))
}

// printResponse writes the envelope as indented JSON and turns a failed
// envelope into a command error
func printResponse(w io.Writer, resp models.Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%s", resp.Message)
	}
	return nil
}
