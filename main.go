// main.go
//
// Entry point for the spellbank server.
// Commands:
//   - serve (default): load config, open storage, run the HTTP server.
//   - migrate: apply embedded SQL migrations and exit.
//   - version: print the build version.
//
// Configuration comes from the environment (.env in development);
// flags on serve override PORT, DB_PATH and LOG_LEVEL.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/spellbank/internal/feedback"
	"github.com/robalobadob/spellbank/internal/httpserver"
	"github.com/robalobadob/spellbank/internal/store"
	"github.com/robalobadob/spellbank/internal/words"
)

var version = "dev"

// memoryDSN selects the in-memory progress store with no database.
const memoryDSN = "memory"

type config struct {
	port     string
	dbPath   string
	logLevel string
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("spellbank exited")
	}
}

func rootCmd() *cobra.Command {
	cfg := config{
		port:     getEnv("PORT", "5175"),
		dbPath:   getEnv("DB_PATH", "./data/spell.db"),
		logLevel: getEnv("LOG_LEVEL", "info"),
	}

	root := &cobra.Command{
		Use:           "spellbank",
		Short:         "Spelling game server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := zerolog.ParseLevel(cfg.logLevel)
			if err != nil {
				return fmt.Errorf("log level %q: %w", cfg.logLevel, err)
			}
			zerolog.SetGlobalLevel(lvl)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error { return serve(cmd.Context(), cfg) },
	}
	root.PersistentFlags().StringVar(&cfg.logLevel, "log-level", cfg.logLevel, "zerolog level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&cfg.dbPath, "db", cfg.dbPath, `SQLite path, or "memory" for no database`)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE:  func(cmd *cobra.Command, args []string) error { return serve(cmd.Context(), cfg) },
	}
	serveCmd.Flags().StringVar(&cfg.port, "port", cfg.port, "listen port")
	root.Flags().StringVar(&cfg.port, "port", cfg.port, "listen port")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.dbPath == memoryDSN {
				return fmt.Errorf("migrate needs a database path")
			}
			db, err := openDB(cfg.dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			return store.Migrate(db)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	root.AddCommand(serveCmd, migrateCmd, versionCmd)
	return root
}

func serve(parent context.Context, cfg config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := words.Init(); err != nil {
		return fmt.Errorf("load word list: %w", err)
	}

	var (
		st store.Store
		db *sql.DB
	)
	if cfg.dbPath == memoryDSN {
		st = store.NewMemoryStore()
		log.Warn().Msg("in-memory progress; accounts and leaderboard disabled")
	} else {
		var err error
		db, err = openDB(cfg.dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := store.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		st = store.NewSQLiteStore(db)
	}

	audioDir := os.Getenv("AUDIO_DIR")
	samples, err := feedback.LoadSamples(audioDir, "/audio")
	if err != nil {
		log.Warn().Err(err).Str("dir", audioDir).Msg("letter samples unavailable, using speech")
	}

	srv := httpserver.New(st, db, httpserver.Options{
		Words:    words.List(),
		AudioDir: audioDir,
		Samples:  samples,
	})
	log.Info().Str("port", cfg.port).Str("db", cfg.dbPath).Int("words", len(words.List())).Msg("starting spellbank")
	return srv.Start(ctx, ":"+cfg.port)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
