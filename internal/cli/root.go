package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/sbenjam1n/docbot/internal/config"
	"github.com/sbenjam1n/docbot/internal/db"
	"github.com/sbenjam1n/docbot/internal/i18n"
	"github.com/sbenjam1n/docbot/internal/logger"
	"github.com/sbenjam1n/docbot/internal/session"
	"github.com/sbenjam1n/docbot/internal/templates"
	"github.com/sbenjam1n/docbot/internal/view"
)

var errNoDatabase = errors.New("no database configured (set DOCBOT_DATABASE_URL)")

var (
	cfg     *config.Config
	log     *logger.Logger
	rootCmd = &cobra.Command{
		Use:   "docbot",
		Short: "docbot: fill document templates through a chat dialogue",
		Long: `docbot walks a user through the fields of a document template, one
chat message or button press at a time, and renders the document once every
required field is filled.

Templates live in DOCBOT_TEMPLATES_DIR as <name>.json (or .yaml) schemas next
to <name>.tmpl documents. Try it locally:
  docbot templates
  docbot chat --memory`,
		SilenceUsage: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				log.Sync()
			}
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(journalCmd)
}

func initConfig() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	log, err = logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
}

func connectDB(ctx context.Context) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, errNoDatabase
	}
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w\nSet DOCBOT_DATABASE_URL environment variable", err)
	}
	return pool, nil
}

func connectRedis() (*redis.Client, error) {
	rdb, err := session.ConnectRedis(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("%w\nSet DOCBOT_REDIS_URL environment variable", err)
	}
	return rdb, nil
}

// openRedisStore connects to Redis and checks the connection. The returned
// client must be closed by the caller.
func openRedisStore(ctx context.Context) (*session.RedisStore, *redis.Client, error) {
	rdb, err := connectRedis()
	if err != nil {
		return nil, nil, err
	}
	store := session.NewRedisStore(rdb, cfg.SessionTTL)
	if err := store.Ping(ctx); err != nil {
		rdb.Close()
		return nil, nil, err
	}
	return store, rdb, nil
}

func projectRoot() string {
	return cfg.ProjectRoot
}

func fromRoot(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(projectRoot(), dir)
}

func templatesDir() string { return fromRoot(cfg.TemplatesDir) }
func localeDir() string    { return fromRoot(cfg.LocaleDir) }

func newCatalog() *templates.Catalog {
	return templates.NewCatalog(templatesDir())
}

func newTranslator() (i18n.Translator, error) {
	return i18n.Load(localeDir(), cfg.Locale)
}

func pageLayout() view.Layout {
	return view.Layout{Columns: cfg.PageColumns, Rows: cfg.PageRows}
}
