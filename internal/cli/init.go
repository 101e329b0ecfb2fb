package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sbenjam1n/docbot/internal/db"
)

var minimal bool

const sampleSchema = `{
  "type": "object",
  "title": "Receipt",
  "description": "Payment receipt",
  "required": ["payer", "amount", "date"],
  "properties": {
    "payer": {"type": "string", "description": "Payer name", "short_description": "Payer"},
    "amount": {"type": "number", "description": "Amount", "question": "How much was paid?"},
    "date": {"type": "string", "format": "date", "description": "Payment date (DD.MM.YYYY)", "short_description": "Date"}
  }
}
`

const sampleDocument = `RECEIPT

Received from {{.payer}} the sum of {{.amount}} on {{.date}}.
`

const sampleLocale = `# Overrides of the built-in messages. Buttons and alerts are plain text,
# everything else is Telegram MarkdownV2.
# start-msg: "Hello\\! Use /create\\_document to begin\\."
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a docbot project",
	Long:  "Initialize project: templates dir with a sample template, locale dir, PostgreSQL schema, Redis check",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := os.MkdirAll(templatesDir(), 0755); err != nil {
			return fmt.Errorf("create templates dir: %w", err)
		}
		if err := writeIfMissing(filepath.Join(templatesDir(), "receipt.json"), sampleSchema); err != nil {
			return err
		}
		if err := writeIfMissing(filepath.Join(templatesDir(), "receipt.tmpl"), sampleDocument); err != nil {
			return err
		}

		if err := os.MkdirAll(localeDir(), 0755); err != nil {
			return fmt.Errorf("create locale dir: %w", err)
		}
		if err := writeIfMissing(filepath.Join(localeDir(), cfg.Locale+".yaml"), sampleLocale); err != nil {
			return err
		}

		if minimal {
			fmt.Println("\nMinimal init complete. Run 'docbot init' (without --minimal) to set up PostgreSQL and check Redis.")
			return nil
		}

		if cfg.DatabaseURL == "" {
			fmt.Println("DOCBOT_DATABASE_URL not set, skipping the generation journal")
		} else {
			fmt.Println("Connecting to PostgreSQL...")
			pool, err := connectDB(ctx)
			if err != nil {
				return fmt.Errorf("database connection failed: %w", err)
			}
			defer pool.Close()

			fmt.Println("Running migrations...")
			if err := db.Migrate(ctx, pool); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println("PostgreSQL schema created")
		}

		fmt.Println("Connecting to Redis...")
		_, rdb, err := openRedisStore(ctx)
		if err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		rdb.Close()
		fmt.Println("Redis reachable")

		fmt.Println("\ndocbot project initialized successfully.")
		fmt.Println("Next steps:")
		fmt.Println("  1. Add <name>.json + <name>.tmpl pairs to " + templatesDir())
		fmt.Println("  2. Run: docbot tree receipt")
		fmt.Println("  3. Run: docbot chat")
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the journal schema to PostgreSQL",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		pool, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		names, err := db.Migrations()
		if err != nil {
			return err
		}
		if err := db.Migrate(ctx, pool); err != nil {
			return err
		}
		for _, name := range names {
			fmt.Printf("  applied %s\n", filepath.Base(name))
		}
		return nil
	},
}

func writeIfMissing(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("%s already exists\n", path)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	fmt.Printf("Created %s\n", path)
	return nil
}

func init() {
	initCmd.Flags().BoolVar(&minimal, "minimal", false, "Minimal init: templates and locale dirs only")
}
