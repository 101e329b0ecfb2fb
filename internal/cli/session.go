package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sbenjam1n/docbot/internal/bot"
	"github.com/sbenjam1n/docbot/internal/session"
	"github.com/sbenjam1n/docbot/internal/view"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect and reset stored chat sessions",
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		store, rdb, err := openRedisStore(ctx)
		if err != nil {
			return err
		}
		defer rdb.Close()

		keys, err := store.List(ctx)
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			fmt.Println("(no sessions)")
			return nil
		}
		for _, k := range keys {
			blob, err := store.Load(ctx, k)
			if errors.Is(err, session.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			snap, err := bot.Inspect(blob)
			if err != nil {
				fmt.Printf("  %-24s (unreadable: %v)\n", k, err)
				continue
			}
			fmt.Printf("  %-24s %-7s %s\n", k, snap.Stage, snap.Template)
		}
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <chat:user>",
	Short: "Show the stage, active path and field tree of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := session.ParseKey(args[0])
		if err != nil {
			return err
		}
		ctx := context.Background()
		store, rdb, err := openRedisStore(ctx)
		if err != nil {
			return err
		}
		defer rdb.Close()

		blob, err := store.Load(ctx, key)
		if err != nil {
			return fmt.Errorf("session %s: %w", key, err)
		}
		snap, err := bot.Inspect(blob)
		if err != nil {
			return err
		}
		fmt.Printf("Session %s\n", key)
		fmt.Printf("  stage:    %s\n", snap.Stage)
		fmt.Printf("  page:     %d\n", snap.Page)
		if snap.Form == nil {
			return nil
		}
		fmt.Printf("  template: %s\n", snap.Template)
		fmt.Printf("  path:     /%s\n", strings.Join(snap.Form.Path(), "/"))
		fmt.Printf("  complete: %t\n\n", snap.Form.CanGenerate())
		fmt.Print(view.FormatTree(snap.Form.Tree()))
		return nil
	},
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset <chat:user>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := session.ParseKey(args[0])
		if err != nil {
			return err
		}
		ctx := context.Background()
		store, rdb, err := openRedisStore(ctx)
		if err != nil {
			return err
		}
		defer rdb.Close()

		if err := store.Delete(ctx, key); err != nil {
			return err
		}
		fmt.Printf("Session %s reset\n", key)
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionResetCmd)
}
