package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/sbenjam1n/docbot/internal/journal"
)

var (
	journalLimit int
	journalStats bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recently generated documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		pool, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()
		j := journal.New(pool)

		if journalStats {
			counts, err := j.CountByTemplate(ctx)
			if err != nil {
				return err
			}
			fmt.Println("Documents per template:")
			for _, name := range slices.Sorted(maps.Keys(counts)) {
				fmt.Printf("  %-24s %d\n", name, counts[name])
			}
			return nil
		}

		entries, err := j.Recent(ctx, journalLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("(no documents generated yet)")
			return nil
		}
		for _, e := range entries {
			who := fmt.Sprintf("%d:%d", e.ChatID, e.UserID)
			if e.Username != "" {
				who += " @" + e.Username
			}
			fmt.Printf("  #%-6d %s  %-20s %6d B  %s\n",
				e.ID, e.CreatedAt.Format("2006-01-02 15:04"), e.Template, e.SizeBytes, who)
		}
		return nil
	},
}

func init() {
	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", journal.DefaultLimit, "Number of entries to show")
	journalCmd.Flags().BoolVar(&journalStats, "stats", false, "Show document counts per template instead")
}
