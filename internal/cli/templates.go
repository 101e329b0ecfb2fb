package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sbenjam1n/docbot/internal/form"
	"github.com/sbenjam1n/docbot/internal/view"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List templates that have both a schema and a document",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := newCatalog()
		names, err := catalog.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Printf("No templates in %s\n", catalog.Dir())
			return nil
		}
		fmt.Printf("Templates in %s:\n", catalog.Dir())
		for _, name := range names {
			s, err := catalog.Schema(name)
			if err != nil {
				fmt.Printf("  %-24s (invalid schema: %v)\n", name, err)
				continue
			}
			fmt.Printf("  %-24s %s\n", name, s.Title)
		}
		return nil
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree <template>",
	Short: "Print the field tree of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newCatalog().Schema(args[0])
		if err != nil {
			return err
		}
		root, err := form.NewRoot(s)
		if err != nil {
			return fmt.Errorf("build form: %w", err)
		}
		fmt.Print(view.FormatTree(root.Tree()))
		return nil
	},
}
