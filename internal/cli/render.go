package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sbenjam1n/docbot/internal/templates"
)

var (
	renderData string
	renderOut  string
)

var renderCmd = &cobra.Command{
	Use:   "render <template>",
	Short: "Validate a data file against a template and render the document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		catalog := newCatalog()
		s, err := catalog.Schema(name)
		if err != nil {
			return err
		}
		data, err := readData(renderData)
		if err != nil {
			return err
		}
		data = templates.Compact(data)
		if err := templates.Validate(s, data); err != nil {
			return err
		}
		doc, err := catalog.Render(name, data)
		if err != nil {
			return err
		}
		if renderOut == "" {
			_, err = os.Stdout.Write(doc)
			return err
		}
		if err := os.WriteFile(renderOut, doc, 0644); err != nil {
			return fmt.Errorf("write %s: %w", renderOut, err)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", renderOut, len(doc))
		return nil
	},
}

// readData decodes a JSON or YAML data file. JSON numbers are kept exact.
func readData(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	var data any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &data)
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		err = dec.Decode(&data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse data file %s: %w", path, err)
	}
	return data, nil
}

func init() {
	renderCmd.Flags().StringVar(&renderData, "data", "", "JSON or YAML file with the field values")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Write the document to this file instead of stdout")
	_ = renderCmd.MarkFlagRequired("data")
}
