package templates

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/sbenjam1n/docbot/internal/form"
)

// ErrNotFound is returned for a template without a schema or document file.
var ErrNotFound = errors.New("template not found")

// DocumentExt is the extension of document templates.
const DocumentExt = ".tmpl"

var schemaExts = []string{".json", ".yaml", ".yml"}

// Catalog is a directory of templates. A template <name> is available when
// both a schema (<name>.json, .yaml or .yml) and <name>.tmpl exist.
type Catalog struct {
	dir string
}

// NewCatalog creates a Catalog over dir.
func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// Dir returns the catalog directory.
func (c *Catalog) Dir() string { return c.dir }

// List returns the sorted names of available templates.
func (c *Catalog) List() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("read templates dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != DocumentExt {
			continue
		}
		name := strings.TrimSuffix(e.Name(), DocumentExt)
		if _, err := c.schemaPath(name); err == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Schema loads and parses the schema of name.
func (c *Catalog) Schema(name string) (*form.Schema, error) {
	path, err := c.schemaPath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}
	s, err := form.ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}
	return s, nil
}

// Render executes the document template of name with data.
func (c *Catalog) Render(name string, data any) ([]byte, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	path := filepath.Join(c.dir, name+DocumentExt)
	src, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read document template %s: %w", name, err)
	}
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse document template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render document %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (c *Catalog) schemaPath(name string) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	for _, ext := range schemaExts {
		path := filepath.Join(c.dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}
