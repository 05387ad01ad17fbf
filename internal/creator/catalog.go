package creator

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/osse101/Mivy_Go/internal/domain"
)

// Category is one entry of the category catalog
type Category struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// catalogFile mirrors configs/categories.yaml
type catalogFile struct {
	Version    string     `yaml:"version"`
	Categories []Category `yaml:"categories"`
}

// Catalog is the fixed set of categories a creator may pick from
type Catalog struct {
	version    string
	categories []Category
	byKey      map[string]string // lower-cased name -> canonical name
}

// LoadCatalog reads and parses the YAML catalog at path
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgCatalogRead, path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses a YAML catalog document
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCatalogParse, err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("%s", ErrMsgCatalogEmpty)
	}

	c := &Catalog{
		version: file.Version,
		byKey:   make(map[string]string, len(file.Categories)),
	}
	title := cases.Title(language.English)
	for _, cat := range file.Categories {
		name := title.String(strings.TrimSpace(cat.Name))
		key := strings.ToLower(name)
		if _, dup := c.byKey[key]; dup {
			return nil, fmt.Errorf("%s: %q", ErrMsgCatalogDupName, name)
		}
		c.byKey[key] = name
		c.categories = append(c.categories, Category{Name: name, Description: cat.Description})
	}
	return c, nil
}

// Version returns the catalog file version
func (c *Catalog) Version() string {
	return c.version
}

// All returns the catalog entries in file order
func (c *Catalog) All() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Normalize title-cases, de-duplicates and validates raw category names.
// Order is preserved. Unknown names fail with domain.ErrUnknownCategory.
func (c *Catalog) Normalize(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		key := strings.ToLower(strings.TrimSpace(r))
		if key == "" || seen[key] {
			continue
		}
		name, ok := c.byKey[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, r)
		}
		seen[key] = true
		out = append(out, name)
	}
	if len(out) > MaxCategories {
		return nil, fmt.Errorf("%w: at most %d categories", domain.ErrInvalidInput, MaxCategories)
	}
	return out, nil
}

// Canonical returns the catalog spelling of one category, if known
func (c *Catalog) Canonical(name string) (string, bool) {
	n, ok := c.byKey[strings.ToLower(strings.TrimSpace(name))]
	return n, ok
}
