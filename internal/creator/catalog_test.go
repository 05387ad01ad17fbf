package creator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Mivy_Go/internal/domain"
)

const testCatalog = `
version: "1.0"
categories:
  - name: art
    description: Visual art
  - name: Music
  - name: video games
`

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)
	assert.Equal(t, "1.0", c.Version())

	names := []string{}
	for _, cat := range c.All() {
		names = append(names, cat.Name)
	}
	assert.Equal(t, []string{"Art", "Music", "Video Games"}, names)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "categories: [unterminated"},
		{"empty", "version: \"1.0\"\ncategories: []\n"},
		{"duplicate after casing", "categories:\n  - name: art\n  - name: ART\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestCatalog_Normalize(t *testing.T) {
	c, err := ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)

	got, err := c.Normalize([]string{" music", "ART", "Music", "", "video GAMES"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Music", "Art", "Video Games"}, got)

	_, err = c.Normalize([]string{"cooking"})
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestLoadCatalog_ShippedFile(t *testing.T) {
	path := filepath.Join("..", "..", "configs", "categories.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Skip("catalog file not present")
	}
	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.NotEmpty(t, c.All())

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
