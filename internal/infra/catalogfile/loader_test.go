//go:build unit

package catalogfile_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"nest/internal/infra/catalogfile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "nest-pro-2.yaml", `
name: nest-pro-2
family: nest-pro
version: 2
price: "40.00"
aliases: [np2]
legacy_aliases: [nestpro-legacy]
`)
	writeFile(t, dir, "demo.yml", `
name: nest-demo
family: nest-pro
version: 1
demo: true
`)
	writeFile(t, dir, "broken.yaml", "name: [unterminated")
	writeFile(t, dir, "invalid.yaml", "name: nameless-family\nversion: 1\n")
	writeFile(t, dir, "README.md", "not a definition")
	writeFile(t, dir, "zz-duplicate.yaml", "name: nest-pro-2\nfamily: other\nversion: 9\n")

	loader := catalogfile.NewLoader(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	products, err := loader.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)

	demo, pro := products[0], products[1]
	assert.Equal(t, "nest-demo", demo.Name())
	assert.True(t, demo.IsDemo())
	assert.True(t, demo.Price().IsZero())

	assert.Equal(t, "nest-pro-2", pro.Name())
	assert.Equal(t, "nest-pro", pro.Family())
	assert.Equal(t, "40", pro.Price().String())
	assert.True(t, pro.HasAlias("np2"))
	assert.True(t, pro.HasAlias("nestpro-legacy"))
	assert.True(t, pro.HasAlias("nest-pro-2"))
}

func TestLoader_EmptyDirIsNoop(t *testing.T) {
	loader := catalogfile.NewLoader("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	products, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestLoader_MissingDir(t *testing.T) {
	loader := catalogfile.NewLoader(filepath.Join(t.TempDir(), "missing"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := loader.Load(context.Background())

	assert.Error(t, err)
}

func TestLoader_FamilyVersionClash(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a-nest-3.yaml", "name: nest-3\nfamily: nest\nversion: 3\n")
	writeFile(t, dir, "b-nest-3-rebrand.yaml", "name: nest-3-rebrand\nfamily: nest\nversion: 3\n")
	writeFile(t, dir, "c-nest-3-preview.yaml", "name: nest-3-preview\nfamily: nest\nversion: 3\ndemo: true\n")

	loader := catalogfile.NewLoader(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	products, err := loader.Load(context.Background())

	require.NoError(t, err)
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"nest-3", "nest-3-preview"}, names)
}

func TestLoader_ShippedDefinitions(t *testing.T) {
	loader := catalogfile.NewLoader(filepath.Join("..", "..", "..", "products"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	products, err := loader.Load(context.Background())

	require.NoError(t, err)
	entries, err := filepath.Glob(filepath.Join("..", "..", "..", "products", "*.yaml"))
	require.NoError(t, err)
	require.Len(t, products, len(entries), "every shipped definition must load")

	releases := map[string]string{}
	for _, p := range products {
		if p.IsDemo() {
			continue
		}
		key := fmt.Sprintf("%s/%d", p.Family(), p.Version())
		prev, dup := releases[key]
		assert.False(t, dup, "%s shared by %s and %s", key, prev, p.Name())
		releases[key] = p.Name()
	}
}
