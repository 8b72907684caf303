package catalogfile

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"nest/internal/domain/product"
	"nest/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Definition is one product file. LegacyAliases are provider ids that were
// retired but may still appear in old events.
type Definition struct {
	Name          string   `yaml:"name"`
	Family        string   `yaml:"family"`
	Version       int      `yaml:"version"`
	Price         string   `yaml:"price"`
	Aliases       []string `yaml:"aliases,omitempty"`
	LegacyAliases []string `yaml:"legacy_aliases,omitempty"`
	Demo          bool     `yaml:"demo,omitempty"`
}

// Loader reads *.yaml and *.yml product definitions from a directory.
// Malformed files, repeated names and a second non-demo product with the
// same family and version are logged and skipped.
type Loader struct {
	dir    string
	logger *slog.Logger
}

type releaseKey struct {
	family  string
	version int
}

func NewLoader(dir string, logger *slog.Logger) *Loader {
	return &Loader{dir: dir, logger: logger}
}

func (l *Loader) Load(ctx context.Context) ([]*product.Product, error) {
	if strings.TrimSpace(l.dir) == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, errs.Wrap(err, "read product definitions")
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)

	products := make([]*product.Product, 0, len(names))
	seen := make(map[string]string, len(names))
	releases := make(map[releaseKey]string, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(l.dir, name)
		p, err := l.loadFile(path)
		if err != nil {
			l.logger.Error("could not load product definition", "path", path, "error", err.Error())
			continue
		}
		if prev, dup := seen[p.Name()]; dup {
			l.logger.Error("duplicate product name, keeping first", "name", p.Name(), "path", path, "first", prev)
			continue
		}
		if !p.IsDemo() {
			key := releaseKey{family: p.Family(), version: p.Version()}
			if prev, dup := releases[key]; dup {
				l.logger.Error("duplicate family version, keeping first",
					"family", key.family, "version", key.version, "path", path, "first", prev)
				continue
			}
			releases[key] = path
		}
		seen[p.Name()] = path
		products = append(products, p)
	}
	return products, nil
}

func (l *Loader) loadFile(path string) (*product.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(err, "read")
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errs.Wrap(err, "decode")
	}
	return def.Product()
}

func (d Definition) Product() (*product.Product, error) {
	price := decimal.Zero
	if strings.TrimSpace(d.Price) != "" {
		var err error
		price, err = decimal.NewFromString(d.Price)
		if err != nil {
			return nil, errs.Wrapf(err, "price %q", d.Price)
		}
	}
	aliases := append(slices.Clone(d.Aliases), d.LegacyAliases...)
	return product.NewProduct(d.Name, d.Family, d.Version, price, aliases, d.Demo)
}
