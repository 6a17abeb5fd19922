package mockapi

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/five82/perch/internal/catalog"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Seed is the data the mock API serves.
type Seed struct {
	Categories  []string
	Peripherals []catalog.Peripheral
}

type seedFile struct {
	Categories  []string         `yaml:"categories"`
	Peripherals []seedPeripheral `yaml:"peripherals"`
}

type seedPeripheral struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Brand       string            `yaml:"brand"`
	Category    string            `yaml:"category"`
	Price       string            `yaml:"price"`
	ImageURL    string            `yaml:"imageUrl"`
	Description string            `yaml:"description"`
	Specs       map[string]string `yaml:"specs"`
	Features    []string          `yaml:"features"`
}

// DefaultSeed returns the embedded catalog.
func DefaultSeed() (Seed, error) {
	return ParseSeed(defaultCatalog)
}

// LoadSeedFile reads a catalog YAML file from disk.
func LoadSeedFile(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes catalog YAML. When the file lists no categories they are
// derived from the peripherals.
func ParseSeed(data []byte) (Seed, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Seed{}, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(file.Peripherals))
	out := Seed{Peripherals: make([]catalog.Peripheral, 0, len(file.Peripherals))}
	for i, sp := range file.Peripherals {
		if sp.ID == "" {
			return Seed{}, fmt.Errorf("peripheral %d: missing id", i)
		}
		if seen[sp.ID] {
			return Seed{}, fmt.Errorf("peripheral %s: duplicate id", sp.ID)
		}
		seen[sp.ID] = true

		price := decimal.Zero
		if sp.Price != "" {
			p, err := decimal.NewFromString(sp.Price)
			if err != nil {
				return Seed{}, fmt.Errorf("peripheral %s: price %q: %w", sp.ID, sp.Price, err)
			}
			price = p
		}
		if price.IsNegative() {
			return Seed{}, fmt.Errorf("peripheral %s: negative price %s", sp.ID, price)
		}
		specs := sp.Specs
		if specs == nil {
			specs = map[string]string{}
		}
		features := sp.Features
		if features == nil {
			features = []string{}
		}
		out.Peripherals = append(out.Peripherals, catalog.Peripheral{
			ID:          sp.ID,
			Name:        sp.Name,
			Brand:       sp.Brand,
			Category:    sp.Category,
			Price:       price,
			ImageURL:    sp.ImageURL,
			Description: sp.Description,
			Specs:       specs,
			Features:    features,
		})
	}

	out.Categories = file.Categories
	if len(out.Categories) == 0 {
		out.Categories = firstSeen(out.Peripherals)
	}
	return out, nil
}

// firstSeen lists distinct categories in catalog order.
func firstSeen(ps []catalog.Peripheral) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range ps {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
