package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSeed = errors.New("invalid catalog seed")

type seedFile struct {
	Products []Product `yaml:"products"`
}

// LoadSeedFile reads a YAML catalog of the form
//
//	products:
//	  - name: Pixel 8
//	    description: 6.2" OLED, Tensor G3, 4575 mAh
//	    price: 699
//	    count: 12
func LoadSeedFile(path string) ([]Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(raw)
}

func ParseSeed(raw []byte) ([]Product, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	names := make(map[string]struct{}, len(f.Products))
	descriptions := make(map[string]struct{}, len(f.Products))
	for i := range f.Products {
		p := &f.Products[i]
		p.Name = strings.TrimSpace(p.Name)
		p.Description = strings.TrimSpace(p.Description)

		if p.Name == "" {
			return nil, fmt.Errorf("%w: product #%d has no name", ErrInvalidSeed, i+1)
		}
		if p.Description == "" {
			return nil, fmt.Errorf("%w: product %q has no description", ErrInvalidSeed, p.Name)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("%w: product %q has negative price", ErrInvalidSeed, p.Name)
		}
		if p.Count < 0 {
			return nil, fmt.Errorf("%w: product %q has negative count", ErrInvalidSeed, p.Name)
		}
		if _, dup := names[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidSeed, p.Name)
		}
		if _, dup := descriptions[p.Description]; dup {
			return nil, fmt.Errorf("%w: duplicate description for %q", ErrInvalidSeed, p.Name)
		}
		names[p.Name] = struct{}{}
		descriptions[p.Description] = struct{}{}
	}

	return f.Products, nil
}
