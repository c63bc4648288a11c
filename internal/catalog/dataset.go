package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed data/products.json
var datasetFS embed.FS

// LoadDataset decodes the built-in product collection.
func LoadDataset() ([]Product, error) {
	b, err := datasetFS.ReadFile("data/products.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded dataset: %w", err)
	}
	return decodeDataset(b)
}

// LoadDatasetFile decodes an operator-supplied collection from path.
func LoadDatasetFile(path string) ([]Product, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return decodeDataset(b)
}

func decodeDataset(b []byte) ([]Product, error) {
	var products []Product
	if err := json.Unmarshal(b, &products); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	seen := make(map[string]struct{}, len(products))
	for i, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("dataset record %d: missing id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("dataset record %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	return products, nil
}
