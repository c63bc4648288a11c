package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"StockView/internal/catalog"
)

func TestLoadDataset(t *testing.T) {
	products, err := catalog.LoadDataset()
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if len(products) == 0 {
		t.Fatalf("embedded dataset is empty")
	}

	seen := map[string]bool{}
	for _, p := range products {
		if p.ID == "" {
			t.Fatalf("product with empty id: %+v", p)
		}
		if seen[p.ID] {
			t.Fatalf("duplicate id %q", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestLoadDatasetFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name, body string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	t.Run("valid", func(t *testing.T) {
		path := write("ok.json", `[{"id":"1","name":"Widget","sku":"W1","category":"Tools","stock":3}]`)
		products, err := catalog.LoadDatasetFile(path)
		if err != nil {
			t.Fatalf("LoadDatasetFile: %v", err)
		}
		if len(products) != 1 || products[0].Name != "Widget" {
			t.Fatalf("got %+v", products)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		path := write("dup.json", `[{"id":"1","name":"a"},{"id":"1","name":"b"}]`)
		if _, err := catalog.LoadDatasetFile(path); err == nil {
			t.Fatalf("duplicate id accepted")
		}
	})

	t.Run("missing id", func(t *testing.T) {
		path := write("noid.json", `[{"name":"a"}]`)
		if _, err := catalog.LoadDatasetFile(path); err == nil {
			t.Fatalf("missing id accepted")
		}
	})

	t.Run("malformed", func(t *testing.T) {
		path := write("bad.json", `{"not":"an array"`)
		if _, err := catalog.LoadDatasetFile(path); err == nil {
			t.Fatalf("malformed json accepted")
		}
	})

	t.Run("absent file", func(t *testing.T) {
		if _, err := catalog.LoadDatasetFile(filepath.Join(dir, "nope.json")); err == nil {
			t.Fatalf("absent file accepted")
		}
	})
}

func TestMemCatalog(t *testing.T) {
	ctx := context.Background()
	seed := []catalog.Product{
		{ID: "1", Name: "Widget", SKU: "W1", Category: "Tools", Stock: 3},
		{ID: "2", Name: "Gadget", SKU: "G1", Category: "Tools", Stock: 40},
	}
	c := catalog.NewMemCatalog(seed)

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	all, err := c.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(all) != 2 || all[0].ID != "1" || all[1].ID != "2" {
		t.Fatalf("FetchAll order/content wrong: %+v", all)
	}

	// callers own their copy; the canonical collection must not move
	all[0].Stock = 999
	again, _ := c.FetchAll(ctx)
	if again[0].Stock != 3 {
		t.Fatalf("caller mutation reached the catalog: %+v", again[0])
	}

	p, ok, err := c.FetchByID(ctx, "2")
	if err != nil || !ok || p.Name != "Gadget" {
		t.Fatalf("FetchByID(2) = %+v, %v, %v", p, ok, err)
	}

	_, ok, err = c.FetchByID(ctx, "missing")
	if err != nil || ok {
		t.Fatalf("FetchByID(missing) = found=%v err=%v", ok, err)
	}
}
