package main

import (
	"context"
	"flag"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"StockView/internal/catalog"
	"StockView/internal/config"
	"StockView/internal/view"
	"StockView/internal/web"
	"StockView/pkg/kit"
)

func main() {
	service := "stockview"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	configPath := flag.String("config", "", "optional config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("load config failed", zap.Error(err))
	}

	products, err := loadProducts(cfg.DatasetPath)
	if err != nil {
		log.Fatal("load dataset failed", zap.Error(err))
	}
	log.Info("dataset loaded", zap.Int("products", len(products)))

	cat := catalog.NewMemCatalog(products)

	v := view.New(cat)
	defer v.Close()
	go v.Load(context.Background())

	s := &web.Server{
		View:    v,
		Catalog: cat,
		Log:     log,
	}

	h := web.NewHandler(s, web.HTTPDeps{
		Log:              log,
		Service:          service,
		Registry:         prometheus.NewRegistry(),
		MetricsEnabled:   cfg.MetricsEnabled,
		MetricsToken:     cfg.MetricsToken,
		EditLimitPerMin:  cfg.EditLimitPerMin,
		EditLimitWindowS: cfg.EditLimitWindowS,
	})

	if err := kit.RunHTTPServer(cfg.Addr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func loadProducts(path string) ([]catalog.Product, error) {
	if path != "" {
		return catalog.LoadDatasetFile(path)
	}
	return catalog.LoadDataset()
}
