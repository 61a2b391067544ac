package main

import (
	"flag"

	"chargewatch-backend/lib/configutil"
	configsqlite "chargewatch-backend/lib/configutil/sqlite"
	"chargewatch-backend/lib/registry"
	"chargewatch-backend/lib/scrapers/mds"
	"chargewatch-backend/lib/statusstore"
	statusdb "chargewatch-backend/lib/statusstore/db"
	"chargewatch-backend/lib/util/serviceutil"
	"chargewatch-backend/services/chargers"

	"github.com/gin-gonic/gin"
)

type ScraperConfig struct {
	BaseUrl string `json:"base_url"`
	// serve deterministic simulated pages instead of scraping, for
	// deployments without access to the operator site
	Simulate bool `json:"simulate"`
}

type Config struct {
	Port     int                  `json:"port"`
	Scraper  ScraperConfig        `json:"scraper"`
	Registry registry.Config      `json:"registry"`
	History  configsqlite.Struct  `json:"history"`
	Alerts   chargers.AlertConfig `json:"alerts"`
}

func newFetcher(cfg ScraperConfig) (chargers.PageFetcher, error) {
	if cfg.Simulate {
		return chargers.SimulatedFetcher{}, nil
	}
	return mds.NewClient(mds.ClientOptions{BaseUrl: cfg.BaseUrl})
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	initSlog(*verbose)
	shutdownTelemetry := initTelemetry(ctx)
	defer shutdownTelemetry()

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}

	reg, err := registry.New(cfg.Registry)
	if err != nil {
		serviceutil.Fatal("load charger registry", err)
	}

	fetcher, err := newFetcher(cfg.Scraper)
	if err != nil {
		serviceutil.Fatal("init page fetcher", err)
	}

	var history *statusstore.Store
	if cfg.History.File != "" {
		db, err := cfg.History.OpenDB(statusdb.Schema)
		if err != nil {
			serviceutil.Fatal("open history db", err)
		}
		store := statusstore.NewStore(db)
		history = &store
	}

	service := chargers.NewService(chargers.Options{
		Registry: reg,
		Fetcher:  fetcher,
		History:  history,
		Alerts:   cfg.Alerts,
	})
	go service.RetentionDaemon(ctx)

	if !*verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	service.RegisterRoutes(router)

	go serviceutil.StartHttpServer(cfg.Port, router)
	<-ctx.Done()
}
