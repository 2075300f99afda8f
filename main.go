package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"lazyf1/pkg/config"
	"lazyf1/pkg/cursor"
	"lazyf1/pkg/dashboard"
	"lazyf1/pkg/ergast"
	"lazyf1/pkg/panels"
	"lazyf1/pkg/pubsub"
	"lazyf1/pkg/season"
	"lazyf1/pkg/settings"
)

func main() {
	// optional .env next to the binary
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Abort if something is wrong
		log.Panic(err)
	}

	// raw-mode terminal output and log lines do not mix, keep the log in a file
	logFile, err := os.OpenFile("./lazyf1.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err == nil {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create a new cancellable background context. Calling `cancel()` leads to the cancellation of the context
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client, err := ergast.New(ergast.Config{
		BaseURL:           cfg.APIBaseURL,
		CacheDir:          cfg.CacheDir,
		ScheduleTTL:       cfg.ScheduleTTL(),
		Timeout:           cfg.HTTPTimeout(),
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	if err != nil {
		log.Panic(err)
	}

	statusPub := pubsub.New[season.Status]()
	agg := season.NewAggregator(client, statusPub)

	prefs := settings.Prefs{Season: cfg.Season, RaceIndex: cursor.Latest}
	store, err := settings.NewManager(cfg.DBPath)
	if err != nil {
		// run with defaults, nothing will be remembered
		log.Printf("Error opening settings database: %s", err.Error())
		store = nil
	} else {
		defer store.Close()
		if stored, err := store.Load(prefs); err != nil {
			log.Printf("Error loading stored prefs: %s", err.Error())
		} else {
			prefs = stored
		}
	}

	resultsPanel := panels.NewResultsPanel(agg)
	others := []panels.Panel{
		panels.NewDriversPanel(agg),
		panels.NewConstructorsPanel(agg),
		panels.NewSchedulePanel(agg),
	}

	dash := dashboard.New(agg, resultsPanel, others, cursor.New(), store, statusPub.Subscribe(season.PubSubStatusTopic), prefs, cfg.RefreshInterval())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	if err := dash.Run(ctx); err != nil {
		log.Panic(err)
	}
}
