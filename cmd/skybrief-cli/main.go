// Command skybrief-cli generates a single briefing from the command line
// and archives it locally, without the HTTP server or GCS.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"skybrief/internal/briefing"
	"skybrief/internal/calculators"
	"skybrief/internal/config"
	"skybrief/internal/llm"
	"skybrief/internal/models"
	"skybrief/internal/orchestrator"
	"skybrief/internal/reports"
	"skybrief/internal/scoring"
	"skybrief/internal/storage"
)

func main() {
	lat := flag.Float64("lat", 0, "observer latitude (defaults to configuration)")
	lon := flag.Float64("lon", 0, "observer longitude (defaults to configuration)")
	dateStr := flag.String("date", "", "briefing date as YYYY-MM-DD (defaults to today)")
	lightPollution := flag.Float64("light-pollution", -1, "sky brightness factor in [0, 1], -1 to omit")
	textOnly := flag.Bool("text", false, "print only the narrative and skip archiving")
	flag.Parse()

	if err := run(*lat, *lon, *dateStr, *lightPollution, *textOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(lat, lon float64, dateStr string, lightPollution float64, textOnly bool) error {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	loc := models.GeoLocation{Latitude: cfg.DefaultLatitude, Longitude: cfg.DefaultLongitude}
	if lat != 0 || lon != 0 {
		loc = models.GeoLocation{Latitude: lat, Longitude: lon}
	}

	date := time.Now().UTC()
	if dateStr != "" {
		date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", dateStr)
		}
	}

	var opts scoring.Options
	if lightPollution >= 0 && lightPollution <= 1 {
		opts.LightPollution = &lightPollution
	}

	var polisher briefing.NarrativePolisher
	if p := llm.NewPolisher(cfg.OpenAIAPIKey, cfg.OpenAIModel); p != nil {
		polisher = p
	}

	synth := briefing.New(orchestrator.New(calculators.New(cfg)), polisher)

	fmt.Printf("Generating briefing for %.4f, %.4f on %s...\n",
		loc.Latitude, loc.Longitude, date.Format("2006-01-02"))

	b, err := synth.Briefing(ctx, loc, date, opts)
	if err != nil {
		return fmt.Errorf("building briefing: %w", err)
	}

	fmt.Printf("\n%s\n\n", b.Narrative)
	if b.Score.Available {
		fmt.Printf("Viewing conditions: %s (%d/100)\n", b.Score.Category, b.Score.Score)
	}
	for domain, prov := range b.Sky.ProvenanceSummary() {
		if prov != models.ProvenanceLive {
			fmt.Printf("  %s: %s\n", domain, prov)
		}
	}

	if textOnly {
		return nil
	}

	html, err := reports.NewGenerator().GenerateHTML(b)
	if err != nil {
		return fmt.Errorf("generating HTML: %w", err)
	}

	store, err := storage.NewLocalStorageClient(cfg.LocalReportsDir)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer store.Close()

	if err := store.StoreFile(ctx, []byte(html), "index.html", b.GeneratedAt); err != nil {
		return fmt.Errorf("archiving report: %w", err)
	}
	if data, err := json.MarshalIndent(b.AsDict(), "", "  "); err == nil {
		if err := store.StoreFile(ctx, data, "briefing.json", b.GeneratedAt); err != nil {
			return fmt.Errorf("archiving briefing data: %w", err)
		}
	}

	fmt.Printf("\nArchived under %s/%s\n", cfg.LocalReportsDir, storage.BriefingFolderPath(b.GeneratedAt))
	return nil
}
