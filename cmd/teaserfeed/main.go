package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kmaher/teaserfeed/pipeline"
	"github.com/kmaher/teaserfeed/seenset"
	"github.com/kmaher/teaserfeed/source"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// Local overrides for development; a missing .env is fine.
	godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		handleRun(os.Args[2:])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func handleRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	profilePath := fs.String("profile", "", "Path to the source profile YAML file (required)")
	feedPath := fs.String("feed", getEnv("TEASERFEED_FEED_PATH", "feed.xml"), "Path of the RSS feed file to write")
	reportPath := fs.String("report", getEnv("TEASERFEED_REPORT_PATH", "lastrun.json"), "Path of the run report to write")
	seenType := fs.String("seen-type", getEnv("TEASERFEED_SEEN_TYPE", "file"), "Seen-set storage type (file or sqlite)")
	seenDSN := fs.String("seen-dsn", getEnv("TEASERFEED_SEEN_DSN", "seen.json"), "Seen-set storage path")
	fs.Parse(args)

	if *profilePath == "" {
		fmt.Fprintf(os.Stderr, "Error: --profile is required\n")
		fs.Usage()
		os.Exit(1)
	}

	profile, err := source.LoadProfile(*profilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load profile: %v\n", err)
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(getEnv("TEASERFEED_FETCH_TIMEOUT", "60s"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid TEASERFEED_FETCH_TIMEOUT: %v\n", err)
		os.Exit(1)
	}

	store, err := seenset.Open(*seenType, *seenDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open seen-set store: %v\n", err)
		os.Exit(1)
	}
	if closer, ok := store.(*seenset.SQLiteStore); ok {
		defer closer.Close()
	}

	fetcher := pipeline.NewHTTPFetcher(
		timeout,
		getEnv("TEASERFEED_USER_AGENT", ""),
		getEnv("TEASERFEED_FETCH_ENDPOINT", ""),
	)

	pl := pipeline.New(profile, fetcher, store, *feedPath, *reportPath)
	report, err := pl.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: run failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Run %s finished in %s\n", report.RunID, report.Duration)
	fmt.Printf("  Extracted: %d (via %s)\n", report.Extracted, report.Strategy)
	fmt.Printf("  New:       %d\n", report.New)
	if profile.Enrich {
		fmt.Printf("  Enriched:  %d\n", report.Enriched)
	}
	fmt.Printf("  Feed:      %s\n", *feedPath)
}

func printUsage() {
	fmt.Println("teaserfeed - turn news listing pages into RSS feeds")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  teaserfeed <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run        Run the pipeline for one source profile")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  TEASERFEED_FEED_PATH       Feed output path (default: feed.xml)")
	fmt.Println("  TEASERFEED_REPORT_PATH     Run report path (default: lastrun.json)")
	fmt.Println("  TEASERFEED_SEEN_TYPE       Seen-set storage type: file or sqlite (default: file)")
	fmt.Println("  TEASERFEED_SEEN_DSN        Seen-set storage path (default: seen.json)")
	fmt.Println("  TEASERFEED_FETCH_TIMEOUT   Fetch timeout (default: 60s)")
	fmt.Println("  TEASERFEED_FETCH_ENDPOINT  Optional rendering/anti-bot fetch service endpoint")
	fmt.Println("  TEASERFEED_USER_AGENT      Override the default User-Agent")
}
