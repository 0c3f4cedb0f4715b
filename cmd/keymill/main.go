// Package main implements the keymill binary, a parallel generator of
// fixed-size AES-CTR keystream records.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/keymill/keymill/internal/config"
	"github.com/keymill/keymill/internal/engine"
	"github.com/keymill/keymill/internal/report"
	"github.com/keymill/keymill/internal/sysinfo"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	// Parse command line flags
	var (
		configFile  string
		records     uint64
		chunkSize   uint64
		key         string
		workers     int
		sampleSize  int
		format      string
		showVersion bool
		showHelp    bool
	)

	flag.StringVar(&configFile, "config", "", "Path to configuration file (YAML or JSON)")
	flag.Uint64Var(&records, "records", 0, "Total number of 16-byte records to generate")
	flag.Uint64Var(&chunkSize, "chunk-size", 0, "Records per parallel chunk")
	flag.StringVar(&key, "key", "", "AES-128 key as 32 hex characters")
	flag.IntVar(&workers, "workers", 0, "Number of parallel workers (0 = one per CPU)")
	flag.IntVar(&sampleSize, "sample", -1, "Number of leading records to echo in the report")
	flag.StringVar(&format, "format", "", "Report format: text, json")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showHelp, "help", false, "Show help message")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Keymill - Parallel AES-CTR Record Generator\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keymill [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keymill --records 100000000 --chunk-size 1000000\n")
		fmt.Fprintf(os.Stderr, "  keymill --records 4000000000 --chunk-size 1000000 --workers 16\n")
		fmt.Fprintf(os.Stderr, "  keymill --config /etc/keymill/config.yaml --format json\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  KEYMILL_RECORDS              Total record count\n")
		fmt.Fprintf(os.Stderr, "  KEYMILL_CHUNK_SIZE           Records per chunk\n")
		fmt.Fprintf(os.Stderr, "  KEYMILL_KEY                  AES-128 key (32 hex characters)\n")
		fmt.Fprintf(os.Stderr, "  KEYMILL_WORKERS              Parallel worker count\n")
		fmt.Fprintf(os.Stderr, "  KEYMILL_REPORT_FORMAT        Report format (text, json)\n")
		fmt.Fprintf(os.Stderr, "  KEYMILL_REPORT_SAMPLE_SIZE   Leading records echoed in the report\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("keymill version %s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := loadConfig(configFile, records, chunkSize, key, workers, sampleSize, format)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Print startup banner
	printBanner(cfg)

	runKey, err := cfg.ParsedKey()
	if err != nil {
		log.Fatalf("Invalid key: %v", err)
	}

	run, err := engine.NewRun(engine.RunConfig{
		Records:     cfg.Records,
		ChunkSize:   cfg.ChunkSize,
		Key:         runKey,
		Workers:     cfg.Workers,
		SampleSize:  cfg.Report.SampleSize,
		Fingerprint: cfg.Report.Fingerprint,
	})
	if err != nil {
		log.Fatalf("Failed to plan run: %v", err)
	}

	log.Printf("Run %s: allocating space for %s records (~%s)...",
		run.ID(), humanize.Comma(int64(cfg.Records)), humanize.IBytes(cfg.TotalBytes()))
	log.Printf("Run %s: generating in %d parallel chunks of %s records each across %d workers",
		run.ID(), len(run.Chunks()), humanize.Comma(int64(cfg.ChunkSize)), run.Workers())

	// SIGINT/SIGTERM cancel the run; workers stop at the next chunk boundary.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, err := run.Execute(ctx, sysinfo.NewHostProvider())
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	if rep.Before == nil {
		log.Printf("Warning: environment probe unavailable, report omits system information")
	}

	if err := newSink(cfg).Emit(rep); err != nil {
		log.Fatalf("Failed to emit report: %v", err)
	}
}

// loadConfig loads configuration from file, environment, and command line flags.
func loadConfig(configFile string, records, chunkSize uint64, key string, workers, sampleSize int, format string) (*config.Config, error) {
	var cfg *config.Config
	var err error

	// Start with defaults or load from file
	if configFile != "" {
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	// Apply environment variables (an adjacent .env file is honoured)
	_ = godotenv.Load()
	config.LoadFromEnv(cfg)

	// Apply command line flags (highest priority)
	if records > 0 {
		cfg.Records = records
	}
	if chunkSize > 0 {
		cfg.ChunkSize = chunkSize
	}
	if key != "" {
		cfg.Key = key
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if sampleSize >= 0 {
		cfg.Report.SampleSize = sampleSize
	}
	if format != "" {
		cfg.Report.Format = config.Format(format)
	}

	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// printBanner prints the startup banner with configuration summary.
func printBanner(cfg *config.Config) {
	log.Printf("╔═══════════════════════════════════════════════════════════╗")
	log.Printf("║                       KEYMILL                             ║")
	log.Printf("║            Parallel AES-CTR Record Generator              ║")
	log.Printf("╚═══════════════════════════════════════════════════════════╝")
	log.Printf("")
	log.Printf("Configuration:")
	log.Printf("  Records:    %s", humanize.Comma(int64(cfg.Records)))
	log.Printf("  Chunk Size: %s", humanize.Comma(int64(cfg.ChunkSize)))
	log.Printf("  Chunks:     %d", cfg.Chunks())
	log.Printf("  Workers:    %d", cfg.Workers)
	log.Printf("  Format:     %s", cfg.Report.Format)
	log.Printf("")
}

// newSink selects the report sink for the configured format.
func newSink(cfg *config.Config) report.Sink {
	if cfg.Report.Format == config.FormatJSON {
		return report.NewJSONSink(os.Stdout)
	}
	return report.NewTextSink(os.Stdout)
}
