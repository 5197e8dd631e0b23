package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/eshaffer321/delivery-fee-report/internal/application/reporting"
	"github.com/eshaffer321/delivery-fee-report/internal/cli"
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/config"
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/logging"
)

func main() {
	var (
		configFile string
		verbose    bool
	)

	// Global flags
	flag.StringVar(&configFile, "config", "", "Configuration file path")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	flag.Usage = printUsage
	flag.Parse()

	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	cfg, err := loadConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if verbose {
		cfg.Observability.Logging.Level = "debug"
	}
	logger := logging.NewLogger(cfg.Observability.Logging)

	// Get subcommand; no subcommand runs the report
	subcommand := "report"
	args := flag.Args()
	if len(args) > 0 {
		subcommand, args = args[0], args[1:]
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch subcommand {
	case "report":
		err = handleReport(ctx, args, cfg, logger)
	case "inspect":
		err = handleInspect(ctx, args, cfg, logger)
	case "runs":
		err = handleRuns(args, cfg)
	case "serve":
		stop()
		err = handleServe(args, cfg, logger)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logger.Error("command failed", "command", subcommand, "error", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Delivery Fee Report")
	fmt.Println("===================")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  delivery-report [global options] [command] [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  report              Write the delivery fee CSV (default)")
	fmt.Println("  inspect <session>   Show how one checkout session would be reported")
	fmt.Println("  runs                List recent report runs")
	fmt.Println("  serve               Start the HTTP API")
	fmt.Println()
	fmt.Println("Global Options:")
	fmt.Println("  -config string      Configuration file path")
	fmt.Println("  -verbose            Enable verbose logging")
}

// loadConfig reads an explicit -config file, or config.yaml in the working
// directory with environment variables as the fallback.
func loadConfig(configFile string) (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.LoadOrEnv()
}

func handleReport(ctx context.Context, args []string, cfg *config.Config, logger *slog.Logger) error {
	flags, err := cli.ParseReportFlags(args, cfg, os.Stderr)
	if err != nil {
		return err
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	opts := flags.ToOptions()
	cli.PrintHeader(os.Stdout, opts)

	result, err := app.Orchestrator.Run(ctx, opts)
	if err != nil {
		return err
	}

	cli.PrintSummary(os.Stdout, result)
	return nil
}

func handleInspect(ctx context.Context, args []string, cfg *config.Config, logger *slog.Logger) error {
	sessionID, err := cli.ParseInspectFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	result, err := app.Orchestrator.Run(ctx, reporting.Options{
		Mode:      reporting.ModeInspect,
		SessionID: sessionID,
	})
	if err != nil {
		return err
	}

	cli.PrintRow(os.Stdout, result)
	return nil
}

func handleRuns(args []string, cfg *config.Config) error {
	limit, err := cli.ParseRunsFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	store, err := cli.OpenStorage(cfg)
	if err != nil {
		return err
	}
	if store == nil {
		return cli.ErrNoStorage
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}

	cli.PrintRuns(os.Stdout, runs)
	return nil
}

func handleServe(args []string, cfg *config.Config, logger *slog.Logger) error {
	flags, err := cli.ParseServeFlags(args, cfg, os.Stderr)
	if err != nil {
		return err
	}

	app, err := cli.NewApp(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	return cli.RunServe(app, flags)
}
