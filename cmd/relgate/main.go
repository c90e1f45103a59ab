package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ochairo/relgate/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/relgate/internal/domain-orchestrators"
	"github.com/ochairo/relgate/internal/domain/entities"
	"github.com/ochairo/relgate/internal/domain/services"
	"github.com/ochairo/relgate/internal/external-adapters/gpg"
	"github.com/ochairo/relgate/internal/external-adapters/yaml"
)

const defaultConfigPath = ".relgate.yml"

func main() {
	fs := flag.NewFlagSet("relgate", flag.ExitOnError)
	var (
		releaseCheck = fs.Bool("release-check", false, "Run the release gates in addition to the score gates")
		configPath   = fs.String("config", defaultConfigPath, "Path to the gate configuration YAML")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: relgate [options]

Run the contribution and release sanity checks for this project.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Exit Codes:
  0  All gates passed
  1  One or more gate violations
  2  Usage error or missing/malformed input artifact

Examples:
  relgate
  relgate --release-check
  relgate --release-check --config ci/relgate.yml
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(2)
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected argument %q\n\n", fs.Arg(0))
		fs.Usage()
		os.Exit(2)
	}

	// CI overrides may live in a local .env file
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	evaluation, err := executeCheck(context.Background(), cfg, *releaseCheck)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if !evaluation.Passed() {
		fmt.Println(strings.Join(evaluation.Violations, "\n"))
		fmt.Println("Exiting.")
		os.Exit(evaluation.ExitCode())
	}

	for _, line := range evaluation.Summary {
		fmt.Println(line)
	}
}

// loadConfig resolves the gate configuration: built-in defaults, then the
// config file when present, then environment overrides. A missing default
// config file is fine; a missing explicitly-requested one is an error.
func loadConfig(path string) (entities.GateConfig, error) {
	cfg := entities.DefaultGateConfig()

	if _, err := os.Stat(path); err != nil {
		if path != defaultConfigPath {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
	} else {
		cfg, err = yaml.NewConfigParser().ParseFile(path)
		if err != nil {
			return cfg, err
		}
	}

	return yaml.ApplyEnvOverrides(cfg), nil
}

func executeCheck(ctx context.Context, cfg entities.GateConfig, releaseCheck bool) (*services.Evaluation, error) {
	orchestrator := orchestrators.NewGateOrchestrator(
		gateways.NewReportReader(),
		gateways.NewVersionCollector(),
		gateways.NewFeedClient(cfg.Feed),
		gateways.NewGitInspector("."),
		gpg.NewVerifier(),
	)
	return orchestrator.Run(ctx, cfg, releaseCheck)
}
