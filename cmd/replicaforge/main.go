package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/lamim/replicaforge/internal/api"
	"github.com/lamim/replicaforge/internal/config"
	"github.com/lamim/replicaforge/internal/metrics"
	"github.com/lamim/replicaforge/internal/orchestrator"
	"github.com/lamim/replicaforge/internal/parser"
	"github.com/lamim/replicaforge/internal/prompt"
	"github.com/lamim/replicaforge/internal/theme"
	"github.com/lamim/replicaforge/internal/tokens"
	"github.com/lamim/replicaforge/internal/writer"
	"github.com/lamim/replicaforge/pkg/models"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	configPath  string
	envFile     string
	requestPath string
	outputDir   string
	metricsAddr string
	verbose     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "replicaforge",
		Short: "ReplicaForge - Themed Code Variant Generator",
		Long: `ReplicaForge turns one canonical HTML/CSS/JS exercise into N thematically
distinct, functionally identical variants by driving an LLM through a
tolerant parsing and repair pipeline.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the variant generation pipeline",
		Long: `Run the complete variant generation pipeline:
1. Assign a distinct theme and color palette to every unit
2. Compile per-unit prompts and call the model concurrently
3. Parse and, when needed, repair each response
4. Write replicas.json, a per-unit stream and a session report`,
		RunE: runGeneration,
	}

	runCmd.Flags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")
	runCmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to environment file")
	runCmd.Flags().StringVar(&requestPath, "request", "request.json", "Path to the generation request file")
	runCmd.Flags().StringVar(&outputDir, "output-dir", "output", "Directory for session output")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address (e.g. :2112)")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	tokensCmd := &cobra.Command{
		Use:   "tokens",
		Short: "Manage the persistent token ledger",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show session and lifetime token counts",
		RunE:  showTokens,
	}
	showCmd.Flags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the session token counter",
		Long:  "Reset the session token counter. The lifetime total is never reset.",
		RunE:  resetTokens,
	}
	resetCmd.Flags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")

	tokensCmd.AddCommand(showCmd)
	tokensCmd.AddCommand(resetCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tokensCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGeneration(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := loadEnvFile(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load env file: %v\n", err)
		}
	}

	cfg, secrets, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	req, err := loadRequest(requestPath)
	if err != nil {
		return fmt.Errorf("failed to load request: %w", err)
	}

	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	sessionMgr, err := writer.NewSessionManager(outputDir, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	logger, logFile, err := writer.SetupLogger(sessionMgr, logLevel)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}
	defer func() {
		if logFile != nil {
			_ = logFile.Sync()
			_ = logFile.Close()
		}
	}()

	logger.Info("ReplicaForge starting",
		"version", Version,
		"config", configPath,
		"request", requestPath,
		"units", req.UnitCount,
		"session_dir", sessionMgr.GetSessionDir())

	if err := sessionMgr.BackupConfig(configPath); err != nil {
		logger.Warn("Failed to backup config", "error", err)
	}

	collector := metrics.NewCollector(logger)
	if metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logger.Info("Serving metrics", "addr", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.Error("Metrics server stopped", "error", err)
			}
		}()
	}

	ledger, err := openLedger(cfg)
	if err != nil {
		return fmt.Errorf("failed to open token ledger: %w", err)
	}
	defer func() {
		if err := ledger.Close(); err != nil {
			logger.Warn("Failed to close ledger", "error", err)
		}
	}()

	unitWriter, err := writer.NewUnitWriter(sessionMgr, logger)
	if err != nil {
		return fmt.Errorf("failed to create unit writer: %w", err)
	}
	defer func() {
		if err := unitWriter.Close(); err != nil {
			logger.Error("Failed to close unit writer", "error", err)
		}
	}()

	orch := orchestrator.New(cfg, orchestrator.Options{
		Client:    buildClient(cfg, secrets, logger),
		Compiler:  buildCompiler(cfg),
		Selector:  buildSelector(cfg),
		Engine:    buildEngine(cfg, collector),
		Estimator: tokens.NewEstimator(cfg.Model.TokenizerModel),
		Ledger:    ledger,
		Collector: collector,
		Logger:    logger,
		Observer: func(unit *models.GenerationUnit) {
			if err := unitWriter.WriteUnit(unit); err != nil {
				logger.Error("Failed to stream unit", "unit", unit.Index, "error", err)
			}
		},
		ShowProgress: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := orch.Run(ctx, req)
	if err != nil {
		if err == context.Canceled {
			return fmt.Errorf("generation interrupted")
		}
		return fmt.Errorf("generation failed: %w", err)
	}

	if err := writer.WriteReplicas(sessionMgr.GetReplicasPath(), result); err != nil {
		return fmt.Errorf("failed to write replicas: %w", err)
	}
	if err := writeReport(sessionMgr, result, ledger); err != nil {
		logger.Warn("Failed to write report", "error", err)
	}

	logger.Info("Generation complete",
		"succeeded", result.Stats.SuccessCount,
		"failed", result.Stats.FailureCount,
		"total_tokens", result.Usage.TotalTokens,
		"duration", result.Stats.TotalDuration,
		"session_dir", sessionMgr.GetSessionDir())

	if result.Stats.SuccessCount == 0 {
		return fmt.Errorf("no units succeeded")
	}
	return nil
}

func showTokens(cmd *cobra.Command, args []string) error {
	ledger, err := openConfiguredLedger()
	if err != nil {
		return err
	}
	defer ledger.Close()

	usage, err := ledger.Read()
	if err != nil {
		return err
	}
	fmt.Printf("Session tokens:  %d\n", usage.SessionTokens)
	fmt.Printf("Lifetime tokens: %d\n", usage.TotalTokens)
	return nil
}

func resetTokens(cmd *cobra.Command, args []string) error {
	ledger, err := openConfiguredLedger()
	if err != nil {
		return err
	}
	defer ledger.Close()

	if err := ledger.ResetSession(); err != nil {
		return err
	}
	fmt.Println("Session token counter reset.")
	return nil
}

func openConfiguredLedger() (tokens.Ledger, error) {
	cfg, _, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cfg.Ledger.Enabled {
		return nil, fmt.Errorf("token ledger is disabled in %s", configPath)
	}
	return tokens.NewSQLiteLedger(cfg.Ledger.Path)
}

func openLedger(cfg *config.Config) (tokens.Ledger, error) {
	if !cfg.Ledger.Enabled {
		return tokens.NewMemoryLedger(), nil
	}
	return tokens.NewSQLiteLedger(cfg.Ledger.Path)
}

func buildClient(cfg *config.Config, secrets *config.Secrets, logger *slog.Logger) *api.Client {
	return api.NewClient(cfg.Model, secrets.GetAPIKey(cfg.Model.BaseURL), nil, logger)
}

func buildSelector(cfg *config.Config) *theme.Selector {
	opts := []theme.Option{theme.WithFallbackSuffix(cfg.Generation.FallbackIDSuffix)}
	if cfg.Generation.ShuffleSeed != 0 {
		opts = append(opts, theme.WithSeed(cfg.Generation.ShuffleSeed))
	}
	return theme.NewSelector(cfg.Pools.Themes, cfg.Pools.Palettes, opts...)
}

func buildEngine(cfg *config.Config, collector *metrics.Collector) *parser.Engine {
	return parser.NewEngine(cfg.Generation.Protocol,
		parser.WithSnippetLength(cfg.Generation.SnippetLength),
		parser.WithFallbackTitle(cfg.Generation.FallbackTitle),
		parser.WithRepairHook(collector.RecordParseRepair),
	)
}

func buildCompiler(cfg *config.Config) *prompt.Compiler {
	contract := config.GetDelimiterFormatContract()
	if cfg.Generation.Protocol == models.ProtocolJSON {
		contract = config.GetJSONFormatContract()
	}
	return prompt.NewCompiler(cfg.PromptTemplates.SystemInstruction, cfg.PromptTemplates.UserInstruction, contract)
}

func loadRequest(path string) (*models.GenerationRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var req models.GenerationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid request file: %w", err)
	}
	return &req, nil
}

func writeReport(sessionMgr *writer.SessionManager, result *models.BatchResult, ledger tokens.Ledger) error {
	report := &writer.Report{
		GeneratedAt: time.Now(),
		TotalUnits:  result.Stats.TotalUnits,
		Succeeded:   result.Stats.SuccessCount,
		Failed:      result.Stats.FailureCount,
		Usage:       result.Usage,
		ElapsedMS:   result.Stats.TotalDuration.Milliseconds(),
	}
	for _, unit := range result.Units {
		if !unit.Outcome.Parsed() {
			report.FailedUnits = append(report.FailedUnits, writer.FailedUnit{
				Unit:    unit.Index,
				Theme:   unit.Identity.ThemeName,
				Error:   unit.Outcome.Err,
				Snippet: unit.Outcome.RawSnippet,
			})
		}
	}
	if usage, err := ledger.Read(); err == nil {
		report.SessionTokens = usage.SessionTokens
		report.TotalTokens = usage.TotalTokens
	}
	return writer.WriteReport(sessionMgr.GetReportPath(), report)
}

// loadEnvFile reads KEY=VALUE lines into the process environment. Missing
// files are not an error worth stopping for; the caller logs and moves on.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}
