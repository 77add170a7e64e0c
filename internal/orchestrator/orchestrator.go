// Package orchestrator runs generation batches: it fans units out over a
// worker pool, isolates per-unit failures, and accounts for token usage.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/lamim/replicaforge/internal/api"
	"github.com/lamim/replicaforge/internal/config"
	"github.com/lamim/replicaforge/internal/metrics"
	"github.com/lamim/replicaforge/internal/parser"
	"github.com/lamim/replicaforge/internal/prompt"
	"github.com/lamim/replicaforge/internal/theme"
	"github.com/lamim/replicaforge/internal/tokens"
	"github.com/lamim/replicaforge/internal/util"
	"github.com/lamim/replicaforge/pkg/models"
)

// Generator is the model call the orchestrator depends on.
type Generator interface {
	Generate(ctx context.Context, system, user string) (*api.GenerationResult, error)
}

// UnitObserver is notified as each unit finishes, in completion order.
// Used to stream outcomes to disk while the batch is still running.
type UnitObserver func(unit *models.GenerationUnit)

// Orchestrator coordinates one batch of generation units.
type Orchestrator struct {
	cfg       *config.Config
	client    Generator
	compiler  *prompt.Compiler
	selector  *theme.Selector
	engine    *parser.Engine
	estimator *tokens.Estimator
	ledger    tokens.Ledger
	collector *metrics.Collector
	logger    *slog.Logger

	observer     UnitObserver
	showProgress bool
}

// Options carries the orchestrator's collaborators.
type Options struct {
	Client       Generator
	Compiler     *prompt.Compiler
	Selector     *theme.Selector
	Engine       *parser.Engine
	Estimator    *tokens.Estimator
	Ledger       tokens.Ledger
	Collector    *metrics.Collector
	Logger       *slog.Logger
	Observer     UnitObserver
	ShowProgress bool
}

// New creates an orchestrator. A nil ledger disables persistence.
func New(cfg *config.Config, opts Options) *Orchestrator {
	ledger := opts.Ledger
	if ledger == nil {
		ledger = tokens.NewMemoryLedger()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		cfg:          cfg,
		client:       opts.Client,
		compiler:     opts.Compiler,
		selector:     opts.Selector,
		engine:       opts.Engine,
		estimator:    opts.Estimator,
		ledger:       ledger,
		collector:    opts.Collector,
		logger:       logger,
		observer:     opts.Observer,
		showProgress: opts.ShowProgress,
	}
}

// Run executes one batch. Every requested unit appears in the result in
// order; a unit that fails carries its error instead of a record. Run
// itself fails only on invalid input or context cancellation.
func (o *Orchestrator) Run(ctx context.Context, req *models.GenerationRequest) (*models.BatchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n := req.UnitCount
	if !o.cfg.Generation.DisableUnitLimits && n > o.cfg.Generation.MaxUnitsPerBatch {
		return nil, fmt.Errorf("requested %d units exceeds the per-batch limit of %d",
			n, o.cfg.Generation.MaxUnitsPerBatch)
	}

	identities := o.selector.Assign(n)

	result := &models.BatchResult{
		Units: make([]models.GenerationUnit, n),
	}
	result.Stats.StartTime = time.Now()
	result.Stats.TotalUnits = n
	for i := 0; i < n; i++ {
		result.Units[i] = models.GenerationUnit{
			Index:    i + 1,
			Identity: identities[i],
		}
	}

	concurrency := o.cfg.Generation.Concurrency
	if concurrency > n {
		concurrency = n
	}

	o.logger.Info("Starting batch",
		"units", n,
		"concurrency", concurrency,
		"protocol", o.cfg.Generation.Protocol)

	var bar *progressbar.ProgressBar
	if o.showProgress {
		bar = progressbar.Default(int64(n), "Generating variants")
	}

	jobs := make(chan int, n)
	var wg sync.WaitGroup
	var mu sync.Mutex // guards result.Usage and observer/progress updates

	if o.collector != nil {
		o.collector.SetActiveWorkers(concurrency)
	}

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			workerLogger := o.logger.With("worker_id", workerID)

			for idx := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				unit := &result.Units[idx]
				start := time.Now()
				usage := o.processUnit(ctx, workerLogger, req, unit)
				unit.Duration = time.Since(start)
				if o.collector != nil {
					o.collector.RecordUnitDuration(unit.Duration)
				}

				mu.Lock()
				result.Usage.InputTokens += usage.InputTokens
				result.Usage.OutputTokens += usage.OutputTokens
				result.Usage.TotalTokens += usage.TotalTokens
				if o.observer != nil {
					o.observer(unit)
				}
				if bar != nil {
					_ = bar.Add(1)
				}
				mu.Unlock()
			}
		}(w)
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if o.collector != nil {
		o.collector.SetActiveWorkers(0)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.finalize(result)

	if err := o.ledger.Increment(int64(result.Usage.TotalTokens)); err != nil {
		o.logger.Warn("Failed to persist token usage", "error", err)
	}

	o.logger.Info("Batch complete",
		"succeeded", result.Stats.SuccessCount,
		"failed", result.Stats.FailureCount,
		"total_tokens", result.Usage.TotalTokens,
		"duration", result.Stats.TotalDuration)

	return result, nil
}

// processUnit drives one unit from prompt to outcome. It never returns an
// error: failures land in the unit's outcome so siblings keep running.
func (o *Orchestrator) processUnit(
	ctx context.Context,
	logger *slog.Logger,
	req *models.GenerationRequest,
	unit *models.GenerationUnit,
) models.TokenUsage {
	unitLogger := logger.With("unit", unit.Index, "theme", unit.Identity.ThemeName)

	system, user, err := o.compiler.Compile(req, unit.Identity)
	if err != nil {
		unit.Outcome = models.UnitOutcome{Err: fmt.Sprintf("prompt compilation failed: %v", err)}
		o.recordOutcome("api_error")
		return models.TokenUsage{}
	}
	unit.CompiledPrompt = user

	apiStart := time.Now()
	resp, err := o.client.Generate(ctx, system, user)
	if o.collector != nil {
		o.collector.RecordAPIRequest(o.cfg.Model.ModelName, time.Since(apiStart), err == nil)
	}
	if err != nil {
		unitLogger.Error("Generation failed", "error", err)
		unit.Outcome = models.UnitOutcome{Err: err.Error()}
		o.recordOutcome("api_error")
		return o.estimateUsage(system, user, "")
	}
	unit.RawResponse = resp.Content

	record, err := o.engine.Parse(resp.Content)
	if err != nil {
		unitLogger.Error("Parse failed", "error", err)
		outcome := models.UnitOutcome{Err: err.Error()}
		var parseErr *parser.UnrecoverableParseError
		if errors.As(err, &parseErr) {
			outcome.RawSnippet = parseErr.Snippet
		} else {
			outcome.RawSnippet = util.Snippet(resp.Content, o.cfg.Generation.SnippetLength)
		}
		unit.Outcome = outcome
		o.recordOutcome("parse_error")
		return o.usageFor(resp, system, user)
	}

	o.finishRecord(record, req)
	unit.Outcome = models.UnitOutcome{Record: record}
	o.recordOutcome("success")

	unitLogger.Debug("Unit complete", "title", record.Title)
	return o.usageFor(resp, system, user)
}

// finishRecord applies the batch-level fields a model response never
// carries: fresh test cases, solution copies and curriculum tags.
func (o *Orchestrator) finishRecord(record *models.ReplicaRecord, req *models.GenerationRequest) {
	record.TestCases = FormatTestCases(req.TestCases, req.UnitCount)

	// A variant's own code is its solution. The model's solution fields
	// are never trusted, even when present.
	record.MarkupSolution = record.Markup
	record.StyleSolution = record.Style
	record.ScriptSolution = record.Script

	record.Subtopic = ExtractTagValue(req.TagNames, TagPrefixSubtopic)
	record.Course = ExtractTagValue(req.TagNames, TagPrefixCourse)
	record.Module = ExtractTagValue(req.TagNames, TagPrefixModule)
	record.Unit = ExtractTagValue(req.TagNames, TagPrefixUnit)
}

func (o *Orchestrator) usageFor(resp *api.GenerationResult, system, user string) models.TokenUsage {
	if resp.Usage.TotalTokens > 0 {
		o.recordTokens(resp.Usage)
		return resp.Usage
	}
	return o.estimateUsage(system, user, resp.Content)
}

func (o *Orchestrator) estimateUsage(system, user, response string) models.TokenUsage {
	usage := models.TokenUsage{
		InputTokens:  o.estimator.EstimatePrompt(system, user),
		OutputTokens: o.estimator.Estimate(response),
	}
	usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	o.recordTokens(usage)
	return usage
}

func (o *Orchestrator) recordTokens(usage models.TokenUsage) {
	if o.collector != nil {
		o.collector.RecordTokens(usage.InputTokens, usage.OutputTokens)
	}
}

func (o *Orchestrator) recordOutcome(status string) {
	if o.collector == nil {
		return
	}
	o.collector.RecordUnitOutcome(status)
}

func (o *Orchestrator) finalize(result *models.BatchResult) {
	stats := &result.Stats
	stats.EndTime = time.Now()
	stats.TotalDuration = stats.EndTime.Sub(stats.StartTime)

	for i := range result.Units {
		if result.Units[i].Outcome.Parsed() {
			stats.SuccessCount++
		} else {
			stats.FailureCount++
		}
	}
	if stats.TotalUnits > 0 {
		stats.AverageDuration = stats.TotalDuration / time.Duration(stats.TotalUnits)
	}
}
