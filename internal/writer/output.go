package writer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/lamim/replicaforge/pkg/models"
)

// UnitWriter streams per-unit outcomes to the units.jsonl file as they
// complete, so a crashed run still leaves a usable trace.
type UnitWriter struct {
	file   *os.File
	mu     sync.Mutex
	logger *slog.Logger
}

// unitLine is one row of the units.jsonl stream.
type unitLine struct {
	Unit       int                   `json:"unit"`
	Theme      string                `json:"theme"`
	Palette    string                `json:"palette"`
	Status     string                `json:"status"`
	DurationMS int64                 `json:"duration_ms"`
	Error      string                `json:"error,omitempty"`
	Snippet    string                `json:"snippet,omitempty"`
	Record     *models.ReplicaRecord `json:"record,omitempty"`
}

// NewUnitWriter creates the per-unit stream file.
func NewUnitWriter(sessionMgr *SessionManager, logger *slog.Logger) (*UnitWriter, error) {
	file, err := os.Create(sessionMgr.GetUnitsPath())
	if err != nil {
		return nil, fmt.Errorf("failed to create units file: %w", err)
	}
	return &UnitWriter{file: file, logger: logger}, nil
}

// WriteUnit appends one finished unit to the stream.
func (uw *UnitWriter) WriteUnit(unit *models.GenerationUnit) error {
	uw.mu.Lock()
	defer uw.mu.Unlock()

	line := unitLine{
		Unit:       unit.Index,
		Theme:      unit.Identity.ThemeName,
		Palette:    unit.Identity.PaletteLabel,
		Status:     "success",
		DurationMS: unit.Duration.Milliseconds(),
		Record:     unit.Outcome.Record,
	}
	if !unit.Outcome.Parsed() {
		line.Status = "failed"
		line.Error = unit.Outcome.Err
		line.Snippet = unit.Outcome.RawSnippet
		line.Record = nil
	}

	data, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("failed to marshal unit: %w", err)
	}
	if _, err := uw.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write unit: %w", err)
	}
	return nil
}

// Close syncs and closes the stream.
func (uw *UnitWriter) Close() error {
	if err := uw.file.Sync(); err != nil {
		uw.logger.Warn("Failed to sync units file", "error", err)
	}
	if err := uw.file.Close(); err != nil {
		return fmt.Errorf("failed to close units file: %w", err)
	}
	return nil
}

// WriteReplicas writes the final replica document: successful units keyed
// replica_1..replica_N in unit order. Failed units are absent; their story
// lives in units.jsonl and the report.
func WriteReplicas(path string, result *models.BatchResult) error {
	doc := make(map[string]*models.ReplicaRecord, len(result.Units))
	for _, unit := range result.Units {
		if unit.Outcome.Parsed() {
			doc[fmt.Sprintf("replica_%d", unit.Index)] = unit.Outcome.Record
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal replicas: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write replicas: %w", err)
	}
	return nil
}

// Report is the session summary written at the end of a run.
type Report struct {
	GeneratedAt   time.Time         `json:"generated_at"`
	TotalUnits    int               `json:"total_units"`
	Succeeded     int               `json:"succeeded"`
	Failed        int               `json:"failed"`
	Usage         models.TokenUsage `json:"usage"`
	ElapsedMS     int64             `json:"elapsed_ms"`
	FailedUnits   []FailedUnit      `json:"failed_units,omitempty"`
	SessionTokens int64             `json:"session_tokens"`
	TotalTokens   int64             `json:"lifetime_tokens"`
}

// FailedUnit records why one unit produced no replica.
type FailedUnit struct {
	Unit    int    `json:"unit"`
	Theme   string `json:"theme"`
	Error   string `json:"error"`
	Snippet string `json:"snippet,omitempty"`
}

// WriteReport writes the session summary.
func WriteReport(path string, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
