// Package writer owns everything the pipeline puts on disk: the session
// directory, the structured log, the per-unit stream and the final replica
// document.
package writer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// SessionManager manages one run's output directory and file paths.
type SessionManager struct {
	sessionDir string
	logger     *slog.Logger
}

// NewSessionManager creates a timestamped session directory under outputDir.
func NewSessionManager(outputDir string, logger *slog.Logger) (*SessionManager, error) {
	if outputDir == "" {
		outputDir = "output"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02T15-04-05")
	sessionDir := filepath.Join(outputDir, "session_"+timestamp)
	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	logger.Info("Created new session directory", "path", sessionDir)
	return &SessionManager{sessionDir: sessionDir, logger: logger}, nil
}

// GetSessionDir returns the session directory path.
func (sm *SessionManager) GetSessionDir() string {
	return sm.sessionDir
}

// GetReplicasPath returns the path of the final replica document.
func (sm *SessionManager) GetReplicasPath() string {
	return filepath.Join(sm.sessionDir, "replicas.json")
}

// GetUnitsPath returns the path of the per-unit JSONL stream.
func (sm *SessionManager) GetUnitsPath() string {
	return filepath.Join(sm.sessionDir, "units.jsonl")
}

// GetLogPath returns the path of the session log file.
func (sm *SessionManager) GetLogPath() string {
	return filepath.Join(sm.sessionDir, "session.log")
}

// GetReportPath returns the path of the session summary report.
func (sm *SessionManager) GetReportPath() string {
	return filepath.Join(sm.sessionDir, "report.json")
}

// GetConfigBackupPath returns the path of the config backup.
func (sm *SessionManager) GetConfigBackupPath() string {
	return filepath.Join(sm.sessionDir, "config.toml.bak")
}

// BackupConfig copies the config file into the session directory so a run
// can always be traced back to the settings that produced it.
func (sm *SessionManager) BackupConfig(configPath string) error {
	source, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := os.WriteFile(sm.GetConfigBackupPath(), source, 0644); err != nil {
		return fmt.Errorf("failed to write config backup: %w", err)
	}
	return nil
}
