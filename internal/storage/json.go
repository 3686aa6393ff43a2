package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tmi/internal/config"
	"tmi/internal/domain"
)

// JSONSummaryStorage stores import summaries in a JSON file under the
// configured summary path.
type JSONSummaryStorage struct {
	cfg *config.Config
}

// NewJSONSummaryStorage returns a SummaryStorage that reads/writes the
// config's summary JSON path.
func NewJSONSummaryStorage(cfg *config.Config) *JSONSummaryStorage {
	return &JSONSummaryStorage{cfg: cfg}
}

// Save writes the summaries of the last import invocation.
func (s *JSONSummaryStorage) Save(summaries []domain.ImportSummary) error {
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summaries: %w", err)
	}

	path := s.cfg.GetSummaryPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write summaries: %w", err)
	}
	return nil
}

// Load reads the summaries written by the last import.
func (s *JSONSummaryStorage) Load() ([]domain.ImportSummary, error) {
	path := s.cfg.GetSummaryPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read summary file: %w", err)
	}
	var summaries []domain.ImportSummary
	if err := json.Unmarshal(data, &summaries); err != nil {
		return nil, fmt.Errorf("parse summaries: %w", err)
	}
	return summaries, nil
}
