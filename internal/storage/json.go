package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tfa/internal/domain"
)

// Save writes the analysis result to the configured JSON results file.
func (s *JSONStorage) Save(result *domain.AnalysisResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	path := s.cfg.GetResultsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Load reads the last analysis result from the configured JSON results file.
func (s *JSONStorage) Load() (*domain.AnalysisResult, error) {
	path := s.cfg.GetResultsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var result domain.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &result, nil
}
