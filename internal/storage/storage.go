package storage

import (
	"tfa/internal/config"
	"tfa/internal/domain"
)

// Storage persists and loads analysis results (e.g. for the failures viewer).
type Storage interface {
	Save(result *domain.AnalysisResult) error
	Load() (*domain.AnalysisResult, error)
}

// JSONStorage stores results in a JSON file under the configured results path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's results path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
