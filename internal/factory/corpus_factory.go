package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mikey/phishing-detector/internal/adapters/corpus"
	"github.com/mikey/phishing-detector/internal/config"
	"github.com/mikey/phishing-detector/internal/core"
)

// CorpusFactory creates training corpus repositories based on configuration
type CorpusFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCorpusFactory creates a new corpus factory
func NewCorpusFactory(cfg *config.Config, logger *zap.Logger) *CorpusFactory {
	return &CorpusFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateCorpusRepository creates a corpus repository based on the configuration
func (f *CorpusFactory) CreateCorpusRepository() (core.CorpusRepository, error) {
	cc := f.cfg.GetCorpus()

	switch cc.Type {
	case "csv":
		return corpus.NewCSVCorpus(cc.CSVPath, f.logger), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cc.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return corpus.NewSQLiteCorpus(cc.SQLitePath, f.logger)
	case "mysql":
		return corpus.NewMySQLCorpus(cc.MySQLDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported corpus type: %s", cc.Type)
	}
}
