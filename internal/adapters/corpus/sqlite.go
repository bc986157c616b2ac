package corpus

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/mikey/phishing-detector/internal/core"
)

// SQLiteCorpus is a SQLite implementation of the CorpusRepository
// interface. The table is created on first use so a fresh database can
// be seeded with Add or by external tooling.
type SQLiteCorpus struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteCorpus opens (or creates) the corpus database at dbPath.
func NewSQLiteCorpus(dbPath string, logger *zap.Logger) (*SQLiteCorpus, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS training_emails (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email_text TEXT NOT NULL,
			label INTEGER NOT NULL CHECK (label IN (0, 1))
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteCorpus{db: db, logger: logger}, nil
}

// Load returns every labeled example in the database.
func (r *SQLiteCorpus) Load(ctx context.Context) ([]core.TrainingExample, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT email_text, label FROM training_emails ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query corpus: %w", err)
	}
	defer rows.Close()

	var examples []core.TrainingExample
	for rows.Next() {
		var example core.TrainingExample
		if err := rows.Scan(&example.Text, &example.Label); err != nil {
			return nil, fmt.Errorf("failed to scan corpus row: %w", err)
		}
		examples = append(examples, example)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus rows: %w", err)
	}

	r.logger.Info("Loaded training corpus from SQLite", zap.Int("examples", len(examples)))
	return examples, nil
}

// Add inserts one labeled example, for seeding the corpus.
func (r *SQLiteCorpus) Add(ctx context.Context, example core.TrainingExample) error {
	if example.Label != core.LabelLegitimate && example.Label != core.LabelPhishing {
		return fmt.Errorf("label %d is not 0 or 1", example.Label)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO training_emails (email_text, label) VALUES (?, ?)
	`, example.Text, example.Label)
	if err != nil {
		return fmt.Errorf("failed to insert corpus row: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *SQLiteCorpus) Close() error {
	return r.db.Close()
}
