package corpus

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/mikey/phishing-detector/internal/core"
)

// MySQLCorpus is a MySQL implementation of the CorpusRepository interface.
type MySQLCorpus struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLCorpus connects to MySQL using the given DSN and creates the
// corpus table if it does not exist.
func NewMySQLCorpus(dsn string, logger *zap.Logger) (*MySQLCorpus, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS training_emails (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			email_text TEXT NOT NULL,
			label TINYINT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLCorpus{db: db, logger: logger}, nil
}

// Load returns every labeled example in the database.
func (r *MySQLCorpus) Load(ctx context.Context) ([]core.TrainingExample, error) {
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
		if example.Label != core.LabelLegitimate && example.Label != core.LabelPhishing {
			return nil, fmt.Errorf("corpus row has label %d, want 0 or 1", example.Label)
		}
		examples = append(examples, example)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus rows: %w", err)
	}

	r.logger.Info("Loaded training corpus from MySQL", zap.Int("examples", len(examples)))
	return examples, nil
}

// Add inserts one labeled example, for seeding the corpus.
func (r *MySQLCorpus) Add(ctx context.Context, example core.TrainingExample) error {
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
func (r *MySQLCorpus) Close() error {
	return r.db.Close()
}
