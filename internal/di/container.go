package di

import (
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/phishing-detector/internal/config"
	"github.com/mikey/phishing-detector/internal/core"
	"github.com/mikey/phishing-detector/internal/factory"
	"github.com/mikey/phishing-detector/internal/features"
	"github.com/mikey/phishing-detector/internal/logging"
	"github.com/mikey/phishing-detector/internal/training"
)

// TrainFlags contains all command line flags for the training job
type TrainFlags struct {
	// Corpus flags
	CorpusType string
	CSVPath    string
	SQLitePath string
	MySQLDSN   string

	// Model flags
	Classifier  string
	ForestTrees int
	MaxFeatures int
	NgramMax    int
	ModelPath   string

	// Training flags
	TestFraction float64
	CVFolds      int
	Seed         int64

	// Logging flags
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseTrainFlags parses command line flags for the training job
func ParseTrainFlags() *TrainFlags {
	flags := &TrainFlags{}

	flag.StringVar(&flags.CorpusType, "corpus", "csv", "Corpus source (csv, sqlite, mysql)")
	flag.StringVar(&flags.CSVPath, "csv-path", "data/phishing_dataset.csv", "Path to CSV corpus file")
	flag.StringVar(&flags.SQLitePath, "sqlite-path", "data/training_emails.db", "Path to SQLite corpus database")
	flag.StringVar(&flags.MySQLDSN, "mysql-dsn", "", "MySQL DSN for the corpus database")

	flag.StringVar(&flags.Classifier, "classifier", "random_forest", "Classifier backend (random_forest, logistic_regression)")
	flag.IntVar(&flags.ForestTrees, "trees", 100, "Number of trees for the random forest")
	flag.IntVar(&flags.MaxFeatures, "max-features", 1000, "Maximum lexical vocabulary size")
	flag.IntVar(&flags.NgramMax, "ngram-max", 2, "Maximum n-gram length for lexical features")
	flag.StringVar(&flags.ModelPath, "model", "models/phishing_model.gob", "Output path for the model bundle")

	flag.Float64Var(&flags.TestFraction, "test-fraction", 0.2, "Holdout fraction per class")
	flag.IntVar(&flags.CVFolds, "cv-folds", 5, "Cross-validation fold count")
	flag.Int64Var(&flags.Seed, "seed", 42, "Random seed for reproducible splits")

	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildTrainContainer creates and configures a dependency injection
// container for the training job
func BuildTrainContainer(flags *TrainFlags) (*dig.Container, error) {
	container := dig.New()

	if err := container.Provide(func() *TrainFlags { return flags }); err != nil {
		return nil, err
	}

	if err := container.Provide(func(flags *TrainFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	if err := container.Provide(func(flags *TrainFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.NewFromFile(flags.ConfigFile)
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}
		return createConfigFromTrainFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCorpusFactory); err != nil {
		return nil, err
	}

	if err := container.Provide(func(f *factory.CorpusFactory) (core.CorpusRepository, error) {
		return f.CreateCorpusRepository()
	}); err != nil {
		return nil, err
	}

	if err := container.Provide(func(cfg *config.Config, f *factory.ClassifierFactory, logger *zap.Logger) (*training.Trainer, error) {
		if _, err := f.CreateClassifier(); err != nil {
			return nil, err
		}
		fc := cfg.GetFeatures()
		tc := cfg.GetTraining()
		return training.NewTrainer(
			func() *features.Pipeline { return features.NewPipeline(fc.MaxFeatures, fc.NgramMax) },
			func() core.Classifier {
				clf, _ := f.CreateClassifier()
				return clf
			},
			training.Options{TestFraction: tc.TestFraction, CVFolds: tc.CVFolds, Seed: tc.Seed},
			logger,
		), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromTrainFlags creates a configuration from command line flags
func createConfigFromTrainFlags(flags *TrainFlags) *config.Config {
	v := config.NewEmptyViper()

	v.Set("corpus.type", flags.CorpusType)
	v.Set("corpus.csv_path", flags.CSVPath)
	v.Set("corpus.sqlite_path", flags.SQLitePath)
	if flags.MySQLDSN != "" {
		v.Set("corpus.mysql_dsn", flags.MySQLDSN)
	}

	v.Set("model.classifier", flags.Classifier)
	v.Set("model.forest.trees", flags.ForestTrees)
	v.Set("model.path", flags.ModelPath)

	v.Set("features.max_features", flags.MaxFeatures)
	v.Set("features.ngram_max", flags.NgramMax)

	v.Set("training.test_fraction", flags.TestFraction)
	v.Set("training.cv_folds", flags.CVFolds)
	v.Set("training.seed", flags.Seed)

	return config.NewFromViper(v)
}
