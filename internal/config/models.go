package config

// ModelConfig represents the classifier backend configuration
type ModelConfig struct {
	Classifier           string
	Path                 string
	ForestTrees          int
	LogisticEpochs       int
	LogisticLearningRate float64
	LogisticL2           float64
}

// FeaturesConfig represents the feature extraction configuration
type FeaturesConfig struct {
	MaxFeatures int
	NgramMax    int
}

// TrainingConfig represents the training run configuration
type TrainingConfig struct {
	TestFraction float64
	CVFolds      int
	Seed         int64
}

// CorpusConfig represents the training corpus source configuration
type CorpusConfig struct {
	Type       string
	CSVPath    string
	SQLitePath string
	MySQLDSN   string
}

// GetModel returns the classifier backend configuration
func (c *Config) GetModel() ModelConfig {
	return ModelConfig{
		Classifier:           c.GetString("model.classifier"),
		Path:                 c.GetString("model.path"),
		ForestTrees:          c.GetInt("model.forest.trees"),
		LogisticEpochs:       c.GetInt("model.logistic.epochs"),
		LogisticLearningRate: c.GetFloat64("model.logistic.learning_rate"),
		LogisticL2:           c.GetFloat64("model.logistic.l2"),
	}
}

// GetFeatures returns the feature extraction configuration
func (c *Config) GetFeatures() FeaturesConfig {
	return FeaturesConfig{
		MaxFeatures: c.GetInt("features.max_features"),
		NgramMax:    c.GetInt("features.ngram_max"),
	}
}

// GetTraining returns the training run configuration
func (c *Config) GetTraining() TrainingConfig {
	return TrainingConfig{
		TestFraction: c.GetFloat64("training.test_fraction"),
		CVFolds:      c.GetInt("training.cv_folds"),
		Seed:         c.GetInt64("training.seed"),
	}
}

// GetCorpus returns the training corpus source configuration
func (c *Config) GetCorpus() CorpusConfig {
	return CorpusConfig{
		Type:       c.GetString("corpus.type"),
		CSVPath:    c.GetString("corpus.csv_path"),
		SQLitePath: c.GetString("corpus.sqlite_path"),
		MySQLDSN:   c.GetString("corpus.mysql_dsn"),
	}
}
