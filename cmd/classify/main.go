package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/phishing-detector/internal/bundle"
	"github.com/mikey/phishing-detector/internal/config"
	"github.com/mikey/phishing-detector/internal/core"
	"github.com/mikey/phishing-detector/internal/factory"
	"github.com/mikey/phishing-detector/internal/logging"
)

var (
	modelPath = flag.String("model", "models/phishing_model.gob", "Path to the trained model bundle")
	inputFile = flag.String("file", "", "Input email text file (use stdin if not specified)")
	threshold = flag.Float64("threshold", 0.5, "Phishing probability threshold")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog   = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.NewFromViper(config.NewEmptyViper())
	classifierFactory := factory.NewClassifierFactory(cfg, logger)

	b, err := bundle.Load(*modelPath, classifierFactory.CreateByKind)
	if err != nil {
		logger.Fatal("Failed to load model bundle", zap.Error(err), zap.String("path", *modelPath))
	}
	logger.Info("Loaded model bundle",
		zap.String("path", *modelPath),
		zap.String("classifier", b.Classifier.Kind()),
		zap.Int("feature_length", b.Schema.Length()),
		zap.Time("created_at", b.CreatedAt))

	var reader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		reader = file
		logger.Info("Reading email from file", zap.String("file", *inputFile))
	} else {
		reader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	textBytes, err := io.ReadAll(reader)
	if err != nil {
		logger.Fatal("Failed to read email text", zap.Error(err))
	}
	text := string(textBytes)

	service := core.NewDetectorService(b.Pipeline, b.Scaler, b.Classifier, logger, *threshold)

	startTime := time.Now()
	result, err := service.Classify(text)
	if err != nil {
		logger.Fatal("Failed to classify email", zap.Error(err))
	}

	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("Text length: %d bytes\n", len(text))
	if *verbose {
		preview := text
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("\nText preview:\n%s\n", preview)
	}

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Label: %s\n", result.Label)
	fmt.Printf("P(phishing): %.4f\n", result.PPhishing)
	fmt.Printf("P(legitimate): %.4f\n", result.PLegitimate)
	fmt.Printf("Threshold: %.2f\n", service.Threshold())
	fmt.Printf("Model used: %s\n", result.ModelKind)
	fmt.Printf("Processing time: %v\n", time.Since(startTime))
}
