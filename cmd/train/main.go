// train fits the local classification artifacts from the CSV datasets and
// writes them to the model store.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/LegendarySumit/TruthShield/internal/config"
	"github.com/LegendarySumit/TruthShield/internal/training"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config")
	dataDir := flag.String("data", "", "dataset directory (overrides config)")
	out := flag.String("out", "", "model store path (overrides config)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] no .env file loaded: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	if *dataDir != "" {
		cfg.Model.DataDir = *dataDir
	}
	if *out != "" {
		cfg.Model.Path = *out
	}

	if dir := filepath.Dir(cfg.Model.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("[FATAL] creating model dir: %v", err)
		}
	}

	report, err := training.Run(training.Config{
		DataDir:   cfg.Model.DataDir,
		ModelPath: cfg.Model.Path,
	})
	if err != nil {
		log.Fatalf("[FATAL] training: %v", err)
	}

	printReport(report)
}

func printReport(r *training.Report) {
	fmt.Printf("\nModel performance\n")
	fmt.Printf("  Accuracy:  %.2f%%\n", r.Accuracy*100)
	fmt.Printf("  F1 score:  %.4f\n", r.F1)
	fmt.Printf("  Samples:   %d total (%d train, %d test)\n", r.Samples, r.TrainSize, r.TestSize)
	fmt.Printf("  Features:  %d\n", r.Features)

	fmt.Printf("\nPer-class metrics\n")
	names := [2]string{"Real/Credible", "Fake/Non-Credible"}
	for c, m := range r.PerClass {
		fmt.Printf("  %-18s precision=%.4f recall=%.4f f1=%.4f support=%d\n",
			names[c], m.Precision, m.Recall, m.F1, m.Support)
	}

	fmt.Printf("\nConfusion matrix\n")
	fmt.Printf("  True Negatives  (Real->Real): %d\n", r.Confusion[0][0])
	fmt.Printf("  False Positives (Real->Fake): %d\n", r.Confusion[0][1])
	fmt.Printf("  False Negatives (Fake->Real): %d\n", r.Confusion[1][0])
	fmt.Printf("  True Positives  (Fake->Fake): %d\n", r.Confusion[1][1])

	fmt.Printf("\nCross-validation (logistic regression baseline)\n")
	for i, s := range r.CVScores {
		fmt.Printf("  fold %d: %.4f\n", i+1, s)
	}
	fmt.Printf("  mean F1: %.4f\n", r.MeanCV())

	if r.Sanity != nil {
		fmt.Printf("\nSanity checks: %d/%d correct\n", r.Sanity.Correct, r.Sanity.Total)
		for _, m := range r.Sanity.Misses {
			snippet := m.Text
			if len(snippet) > 65 {
				snippet = snippet[:65] + "..."
			}
			fmt.Printf("  [MISS] expected=%s got=%s (%.0f%%) [%s] %s\n",
				m.Expected, m.Got, m.Confidence*100, m.Category, snippet)
		}
	}
}
