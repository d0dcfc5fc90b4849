// Package dataset loads and merges the tabular training sources. Each file
// must carry a text column and a label column (0 = credible, 1 =
// non-credible); files missing either are skipped. The legacy Fake/True
// pair carries no label column and is labeled by file.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/LegendarySumit/TruthShield/internal/model"
)

// ErrNoSources is returned when no usable dataset file is found.
var ErrNoSources = fmt.Errorf("dataset: no usable sources found")

// minTextLength is the shortest trimmed text kept during merging.
const minTextLength = 10

// labeledSources are the dataset files carrying their own label column,
// in load order.
var labeledSources = []string{
	"Enhanced_Dataset_v3.csv",
	"Enhanced_Dataset_v2.csv",
	"Enhanced_Dataset.csv",
}

// Load discovers every available source under dir, merges them, drops rows
// with empty or too-short text, and removes exact-duplicate texts.
func Load(dir string) ([]model.Sample, error) {
	var merged []model.Sample
	loaded := 0

	for _, name := range labeledSources {
		path := filepath.Join(dir, name)
		rows, err := readLabeled(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			// A malformed source is skipped, not fatal; the pipeline
			// reports what it did load.
			continue
		}
		merged = append(merged, rows...)
		loaded++
	}

	fakePath := filepath.Join(dir, "Fake.csv")
	truePath := filepath.Join(dir, "True.csv")
	if fileExists(fakePath) && fileExists(truePath) {
		fake, errF := readTextOnly(fakePath, model.LabelNonCredible)
		real, errT := readTextOnly(truePath, model.LabelCredible)
		if errF == nil && errT == nil {
			merged = append(merged, fake...)
			merged = append(merged, real...)
			loaded++
		}
	}

	if loaded == 0 {
		return nil, ErrNoSources
	}

	return dedupe(merged), nil
}

// dedupe drops empty, too-short, and exact-duplicate texts, preserving
// first-seen order.
func dedupe(rows []model.Sample) []model.Sample {
	seen := make(map[string]struct{}, len(rows))
	out := make([]model.Sample, 0, len(rows))
	for _, r := range rows {
		text := strings.TrimSpace(r.Text)
		if len(text) <= minTextLength {
			continue
		}
		if _, dup := seen[r.Text]; dup {
			continue
		}
		seen[r.Text] = struct{}{}
		out = append(out, r)
	}
	return out
}

// readLabeled reads a CSV with header columns "text" and "label".
func readLabeled(path string) ([]model.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: read header of %s: %w", path, err)
	}
	textCol, labelCol := findColumn(header, "text"), findColumn(header, "label")
	if textCol < 0 || labelCol < 0 {
		return nil, fmt.Errorf("dataset: %s missing text/label columns", path)
	}

	var rows []model.Sample
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read %s: %w", path, err)
		}
		if textCol >= len(rec) || labelCol >= len(rec) {
			continue
		}
		label, err := strconv.Atoi(strings.TrimSpace(rec[labelCol]))
		if err != nil || (label != 0 && label != 1) {
			continue
		}
		rows = append(rows, model.Sample{Text: rec[textCol], Label: model.Label(label)})
	}
	return rows, nil
}

// readTextOnly reads a CSV with a "text" column and applies a fixed label.
func readTextOnly(path string, label model.Label) ([]model.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: read header of %s: %w", path, err)
	}
	textCol := findColumn(header, "text")
	if textCol < 0 {
		return nil, fmt.Errorf("dataset: %s missing text column", path)
	}

	var rows []model.Sample
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read %s: %w", path, err)
		}
		if textCol >= len(rec) {
			continue
		}
		rows = append(rows, model.Sample{Text: rec[textCol], Label: label})
	}
	return rows, nil
}

func findColumn(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
