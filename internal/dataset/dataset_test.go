package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LegendarySumit/TruthShield/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadMergesSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Enhanced_Dataset_v3.csv",
		"text,label\n"+
			"The committee approved the annual budget on Tuesday morning,0\n"+
			"SHOCKING truth they are hiding from you about water!!!,1\n")
	writeFile(t, dir, "Enhanced_Dataset_v2.csv",
		"text,label\n"+
			"Researchers published results of a controlled clinical trial,0\n")

	rows, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len = %d, want 3", len(rows))
	}
	if rows[1].Label != model.LabelNonCredible {
		t.Errorf("row 1 label = %v, want non-credible", rows[1].Label)
	}
}

func TestLoadLegacyFakeTruePair(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Fake.csv",
		"title,text\n"+
			"whatever,You will not believe this incredible secret cure!!!\n")
	writeFile(t, dir, "True.csv",
		"title,text\n"+
			"whatever,The central bank held its benchmark rate steady this quarter.\n")

	rows, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if rows[0].Label != model.LabelNonCredible || rows[1].Label != model.LabelCredible {
		t.Errorf("legacy pair labels wrong: %v / %v", rows[0].Label, rows[1].Label)
	}
}

func TestLoadDropsShortAndDuplicateTexts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Enhanced_Dataset_v3.csv",
		"text,label\n"+
			"short,0\n"+
			"This sentence is long enough to keep for training purposes,0\n"+
			"This sentence is long enough to keep for training purposes,1\n"+
			"   ,1\n")

	rows, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len = %d, want 1 (short, blank and duplicate rows dropped)", len(rows))
	}
	if rows[0].Label != model.LabelCredible {
		t.Errorf("first-seen duplicate should win, got label %v", rows[0].Label)
	}
}

func TestLoadSkipsSourceMissingColumns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Enhanced_Dataset_v3.csv",
		"body,verdict\nsome irrelevant file layout,yes\n")
	writeFile(t, dir, "Enhanced_Dataset_v2.csv",
		"text,label\nA usable row that is certainly long enough to keep,0\n")

	rows, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("len = %d, want 1 (malformed source skipped)", len(rows))
	}
}

func TestLoadNoSources(t *testing.T) {
	if _, err := Load(t.TempDir()); err != ErrNoSources {
		t.Errorf("Load on empty dir = %v, want ErrNoSources", err)
	}
}

func TestLoadSkipsBadLabels(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Enhanced_Dataset_v3.csv",
		"text,label\n"+
			"A row with an out of range label that should be skipped,7\n"+
			"A row with a non numeric label that should be skipped,maybe\n"+
			"A row with a valid label that should definitely be kept,1\n")

	rows, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("len = %d, want 1", len(rows))
	}
}
