package taxonomy_test

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/NidaKhaan/job-market-intelligence/internal/taxonomy"
)

// ── New ────────────────────────────────────────────────────────────────────

func TestNew_LowercasesAndDeduplicates(t *testing.T) {
	tax := taxonomy.New(map[string][]string{
		"languages": {"Go", "PYTHON", "go", "  rust  ", ""},
	})

	want := []string{"go", "python", "rust"}
	if got := tax.Vocabulary(); !reflect.DeepEqual(got, want) {
		t.Errorf("Vocabulary = %v, want %v", got, want)
	}
}

func TestNew_VocabularySorted(t *testing.T) {
	tax := taxonomy.New(map[string][]string{
		"a": {"zig", "ada"},
		"b": {"nim"},
	})
	vocab := tax.Vocabulary()
	if !sort.StringsAreSorted(vocab) {
		t.Errorf("Vocabulary not sorted: %v", vocab)
	}
}

// ── Contains ───────────────────────────────────────────────────────────────

func TestContains(t *testing.T) {
	tax := taxonomy.New(map[string][]string{"languages": {"go"}})

	if !tax.Contains("go") {
		t.Error("Contains(go) = false")
	}
	if !tax.Contains("GO") {
		t.Error("Contains should be case-insensitive")
	}
	if tax.Contains("cobol") {
		t.Error("Contains(cobol) = true for an absent token")
	}
}

// ── Categories / Categorize ────────────────────────────────────────────────

func TestCategories_Sorted(t *testing.T) {
	tax := taxonomy.New(map[string][]string{
		"devops":    {"docker"},
		"languages": {"go"},
		"cloud":     {"aws"},
	})
	want := []string{"cloud", "devops", "languages"}
	if got := tax.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories = %v, want %v", got, want)
	}
}

func TestCategorize_OmitsEmptyCategoriesAndUnknownSkills(t *testing.T) {
	tax := taxonomy.New(map[string][]string{
		"languages": {"go", "python"},
		"devops":    {"docker"},
	})

	got := tax.Categorize([]string{"GO", "cobol"})
	if !reflect.DeepEqual(got["languages"], []string{"go"}) {
		t.Errorf("languages = %v, want [go]", got["languages"])
	}
	if _, ok := got["devops"]; ok {
		t.Error("Categorize should omit categories with no matches")
	}
}

// ── Default ────────────────────────────────────────────────────────────────

func TestDefault_CatalogShape(t *testing.T) {
	tax := taxonomy.Default()

	for _, tok := range []string{"python", "docker", "postgresql", "aws", "machine learning"} {
		if !tax.Contains(tok) {
			t.Errorf("default catalog missing %q", tok)
		}
	}
	if got := len(tax.Categories()); got != 8 {
		t.Errorf("default catalog has %d categories, want 8", got)
	}
}

// ── LoadFile ───────────────────────────────────────────────────────────────

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	yaml := "languages:\n  - go\n  - python\ndevops:\n  - docker\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	tax, err := taxonomy.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned unexpected error: %v", err)
	}
	want := []string{"docker", "go", "python"}
	if got := tax.Vocabulary(); !reflect.DeepEqual(got, want) {
		t.Errorf("Vocabulary = %v, want %v", got, want)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := taxonomy.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile for a missing file expected error, got nil")
	}
}

func TestLoadFile_EmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := taxonomy.LoadFile(path); err == nil {
		t.Error("LoadFile for an empty catalog expected error, got nil")
	}
}
