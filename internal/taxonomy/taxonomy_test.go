package taxonomy

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestAvailableSkills(t *testing.T) {
	tax := Default()

	tests := []struct {
		name     string
		language string
		category string
		want     []string
	}{
		{"both present", "Python", "Backend", []string{"Django", "Flask", "FastAPI"}},
		{"language only", "Python", "", []string{}},
		{"category only", "", "Backend", []string{}},
		{"unknown language", "Rust", "Backend", []string{}},
		{"unknown pair", "Python", "Frontend", []string{}},
		{"known language without skills", "Java", "Backend", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tax.AvailableSkills(tt.language, tt.category)
			if !slices.Equal(got, tt.want) {
				t.Errorf("AvailableSkills(%q, %q) = %v, want %v", tt.language, tt.category, got, tt.want)
			}
		})
	}
}

func TestAvailableSkillsReturnsCopy(t *testing.T) {
	tax := Default()
	got := tax.AvailableSkills("JS", "Frontend")
	got[0] = "Angular"

	if again := tax.AvailableSkills("JS", "Frontend"); again[0] != "React" {
		t.Errorf("taxonomy mutated through returned slice: %v", again)
	}
}

func TestAvailableSkillsNilTaxonomy(t *testing.T) {
	var tax *Taxonomy
	if got := tax.AvailableSkills("JS", "Frontend"); len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name      string
		selected  []string
		available []string
		want      []string
	}{
		{"keeps order", []string{"Flask", "React", "Django"}, []string{"Django", "Flask", "FastAPI"}, []string{"Flask", "Django"}},
		{"empty available clears", []string{"Django"}, []string{}, []string{}},
		{"nil selected", nil, []string{"Django"}, []string{}},
		{"all valid", []string{"Docker", "CI/CD"}, []string{"Docker", "CI/CD"}, []string{"Docker", "CI/CD"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.selected, tt.available)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Reconcile(%v, %v) = %v, want %v", tt.selected, tt.available, got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file falls back to default", func(t *testing.T) {
		tax, err := Load(filepath.Join(dir, "nope.yaml"))
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if !slices.Equal(tax.Categories, Default().Categories) {
			t.Errorf("categories = %v", tax.Categories)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "taxonomy.yaml")
		data := `
categories: [Backend]
languages: [Go]
seniority: [Junior, Senior]
skills:
  Go:
    Backend: [gin, gorm]
counts:
  category:
    BackendGo: 7
`
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		tax, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got := tax.AvailableSkills("Go", "Backend"); !slices.Equal(got, []string{"gin", "gorm"}) {
			t.Errorf("skills = %v", got)
		}
		if got := tax.CategoryCount("Backend", "Go"); got != 7 {
			t.Errorf("CategoryCount = %d, want 7", got)
		}
	})

	t.Run("unknown keys rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		data := "categories: [Backend]\nlanguages: [Go]\nskills:\n  Rust:\n    Frontend: [yew]\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		if _, err := Parse([]byte("categories: [Backend")); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default taxonomy invalid: %v", err)
	}
}
