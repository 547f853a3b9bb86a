// Package taxonomy holds the static language -> category -> skills table that
// drives the job filters, and the pure functions that keep a skill selection
// consistent with it.
package taxonomy

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Taxonomy is read-only after load.
type Taxonomy struct {
	Categories []string                       `yaml:"categories" json:"categories"`
	Languages  []string                       `yaml:"languages" json:"languages"`
	Seniority  []string                       `yaml:"seniority" json:"seniority"`
	Skills     map[string]map[string][]string `yaml:"skills" json:"skills"`
	Counts     Counts                         `yaml:"counts" json:"counts"`
}

// Counts carries the per-option job counts shown next to filter choices.
// Category counts are keyed by category followed by language, e.g. "BackendPython".
type Counts struct {
	Seniority map[string]int `yaml:"seniority" json:"seniority"`
	Skills    map[string]int `yaml:"skills" json:"skills"`
	Category  map[string]int `yaml:"category" json:"category"`
}

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	return &Taxonomy{
		Categories: []string{"Frontend", "Backend", "DevOps"},
		Languages:  []string{"JS", "Python", "Java", "C#"},
		Seniority:  []string{"Intern", "Junior", "Mid", "Senior"},
		Skills: map[string]map[string][]string{
			"JS": {
				"Frontend": {"React", "Redux", "Vue", "Next.js"},
				"Backend":  {"Node", "Express", "NestJS"},
				"DevOps":   {"Docker", "CI/CD"},
			},
			"Python": {
				"Backend": {"Django", "Flask", "FastAPI"},
				"DevOps":  {"Docker", "Kubernetes"},
			},
		},
		Counts: Counts{
			Seniority: map[string]int{"Intern": 5, "Junior": 12, "Mid": 8, "Senior": 3},
			Skills:    map[string]int{"React": 10, "Redux": 8, "Node": 6, "Django": 4},
			Category:  map[string]int{"FrontendJS": 10, "BackendJS": 6, "BackendPython": 4},
		},
	}
}

// Load reads a taxonomy from a YAML file. A missing file yields Default().
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML taxonomy.
func Parse(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that every skill table key names a known language and category.
func (t *Taxonomy) Validate() error {
	var errs []error
	for lang, byCategory := range t.Skills {
		if !slices.Contains(t.Languages, lang) {
			errs = append(errs, fmt.Errorf("skills: unknown language %q", lang))
		}
		for cat := range byCategory {
			if !slices.Contains(t.Categories, cat) {
				errs = append(errs, fmt.Errorf("skills[%s]: unknown category %q", lang, cat))
			}
		}
	}
	return errors.Join(errs...)
}

// AvailableSkills returns the skills valid for the pair. Unknown or unset
// keys yield an empty slice.
func (t *Taxonomy) AvailableSkills(language, category string) []string {
	if t == nil || language == "" || category == "" {
		return []string{}
	}
	skills, ok := t.Skills[language][category]
	if !ok {
		return []string{}
	}
	return slices.Clone(skills)
}

// Reconcile returns the elements of selected that are present in available,
// in their original order.
func Reconcile(selected, available []string) []string {
	out := make([]string, 0, len(selected))
	for _, s := range selected {
		if slices.Contains(available, s) {
			out = append(out, s)
		}
	}
	return out
}

func (t *Taxonomy) HasCategory(c string) bool  { return slices.Contains(t.Categories, c) }
func (t *Taxonomy) HasLanguage(l string) bool  { return slices.Contains(t.Languages, l) }
func (t *Taxonomy) HasSeniority(s string) bool { return slices.Contains(t.Seniority, s) }

// CategoryCount returns the job count for a category within a language.
func (t *Taxonomy) CategoryCount(category, language string) int {
	return t.Counts.Category[category+language]
}
