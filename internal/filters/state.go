package filters

import (
	"slices"

	"github.com/fr4nk3nst1ner/jobboard/internal/taxonomy"
)

// State is the complete set of user-selected job-search constraints.
type State struct {
	Category   string   `json:"category"`
	Language   string   `json:"language"`
	Seniority  []string `json:"seniority"`
	Skills     []string `json:"skills"`
	SalaryMin  *float64 `json:"salaryMin" binding:"omitempty,gte=0"`
	SalaryMax  *float64 `json:"salaryMax" binding:"omitempty,gte=0"`
	SearchTerm string   `json:"search"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := s
	c.Seniority = slices.Clone(s.Seniority)
	c.Skills = slices.Clone(s.Skills)
	if s.SalaryMin != nil {
		v := *s.SalaryMin
		c.SalaryMin = &v
	}
	if s.SalaryMax != nil {
		v := *s.SalaryMax
		c.SalaryMax = &v
	}
	return c
}

// Resolve recomputes the available skills for the state's language and
// category and prunes the skill selection against them.
func Resolve(tax *taxonomy.Taxonomy, s State) (State, []string) {
	available := tax.AvailableSkills(s.Language, s.Category)
	s = s.Clone()
	s.Skills = taxonomy.Reconcile(s.Skills, available)
	return s, available
}

// ApplyFunc receives a finalized filter state.
type ApplyFunc func(State)

// Apply hands a copy of the finalized state to handler. A nil handler is a no-op.
func Apply(s State, handler ApplyFunc) {
	if handler == nil {
		return
	}
	handler(s.Clone())
}

// Panel is the filter reducer. Every mutation that touches language or
// category re-resolves the skill selection before returning.
type Panel struct {
	tax       *taxonomy.Taxonomy
	state     State
	available []string
	onApply   ApplyFunc
}

func NewPanel(tax *taxonomy.Taxonomy, initial State, onApply ApplyFunc) *Panel {
	p := &Panel{tax: tax, onApply: onApply}
	p.state, p.available = Resolve(tax, initial)
	return p
}

func (p *Panel) SetCategory(category string) {
	p.state.Category = category
	p.resolve()
}

func (p *Panel) SetLanguage(language string) {
	p.state.Language = language
	p.resolve()
}

func (p *Panel) resolve() {
	p.state, p.available = Resolve(p.tax, p.state)
}

// ToggleSkill adds or removes a skill. Skills outside the available set are
// refused and false is returned.
func (p *Panel) ToggleSkill(skill string) bool {
	if !slices.Contains(p.available, skill) {
		return false
	}
	p.state.Skills = toggle(p.state.Skills, skill)
	return true
}

// ToggleSeniority adds or removes a seniority level known to the taxonomy.
func (p *Panel) ToggleSeniority(level string) bool {
	if !p.tax.HasSeniority(level) {
		return false
	}
	p.state.Seniority = toggle(p.state.Seniority, level)
	return true
}

func (p *Panel) SetSalary(lo, hi *float64) {
	p.state.SalaryMin = lo
	p.state.SalaryMax = hi
}

func (p *Panel) SetSearchTerm(term string) {
	p.state.SearchTerm = term
}

func (p *Panel) State() State { return p.state.Clone() }

func (p *Panel) AvailableSkills() []string { return slices.Clone(p.available) }

// Apply resolves the current state and passes it to the panel's handler.
func (p *Panel) Apply() State {
	p.resolve()
	Apply(p.state, p.onApply)
	return p.state.Clone()
}

func toggle(list []string, v string) []string {
	if i := slices.Index(list, v); i >= 0 {
		return slices.Delete(slices.Clone(list), i, i+1)
	}
	return append(slices.Clone(list), v)
}
