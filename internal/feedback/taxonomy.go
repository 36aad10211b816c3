package feedback

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	taxonomyCategories = 5
	taxonomyThemes     = 8
)

//go:embed taxonomy/*.yaml
var taxonomyFS embed.FS

// Taxonomy is a role's fixed category set with the prompt material and fallback
// keywords for each category. Category order is significant: it is the output
// order and the keyword fallback priority.
type Taxonomy struct {
	Role        Role       `yaml:"role"`
	Analyst     string     `yaml:"analyst"`
	Instruction string     `yaml:"instruction"`
	Closing     string     `yaml:"closing"`
	Categories  []Category `yaml:"categories"`
}

type Category struct {
	Name         string   `yaml:"name"`
	RulesHeading string   `yaml:"rules_heading"`
	Themes       []string `yaml:"themes"`
	Rules        []string `yaml:"rules"`
	Keywords     []string `yaml:"keywords"`
}

// ParseTaxonomy decodes and validates a taxonomy document.
func ParseTaxonomy(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode taxonomy: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s taxonomy: %w", t.Role, err)
	}
	return &t, nil
}

func (t *Taxonomy) validate() error {
	if t.Role != RoleEmployee && t.Role != RoleManager {
		return fmt.Errorf("unknown role %q", t.Role)
	}
	if len(t.Categories) != taxonomyCategories {
		return fmt.Errorf("want %d categories, got %d", taxonomyCategories, len(t.Categories))
	}

	seen := make(map[string]bool, len(t.Categories))
	for _, c := range t.Categories {
		if c.Name == "" {
			return fmt.Errorf("category without a name")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate category %q", c.Name)
		}
		seen[c.Name] = true

		if len(c.Themes) != taxonomyThemes {
			return fmt.Errorf("category %q: want %d themes, got %d", c.Name, taxonomyThemes, len(c.Themes))
		}
		if len(c.Keywords) == 0 {
			return fmt.Errorf("category %q: no fallback keywords", c.Name)
		}
	}
	return nil
}

func (t *Taxonomy) Has(name string) bool {
	for _, c := range t.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

func (t *Taxonomy) Names() []string {
	names := make([]string, len(t.Categories))
	for i, c := range t.Categories {
		names[i] = c.Name
	}
	return names
}

// Match returns the first category, in taxonomy order, whose keywords appear in the
// lowercased finding.
func (t *Taxonomy) Match(finding string) (string, bool) {
	lower := strings.ToLower(finding)
	for _, c := range t.Categories {
		for _, kw := range c.Keywords {
			if strings.Contains(lower, kw) {
				return c.Name, true
			}
		}
	}
	return "", false
}

// ordered groups committed findings by category in taxonomy order, dropping empty
// categories.
func (t *Taxonomy) ordered(byCategory map[string][]string) []CategoryFindings {
	var out []CategoryFindings
	for _, c := range t.Categories {
		if findings := byCategory[c.Name]; len(findings) > 0 {
			out = append(out, CategoryFindings{Category: c.Name, Findings: findings})
		}
	}
	return out
}

// describe renders the "# Category:\n- theme" block embedded in prompts.
func (t *Taxonomy) describe() string {
	var sb strings.Builder
	for i, c := range t.Categories {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "# %s:", c.Name)
		for _, theme := range c.Themes {
			fmt.Fprintf(&sb, "\n- %s", theme)
		}
	}
	return sb.String()
}

func (t *Taxonomy) rules() string {
	var sb strings.Builder
	for i, c := range t.Categories {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%d. %s %s:", i+1, c.Name, c.RulesHeading)
		for _, r := range c.Rules {
			fmt.Fprintf(&sb, "\n   - %s", r)
		}
	}
	return sb.String()
}

func loadEmbedded(name string) (*Taxonomy, error) {
	data, err := taxonomyFS.ReadFile("taxonomy/" + name)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", name, err)
	}
	return ParseTaxonomy(data)
}

var (
	employeeTaxonomy = sync.OnceValues(func() (*Taxonomy, error) { return loadEmbedded("employee.yaml") })
	managerTaxonomy  = sync.OnceValues(func() (*Taxonomy, error) { return loadEmbedded("manager.yaml") })
)

// EmployeeTaxonomy returns the built-in personal development taxonomy.
// It panics if the embedded definition is invalid.
func EmployeeTaxonomy() *Taxonomy {
	return mustTaxonomy(employeeTaxonomy())
}

// ManagerTaxonomy returns the built-in management taxonomy.
// It panics if the embedded definition is invalid.
func ManagerTaxonomy() *Taxonomy {
	return mustTaxonomy(managerTaxonomy())
}

func mustTaxonomy(t *Taxonomy, err error) *Taxonomy {
	if err != nil {
		panic(err)
	}
	return t
}
