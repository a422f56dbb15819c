package reference

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tax-engine/internal/deadlines"
	"tax-engine/internal/model"
)

//go:embed content.yaml
var embedded []byte

type Item struct {
	Name   string `yaml:"name" json:"name"`
	Detail string `yaml:"detail" json:"detail"`
}

type Deduction struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Limit       string `yaml:"limit" json:"limit"`
	Description string `yaml:"description" json:"description"`
	Items       []Item `yaml:"items" json:"items"`
	Note        string `yaml:"note" json:"note,omitempty"`
}

type Benefit struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Value       string `yaml:"value" json:"value"`
	Badge       string `yaml:"badge" json:"badge,omitempty"`
	Description string `yaml:"description" json:"description"`
}

type FilingStep struct {
	Step        int      `yaml:"step" json:"step"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Checklist   []string `yaml:"checklist" json:"checklist"`
}

type GSTGuide struct {
	Portal   string `yaml:"portal" json:"portal"`
	WhoNeeds []struct {
		Condition string `yaml:"condition" json:"condition"`
		Required  bool   `yaml:"required" json:"required"`
	} `yaml:"who_needs" json:"who_needs"`
	Freelancer struct {
		Title  string   `yaml:"title" json:"title"`
		Points []string `yaml:"points" json:"points"`
	} `yaml:"freelancer" json:"freelancer"`
	Returns []struct {
		Form        string `yaml:"form" json:"form"`
		Description string `yaml:"description" json:"description"`
		Frequency   string `yaml:"frequency" json:"frequency"`
		Details     string `yaml:"details" json:"details"`
	} `yaml:"returns" json:"returns"`
}

type yamlDeadline struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Frequency   string   `yaml:"frequency"`
	Month       int      `yaml:"month"`
	Day         int      `yaml:"day"`
	Cumulative  string   `yaml:"cumulative"`
	Audiences   []string `yaml:"audiences"`
}

// Content is the read-only catalogue rendered next to the calculator.
type Content struct {
	Deductions        []Deduction         `yaml:"deductions" json:"deductions"`
	NewRegimeBenefits []Benefit           `yaml:"new_regime_benefits" json:"new_regime_benefits"`
	FilingSteps       []FilingStep        `yaml:"filing_steps" json:"filing_steps"`
	GST               GSTGuide            `yaml:"gst" json:"gst"`
	Penalties         map[string][]string `yaml:"penalties" json:"penalties"`
	RawDeadlines      []yamlDeadline      `yaml:"deadlines" json:"-"`

	deadlines []deadlines.Definition
}

// Load parses the embedded catalogue.
func Load() (*Content, error) {
	return Parse("content.yaml", embedded)
}

func Parse(path string, b []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, &model.OpError{Op: "reference.parse", Kind: model.KindInvalidConfig, Path: path, Err: err}
	}
	if err := c.check(); err != nil {
		return nil, &model.OpError{Op: "reference.parse", Kind: model.KindInvalidConfig, Path: path, Err: err}
	}
	return &c, nil
}

func (c *Content) check() error {
	seen := map[string]bool{}
	for i, d := range c.Deductions {
		if strings.TrimSpace(d.ID) == "" {
			return fmt.Errorf("deductions[%d].id is required", i)
		}
		if seen[d.ID] {
			return fmt.Errorf("duplicate deduction id %q", d.ID)
		}
		seen[d.ID] = true
	}

	for i, s := range c.FilingSteps {
		if s.Step != i+1 {
			return fmt.Errorf("filing_steps[%d].step is %d, want %d", i, s.Step, i+1)
		}
	}

	c.deadlines = make([]deadlines.Definition, 0, len(c.RawDeadlines))
	ids := map[string]bool{}
	for i, rd := range c.RawDeadlines {
		if ids[rd.ID] {
			return fmt.Errorf("duplicate deadline id %q", rd.ID)
		}
		ids[rd.ID] = true

		def := deadlines.Definition{
			ID:          rd.ID,
			Title:       rd.Title,
			Description: rd.Description,
			Category:    rd.Category,
			Frequency:   deadlines.Frequency(rd.Frequency),
			Month:       time.Month(rd.Month),
			Day:         rd.Day,
			Cumulative:  rd.Cumulative,
		}
		for _, a := range rd.Audiences {
			if a == "" {
				return fmt.Errorf("deadlines[%d]: empty audience", i)
			}
			aud, err := deadlines.ParseAudience(a)
			if err != nil {
				return fmt.Errorf("deadlines[%d]: %w", i, err)
			}
			def.Audiences = append(def.Audiences, aud)
		}
		if err := def.Validate(); err != nil {
			return err
		}
		c.deadlines = append(c.deadlines, def)
	}
	return nil
}

func (c *Content) Deadlines() []deadlines.Definition {
	out := make([]deadlines.Definition, len(c.deadlines))
	copy(out, c.deadlines)
	return out
}

// Deduction looks a section up by id, e.g. "80c".
func (c *Content) Deduction(id string) (Deduction, bool) {
	for _, d := range c.Deductions {
		if strings.EqualFold(d.ID, id) {
			return d, true
		}
	}
	return Deduction{}, false
}
