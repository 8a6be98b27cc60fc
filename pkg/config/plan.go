package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/Mindburn-Labs/sortbench/pkg/cases"
	"github.com/Mindburn-Labs/sortbench/pkg/sorting"
)

//go:embed plan.schema.json
var planSchemaJSON []byte

const planSchemaURL = "https://sortbench.schemas.local/plan.schema.json"

var (
	planSchemaOnce sync.Once
	planSchema     *jsonschema.Schema
	planSchemaErr  error
)

// Plan is a batch of experiment runs executed sequentially.
type Plan struct {
	Name           string    `yaml:"name" json:"name,omitempty"`
	Seed           *uint64   `yaml:"seed,omitempty" json:"seed,omitempty"`
	QuadraticLimit int       `yaml:"quadratic_limit,omitempty" json:"quadratic_limit,omitempty"`
	MaxDepth       int       `yaml:"max_depth,omitempty" json:"max_depth,omitempty"`
	Runs           []PlanRun `yaml:"runs" json:"runs"`
}

// PlanRun selects one (algorithm, case) pair. Empty Sizes means the
// algorithm's defaults.
type PlanRun struct {
	Algorithm string `yaml:"algorithm" json:"algorithm"`
	Case      string `yaml:"case" json:"case"`
	Sizes     []int  `yaml:"sizes,omitempty" json:"sizes,omitempty"`
}

// Resolve maps the run's names onto the closed algorithm and case sets.
func (r PlanRun) Resolve() (sorting.Algorithm, cases.Case, error) {
	alg, err := sorting.Parse(r.Algorithm)
	if err != nil {
		return "", "", err
	}
	c, err := cases.ParseCase(r.Case)
	if err != nil {
		return "", "", err
	}
	return alg, c, nil
}

// LoadPlan reads and validates a plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load plan %q: %w", path, err)
	}
	plan, err := ParsePlan(data)
	if err != nil {
		return nil, fmt.Errorf("plan %q: %w", path, err)
	}
	return plan, nil
}

// ParsePlan decodes YAML, validates it against the plan schema and checks
// every algorithm and case name.
func ParsePlan(data []byte) (*Plan, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := validatePlanDocument(doc); err != nil {
		return nil, err
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	for i, run := range plan.Runs {
		if _, _, err := run.Resolve(); err != nil {
			return nil, fmt.Errorf("runs[%d]: %w", i, err)
		}
	}
	return &plan, nil
}

func validatePlanDocument(doc any) error {
	schema, err := compiledPlanSchema()
	if err != nil {
		return err
	}
	// Round-trip through JSON so the validator sees JSON value types.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("plan is not representable as JSON: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("plan is not representable as JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("plan schema validation failed: %w", err)
	}
	return nil
}

func compiledPlanSchema() (*jsonschema.Schema, error) {
	planSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(planSchemaURL, bytes.NewReader(planSchemaJSON)); err != nil {
			planSchemaErr = fmt.Errorf("plan schema load failed: %w", err)
			return
		}
		planSchema, planSchemaErr = c.Compile(planSchemaURL)
		if planSchemaErr != nil {
			planSchemaErr = fmt.Errorf("plan schema compile failed: %w", planSchemaErr)
		}
	})
	return planSchema, planSchemaErr
}
