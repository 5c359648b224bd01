package workflow

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/smilemakc/checkflow/pkg/models"
)

var validate = validator.New()

// Load reads and validates a workflow document from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse validates and decodes a workflow document from YAML bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := validateChecks(cfg.Checks); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateChecks enforces constraints validator tags can't express: unique
// ids and non-empty type.
func validateChecks(checks []models.Check) error {
	seen := make(map[string]bool, len(checks))
	for _, c := range checks {
		if c.ID == "" {
			return fmt.Errorf("invalid config: check missing id")
		}
		if c.Type == "" {
			return fmt.Errorf("invalid config: check %q missing type", c.ID)
		}
		if seen[c.ID] {
			return fmt.Errorf("invalid config: duplicate check id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}
