package catalog

import (
	"fmt"
	"os"

	"github.com/dukex/hrflow/pkg/models"
	"gopkg.in/yaml.v3"
)

type fileDocument struct {
	Automations []models.AutomationAction `yaml:"automations"`
}

// LoadFile reads a YAML catalog of the form
//
//	automations:
//	  - id: send_email
//	    label: Send Email
//	    params: [to, subject, body]
func LoadFile(path string) (*Static, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	return Parse(b)
}

// Parse decodes a YAML catalog.
func Parse(b []byte) (*Static, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	seen := make(map[string]struct{}, len(doc.Automations))

	for i, a := range doc.Automations {
		if a.ID == "" {
			return nil, fmt.Errorf("%w: action %d has no id", ErrInvalidCatalog, i)
		}

		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate action id %q", ErrInvalidCatalog, a.ID)
		}

		seen[a.ID] = struct{}{}

		if a.Label == "" {
			doc.Automations[i].Label = a.ID
		}
	}

	return NewStatic(doc.Automations), nil
}
