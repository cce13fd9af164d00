package plan

import (
	"fmt"

	"presenter-generator/internal/mapping"
)

// ExportYAML renders the proposed file as YAML.
func (p *Plan) ExportYAML() ([]byte, error) {
	if p == nil || p.File == nil {
		return nil, fmt.Errorf("plan: nothing to export")
	}

	return mapping.Marshal(p.File)
}
