package project

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a project document from a JSON file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a project document. A bare JSON array is accepted as a drillhole list.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		var holes []Drillhole
		if errList := json.Unmarshal(data, &holes); errList != nil {
			return nil, fmt.Errorf("parse project: %w", err)
		}
		p.Drillholes = holes
	}
	return &p, nil
}
