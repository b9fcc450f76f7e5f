package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"avdesign-hq/meridian/pkg/rules/engine"
)

// loadDesign reads a design context YAML file.
//
// Example:
//
//	dimensions:
//	  room_type: conference_room
//	  platform: teams
//	room:
//	  area: 42
//	  capacity: 12
//	equipment:
//	  - id: disp-1
//	    type: display
//	    attributes:
//	      size: 65
func loadDesign(path string) (*engine.DesignContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read design file %q: %w", path, err)
	}

	var design engine.DesignContext
	if err := yaml.Unmarshal(data, &design); err != nil {
		return nil, fmt.Errorf("failed to parse design file %q: %w", path, err)
	}
	return &design, nil
}
