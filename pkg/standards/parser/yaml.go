package parser

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// yamlDocument is the intermediate structure a standards file decodes
// into before transformation to the domain model.
type yamlDocument struct {
	Nodes     []yamlNode     `yaml:"nodes"`
	Standards []yamlStandard `yaml:"standards"`
}

// yamlNode is an intermediate hierarchy node.
type yamlNode struct {
	ID        string `yaml:"id"`
	Parent    string `yaml:"parent"`
	Kind      string `yaml:"kind"`
	Name      string `yaml:"name"`
	Dimension string `yaml:"dimension"`
	Value     string `yaml:"value"`
}

// yamlStandard is an intermediate standard.
type yamlStandard struct {
	ID          string     `yaml:"id"`
	Node        string     `yaml:"node"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Rules       []yamlRule `yaml:"rules"`
}

// yamlRule is an intermediate rule.
type yamlRule struct {
	ID             string          `yaml:"id"`
	Name           string          `yaml:"name"`
	Description    string          `yaml:"description"`
	Aspect         string          `yaml:"aspect"`
	ExpressionType string          `yaml:"expression_type"`
	Expression     string          `yaml:"expression"`
	Field          string          `yaml:"field"`
	EquipmentType  string          `yaml:"equipment_type"`
	Priority       int             `yaml:"priority"`
	Active         *bool           `yaml:"active"` // Pointer to distinguish unset (default true) from false
	CreatedAt      time.Time       `yaml:"created_at"`
	UpdatedAt      time.Time       `yaml:"updated_at"`
	Conditions     []yamlCondition `yaml:"conditions"`
}

// yamlCondition is an intermediate rule condition. Value stays untyped
// until the builder converts it.
type yamlCondition struct {
	Dimension string      `yaml:"dimension"`
	Operator  string      `yaml:"operator"`
	Value     interface{} `yaml:"value"`
}

// parseYAMLFile reads and decodes a standards file.
func parseYAMLFile(path string) (*yamlDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseYAMLBytes(data)
}

// parseYAMLBytes decodes standards YAML from memory.
func parseYAMLBytes(data []byte) (*yamlDocument, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
