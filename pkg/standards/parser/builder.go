package parser

import (
	"fmt"

	"avdesign-hq/meridian/pkg/standards"
	"avdesign-hq/meridian/pkg/standards/validator"
)

// builder transforms intermediate YAML structures into the domain
// model, collecting every problem instead of stopping at the first.
type builder struct {
	sourcePath string
	errors     *validator.ErrorList
}

func newBuilder(sourcePath string) *builder {
	return &builder{
		sourcePath: sourcePath,
		errors:     validator.NewErrorList(),
	}
}

// buildOnly converts the decoded YAML into a Document without running
// document-wide validation. Conversion problems (unusable condition
// values) still land in the builder's error list.
func (b *builder) buildOnly(yd *yamlDocument) *Document {
	doc := &Document{
		SourceFile: b.sourcePath,
		Nodes:      make([]*standards.StandardNode, 0, len(yd.Nodes)),
		Standards:  make([]*standards.Standard, 0, len(yd.Standards)),
	}
	for _, yn := range yd.Nodes {
		doc.Nodes = append(doc.Nodes, b.buildNode(yn))
	}
	for _, ys := range yd.Standards {
		doc.Standards = append(doc.Standards, b.buildStandard(ys))
	}
	return doc
}

// buildDocument converts the decoded YAML into a Document and runs the
// structural checks over the result.
func (b *builder) buildDocument(yd *yamlDocument) (*Document, error) {
	doc := b.buildOnly(yd)

	if err := validator.ValidateForest(doc.Nodes); err != nil {
		b.mergeErrors(err)
	}
	nodeIDs := make(map[string]bool, len(doc.Nodes))
	for _, node := range doc.Nodes {
		nodeIDs[node.ID] = true
	}
	for _, std := range doc.Standards {
		if err := validator.ValidateStandard(std); err != nil {
			b.mergeErrors(err)
		}
		if std.NodeID != "" && !nodeIDs[std.NodeID] {
			b.errors.AddWithSuggestion(fmt.Sprintf("standard %q", std.ID),
				fmt.Sprintf("node %q does not exist", std.NodeID),
				"declare the node in the 'nodes' list of this or another loaded file")
		}
	}

	if b.errors.HasErrors() {
		return nil, b.errors
	}
	return doc, nil
}

func (b *builder) buildNode(yn yamlNode) *standards.StandardNode {
	return &standards.StandardNode{
		ID:        yn.ID,
		ParentID:  yn.Parent,
		Kind:      standards.NodeKind(yn.Kind),
		Name:      yn.Name,
		Dimension: standards.RuleDimension(yn.Dimension),
		Value:     yn.Value,
	}
}

func (b *builder) buildStandard(ys yamlStandard) *standards.Standard {
	std := &standards.Standard{
		ID:          ys.ID,
		NodeID:      ys.Node,
		Name:        ys.Name,
		Description: ys.Description,
		Rules:       make([]*standards.Rule, 0, len(ys.Rules)),
	}
	for i, yr := range ys.Rules {
		std.Rules = append(std.Rules, b.buildRule(ys.ID, i, yr))
	}
	return std
}

func (b *builder) buildRule(standardID string, index int, yr yamlRule) *standards.Rule {
	active := true
	if yr.Active != nil {
		active = *yr.Active
	}

	rule := &standards.Rule{
		ID:             yr.ID,
		Name:           yr.Name,
		Description:    yr.Description,
		Aspect:         standards.RuleAspect(yr.Aspect),
		ExpressionType: standards.ExpressionType(yr.ExpressionType),
		Expression:     yr.Expression,
		Field:          yr.Field,
		EquipmentType:  yr.EquipmentType,
		Priority:       yr.Priority,
		IsActive:       active,
		CreatedAt:      yr.CreatedAt,
		UpdatedAt:      yr.UpdatedAt,
	}

	for j, yc := range yr.Conditions {
		value, err := standards.ValueFromAny(yc.Value)
		if err != nil {
			b.errors.Addf(
				fmt.Sprintf("standard %q rule %d condition %d", standardID, index, j),
				"unusable condition value: %v", err)
			value = standards.NullValue()
		}
		rule.Conditions = append(rule.Conditions, standards.RuleCondition{
			Dimension: standards.RuleDimension(yc.Dimension),
			Operator:  standards.ConditionOperator(yc.Operator),
			Value:     value,
		})
	}
	return rule
}

// mergeErrors folds a validator error back into the builder's list so
// callers see one combined report per file.
func (b *builder) mergeErrors(err error) {
	if el, ok := err.(*validator.ErrorList); ok {
		for _, e := range el.Errors {
			b.errors.Add(e)
		}
		return
	}
	if e, ok := err.(*validator.Error); ok {
		b.errors.Add(e)
		return
	}
	b.errors.Addf(b.sourcePath, "%v", err)
}
